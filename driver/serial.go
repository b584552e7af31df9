package driver

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"golang.org/x/sync/errgroup"
	"libdb.so/neoglow/animator"
	"libdb.so/neoglow/internal/led"
	"libdb.so/neoglow/ledserial"
)

// DefaultAckTimeout is the ack timeout used when none is configured.
const DefaultAckTimeout = 250 * time.Millisecond

// SerialConfig configures OpenSerial.
type SerialConfig struct {
	Device  string
	Baud    int
	NumLEDs int
	// AckTimeout is how long Show waits for the controller to acknowledge a
	// frame. Zero means DefaultAckTimeout.
	AckTimeout time.Duration
}

// Serial is a Driver that sends frames to a strip controller over the
// ledserial protocol. Run must be running for acks to be received.
type Serial struct {
	port       io.ReadWriteCloser
	logger     *slog.Logger
	ackTimeout time.Duration
	acks       chan ledserial.AckPacket

	mu    sync.Mutex
	frame frame

	closeOnce sync.Once
	closeErr  error
}

var _ animator.Driver = (*Serial)(nil)

// OpenSerial opens the serial device described by cfg.
func OpenSerial(cfg SerialConfig, logger *slog.Logger) (*Serial, error) {
	port, err := serial.Open(cfg.Device, &serial.Mode{
		BaudRate: cfg.Baud,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open serial port")
	}

	if err := port.SetReadTimeout(serial.NoTimeout); err != nil {
		port.Close()
		return nil, errors.Wrap(err, "failed to reset read timeout")
	}

	logger.Debug(
		"opened serial port",
		"device", cfg.Device,
		"baud", cfg.Baud)

	return NewSerial(port, cfg.NumLEDs, cfg.AckTimeout, logger), nil
}

// NewSerial creates a Serial driver over an already opened port.
func NewSerial(port io.ReadWriteCloser, numLEDs int, ackTimeout time.Duration, logger *slog.Logger) *Serial {
	if ackTimeout <= 0 {
		ackTimeout = DefaultAckTimeout
	}
	return &Serial{
		port:       port,
		logger:     logger,
		ackTimeout: ackTimeout,
		acks:       make(chan ledserial.AckPacket, 4),
		frame:      newFrame(numLEDs),
	}
}

// Run reads packets from the controller until the context is canceled, the
// port is closed or the controller panics. The port is closed when Run
// returns.
func (s *Serial) Run(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		<-ctx.Done()
		s.logger.Debug("closing serial port")
		if err := s.Close(); err != nil {
			return errors.Wrap(err, "failed to close serial port")
		}
		return ctx.Err()
	})
	errg.Go(func() error {
		return s.readPackets(ctx)
	})
	return errg.Wait()
}

func (s *Serial) readPackets(ctx context.Context) error {
	for {
		p, err := ledserial.ReadOutgoingPacket(s.port)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, ledserial.ErrChecksumMismatch) {
				s.logger.Warn("dropping corrupted packet from controller")
				continue
			}
			if errors.Is(err, io.EOF) {
				return errors.New("serial port closed by controller")
			}
			return errors.Wrap(err, "failed to read packet")
		}

		s.logger.Debug(
			"received packet from controller",
			"type", p.Type())

		switch p := p.(type) {
		case ledserial.AckPacket:
			select {
			case s.acks <- p:
			default:
				s.logger.Debug(
					"dropping unexpected ack",
					"acked_for", p.IncomingPacketType)
			}

		case ledserial.LogPacket:
			s.logger.Info(
				"received log packet from controller",
				"message", p.Message)

		case ledserial.ErrorPacket:
			s.logger.Warn(
				"received error packet from controller",
				"message", p.Message)

		case ledserial.PanicPacket:
			s.logger.Error("controller unrecoverably panicked")
			return errors.New("controller panicked")
		}
	}
}

// Initialize tells the controller how many LEDs the strip has.
func (s *Serial) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.send(ledserial.InitializePacket{
		NumLEDs: uint16(len(s.frame.leds)),
	})
}

// SetPixel implements animator.Driver.
func (s *Serial) SetPixel(i int, c led.RGBColor) {
	s.mu.Lock()
	s.frame.SetPixel(i, c)
	s.mu.Unlock()
}

// Fill implements animator.Driver.
func (s *Serial) Fill(c led.RGBColor) {
	s.mu.Lock()
	s.frame.Fill(c)
	s.mu.Unlock()
}

// Show sends the current pixels to the controller and waits for its ack.
// Pixels are sent at full brightness; the controller applies the level.
func (s *Serial) Show() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.send(ledserial.SetPacket{
		Pix: s.frame.leds.AsPixels(),
	})
}

// SetBrightness implements animator.Driver.
func (s *Serial) SetBrightness(level uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.send(ledserial.BrightnessPacket{Level: level}); err != nil {
		return err
	}
	s.frame.brightness = level
	return nil
}

// Close closes the serial port. It is safe to call more than once.
func (s *Serial) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.port.Close()
	})
	return s.closeErr
}

// send writes p and waits for the controller to ack it. s.mu must be held.
func (s *Serial) send(p ledserial.IncomingPacket) error {
	// Acks that arrived after an earlier timeout belong to older packets.
	for len(s.acks) > 0 {
		<-s.acks
	}

	s.logger.Debug(
		"writing packet",
		"type", p.Type())

	if err := ledserial.WriteIncomingPacket(s.port, p); err != nil {
		return errors.Wrapf(err, "failed to write %s packet", p.Type())
	}

	s.awaitAck(p.Type())
	return nil
}

func (s *Serial) awaitAck(t ledserial.IncomingPacketType) {
	timer := time.NewTimer(s.ackTimeout)
	defer timer.Stop()

	for {
		select {
		case ack := <-s.acks:
			if ack.IncomingPacketType == t {
				return
			}
			s.logger.Debug(
				"ignoring ack for another packet",
				"acked_for", ack.IncomingPacketType)

		case <-timer.C:
			s.logger.Warn(
				"timed out waiting for ack",
				"packet", t,
				"timeout", s.ackTimeout)
			return
		}
	}
}
