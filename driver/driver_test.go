package driver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"libdb.so/neoglow/internal/led"
	"libdb.so/neoglow/ledserial"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRecorder(t *testing.T) {
	r := NewRecorder(3)
	assert.Nil(t, r.LastFrame())

	r.SetPixel(0, led.Red)
	r.SetPixel(5, led.Blue) // ignored
	require.NoError(t, r.Show())
	assert.Equal(t, led.LEDs{led.Red, led.Off, led.Off}, r.LastFrame())

	require.NoError(t, r.SetBrightness(128))
	r.Fill(led.White)
	require.NoError(t, r.Show())
	assert.Equal(t, led.LEDs{{128, 128, 128}, {128, 128, 128}, {128, 128, 128}}, r.LastFrame())
	assert.Equal(t, uint8(128), r.Brightness())
	assert.Len(t, r.Frames(), 2)

	// Frames are snapshots.
	r.Fill(led.Off)
	assert.Equal(t, led.Red, r.Frames()[0][0])

	boom := errors.New("boom")
	r.FailWith(boom)
	assert.ErrorIs(t, r.Show(), boom)
	assert.ErrorIs(t, r.SetBrightness(1), boom)
	assert.Len(t, r.Frames(), 2)

	r.Reset()
	assert.Empty(t, r.Frames())
}

func TestTerminal(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, 2)

	term.SetPixel(0, led.Orange)
	term.SetPixel(1, led.Cyan)
	require.NoError(t, term.Show())
	assert.Equal(t,
		"\r\x1b[48;2;255;120;0m  \x1b[48;2;0;255;200m  \x1b[0m",
		buf.String())

	buf.Reset()
	require.NoError(t, term.SetBrightness(18))
	term.Fill(led.Orange)
	require.NoError(t, term.Show())
	assert.Equal(t,
		"\r\x1b[48;2;18;8;0m  \x1b[48;2;18;8;0m  \x1b[0m",
		buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestTerminalWriteError(t *testing.T) {
	term := NewTerminal(failingWriter{}, 1)
	assert.ErrorIs(t, term.Show(), io.ErrClosedPipe)
}

// startDevice runs a fake controller on conn. It reports every packet it reads
// and acks them if ack is true. It stops once conn is closed.
func startDevice(conn net.Conn, numLEDs uint16, ack bool) <-chan ledserial.IncomingPacket {
	packets := make(chan ledserial.IncomingPacket, 16)
	go func() {
		defer close(packets)
		for {
			p, err := ledserial.ReadIncomingPacket(conn, ledserial.ReadContext{NumLEDs: numLEDs})
			if err != nil {
				return
			}
			packets <- p
			if ack {
				if err := ledserial.WriteOutgoingPacket(conn, ledserial.AckPacket{
					IncomingPacketType: p.Type(),
				}); err != nil {
					return
				}
			}
		}
	}()
	return packets
}

type serialTest struct {
	serial  *Serial
	device  net.Conn
	packets <-chan ledserial.IncomingPacket
	cancel  context.CancelFunc
	done    chan error
}

func newSerialTest(t *testing.T, numLEDs int, ack bool, ackTimeout time.Duration) *serialTest {
	host, device := net.Pipe()

	st := &serialTest{
		serial:  NewSerial(host, numLEDs, ackTimeout, discardLogger),
		device:  device,
		packets: startDevice(device, uint16(numLEDs), ack),
		done:    make(chan error, 1),
	}

	ctx, cancel := context.WithCancel(context.Background())
	st.cancel = cancel
	go func() { st.done <- st.serial.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		<-st.done
		device.Close()
		for range st.packets {
		}
	})

	return st
}

func (st *serialTest) next(t *testing.T) ledserial.IncomingPacket {
	t.Helper()
	select {
	case p := <-st.packets:
		return p
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for packet")
		return nil
	}
}

func TestSerialShow(t *testing.T) {
	st := newSerialTest(t, 2, true, time.Second)

	require.NoError(t, st.serial.Initialize())
	assert.Equal(t, ledserial.InitializePacket{NumLEDs: 2}, st.next(t))

	st.serial.SetPixel(0, led.Red)
	st.serial.SetPixel(1, led.Cyan)
	st.serial.SetPixel(2, led.Blue) // ignored
	require.NoError(t, st.serial.Show())
	assert.Equal(t,
		ledserial.SetPacket{Pix: []uint8{255, 0, 0, 0, 255, 200}},
		st.next(t))

	require.NoError(t, st.serial.SetBrightness(18))
	assert.Equal(t, ledserial.BrightnessPacket{Level: 18}, st.next(t))

	// Brightness is applied by the controller, not by the host.
	require.NoError(t, st.serial.Show())
	assert.Equal(t,
		ledserial.SetPacket{Pix: []uint8{255, 0, 0, 0, 255, 200}},
		st.next(t))
}

func TestSerialMissingAck(t *testing.T) {
	st := newSerialTest(t, 1, false, 20*time.Millisecond)

	start := time.Now()
	require.NoError(t, st.serial.Show())
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, ledserial.SetPacket{Pix: []uint8{0, 0, 0}}, st.next(t))
}

func TestSerialCancel(t *testing.T) {
	st := newSerialTest(t, 1, true, time.Second)

	st.cancel()
	select {
	case err := <-st.done:
		assert.ErrorIs(t, err, context.Canceled)
		st.done <- err
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.Error(t, st.serial.Show(), "write to closed port")
}

func TestSerialControllerPanic(t *testing.T) {
	host, device := net.Pipe()
	defer device.Close()

	s := NewSerial(host, 1, 0, discardLogger)

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	require.NoError(t, ledserial.WriteOutgoingPacket(device, ledserial.LogPacket{Message: "hello"}))
	require.NoError(t, ledserial.WriteOutgoingPacket(device, ledserial.ErrorPacket{Message: "bad"}))
	require.NoError(t, ledserial.WriteOutgoingPacket(device, ledserial.PanicPacket{}))

	select {
	case err := <-done:
		assert.EqualError(t, err, "controller panicked")
	case <-time.After(time.Second):
		t.Fatal("Run did not return after panic")
	}
}

func TestSerialControllerHangup(t *testing.T) {
	host, device := net.Pipe()
	s := NewSerial(host, 1, 0, discardLogger)

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	device.Close()

	select {
	case err := <-done:
		assert.EqualError(t, err, "serial port closed by controller")
	case <-time.After(time.Second):
		t.Fatal("Run did not return after hangup")
	}
}
