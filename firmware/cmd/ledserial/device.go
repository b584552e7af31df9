package main

import (
	"fmt"
	"image/color"
	"machine"
	"runtime/interrupt"

	"libdb.so/neoglow/internal/led"
	"libdb.so/neoglow/ledserial"
	"tinygo.org/x/drivers/ws2812"
)

// Device stores the current state of the device.
type Device struct {
	serial SerialReadWriter
	strip  ws2812.Device

	leds       led.LEDs
	colors     []color.RGBA
	brightness uint8
}

// NewDevice creates a new device.
func NewDevice(serial machine.Serialer, stripPin machine.Pin) *Device {
	stripPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &Device{
		serial:     WrapSerial(serial),
		strip:      ws2812.New(stripPin),
		brightness: 255,
	}
}

// Run runs the device loop forever.
func (d *Device) Run() {
	for {
		p, err := d.readPacket()
		if err != nil {
			d.logError(err)
			continue
		}

		if err := d.handlePacket(p); err != nil {
			d.logError(err)
			continue
		}

		d.sendPacket(ledserial.AckPacket{
			IncomingPacketType: p.Type(),
		})
	}
}

func (d *Device) log(msg string) {
	d.sendPacket(ledserial.LogPacket{Message: msg})
}

func (d *Device) logError(err error) {
	d.sendPacket(ledserial.ErrorPacket{Message: err.Error()})
}

func (d *Device) sendPacket(p ledserial.OutgoingPacket) {
	ledserial.WriteOutgoingPacket(d.serial, p)
}

func (d *Device) readPacket() (ledserial.IncomingPacket, error) {
	turnOnStatusLED()
	defer turnOffStatusLED()

	return ledserial.ReadIncomingPacket(d.serial, ledserial.ReadContext{
		NumLEDs: uint16(len(d.leds)),
	})
}

func (d *Device) handlePacket(p ledserial.IncomingPacket) error {
	switch p := p.(type) {
	case ledserial.InitializePacket:
		if p.NumLEDs < 1 {
			return fmt.Errorf("invalid number of LEDs: %d", p.NumLEDs)
		}
		d.leds = led.NewLEDs(int(p.NumLEDs))
		d.colors = make([]color.RGBA, p.NumLEDs)
		d.signalReady()
		d.log(fmt.Sprintf("initialized %d LEDs", p.NumLEDs))

	case ledserial.ClearPacket:
		d.leds.Fill(led.Off)
		d.flush()

	case ledserial.SetPacket:
		if len(p.Pix) != 3*len(d.leds) {
			return fmt.Errorf("invalid number of pixels: %d", len(p.Pix)/3)
		}
		for i := range d.leds {
			d.leds[i] = led.RGB(p.Pix[3*i], p.Pix[3*i+1], p.Pix[3*i+2])
		}
		d.flush()

	case ledserial.BrightnessPacket:
		d.brightness = p.Level
		d.flush()

	default:
		return fmt.Errorf("unknown packet type: %T", p)
	}

	return nil
}

// signalReady lights the first LED red and the last one blue until the first
// frame arrives.
func (d *Device) signalReady() {
	d.leds.Fill(led.Off)
	d.leds.Set(len(d.leds)-1, led.Blue)
	d.leds.Set(0, led.Red)
	d.flush()
}

// flush writes the buffer to the strip with the brightness applied.
func (d *Device) flush() {
	for i, c := range d.leds {
		c = led.Dim(c, d.brightness)
		d.colors[i] = color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: 0xFF}
	}
	critical(func() { d.strip.WriteColors(d.colors) })
}

func critical(f func()) {
	state := interrupt.Disable()
	f()
	interrupt.Restore(state)
}
