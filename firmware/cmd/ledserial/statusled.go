package main

import (
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// The XIAO RP2040 has an onboard ws2812 with its own power pin.
// https://wiki.seeedstudio.com/XIAO-RP2040-with-Arduino/
var (
	statusLED            ws2812.Device
	statusLEDPower       = machine.GPIO11
	statusLEDInitialized bool
)

func initStatusLED() {
	if statusLEDInitialized {
		return
	}

	statusLEDPower.Configure(machine.PinConfig{Mode: machine.PinOutput})
	statusLEDPower.Low()

	machine.GPIO12.Configure(machine.PinConfig{Mode: machine.PinOutput})
	statusLED = ws2812.New(machine.GPIO12)

	statusLEDInitialized = true
}

// turnOnStatusLED lights the onboard LED white while a packet is read.
func turnOnStatusLED() {
	initStatusLED()
	statusLEDPower.High()
	statusLED.WriteByte(0x20)
	statusLED.WriteByte(0x20)
	statusLED.WriteByte(0x20)
}

func turnOffStatusLED() {
	initStatusLED()
	statusLEDPower.Low()
}
