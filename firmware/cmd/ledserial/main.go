// Command ledserial is the strip controller firmware. It reads frames from the
// USB serial port and writes them to a ws2812 strip.
package main

import "machine"

// stripPin is the data pin of the LED strip.
var stripPin = machine.D10

func main() {
	d := NewDevice(machine.Serial, stripPin)
	d.Run()
}
