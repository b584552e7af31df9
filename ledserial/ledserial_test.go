package ledserial

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomingPackets(t *testing.T) {
	rctx := ReadContext{NumLEDs: 2}
	packets := []IncomingPacket{
		InitializePacket{NumLEDs: 2},
		ClearPacket{},
		SetPacket{Pix: []uint8{255, 0, 0, 0, 255, 200}},
		BrightnessPacket{Level: 18},
	}

	// Packets are written back to back like they are on the wire.
	var buf bytes.Buffer
	for _, p := range packets {
		require.NoError(t, WriteIncomingPacket(&buf, p))
	}

	for _, want := range packets {
		got, err := ReadIncomingPacket(&buf, rctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ReadIncomingPacket(&buf, rctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestOutgoingPackets(t *testing.T) {
	packets := []OutgoingPacket{
		AckPacket{IncomingPacketType: TypeSetPacket},
		LogPacket{Message: "initialized 8 LEDs"},
		ErrorPacket{Message: "invalid number of pixels: 3"},
		PanicPacket{},
	}

	var buf bytes.Buffer
	for _, p := range packets {
		require.NoError(t, WriteOutgoingPacket(&buf, p))
	}

	for _, want := range packets {
		got, err := ReadOutgoingPacket(&buf)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSetPacketLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIncomingPacket(&buf, SetPacket{Pix: []uint8{1, 2, 3}}))

	b := buf.Bytes()
	require.Len(t, b, 1+3+4)
	assert.Equal(t, byte(TypeSetPacket), b[0])
	assert.Equal(t, []byte{1, 2, 3}, b[1:4])
}

func TestChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIncomingPacket(&buf, SetPacket{Pix: []uint8{10, 20, 30}}))

	b := buf.Bytes()
	b[2] ^= 0xFF

	p, err := ReadIncomingPacket(bytes.NewReader(b), ReadContext{NumLEDs: 1})
	assert.ErrorIs(t, err, ErrChecksumMismatch)
	assert.Nil(t, p)

	buf.Reset()
	require.NoError(t, WriteOutgoingPacket(&buf, LogPacket{Message: "hello"}))
	b = buf.Bytes()
	b[len(b)-1] ^= 0xFF

	_, err = ReadOutgoingPacket(bytes.NewReader(b))
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestUnknownPacketType(t *testing.T) {
	_, err := ReadIncomingPacket(bytes.NewReader([]byte{0x7F}), ReadContext{})
	assert.ErrorContains(t, err, "IncomingPacketType(127)")

	_, err = ReadOutgoingPacket(bytes.NewReader([]byte{0x7F}))
	assert.ErrorContains(t, err, "OutgoingPacketType(127)")
}

func TestPacketTypeStrings(t *testing.T) {
	assert.Equal(t, "brightness", TypeBrightnessPacket.String())
	assert.Equal(t, "ack", TypeAckPacket.String())
}
