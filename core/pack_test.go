package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnpackInt16_RoundTripsPackInt16(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768}
	packed := PackInt16(samples)
	require.Equal(t, samples, UnpackInt16(packed))
}

func TestUnpackInt24_SignExtends(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF} // -1 in 24-bit two's complement
	require.Equal(t, []int32{-1}, UnpackInt24(data))
}

func TestUnpackInt32_LittleEndian(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x00}
	require.Equal(t, []int32{1}, UnpackInt32(data))
}

func TestUnpackFloat32_LittleEndian(t *testing.T) {
	// 1.0f little-endian bytes
	data := []byte{0x00, 0x00, 0x80, 0x3F}
	require.Equal(t, []float32{1.0}, UnpackFloat32(data))
}
