package wave

import "errors"

// FormatKind is the tagged variant over the four sample encodings this
// package understands. There is deliberately no general-purpose format tag
// here: anything else is fmt-unsupported.
type FormatKind int

const (
	PCM16 FormatKind = iota + 1
	PCM24
	PCM32
	Float32
)

// ContainerBytes returns the on-disk size, in bytes, of one sample in this
// format's container.
func (k FormatKind) ContainerBytes() int {
	switch k {
	case PCM16:
		return 2
	case PCM24:
		return 3
	case PCM32, Float32:
		return 4
	default:
		return 0
	}
}

func (k FormatKind) String() string {
	switch k {
	case PCM16:
		return "PCM16"
	case PCM24:
		return "PCM24"
	case PCM32:
		return "PCM32"
	case Float32:
		return "Float32"
	default:
		return "unknown"
	}
}

// Format is the normalised fmt-chunk descriptor.
type Format struct {
	Kind          FormatKind
	SampleRate    uint32
	Channels      uint16
	BitsPerSample uint16
}

// ContainerBytes returns Kind.ContainerBytes(), provided for convenience.
func (f Format) ContainerBytes() int {
	return f.Kind.ContainerBytes()
}

// BlockAlign returns the number of bytes in one frame (one sample on every
// channel).
func (f Format) BlockAlign() uint16 {
	return uint16(int(f.Channels) * f.Kind.ContainerBytes())
}

const (
	wFormatTagPCM        = 0x0001
	wFormatTagIEEEFloat  = 0x0003
	wFormatTagExtensible = 0xFFFE
)

// extensibleGUIDSuffix is the fixed 14-byte tail of every KSDATAFORMAT_SUBTYPE
// GUID used by WAVE_FORMAT_EXTENSIBLE: {00000000-0000-0010-8000-00AA00389B71}
// with the first four bytes (the format tag) stripped off.
var extensibleGUIDSuffix = [14]byte{
	0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71,
}

// decodeFormat parses a `fmt ` chunk payload into a Format. It accepts the
// basic 16/18-byte layouts as well as the 40-byte WAVE_FORMAT_EXTENSIBLE
// layout.
func decodeFormat(payload []byte) (Format, error) {
	if len(payload) < 16 {
		return Format{}, ErrFormatInvalid
	}

	formatTag := readUint16(payload, 0)
	channels := readUint16(payload, 2)
	sampleRate := readUint32(payload, 4)
	blockAlign := readUint16(payload, 12)
	bitsPerSample := readUint16(payload, 14)

	if formatTag == wFormatTagExtensible {
		if len(payload) < 18 {
			return Format{}, ErrFormatInvalid
		}
		cbSize := readUint16(payload, 16)
		if cbSize < 22 || len(payload) < 18+int(cbSize) {
			return Format{}, ErrFormatInvalid
		}
		bitsPerSample = readUint16(payload, 18)
		// offset 20: dwChannelMask (4 bytes, unused); offset 24: SubFormat
		// GUID (2-byte format code + 14-byte canonical suffix).
		innerTag := readUint16(payload, 24)
		var suffix [14]byte
		copy(suffix[:], payload[26:40])
		if suffix != extensibleGUIDSuffix {
			return Format{}, ErrFormatUnsupported
		}
		formatTag = innerTag
	}

	containerBits := 0
	if channels != 0 {
		containerBits = int(blockAlign) / int(channels) * 8
	}

	var kind FormatKind
	switch {
	case formatTag == wFormatTagPCM && containerBits == 16:
		kind = PCM16
	case formatTag == wFormatTagPCM && containerBits == 24:
		kind = PCM24
	case formatTag == wFormatTagPCM && containerBits == 32:
		kind = PCM32
	case formatTag == wFormatTagIEEEFloat && containerBits == 32:
		kind = Float32
	default:
		return Format{}, ErrFormatUnsupported
	}

	f := Format{Kind: kind, SampleRate: sampleRate, Channels: channels, BitsPerSample: bitsPerSample}
	if int(f.BlockAlign()) != int(blockAlign) {
		return Format{}, ErrFormatInvalid
	}
	if f.BitsPerSample > uint16(f.Kind.ContainerBytes())*8 {
		return Format{}, ErrFormatInvalid
	}
	return f, nil
}

// formatChunkSize returns the number of bytes encodeFormat will write for
// this format, not counting the 8-byte chunk header.
func formatChunkSize(f Format) uint32 {
	if int(f.BitsPerSample) != f.Kind.ContainerBytes()*8 {
		return 40 // EXTENSIBLE
	}
	if f.Kind == Float32 {
		return 18 // basic float, cbSize = 0
	}
	return 16 // basic PCM, no cbSize
}

// needsFactChunk reports whether the format written by encodeFormat requires
// an accompanying `fact` chunk (anything that isn't plain PCM).
func needsFactChunk(f Format) bool {
	extensible := int(f.BitsPerSample) != f.Kind.ContainerBytes()*8
	return f.Kind == Float32 || extensible
}

// encodeFormat writes the `fmt ` chunk payload (not including the 8-byte
// chunk header) for f into dst, which must be exactly formatChunkSize(f)
// bytes long.
func encodeFormat(dst []byte, f Format) {
	containerBytes := f.Kind.ContainerBytes()
	blockAlign := f.BlockAlign()
	avgBytesPerSec := f.SampleRate * uint32(blockAlign)

	extensible := int(f.BitsPerSample) != containerBytes*8
	formatTag := uint16(wFormatTagPCM)
	if f.Kind == Float32 {
		formatTag = wFormatTagIEEEFloat
	}

	writeTag := formatTag
	if extensible {
		writeTag = wFormatTagExtensible
	}

	writeUint16(dst, 0, writeTag)
	writeUint16(dst, 2, f.Channels)
	writeUint32(dst, 4, f.SampleRate)
	writeUint32(dst, 8, avgBytesPerSec)
	writeUint16(dst, 12, blockAlign)

	if extensible {
		writeUint16(dst, 14, uint16(containerBytes*8))
		writeUint16(dst, 16, 22) // cbSize
		writeUint16(dst, 18, f.BitsPerSample)
		writeUint32(dst, 20, 0) // channel mask: unspecified
		writeUint16(dst, 24, formatTag)
		copy(dst[26:40], extensibleGUIDSuffix[:])
		return
	}

	writeUint16(dst, 14, f.BitsPerSample)
	if f.Kind == Float32 {
		writeUint16(dst, 16, 0) // cbSize
	}
}

var (
	ErrFormatInvalid     = errors.New("wave: fmt chunk invalid")
	ErrFormatUnsupported = errors.New("wave: fmt chunk describes an unsupported format")
)
