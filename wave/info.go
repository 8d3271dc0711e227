package wave

import (
	"bytes"
	"errors"
)

// infoTag enumerates the 23 recognised LIST/INFO four-character codes, in
// the fixed order they occupy inside Info.
type infoTag int

const (
	IARL infoTag = iota
	IART
	ICMS
	ICMT
	ICOP
	ICRD
	ICRP
	IDIM
	IDPI
	IENG
	IGNR
	IKEY
	ILGT
	IMED
	INAM
	IPLT
	IPRD
	ISBJ
	ISFT
	ISHP
	ISRC
	ISRF
	ITCH

	infoTagCount
)

var infoFourCCs = [infoTagCount]FourCC{
	IARL: NewFourCC("IARL"),
	IART: NewFourCC("IART"),
	ICMS: NewFourCC("ICMS"),
	ICMT: NewFourCC("ICMT"),
	ICOP: NewFourCC("ICOP"),
	ICRD: NewFourCC("ICRD"),
	ICRP: NewFourCC("ICRP"),
	IDIM: NewFourCC("IDIM"),
	IDPI: NewFourCC("IDPI"),
	IENG: NewFourCC("IENG"),
	IGNR: NewFourCC("IGNR"),
	IKEY: NewFourCC("IKEY"),
	ILGT: NewFourCC("ILGT"),
	IMED: NewFourCC("IMED"),
	INAM: NewFourCC("INAM"),
	IPLT: NewFourCC("IPLT"),
	IPRD: NewFourCC("IPRD"),
	ISBJ: NewFourCC("ISBJ"),
	ISFT: NewFourCC("ISFT"),
	ISHP: NewFourCC("ISHP"),
	ISRC: NewFourCC("ISRC"),
	ISRF: NewFourCC("ISRF"),
	ITCH: NewFourCC("ITCH"),
}

// Info is the fixed-index mapping of the 23 recognised LIST/INFO tags to an
// optional string. A zero-value (empty string) slot means the tag is absent.
type Info [infoTagCount]string

// InfoIndexToFourCC returns the FourCC for info slot i, and false if i is out
// of range.
func InfoIndexToFourCC(i int) (FourCC, bool) {
	if i < 0 || i >= int(infoTagCount) {
		return FourCC{}, false
	}
	return infoFourCCs[i], true
}

// InfoFourCCToIndex returns the info slot index for the given FourCC, and
// false if the code is not one of the 23 recognised tags.
func InfoFourCCToIndex(fourcc FourCC) (int, bool) {
	for i, f := range infoFourCCs {
		if f == fourcc {
			return i, true
		}
	}
	return 0, false
}

var ErrInfoUnsupported = errors.New("wave: LIST/INFO chunk contains an unrecognised tag")

// loadInfo parses the sub-chunks of a LIST/INFO chunk into an Info set.
// Each string is copied out of the source payload up to its NUL terminator;
// a missing terminator drops that entry and raises WarnInfoUnterminatedStrings
// instead of failing the whole mount.
func loadInfo(payload []byte) (Info, Warnings, error) {
	var info Info
	var warnings Warnings

	err := walkChunks(payload, func(c rawChunk, truncated bool) error {
		if truncated {
			warnings |= WarnFileTruncation
		}

		idx, ok := InfoFourCCToIndex(c.id)
		if !ok {
			return ErrInfoUnsupported
		}

		nul := bytes.IndexByte(c.payload, 0)
		if nul < 0 {
			warnings |= WarnInfoUnterminatedStrings
			return nil
		}
		info[idx] = string(c.payload[:nul])
		return nil
	})
	if err != nil {
		return Info{}, 0, err
	}
	return info, warnings, nil
}
