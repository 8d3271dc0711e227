package wave

import "errors"

var (
	ErrCueInvalid      = errors.New("wave: cue chunk is malformed")
	ErrCueDuplicateIDs = errors.New("wave: cue chunk contains duplicate ids")
)

const cueEntrySize = 24

// loadCue parses a `cue ` chunk payload and projects each entry onto the
// marker table, keyed by cue ID. Only the 'id' and 'sample-offset' fields are
// read; the remaining fields of each 24-byte entry (play-order position,
// chunk id, chunk start, block start) are ignored,
// matching the subset of cue-point semantics this format family actually
// uses.
func loadCue(payload []byte, t *markerTable) error {
	if len(payload) < 4 {
		return ErrCueInvalid
	}
	count := readUint32(payload, 0)
	want := 4 + cueEntrySize*int(count)
	if len(payload) < want {
		return ErrCueInvalid
	}

	for i := uint32(0); i < count; i++ {
		off := 4 + int(i)*cueEntrySize
		id := readUint32(payload, off)
		position := readUint32(payload, off+20)

		if m, ok := t.byID(id); ok {
			if m.InCue {
				return ErrCueDuplicateIDs
			}
			m.Position = position
			m.InCue = true
			continue
		}

		m, err := t.getOrAlloc(id)
		if err != nil {
			return err
		}
		m.Position = position
		m.InCue = true
	}
	return nil
}
