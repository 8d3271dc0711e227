package wave

import "errors"

var ErrSmplInvalid = errors.New("wave: smpl chunk is malformed")

const smplLoopEntrySize = 24

// PitchInfo is the sampler chunk's MIDI pitch value: (MIDI note << 32) +
// fractional cents, as packed by the `smpl` chunk's dwMIDIUnityNote /
// dwMIDIPitchFraction pair.
type PitchInfo struct {
	Present bool
	Value   uint64
}

// loadSmpl parses a `smpl` chunk payload, recording pitch info and merging
// each loop entry into the marker table.
//
// The merge rule is the one place in this package where iteration order is
// load-bearing: each loop is matched against the *first* marker in table
// order satisfying either "same id and not yet in_cue" or "in_cue and
// position equals this loop's start, and (no ltxt length recorded yet, or
// that length already agrees)". This mirrors the source format's own
// behaviour; if two existing markers would both match by coordinates for
// different reasons, the result depends on the order chunks appeared in the
// file. Callers should not rely on a particular resolution in that case.
func loadSmpl(payload []byte, t *markerTable) (PitchInfo, error) {
	if len(payload) < 36 {
		return PitchInfo{}, ErrSmplInvalid
	}

	pitchHi := readUint32(payload, 12)
	pitchLo := readUint32(payload, 16)
	pitch := PitchInfo{Present: true, Value: uint64(pitchHi)<<32 | uint64(pitchLo)}

	nLoops := readUint32(payload, 28)
	samplerDataSize := readUint32(payload, 32)
	want := 36 + smplLoopEntrySize*int(nLoops) + int(samplerDataSize)
	if len(payload) < want {
		return PitchInfo{}, ErrSmplInvalid
	}

	for i := uint32(0); i < nLoops; i++ {
		off := 36 + int(i)*smplLoopEntrySize
		id := readUint32(payload, off)
		start := readUint32(payload, off+8)
		end := readUint32(payload, off+12)
		if start > end {
			return PitchInfo{}, ErrSmplInvalid
		}
		length := end - start + 1

		marker := findSmplMatch(t, id, start, length)
		if marker == nil {
			// A loop with no match allocates a marker with ID 0, not this
			// loop's real id: the id here only exists to correlate against
			// markers other chunks already created, and must not become
			// something a *later* unmatched loop in this same chunk can
			// accidentally match via findSmplMatch's id comparison.
			var err error
			marker, err = t.append(0)
			if err != nil {
				return PitchInfo{}, err
			}
			t.registerIndex(0, t.count-1)
		}
		marker.Position = start
		marker.Length = length
		marker.InSmpl = true
	}

	return pitch, nil
}

// findSmplMatch scans the marker table in order looking for the first
// marker that a smpl loop with the given id/start/length should merge into.
// It returns nil if no marker matches and a fresh one should be allocated.
func findSmplMatch(t *markerTable, id, start, length uint32) *Marker {
	markers := t.slice()
	for i := range markers {
		m := &markers[i]
		if m.ID == id && !m.InCue {
			return m
		}
		if m.InCue && m.Position == start && (!m.HasLtxt || m.Length == length) {
			return m
		}
	}
	return nil
}
