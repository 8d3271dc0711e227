package wave

import "errors"

var (
	ErrAdtlInvalid    = errors.New("wave: LIST/adtl chunk contains an unrecognised sub-chunk")
	ErrAdtlDuplicates = errors.New("wave: LIST/adtl chunk contains a duplicate entry for one id")
)

// loadAdtl iterates the sub-chunks of a LIST/adtl chunk, projecting ltxt,
// labl, and note entries onto the marker table, keyed by cue ID. An adtl
// entry that names an ID no other loader has touched yet still allocates a
// fresh marker; reconciliation later drops it if nothing else claims it
// (an orphaned adtl entry).
func loadAdtl(payload []byte, t *markerTable) (Warnings, error) {
	var warnings Warnings

	err := walkChunks(payload, func(c rawChunk, truncated bool) error {
		if truncated {
			warnings |= WarnFileTruncation
		}

		switch c.id {
		case fourCCLtxt:
			if len(c.payload) != 20 {
				return ErrAdtlInvalid
			}
			id := readUint32(c.payload, 0)
			length := readUint32(c.payload, 4)

			m, err := t.getOrAlloc(id)
			if err != nil {
				return err
			}
			if m.HasLtxt {
				return ErrAdtlDuplicates
			}
			m.Length = length
			m.HasLtxt = true
			return nil

		case fourCCLabl:
			return loadAdtlString(c.payload, truncated, t, func(m *Marker) (*string, *bool, error) {
				if m.HasName {
					return nil, nil, ErrAdtlDuplicates
				}
				return &m.Name, &m.HasName, nil
			}, &warnings)

		case fourCCNote:
			return loadAdtlString(c.payload, truncated, t, func(m *Marker) (*string, *bool, error) {
				if m.HasDesc {
					return nil, nil, ErrAdtlDuplicates
				}
				return &m.Desc, &m.HasDesc, nil
			}, &warnings)

		default:
			return ErrAdtlInvalid
		}
	})
	if err != nil {
		return 0, err
	}
	return warnings, nil
}

// loadAdtlString handles the shared shape of labl/note sub-chunks: a 4-byte
// cue ID followed by a NUL-terminated string. slot returns pointers to the
// string field and its "already set" flag on the marker that should receive
// the string, or an error if the field is already populated (a duplicate).
//
// truncated reports whether the chunk walker had to clip this sub-chunk's
// declared size to what remained in the buffer. A missing NUL terminator in
// that case is genuine truncation, not a recoverable unterminated string, so
// it fails the mount instead of merely warning.
func loadAdtlString(payload []byte, truncated bool, t *markerTable, slot func(*Marker) (*string, *bool, error), warnings *Warnings) error {
	if len(payload) < 4 {
		return ErrAdtlInvalid
	}
	id := readUint32(payload, 0)

	nul := -1
	for i, b := range payload[4:] {
		if b == 0 {
			nul = i
			break
		}
	}
	if nul < 0 {
		if truncated {
			return ErrAdtlInvalid
		}
		*warnings |= WarnAdtlUnterminatedStrings
		return nil
	}

	m, err := t.getOrAlloc(id)
	if err != nil {
		return err
	}
	dst, has, err := slot(m)
	if err != nil {
		return err
	}
	*dst = string(payload[4 : 4+nul])
	*has = true
	return nil
}
