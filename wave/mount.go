package wave

// Mount parses a complete RIFF/WAVE byte buffer and returns a populated
// Root. The returned Root's Data and Unknown payloads alias buf directly;
// buf must outlive Root and must not be mutated while Root is in use. Marker
// names/descriptions and info strings are copied out of buf.
//
// When err is a *ConflictError, the returned Root (with its unreconciled
// Markers) and warnings are still populated (see reconcile); every other
// error returns a nil Root and zero warnings.
func Mount(buf []byte, opts MountOptions) (*Root, Warnings, error) {
	if opts&MountPreferSmplLoops != 0 && opts&MountPreferCueLoops != 0 {
		return nil, 0, ErrInvalidOptions
	}

	if len(buf) < 12 {
		return nil, 0, ErrNotAWave
	}
	if (FourCC{buf[0], buf[1], buf[2], buf[3]}) != fourCCRIFF {
		return nil, 0, ErrNotAWave
	}
	if (FourCC{buf[8], buf[9], buf[10], buf[11]}) != fourCCWAVE {
		return nil, 0, ErrNotAWave
	}

	var warnings Warnings

	riffSize := readUint32(buf, 4)
	bodyAvailable := uint32(len(buf) - 8)
	if riffSize > bodyAvailable {
		warnings |= WarnFileTruncation
		riffSize = bodyAvailable
	}
	if riffSize < 4 {
		return nil, 0, ErrNotAWave
	}
	// riffSize counts the "WAVE" form tag; the chunk sequence follows it.
	body := buf[12 : 8+riffSize]

	var (
		haveFormat    bool
		format        Format
		haveData      bool
		data          []byte
		haveFact      bool
		haveInfoChunk bool
		info          Info
		adtlPayload   []byte
		haveAdtl      bool
		cuePayload    []byte
		haveCue       bool
		smplPayload   []byte
		haveSmpl      bool
		unknown       []UnknownChunk
	)

	err := walkChunks(body, func(c rawChunk, truncated bool) error {
		if truncated {
			warnings |= WarnFileTruncation
		}

		switch {
		case c.id == fourCCFmt:
			if haveFormat {
				return ErrDuplicateChunks
			}
			f, err := decodeFormat(c.payload)
			if err != nil {
				return err
			}
			format = f
			haveFormat = true

		case c.id == fourCCData:
			if haveData {
				return ErrDuplicateChunks
			}
			data = c.payload
			haveData = true

		case c.id == fourCCFact:
			if haveFact {
				return ErrDuplicateChunks
			}
			haveFact = true

		case c.id == fourCCList && c.listForm == fourCCInfo:
			if haveInfoChunk {
				return ErrDuplicateChunks
			}
			if opts&MountReset == 0 {
				parsed, w, err := loadInfo(c.payload)
				if err != nil {
					return err
				}
				info = parsed
				warnings |= w
			}
			haveInfoChunk = true

		case c.id == fourCCList && c.listForm == fourCCAdtl:
			if haveAdtl {
				return ErrDuplicateChunks
			}
			adtlPayload = c.payload
			haveAdtl = true

		case c.id == fourCCCue:
			if haveCue {
				return ErrDuplicateChunks
			}
			cuePayload = c.payload
			haveCue = true

		case c.id == fourCCSmpl:
			if haveSmpl {
				return ErrDuplicateChunks
			}
			smplPayload = c.payload
			haveSmpl = true

		default:
			if opts&MountPreserveUnknown == 0 {
				return nil
			}
			if len(unknown) >= MaxUnknownChunks {
				return ErrTooManyChunks
			}
			unknown = append(unknown, UnknownChunk{ID: c.id, Payload: c.payload})
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	if !haveFormat || !haveData {
		return nil, 0, ErrNotAWave
	}
	if format.BlockAlign() == 0 || uint32(len(data))%uint32(format.BlockAlign()) != 0 {
		return nil, 0, ErrDataInvalid
	}
	dataFrames := uint32(len(data)) / uint32(format.BlockAlign())

	root := &Root{
		Format:     format,
		DataFrames: dataFrames,
		Data:       data,
		Unknown:    unknown,
	}

	if opts&MountReset != 0 {
		return root, warnings, nil
	}

	root.Info = info

	table := newMarkerTable()

	if haveAdtl {
		w, err := loadAdtl(adtlPayload, table)
		if err != nil {
			return nil, 0, err
		}
		warnings |= w
	}
	if haveCue {
		if err := loadCue(cuePayload, table); err != nil {
			return nil, 0, err
		}
	}
	if haveSmpl {
		pitch, err := loadSmpl(smplPayload, table)
		if err != nil {
			return nil, 0, err
		}
		root.Pitch = pitch
	}

	w, err := reconcile(table, dataFrames, opts)
	warnings |= w
	if err != nil {
		if conflict, ok := err.(*ConflictError); ok {
			root.Markers = conflict.Markers
			return root, warnings, conflict
		}
		return nil, 0, err
	}
	root.Markers = table.slice()

	return root, warnings, nil
}
