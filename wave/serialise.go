package wave

// writer accumulates a byte offset, optionally copying into a destination
// buffer. Calling every put* method with dst == nil computes the exact size
// that would be written; calling them with a correctly sized dst performs
// the write. Both cases execute the identical sequence of calls, which is
// what gives Serialise its two-pass sizing/writing contract.
type writer struct {
	dst []byte
	off int
}

func (w *writer) putBytes(b []byte) {
	if w.dst != nil {
		copy(w.dst[w.off:], b)
	}
	w.off += len(b)
}

func (w *writer) putByte(b byte) {
	if w.dst != nil {
		w.dst[w.off] = b
	}
	w.off++
}

func (w *writer) putZero(n int) {
	if w.dst != nil {
		for i := 0; i < n; i++ {
			w.dst[w.off+i] = 0
		}
	}
	w.off += n
}

func (w *writer) putUint16(v uint16) {
	var b [2]byte
	writeUint16(b[:], 0, v)
	w.putBytes(b[:])
}

func (w *writer) putUint32(v uint32) {
	var b [4]byte
	writeUint32(b[:], 0, v)
	w.putBytes(b[:])
}

func (w *writer) putFourCC(f FourCC) {
	w.putBytes(f[:])
}

// chunkHeader writes an 8-byte chunk header (id, size) at the writer's
// current position. Callers finish an odd-sized chunk with pad(size).
func (w *writer) chunkHeader(id FourCC, size uint32) {
	w.putFourCC(id)
	w.putUint32(size)
}

// pad emits a zero pad byte if size is odd, per RIFF's pad-to-even rule.
func (w *writer) pad(size uint32) {
	if size&1 != 0 {
		w.putByte(0)
	}
}

// Serialise writes root as a complete RIFF/WAVE file into dst, in the
// canonical chunk order: `fmt ` -> optional `fact` -> `data` -> optional
// `LIST/INFO` -> optional `LIST/adtl` -> optional `cue ` -> optional `smpl`
// -> preserved unknown chunks.
//
// Call Serialise(root, nil, storeCueLoops) first to compute the exact
// output size, allocate a buffer of that size, then call again with that
// buffer. dst must either be nil or be exactly the size the first call
// reported; passing any other length is a caller error.
//
// storeCueLoops controls whether loop markers are additionally written into
// the `cue ` chunk and described with an `ltxt` entry in `LIST/adtl`, in
// addition to the canonical `smpl` chunk representation.
func Serialise(root *Root, dst []byte, storeCueLoops bool) (int, error) {
	if err := checkSerialisable(root); err != nil {
		return 0, err
	}

	w := &writer{dst: nil}
	writeBody(w, root, storeCueLoops)
	bodySize := w.off

	if uint64(bodySize)+4 > 0xFFFFFFFF {
		return 0, ErrSerialiseFailure
	}

	total := 12 + bodySize
	if dst == nil {
		return total, nil
	}
	if len(dst) != total {
		return 0, ErrSerialiseFailure
	}

	out := &writer{dst: dst}
	out.putFourCC(fourCCRIFF)
	out.putUint32(uint32(4 + bodySize)) // RIFF size excludes the "RIFF" id and size field itself
	out.putFourCC(fourCCWAVE)
	writeBody(out, root, storeCueLoops)

	return total, nil
}

// checkSerialisable validates the preconditions writeBody assumes, so that a
// failure is reported cleanly from Serialise rather than via an out-of-range
// panic deep in writeBody.
func checkSerialisable(root *Root) error {
	blockAlign := uint64(root.Format.BlockAlign())
	if uint64(root.DataFrames)*blockAlign > 0xFFFFFFFF {
		return ErrSerialiseFailure
	}
	return nil
}

// writeBody writes every chunk after the 12-byte RIFF/WAVE header, in
// canonical order.
func writeBody(w *writer, root *Root, storeCueLoops bool) {
	writeFormatChunk(w, root.Format)
	if needsFactChunk(root.Format) {
		writeFactChunk(w, root.DataFrames)
	}
	writeDataChunk(w, root.Data)
	writeInfoChunk(w, root.Info)
	writeAdtlChunk(w, root.Markers, storeCueLoops)
	writeCueChunk(w, root.Markers, storeCueLoops)
	writeSmplChunk(w, root.Markers, root.Pitch)
	writeUnknownChunks(w, root.Unknown)
}

func writeFormatChunk(w *writer, f Format) {
	size := formatChunkSize(f)
	w.chunkHeader(fourCCFmt, size)
	start := w.off
	if w.dst != nil {
		encodeFormat(w.dst[start:start+int(size)], f)
	}
	w.off += int(size)
	w.pad(size)
}

func writeFactChunk(w *writer, dataFrames uint32) {
	w.chunkHeader(fourCCFact, 4)
	w.putUint32(dataFrames)
}

func writeDataChunk(w *writer, data []byte) {
	w.chunkHeader(fourCCData, uint32(len(data)))
	w.putBytes(data)
	w.pad(uint32(len(data)))
}

func writeInfoChunk(w *writer, info Info) {
	present := false
	for _, s := range info {
		if s != "" {
			present = true
			break
		}
	}
	if !present {
		return
	}

	// measureInfoPayload computes the LIST payload size (4-byte sub-form
	// plus each present sub-chunk, padded) with the same arithmetic the
	// loop below writes, so the header can be emitted before the body.
	size := measureInfoPayload(info)

	w.chunkHeader(fourCCList, size)
	w.putFourCC(fourCCInfo)
	for i, s := range info {
		if s == "" {
			continue
		}
		fourcc, _ := InfoIndexToFourCC(i)
		payloadLen := uint32(len(s) + 1)
		w.chunkHeader(fourcc, payloadLen)
		w.putBytes([]byte(s))
		w.putByte(0)
		w.pad(payloadLen)
	}
}

func measureInfoPayload(info Info) uint32 {
	size := uint32(4) // sub-form fourcc
	for _, s := range info {
		if s == "" {
			continue
		}
		payloadLen := uint32(len(s) + 1)
		size += 8 + padSize(payloadLen)
	}
	return size
}

func writeAdtlChunk(w *writer, markers []Marker, storeCueLoops bool) {
	size := measureAdtlPayload(markers, storeCueLoops)
	if size == 0 {
		return
	}

	w.chunkHeader(fourCCList, size)
	w.putFourCC(fourCCAdtl)
	for i, m := range markers {
		id := uint32(i + 1)

		if storeCueLoops && m.IsLoop() {
			w.chunkHeader(fourCCLtxt, 20)
			w.putUint32(id)
			w.putUint32(m.Length)
			w.putFourCC(NewFourCC("rgn "))
			w.putUint16(0)
			w.putUint16(0)
			w.putUint16(0)
			w.putUint16(0)
		}
		if m.Name != "" {
			writeNoteLabl(w, fourCCLabl, id, m.Name)
		}
		if m.Desc != "" {
			writeNoteLabl(w, fourCCNote, id, m.Desc)
		}
	}
}

func writeNoteLabl(w *writer, id FourCC, markerID uint32, s string) {
	payloadLen := uint32(4 + len(s) + 1)
	w.chunkHeader(id, payloadLen)
	w.putUint32(markerID)
	w.putBytes([]byte(s))
	w.putByte(0)
	w.pad(payloadLen)
}

func measureAdtlPayload(markers []Marker, storeCueLoops bool) uint32 {
	size := uint32(0)
	any := false
	for _, m := range markers {
		if storeCueLoops && m.IsLoop() {
			size += 8 + 20
			any = true
		}
		if m.Name != "" {
			payloadLen := uint32(4 + len(m.Name) + 1)
			size += 8 + padSize(payloadLen)
			any = true
		}
		if m.Desc != "" {
			payloadLen := uint32(4 + len(m.Desc) + 1)
			size += 8 + padSize(payloadLen)
			any = true
		}
	}
	if !any {
		return 0
	}
	return size + 4 // sub-form fourcc
}

func writeCueChunk(w *writer, markers []Marker, storeCueLoops bool) {
	count := 0
	for _, m := range markers {
		if !m.IsLoop() || storeCueLoops {
			count++
		}
	}
	if count == 0 {
		return
	}

	payloadLen := uint32(4 + cueEntrySize*count)
	w.chunkHeader(fourCCCue, payloadLen)
	w.putUint32(uint32(count))

	for i, m := range markers {
		if m.IsLoop() && !storeCueLoops {
			continue
		}
		w.putUint32(uint32(i + 1))
		w.putUint32(0) // position (within playlist, unused)
		w.putFourCC(fourCCData)
		w.putUint32(0) // chunk start
		w.putUint32(0) // block start
		w.putUint32(m.Position)
	}
}

func writeSmplChunk(w *writer, markers []Marker, pitch PitchInfo) {
	loopCount := 0
	for _, m := range markers {
		if m.IsLoop() {
			loopCount++
		}
	}
	if loopCount == 0 && !pitch.Present {
		return
	}

	payloadLen := uint32(36 + smplLoopEntrySize*loopCount)
	w.chunkHeader(fourCCSmpl, payloadLen)

	w.putUint32(0)                                 // dwManufacturer
	w.putUint32(0)                                 // dwProduct
	w.putUint32(0)                                 // dwSamplePeriod
	w.putUint32(uint32(pitch.Value >> 32))         // dwMIDIUnityNote
	w.putUint32(uint32(pitch.Value & 0xFFFFFFFF))  // dwMIDIPitchFraction
	w.putUint32(0)                                 // dwSMPTEFormat
	w.putUint32(0)                                 // dwSMPTEOffset
	w.putUint32(uint32(loopCount))                 // cSampleLoops, offset 28
	w.putUint32(0)                                 // cbSamplerData, offset 32

	for i, m := range markers {
		if !m.IsLoop() {
			continue
		}
		w.putUint32(uint32(i + 1)) // dwIdentifier
		w.putUint32(0)             // dwType: loop forward
		w.putUint32(m.Position)
		w.putUint32(m.Position + m.Length - 1)
		w.putUint32(0) // dwFraction
		w.putUint32(0) // dwPlayCount: infinite
	}
}

func writeUnknownChunks(w *writer, unknown []UnknownChunk) {
	for _, u := range unknown {
		w.chunkHeader(u.ID, uint32(len(u.Payload)))
		w.putBytes(u.Payload)
		w.pad(uint32(len(u.Payload)))
	}
}
