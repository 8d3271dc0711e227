package wave

// rawChunk is one (id, size, payload) triple produced by walkChunks. The
// payload slice aliases the input buffer directly; no copy is made.
type rawChunk struct {
	id      FourCC
	payload []byte
	// listForm holds the sub-form FourCC ("adtl", "INFO", ...) when id is
	// "LIST"; it is the zero value otherwise.
	listForm FourCC
}

// walkChunks iterates the RIFF chunk sequence starting at the first byte of
// 'body' (which must begin immediately after the `RIFF <size> WAVE` header).
// It calls fn once per chunk found. If a chunk's declared size exceeds the
// remaining bytes of 'body', the payload is silently truncated to what
// remains and truncated is set to true for that call; the walk then stops,
// since there is no reliable place to resume from past a truncated chunk.
//
// fn returning a non-nil error aborts the walk immediately and that error is
// returned from walkChunks.
func walkChunks(body []byte, fn func(c rawChunk, truncated bool) error) error {
	cursor := 0
	for cursor+8 <= len(body) {
		id := FourCC{body[cursor], body[cursor+1], body[cursor+2], body[cursor+3]}
		declaredSize := readUint32(body, cursor+4)
		cursor += 8

		remaining := uint32(len(body) - cursor)
		truncated := declaredSize > remaining
		size := declaredSize
		if truncated {
			size = remaining
		}

		payload := body[cursor : cursor+int(size)]

		c := rawChunk{id: id}
		if id == fourCCList && len(payload) >= 4 {
			c.listForm = FourCC{payload[0], payload[1], payload[2], payload[3]}
			c.payload = payload[4:]
		} else {
			c.payload = payload
		}

		if err := fn(c, truncated); err != nil {
			return err
		}
		if truncated {
			return nil
		}

		cursor += int(padSize(size))
	}
	return nil
}
