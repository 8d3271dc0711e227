package wave

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildWave assembles a minimal RIFF/WAVE byte buffer for tests out of raw
// sub-chunk bytes (each already including its own 8-byte header and pad).
func buildWave(chunks ...[]byte) []byte {
	body := []byte{}
	for _, c := range chunks {
		body = append(body, c...)
	}
	out := make([]byte, 0, 12+len(body))
	out = append(out, 'R', 'I', 'F', 'F')
	var sz [4]byte
	writeUint32(sz[:], 0, uint32(4+len(body)))
	out = append(out, sz[:]...)
	out = append(out, 'W', 'A', 'V', 'E')
	out = append(out, body...)
	return out
}

func chunk(id string, payload []byte) []byte {
	out := make([]byte, 0, 8+len(payload)+1)
	out = append(out, []byte(id)...)
	var sz [4]byte
	writeUint32(sz[:], 0, uint32(len(payload)))
	out = append(out, sz[:]...)
	out = append(out, payload...)
	if len(payload)&1 != 0 {
		out = append(out, 0)
	}
	return out
}

func listChunk(subform string, subChunks ...[]byte) []byte {
	payload := []byte(subform)
	for _, c := range subChunks {
		payload = append(payload, c...)
	}
	return chunk("LIST", payload)
}

func fmtPCM16(sampleRate uint32, channels uint16) []byte {
	payload := make([]byte, 16)
	writeUint16(payload, 0, 1) // PCM
	writeUint16(payload, 2, channels)
	writeUint32(payload, 4, sampleRate)
	blockAlign := channels * 2
	writeUint32(payload, 8, sampleRate*uint32(blockAlign))
	writeUint16(payload, 12, blockAlign)
	writeUint16(payload, 14, 16)
	return chunk("fmt ", payload)
}

func dataChunk(frames int, blockAlign int) []byte {
	return chunk("data", make([]byte, frames*blockAlign))
}

func cueChunk(entries ...[2]uint32) []byte {
	payload := make([]byte, 4+24*len(entries))
	writeUint32(payload, 0, uint32(len(entries)))
	for i, e := range entries {
		off := 4 + i*24
		writeUint32(payload, off, e[0])
		copy(payload[off+4:off+8], []byte("data"))
		writeUint32(payload, off+20, e[1])
	}
	return chunk("cue ", payload)
}

func lablChunk(id uint32, text string) []byte {
	payload := make([]byte, 4+len(text)+1)
	writeUint32(payload, 0, id)
	copy(payload[4:], text)
	return chunk("labl", payload)
}

func noteChunk(id uint32, text string) []byte {
	payload := make([]byte, 4+len(text)+1)
	writeUint32(payload, 0, id)
	copy(payload[4:], text)
	return chunk("note", payload)
}

func smplChunk(loops ...[3]uint32) []byte {
	payload := make([]byte, 36+24*len(loops))
	writeUint32(payload, 28, uint32(len(loops)))
	for i, l := range loops {
		off := 36 + i*24
		writeUint32(payload, off, l[0])   // id
		writeUint32(payload, off+8, l[1]) // start
		writeUint32(payload, off+12, l[2]) // end
	}
	return chunk("smpl", payload)
}

// --- Scenario A: minimal PCM16 mono, zero metadata ----------------------- //

func TestMount_ScenarioA_MinimalNoMetadata(t *testing.T) {
	buf := buildWave(fmtPCM16(48000, 1), dataChunk(4, 2))

	root, warnings, err := Mount(buf, 0)
	require.NoError(t, err)
	require.Equal(t, Warnings(0), warnings)
	require.Equal(t, 0, len(root.Markers))
	require.Equal(t, uint32(4), root.DataFrames)
	require.Equal(t, PCM16, root.Format.Kind)
	for _, s := range root.Info {
		require.Equal(t, "", s)
	}

	size, err := Serialise(root, nil, false)
	require.NoError(t, err)
	out := make([]byte, size)
	n, err := Serialise(root, out, false)
	require.NoError(t, err)
	require.Equal(t, size, n)
	require.Equal(t, buf, out)
}

// --- Scenario B: cue points + adtl labels --------------------------------- //

func TestMount_ScenarioB_CueAndAdtl(t *testing.T) {
	buf := buildWave(
		fmtPCM16(48000, 1),
		dataChunk(1000, 2),
		cueChunk([2]uint32{1, 100}, [2]uint32{2, 200}),
		listChunk("adtl", lablChunk(1, "A"), noteChunk(2, "B")),
	)

	root, warnings, err := Mount(buf, 0)
	require.NoError(t, err)
	require.Equal(t, Warnings(0), warnings)
	require.Len(t, root.Markers, 2)

	byPos := map[uint32]Marker{}
	for _, m := range root.Markers {
		byPos[m.Position] = m
	}
	require.Equal(t, "A", byPos[100].Name)
	require.Equal(t, uint32(0), byPos[100].Length)
	require.Equal(t, "B", byPos[200].Desc)
	require.Equal(t, uint32(0), byPos[200].Length)

	size, err := Serialise(root, nil, false)
	require.NoError(t, err)
	out := make([]byte, size)
	_, err = Serialise(root, out, false)
	require.NoError(t, err)

	root2, _, err := Mount(out, 0)
	require.NoError(t, err)
	require.Len(t, root2.Markers, 2)
}

// --- Scenario C: cue + smpl loop merged by coordinates -------------------- //

func TestMount_ScenarioC_SmplCueCoordinateMerge(t *testing.T) {
	buf := buildWave(
		fmtPCM16(48000, 1),
		dataChunk(5000, 2),
		cueChunk([2]uint32{7, 1000}),
		smplChunk([3]uint32{99, 1000, 1999}),
	)

	root, _, err := Mount(buf, 0)
	require.NoError(t, err)
	require.Len(t, root.Markers, 1)

	m := root.Markers[0]
	require.Equal(t, uint32(1000), m.Position)
	require.Equal(t, uint32(1000), m.Length)
	require.True(t, m.InCue)
	require.True(t, m.InSmpl)
}

// --- Scenario D: unresolved smpl/cue loop conflict ------------------------ //

func TestMount_ScenarioD_UnresolvedConflict(t *testing.T) {
	buf := buildWave(
		fmtPCM16(48000, 1),
		dataChunk(5000, 2),
		listChunk("adtl",
			func() []byte {
				payload := make([]byte, 20)
				writeUint32(payload, 0, 1)
				writeUint32(payload, 4, 100)
				return chunk("ltxt", payload)
			}(),
		),
		cueChunk([2]uint32{1, 500}),
		smplChunk([3]uint32{2, 700, 749}),
	)

	root, _, err := Mount(buf, 0)
	require.NotNil(t, root)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Markers, 2)
}

// --- Scenario E: conflict resolved via prefer-cue-loops ------------------- //

func TestMount_ScenarioE_PreferCueLoops(t *testing.T) {
	buf := buildWave(
		fmtPCM16(48000, 1),
		dataChunk(5000, 2),
		listChunk("adtl",
			func() []byte {
				payload := make([]byte, 20)
				writeUint32(payload, 0, 1)
				writeUint32(payload, 4, 100)
				return chunk("ltxt", payload)
			}(),
		),
		cueChunk([2]uint32{1, 500}),
		smplChunk([3]uint32{2, 700, 749}),
	)

	root, warnings, err := Mount(buf, MountPreferCueLoops)
	require.NoError(t, err)
	require.NotZero(t, warnings&WarnSmplCueLoopConflictsResolved)
	require.Len(t, root.Markers, 1)
	require.Equal(t, uint32(500), root.Markers[0].Position)
	require.Equal(t, uint32(100), root.Markers[0].Length)
}

// --- Scenario F: EXTENSIBLE 24-bit PCM round-trips to plain PCM ----------- //

func TestMount_ScenarioF_ExtensiblePCM24(t *testing.T) {
	payload := make([]byte, 40)
	writeUint16(payload, 0, 0xFFFE)
	writeUint16(payload, 2, 2)
	writeUint32(payload, 4, 44100)
	blockAlign := uint16(2 * 3)
	writeUint32(payload, 8, 44100*uint32(blockAlign))
	writeUint16(payload, 12, blockAlign)
	writeUint16(payload, 14, 24) // container bits
	writeUint16(payload, 16, 22) // cbSize
	writeUint16(payload, 18, 24) // valid bits
	writeUint32(payload, 20, 0)  // channel mask
	writeUint16(payload, 24, 1)  // inner tag: PCM
	copy(payload[26:40], extensibleGUIDSuffix[:])
	fmtChunk := chunk("fmt ", payload)

	buf := buildWave(fmtChunk, dataChunk(10, int(blockAlign)))

	root, _, err := Mount(buf, 0)
	require.NoError(t, err)
	require.Equal(t, PCM24, root.Format.Kind)

	size, err := Serialise(root, nil, false)
	require.NoError(t, err)
	require.Equal(t, uint32(16), formatChunkSize(root.Format)) // plain PCM, no EXTENSIBLE
	out := make([]byte, size)
	_, err = Serialise(root, out, false)
	require.NoError(t, err)

	root2, _, err := Mount(out, 0)
	require.NoError(t, err)
	require.Equal(t, PCM24, root2.Format.Kind)
}

func TestMount_InvalidOptions(t *testing.T) {
	buf := buildWave(fmtPCM16(48000, 1), dataChunk(4, 2))
	_, _, err := Mount(buf, MountPreferSmplLoops|MountPreferCueLoops)
	require.ErrorIs(t, err, ErrInvalidOptions)
}

func TestMount_NotAWave(t *testing.T) {
	_, _, err := Mount([]byte("too short"), 0)
	require.ErrorIs(t, err, ErrNotAWave)
}

func TestMount_MarkerRangeAtBoundary(t *testing.T) {
	buf := buildWave(
		fmtPCM16(48000, 1),
		dataChunk(4, 2),
		cueChunk([2]uint32{1, 3}),
	)
	root, _, err := Mount(buf, 0)
	require.NoError(t, err)
	require.Len(t, root.Markers, 1)

	buf2 := buildWave(
		fmtPCM16(48000, 1),
		dataChunk(4, 2),
		cueChunk([2]uint32{1, 4}),
	)
	_, _, err = Mount(buf2, 0)
	require.ErrorIs(t, err, ErrMarkerRange)
}

func TestSortMarkers_Idempotent(t *testing.T) {
	ms := []Marker{
		{ID: 10, Position: 200, Length: 50},
		{ID: 20, Position: 200, Length: 100},
		{ID: 30, Position: 100, Length: 0},
	}
	SortMarkers(ms)
	first := append([]Marker{}, ms...)
	SortMarkers(ms)
	require.Equal(t, first, ms)

	require.Equal(t, uint32(200), ms[0].Position)
	require.Equal(t, uint32(100), ms[0].Length) // longer loop first at same position
	require.Equal(t, uint32(1), ms[0].ID)
	require.Equal(t, uint32(100), ms[2].Position)
	require.Equal(t, uint32(0), ms[2].Length) // cue points sort after loops
}
