package wave

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMount_DuplicateChunks(t *testing.T) {
	buf := buildWave(fmtPCM16(48000, 1), fmtPCM16(48000, 1), dataChunk(4, 2))
	_, _, err := Mount(buf, 0)
	require.ErrorIs(t, err, ErrDuplicateChunks)

	buf2 := buildWave(fmtPCM16(48000, 1), dataChunk(4, 2), dataChunk(4, 2))
	_, _, err = Mount(buf2, 0)
	require.ErrorIs(t, err, ErrDuplicateChunks)

	buf3 := buildWave(
		fmtPCM16(48000, 1), dataChunk(4, 2),
		cueChunk([2]uint32{1, 1}), cueChunk([2]uint32{2, 2}),
	)
	_, _, err = Mount(buf3, 0)
	require.ErrorIs(t, err, ErrDuplicateChunks)
}

func TestMount_TooManyUnknownChunks(t *testing.T) {
	chunks := []byte{}
	for i := 0; i <= MaxUnknownChunks; i++ {
		chunks = append(chunks, chunk("junk", []byte{byte(i)})...)
	}
	buf := buildWave(fmtPCM16(48000, 1), dataChunk(4, 2))
	buf = append(buf, chunks...)
	// buildWave already sealed the RIFF size, so append raw chunks and fix
	// the size field up by hand.
	writeUint32(buf, 4, uint32(len(buf)-8))

	_, _, err := Mount(buf, MountPreserveUnknown)
	require.ErrorIs(t, err, ErrTooManyChunks)
}

func TestMount_PreserveUnknown(t *testing.T) {
	buf := buildWave(fmtPCM16(48000, 1), dataChunk(4, 2), chunk("junk", []byte{1, 2, 3, 4}))

	root, _, err := Mount(buf, 0)
	require.NoError(t, err)
	require.Empty(t, root.Unknown)

	root2, _, err := Mount(buf, MountPreserveUnknown)
	require.NoError(t, err)
	require.Len(t, root2.Unknown, 1)
	require.Equal(t, NewFourCC("junk"), root2.Unknown[0].ID)
	require.Equal(t, []byte{1, 2, 3, 4}, root2.Unknown[0].Payload)
}

func TestMount_Reset(t *testing.T) {
	buf := buildWave(
		fmtPCM16(48000, 1),
		dataChunk(1000, 2),
		listChunk("INFO", chunk("INAM", []byte("name\x00"))),
		cueChunk([2]uint32{1, 100}),
		listChunk("adtl", lablChunk(1, "A")),
		smplChunk([3]uint32{1, 100, 199}),
	)

	root, _, err := Mount(buf, MountReset)
	require.NoError(t, err)
	require.Empty(t, root.Markers)
	for _, s := range root.Info {
		require.Equal(t, "", s)
	}
	require.False(t, root.Pitch.Present)
	require.Equal(t, uint32(1000), root.DataFrames)
}

func TestMount_InfoTruncationWarns(t *testing.T) {
	// Declare a LIST/INFO chunk larger than the bytes actually supplied, but
	// leave enough room for one fully NUL-terminated sub-chunk inside it.
	inner := chunk("INAM", []byte("hi\x00"))
	payload := []byte("INFO")
	payload = append(payload, inner...)

	header := make([]byte, 8)
	copy(header[0:4], "LIST")
	writeUint32(header, 4, uint32(len(payload)+50))
	listBytes := append(header, payload...)

	buf := buildWave(fmtPCM16(48000, 1), dataChunk(4, 2))
	buf = append(buf, listBytes...)
	writeUint32(buf, 4, uint32(len(buf)-8))

	root, warnings, err := Mount(buf, 0)
	require.NoError(t, err)
	require.NotZero(t, warnings&WarnFileTruncation)
	require.Equal(t, "hi", root.Info[INAM])
}
