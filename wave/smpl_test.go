package wave

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSmpl_Invalid(t *testing.T) {
	table := newMarkerTable()
	_, err := loadSmpl(make([]byte, 10), table)
	require.ErrorIs(t, err, ErrSmplInvalid)

	// Declares one loop but the payload doesn't hold it.
	payload := make([]byte, 36)
	writeUint32(payload, 28, 1)
	_, err = loadSmpl(payload, table)
	require.ErrorIs(t, err, ErrSmplInvalid)
}

func TestLoadSmpl_UnmatchedLoopsSharingIDStayDistinct(t *testing.T) {
	// Two smpl loops with the same id and no existing cue marker to merge
	// into must become two separate markers, not one: a fresh marker
	// allocated for an unmatched loop must not be findable by a later
	// loop's id-based match.
	table := newMarkerTable()

	payload := make([]byte, 36+24*2)
	writeUint32(payload, 28, 2)

	off0 := 36
	writeUint32(payload, off0, 5)     // id
	writeUint32(payload, off0+8, 100) // start
	writeUint32(payload, off0+12, 199) // end

	off1 := 36 + 24
	writeUint32(payload, off1, 5)     // same id
	writeUint32(payload, off1+8, 300) // start
	writeUint32(payload, off1+12, 399) // end

	_, err := loadSmpl(payload, table)
	require.NoError(t, err)

	markers := table.slice()
	require.Len(t, markers, 2)
	require.Equal(t, uint32(100), markers[0].Position)
	require.Equal(t, uint32(100), markers[0].Length)
	require.Equal(t, uint32(300), markers[1].Position)
	require.Equal(t, uint32(100), markers[1].Length)
	for _, m := range markers {
		require.Equal(t, uint32(0), m.ID)
	}
}
