package wave

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkerTable_GetOrAllocReusesByID(t *testing.T) {
	table := newMarkerTable()

	m1, err := table.getOrAlloc(5)
	require.NoError(t, err)
	m1.Position = 10

	m2, err := table.getOrAlloc(5)
	require.NoError(t, err)
	require.Equal(t, uint32(10), m2.Position)
	require.Equal(t, 1, table.count)
}

func TestMarkerTable_TooManyMarkers(t *testing.T) {
	table := newMarkerTable()
	for i := 0; i < MaxMarkers; i++ {
		_, err := table.getOrAlloc(uint32(i))
		require.NoError(t, err)
	}
	_, err := table.getOrAlloc(uint32(MaxMarkers))
	require.ErrorIs(t, err, ErrTooManyMarkers)
}

func TestMarkerTable_Drop(t *testing.T) {
	table := newMarkerTable()
	m0, _ := table.getOrAlloc(1)
	m0.InCue = true
	m1, _ := table.getOrAlloc(2)
	m1.InSmpl = false
	m1.InCue = false // orphan

	table.drop(func(m Marker) bool { return m.InCue || m.InSmpl })
	require.Len(t, table.slice(), 1)
	require.Equal(t, uint32(1), table.slice()[0].ID)

	_, ok := table.byID(2)
	require.False(t, ok)
	m, ok := table.byID(1)
	require.True(t, ok)
	require.True(t, m.InCue)
}

func TestMarker_IsLoop(t *testing.T) {
	require.False(t, Marker{Length: 0}.IsLoop())
	require.True(t, Marker{Length: 1}.IsLoop())
}
