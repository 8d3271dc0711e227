package wave

import (
	"github.com/kelindar/intmap"
)

// MaxMarkers is the maximum number of markers a mounted file may hold. It
// bounds the fixed-size marker table.
const MaxMarkers = 64

// Marker is a single positional annotation, reconciled from `cue `, `smpl`,
// and `LIST/adtl` content.
//
// ID is transient: it holds the cue-point ID used to merge matching `cue `
// and `smpl` entries while Mount runs, and is reassigned by SortMarkers to a
// 1-based output index once markers leave the merge phase. It carries no
// meaning to callers in between.
type Marker struct {
	ID       uint32
	Position uint32
	Length   uint32
	Name     string
	Desc     string

	InCue   bool
	InSmpl  bool
	HasLtxt bool
	HasName bool
	HasDesc bool
}

// IsLoop reports whether the marker describes a playback region rather than
// a single-instant cue point.
func (m Marker) IsLoop() bool {
	return m.Length > 0
}

// markerTable is the bounded, order-preserving collection of markers built
// up while loading cue/smpl/adtl chunks. Its backing array is fixed at
// MaxMarkers entries; the id index is allocated on construction and
// allocated afresh each time drop rebuilds it.
//
// index maps a cue ID to its slot for the cue and adtl loaders, which only
// ever need an exact-ID lookup and have no order dependency. The smpl
// loader's merge rule is explicitly order-sensitive (spec Open Question a)
// and therefore walks markers directly instead of consulting index.
type markerTable struct {
	markers [MaxMarkers]Marker
	count   int
	index   *intmap.Map
}

func newMarkerTable() *markerTable {
	return &markerTable{index: intmap.New(MaxMarkers, 0.95)}
}

// slice returns the live portion of the table.
func (t *markerTable) slice() []Marker {
	return t.markers[:t.count]
}

// byID returns the existing marker with the given ID, if any.
func (t *markerTable) byID(id uint32) (*Marker, bool) {
	idx, ok := t.index.Load(id)
	if !ok {
		return nil, false
	}
	return &t.markers[idx], true
}

// getOrAlloc returns the existing marker for 'id', or allocates a new one if
// none exists yet. It reports too-many-markers if the table is already full.
func (t *markerTable) getOrAlloc(id uint32) (*Marker, error) {
	if m, ok := t.byID(id); ok {
		return m, nil
	}
	if t.count >= MaxMarkers {
		return nil, ErrTooManyMarkers
	}
	idx := t.count
	t.markers[idx] = Marker{ID: id}
	t.index.Store(id, uint32(idx))
	t.count++
	return &t.markers[idx], nil
}

// append adds a brand-new marker (used by the smpl loader when no existing
// marker matches) and returns it. It reports too-many-markers if full.
func (t *markerTable) append(id uint32) (*Marker, error) {
	if t.count >= MaxMarkers {
		return nil, ErrTooManyMarkers
	}
	idx := t.count
	t.markers[idx] = Marker{ID: id}
	t.count++
	return &t.markers[idx], nil
}

// registerIndex records that marker slot idx now holds the given id, so
// later exact-ID lookups (byID) can find it. Callers that mutate a marker's
// ID in place (the smpl loader does not, but append does not auto-register)
// must call this explicitly.
func (t *markerTable) registerIndex(id uint32, idx int) {
	t.index.Store(id, uint32(idx))
}

// drop removes markers for which keep returns false, compacting the table in
// place and rebuilding the id index.
func (t *markerTable) drop(keep func(Marker) bool) {
	n := 0
	for i := 0; i < t.count; i++ {
		if keep(t.markers[i]) {
			t.markers[n] = t.markers[i]
			n++
		}
	}
	t.count = n

	t.index = intmap.New(MaxMarkers, 0.95)
	for i := 0; i < t.count; i++ {
		t.index.Store(t.markers[i].ID, uint32(i))
	}
}
