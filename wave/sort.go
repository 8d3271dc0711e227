package wave

// SortMarkers reorders ms in place into canonical serialisation order: all
// loops first, then cue points; within each group, ascending by Position,
// and within equal positions, descending by Length (the longer loop comes
// first). After sorting, every marker's ID is reassigned to its 1-based
// position in the result — the serialiser depends on this numbering to
// derive matching ltxt/labl/note IDs.
//
// Calling SortMarkers twice in a row is a no-op on the second call: the
// ordering it produces is already stable under the same comparison.
func SortMarkers(ms []Marker) {
	less := func(a, b Marker) bool {
		aLoop, bLoop := a.IsLoop(), b.IsLoop()
		if aLoop != bLoop {
			return aLoop // loops sort before cue points
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.Length > b.Length // longer loop first
	}

	// Selection sort: O(n^2), but n is bounded by MaxMarkers and the
	// algorithm's simplicity keeps the comparator's tie-break explicit.
	for i := 0; i < len(ms); i++ {
		min := i
		for j := i + 1; j < len(ms); j++ {
			if less(ms[j], ms[min]) {
				min = j
			}
		}
		ms[i], ms[min] = ms[min], ms[i]
	}

	for i := range ms {
		ms[i].ID = uint32(i + 1)
	}
}
