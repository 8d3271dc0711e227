package wave

import (
	"errors"
	"fmt"
)

// ConflictError is returned by Mount when reconciliation finds both
// smpl-only and cue-only loops and no preference flag was given to break the
// tie. Unlike every other fatal load error, the marker table is not
// discarded: Markers holds it so a caller can print a diagnostic breakdown
// of the conflicting regions.
type ConflictError struct {
	Markers []Marker
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("wave: %d marker(s) have conflicting smpl/cue loop data", len(e.Markers))
}

var ErrMarkerRange = errors.New("wave: marker position/length exceeds data frame count")

// reconcile runs the single pass described by the reconciliation component:
// drop orphans, range-check survivors, then resolve or fail on smpl/cue loop
// disagreements.
func reconcile(t *markerTable, dataFrames uint32, opts MountOptions) (Warnings, error) {
	t.drop(func(m Marker) bool {
		return m.InCue || m.InSmpl
	})

	for _, m := range t.slice() {
		if m.Position >= dataFrames {
			return 0, ErrMarkerRange
		}
		if m.Length > 0 && m.Position+m.Length > dataFrames {
			return 0, ErrMarkerRange
		}
	}

	smplOnly := 0
	cueOnly := 0
	for _, m := range t.slice() {
		if m.InSmpl && !m.InCue && m.Length > 0 {
			smplOnly++
		}
		if m.InCue && !m.InSmpl && m.Length > 0 {
			cueOnly++
		}
	}

	if smplOnly == 0 || cueOnly == 0 {
		return 0, nil
	}

	switch {
	case opts&MountPreferCueLoops != 0:
		t.drop(func(m Marker) bool {
			return !(m.InSmpl && !m.InCue && m.Length > 0)
		})
		return WarnSmplCueLoopConflictsResolved, nil

	case opts&MountPreferSmplLoops != 0:
		t.drop(func(m Marker) bool {
			return !(m.InCue && !m.InSmpl && m.Length > 0)
		})
		return WarnSmplCueLoopConflictsResolved, nil

	default:
		markers := make([]Marker, t.count)
		copy(markers, t.slice())
		return 0, &ConflictError{Markers: markers}
	}
}
