// Package nav computes which sidebar section is highlighted for a
// given scroll position. The section boundaries are injected rather
// than measured from live layout, so the logic is a pure function the
// console can call with whatever the DOM reports.
package nav

// SectionBoundary is one sidebar section and the offset at which its
// content starts.
type SectionBoundary struct {
	ID  string
	Top int
}

// ActiveSection returns the id of the last section whose top is at or
// above scrollOffset+activationMargin, i.e. the section the viewport is
// currently inside. Boundaries must be given in document order.
// Returns the first section when scrolled above everything, and ""
// when there are no sections.
func ActiveSection(scrollOffset, activationMargin int, boundaries []SectionBoundary) string {
	if len(boundaries) == 0 {
		return ""
	}

	pos := scrollOffset + activationMargin
	active := boundaries[0].ID
	for _, b := range boundaries {
		if b.Top <= pos {
			active = b.ID
		} else {
			break
		}
	}
	return active
}
