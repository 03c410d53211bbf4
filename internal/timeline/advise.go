package timeline

import "sort"

// SuggestBounds proposes start/end bounds for a new slot seeded by a click on
// empty timeline space at minute t. The proposal stretches to the nearest
// neighbouring slots, with the same 1-minute buffer Resolve uses, or to the
// day boundary on a side with no neighbour. With no slots at all the proposal
// therefore spans the whole day.
//
// A slot containing t is not expected: clicks on existing slots are routed to
// edit, not create.
func SuggestBounds(t int, slots []Slot) (start, end int) {
	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	start, end = 0, EndOfDay
	for _, s := range sorted {
		if s.End < t {
			start = s.End + 1
		} else if s.Start > t {
			end = s.Start - 1
			break
		}
	}
	return start, end
}
