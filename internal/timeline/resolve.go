package timeline

import "sort"

// Resolve computes a room's new slot list after inserting or editing
// candidate. existing must already satisfy the room invariants (except for
// the slot being replaced) and candidate must have passed ValidateSlot;
// under those preconditions resolution always succeeds.
//
// Conflicting neighbours are removed, trimmed, or split rather than rejected.
// Every trim leaves a 1-minute buffer so no two slots overlap or touch, and a
// fragment shorter than MinSlotMinutes is dropped instead of kept. editIndex
// is the slot superseded by candidate (excluded from resolution), or NoEdit
// for an insert.
func Resolve(candidate Slot, existing []Slot, editIndex int) []Slot {
	resolved := resolveOthers(candidate, existing, editIndex)
	resolved = append(resolved, candidate)
	sort.Slice(resolved, func(i, j int) bool { return resolved[i].Start < resolved[j].Start })
	return resolved
}

// resolveOthers returns the surviving, possibly trimmed remainder of every
// slot other than the one being edited.
func resolveOthers(candidate Slot, existing []Slot, editIndex int) []Slot {
	// Split case first: a slot strictly containing the candidate is cut in
	// two. Given the invariants at most one such slot exists and no other
	// slot can then overlap the candidate.
	for i, s := range existing {
		if i == editIndex {
			continue
		}
		if s.Start < candidate.Start && candidate.End < s.End {
			return splitAround(candidate, existing, i, editIndex)
		}
	}

	out := make([]Slot, 0, len(existing))
	for i, s := range existing {
		if i == editIndex {
			continue
		}
		switch {
		case s.Start >= candidate.Start && s.End <= candidate.End:
			// Fully covered: removed.
		case s.Start < candidate.Start && candidate.Start < s.End && s.End <= candidate.End:
			trimmed := Slot{Start: s.Start, End: candidate.Start - 1, Value: s.Value}
			if trimmed.Duration() >= MinSlotMinutes {
				out = append(out, trimmed)
			}
		case candidate.Start <= s.Start && s.Start < candidate.End && candidate.End < s.End:
			trimmed := Slot{Start: candidate.End + 1, End: s.End, Value: s.Value}
			if trimmed.Duration() >= MinSlotMinutes {
				out = append(out, trimmed)
			}
		default:
			out = append(out, s)
		}
	}
	return out
}

// splitAround replaces existing[splitIndex] with up to two fragments around
// the candidate, each keeping the original value. A fragment below the
// minimum duration disappears; when both do, the slot is removed entirely.
func splitAround(candidate Slot, existing []Slot, splitIndex, editIndex int) []Slot {
	out := make([]Slot, 0, len(existing)+1)
	for i, s := range existing {
		if i == editIndex {
			continue
		}
		if i != splitIndex {
			out = append(out, s)
			continue
		}
		before := Slot{Start: s.Start, End: candidate.Start - 1, Value: s.Value}
		if before.Duration() >= MinSlotMinutes {
			out = append(out, before)
		}
		after := Slot{Start: candidate.End + 1, End: s.End, Value: s.Value}
		if after.Duration() >= MinSlotMinutes {
			out = append(out, after)
		}
	}
	return out
}
