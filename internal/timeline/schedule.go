package timeline

import (
	"errors"
	"fmt"
	"sort"
)

// Structural errors reported by New.
var (
	ErrOutOfDay     = errors.New("slot bounds outside the day")
	ErrSlotBounds   = errors.New("slot start must be before end")
	ErrSlotTooShort = errors.New("slot shorter than the 30-minute minimum")
	ErrInvalidValue = errors.New("slot carries an invalid value")
	ErrMixedKinds   = errors.New("slots mix temperature and on/off values")
	ErrSlotsTouch   = errors.New("slots overlap or touch")
)

// Schedule is a room's validated day schedule: slots sorted by start, at
// least one free minute between consecutive slots, every slot at least
// MinSlotMinutes long, all values of the same kind. Construct through New so
// illegal states are unrepresentable afterwards.
type Schedule struct {
	slots []Slot
	kind  Kind
}

// New builds a Schedule from slots, sorting a copy and rejecting any input
// that breaks the room invariants. An empty slot list is a valid schedule
// with no fixed kind yet.
func New(slots []Slot) (Schedule, error) {
	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	kind := KindInvalid
	for i, s := range sorted {
		if s.Start < 0 || s.End > EndOfDay {
			return Schedule{}, slotErr(s, ErrOutOfDay)
		}
		if s.Start >= s.End {
			return Schedule{}, slotErr(s, ErrSlotBounds)
		}
		if s.Duration() < MinSlotMinutes {
			return Schedule{}, slotErr(s, ErrSlotTooShort)
		}
		switch {
		case s.Value.Kind() == KindInvalid:
			return Schedule{}, slotErr(s, ErrInvalidValue)
		case kind == KindInvalid:
			kind = s.Value.Kind()
		case s.Value.Kind() != kind:
			return Schedule{}, slotErr(s, ErrMixedKinds)
		}
		// Adjacency counts as conflict: the next slot may start no earlier
		// than one minute after the previous one ends.
		if i > 0 && s.Start <= sorted[i-1].End {
			return Schedule{}, slotErr(s, ErrSlotsTouch)
		}
	}

	return Schedule{slots: sorted, kind: kind}, nil
}

func slotErr(s Slot, err error) error {
	return fmt.Errorf("slot %s-%s: %w", ToClock(s.Start), ToClock(s.End), err)
}

// Slots returns a copy of the schedule's slots, sorted by start.
func (s Schedule) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Len returns the number of slots.
func (s Schedule) Len() int { return len(s.slots) }

// Kind returns the value kind shared by all slots, or KindInvalid for an
// empty schedule whose kind is not fixed yet.
func (s Schedule) Kind() Kind { return s.kind }

// ActiveAt returns the slot covering minute t, if any.
func (s Schedule) ActiveAt(t int) (Slot, bool) {
	for _, slot := range s.slots {
		if slot.Contains(t) {
			return slot, true
		}
		if slot.Start > t {
			break
		}
	}
	return Slot{}, false
}
