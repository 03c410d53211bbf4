package timeline

// MinSlotMinutes is the minimum duration of a slot.
const MinSlotMinutes = 30

// NoEdit marks a validator/resolver call that inserts a new slot rather than
// replacing an existing one.
const NoEdit = -1

// Slot is one contiguous interval of a room's day carrying a single heating
// instruction. Bounds are minutes since midnight, both ends inclusive.
type Slot struct {
	Start int
	End   int
	Value Value
}

// Duration returns the slot length in minutes.
func (s Slot) Duration() int { return s.End - s.Start }

// Contains reports whether minute t falls inside the slot.
func (s Slot) Contains(t int) bool { return s.Start <= t && t <= s.End }
