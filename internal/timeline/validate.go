package timeline

// Violations holds field-keyed validation messages for a candidate slot.
// Messages under Time concern the bounds, under Value the instruction.
// All applicable violations are reported, not just the first.
type Violations struct {
	Time  []string `json:"time,omitempty"`
	Value []string `json:"value,omitempty"`
}

// OK reports whether no violation was recorded.
func (v Violations) OK() bool { return len(v.Time) == 0 && len(v.Value) == 0 }

// Validation messages surfaced to the editor form.
const (
	MsgStartBeforeEnd = "start time must be before end time"
	MsgMinDuration    = "a slot must last at least 30 minutes"
	MsgInvalidValue   = `invalid value: temperature 0-30 or "on"/"off"`
	MsgMixedTypes     = "all slots in a room must share the same value type"
)

// ValidateSlot checks a candidate (start, end, raw value) against the room's
// other slots. editIndex is the position of the slot being edited in
// existing, or NoEdit when creating.
//
// Overlap with siblings is deliberately not a violation here: entry is
// permissive and Resolve corrects conflicts afterwards.
func ValidateSlot(start, end int, raw string, existing []Slot, editIndex int) Violations {
	var out Violations

	// With start >= end no other time-based check is meaningful.
	if start >= end {
		out.Time = append(out.Time, MsgStartBeforeEnd)
	} else if end-start < MinSlotMinutes {
		out.Time = append(out.Time, MsgMinDuration)
	}

	val := Classify(raw)
	wellFormed := val.Kind() != KindInvalid
	if val.Kind() == KindTemperature && (val.Setpoint() < MinSetpointC || val.Setpoint() > MaxSetpointC) {
		wellFormed = false
	}
	if !wellFormed {
		out.Value = append(out.Value, MsgInvalidValue)
		return out
	}

	for i, other := range existing {
		if i == editIndex || other.Value.Kind() == KindInvalid {
			continue
		}
		if other.Value.Kind() != val.Kind() {
			out.Value = append(out.Value, MsgMixedTypes)
			break
		}
	}

	return out
}
