package timeline

import "testing"

func tempSlot(start, end int, n float64) Slot {
	return Slot{Start: start, End: end, Value: Temperature(n)}
}

func onOffSlot(start, end int, state string) Slot {
	return Slot{Start: start, End: end, Value: OnOff(state)}
}

func TestValidateSlot_Valid(t *testing.T) {
	v := ValidateSlot(420, 480, "21", nil, NoEdit)
	if !v.OK() {
		t.Fatalf("expected no violations, got %+v", v)
	}
}

func TestValidateSlot_OrderingSuppressesDurationCheck(t *testing.T) {
	v := ValidateSlot(480, 420, "21", nil, NoEdit)
	if len(v.Time) != 1 || v.Time[0] != MsgStartBeforeEnd {
		t.Fatalf("expected only the ordering violation, got %+v", v.Time)
	}
}

func TestValidateSlot_MinimumDuration(t *testing.T) {
	v := ValidateSlot(420, 449, "21", nil, NoEdit)
	if len(v.Time) != 1 || v.Time[0] != MsgMinDuration {
		t.Fatalf("expected duration violation, got %+v", v.Time)
	}
	// Exactly 30 minutes is fine.
	if v := ValidateSlot(420, 450, "21", nil, NoEdit); !v.OK() {
		t.Fatalf("30-minute slot rejected: %+v", v)
	}
}

func TestValidateSlot_ValueWellFormedness(t *testing.T) {
	for _, raw := range []string{"", "warm", "-1", "30.5", "31"} {
		v := ValidateSlot(420, 480, raw, nil, NoEdit)
		if len(v.Value) != 1 || v.Value[0] != MsgInvalidValue {
			t.Fatalf("raw %q: expected invalid-value violation, got %+v", raw, v.Value)
		}
	}
	for _, raw := range []string{"0", "30", "on", "OFF"} {
		if v := ValidateSlot(420, 480, raw, nil, NoEdit); !v.OK() {
			t.Fatalf("raw %q: unexpected violations %+v", raw, v)
		}
	}
}

func TestValidateSlot_RejectsMixedTypes(t *testing.T) {
	existing := []Slot{tempSlot(60, 120, 20)}
	v := ValidateSlot(420, 480, "on", existing, NoEdit)
	if len(v.Value) != 1 || v.Value[0] != MsgMixedTypes {
		t.Fatalf("expected mixed-type violation, got %+v", v.Value)
	}

	existing = []Slot{onOffSlot(60, 120, "on")}
	v = ValidateSlot(420, 480, "20", existing, NoEdit)
	if len(v.Value) != 1 || v.Value[0] != MsgMixedTypes {
		t.Fatalf("expected mixed-type violation, got %+v", v.Value)
	}
}

func TestValidateSlot_EditedSlotExcludedFromHomogeneity(t *testing.T) {
	// The only other slot is the one being edited: any valid type is fine.
	existing := []Slot{tempSlot(60, 120, 20)}
	if v := ValidateSlot(60, 120, "on", existing, 0); !v.OK() {
		t.Fatalf("edited slot must not be compared against itself: %+v", v)
	}
}

func TestValidateSlot_IndependentViolations(t *testing.T) {
	// Both a time and a value violation must be surfaced together.
	existing := []Slot{tempSlot(60, 120, 20)}
	v := ValidateSlot(480, 420, "on", existing, NoEdit)
	if len(v.Time) == 0 || len(v.Value) == 0 {
		t.Fatalf("expected time and value violations, got %+v", v)
	}
}

func TestValidateSlot_OverlapIsNotRejected(t *testing.T) {
	// Overlap resolution belongs to Resolve, not the validator.
	existing := []Slot{tempSlot(420, 600, 20)}
	if v := ValidateSlot(430, 590, "22", existing, NoEdit); !v.OK() {
		t.Fatalf("overlapping candidate must pass validation: %+v", v)
	}
}
