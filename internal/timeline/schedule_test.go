package timeline

import (
	"errors"
	"reflect"
	"testing"
)

func TestNew_EmptyScheduleHasNoKind(t *testing.T) {
	s, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 0 || s.Kind() != KindInvalid {
		t.Fatalf("empty schedule: len=%d kind=%v", s.Len(), s.Kind())
	}
}

func TestNew_SortsCopy(t *testing.T) {
	input := []Slot{tempSlot(480, 600, 21), tempSlot(60, 120, 20)}
	s, err := New(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := s.Slots()
	want := []Slot{tempSlot(60, 120, 20), tempSlot(480, 600, 21)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %+v, want %+v", got, want)
	}
	// The caller's slice must not be reordered.
	if input[0].Start != 480 {
		t.Fatalf("input slice was mutated")
	}
	if s.Kind() != KindTemperature {
		t.Fatalf("kind = %v, want temperature", s.Kind())
	}
}

func TestNew_RejectsBrokenInvariants(t *testing.T) {
	cases := []struct {
		name  string
		slots []Slot
		want  error
	}{
		{"reversed bounds", []Slot{tempSlot(480, 420, 20)}, ErrSlotBounds},
		{"too short", []Slot{tempSlot(420, 440, 20)}, ErrSlotTooShort},
		{"out of day", []Slot{tempSlot(1400, 1440, 20)}, ErrOutOfDay},
		{"negative start", []Slot{tempSlot(-10, 60, 20)}, ErrOutOfDay},
		{"invalid value", []Slot{{Start: 420, End: 480}}, ErrInvalidValue},
		{"mixed kinds", []Slot{tempSlot(60, 120, 20), onOffSlot(480, 600, "on")}, ErrMixedKinds},
		{"overlapping", []Slot{tempSlot(60, 200, 20), tempSlot(150, 300, 21)}, ErrSlotsTouch},
		{"touching minute", []Slot{tempSlot(60, 120, 20), tempSlot(120, 200, 21)}, ErrSlotsTouch},
	}
	for _, c := range cases {
		if _, err := New(c.slots); !errors.Is(err, c.want) {
			t.Fatalf("%s: err = %v, want %v", c.name, err, c.want)
		}
	}
}

func TestNew_OneMinuteGapIsLegal(t *testing.T) {
	// 06:00-06:59 then 07:00-08:00: exactly the spacing the resolver emits.
	if _, err := New([]Slot{tempSlot(360, 419, 20), tempSlot(420, 480, 22)}); err != nil {
		t.Fatalf("1-minute separation rejected: %v", err)
	}
}

func TestActiveAt(t *testing.T) {
	s, err := New([]Slot{tempSlot(60, 120, 20), tempSlot(480, 600, 21)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if slot, ok := s.ActiveAt(90); !ok || slot.Start != 60 {
		t.Fatalf("ActiveAt(90) = %+v, %v", slot, ok)
	}
	// Bounds are inclusive.
	if _, ok := s.ActiveAt(600); !ok {
		t.Fatalf("end minute must be covered")
	}
	if _, ok := s.ActiveAt(60); !ok {
		t.Fatalf("start minute must be covered")
	}
	if _, ok := s.ActiveAt(300); ok {
		t.Fatalf("gap minute must not be covered")
	}
	if _, ok := s.ActiveAt(1400); ok {
		t.Fatalf("minute after last slot must not be covered")
	}
}
