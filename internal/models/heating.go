package models

import (
	"fmt"

	"heatplan/internal/timeline"
)

// Heating control modes for a room.
const (
	ControlThermostat = "thermostat" // driven by temperature setpoint plans
	ControlOnOff      = "on_off"     // driven by on/off plans
)

// Requested heating states written by the synchronizer.
const (
	HeatingOn      = "on"
	HeatingOff     = "off"
	HeatingUnknown = "unknown"
)

// Room is a heated room of the home.
type Room struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	ControlMode    string   `json:"heating_control_mode"` // thermostat | on_off
	SetpointC      *float64 `json:"temperature_setpoint,omitempty"`
	RequestedState string   `json:"requested_heating_state"` // on | off | unknown
}

// Slot is the persisted/wire form of a heating slot: clock-string bounds plus
// an explicit type tag and its typed value, instead of the editor's untyped
// string.
type Slot struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
	Type  string `json:"type"`  // temp | onoff
	Value any    `json:"value"` // number, or "on"/"off"
}

// Timeline converts the tagged wire form into an engine slot.
func (s Slot) Timeline() (timeline.Slot, error) {
	v, err := timeline.FromTagged(s.Type, s.Value)
	if err != nil {
		return timeline.Slot{}, fmt.Errorf("slot %s-%s: %w", s.Start, s.End, err)
	}
	return timeline.Slot{
		Start: timeline.ToMinutes(s.Start),
		End:   timeline.ToMinutes(s.End),
		Value: v,
	}, nil
}

// SlotFromTimeline converts an engine slot back to the tagged wire form.
func SlotFromTimeline(t timeline.Slot) Slot {
	return Slot{
		Start: timeline.ToClock(t.Start),
		End:   timeline.ToClock(t.End),
		Type:  t.Value.Tag(),
		Value: t.Value.Raw(),
	}
}

// TimelineSlots converts a whole slot list, failing on the first bad slot.
func TimelineSlots(slots []Slot) ([]timeline.Slot, error) {
	out := make([]timeline.Slot, 0, len(slots))
	for _, s := range slots {
		ts, err := s.Timeline()
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, nil
}

// SlotsFromTimeline converts an engine slot list to the wire form. The result
// is never nil so it serializes as [] rather than null.
func SlotsFromTimeline(ts []timeline.Slot) []Slot {
	out := make([]Slot, 0, len(ts))
	for _, t := range ts {
		out = append(out, SlotFromTimeline(t))
	}
	return out
}

// RoomPlan is one room's schedule within a day plan.
type RoomPlan struct {
	RoomID int64  `json:"room_id"`
	Name   string `json:"name"`
	Slots  []Slot `json:"slots"`
}

// DayPlan is the full heating plan of one calendar day across all rooms.
type DayPlan struct {
	Date  string     `json:"date"` // "YYYY-MM-DD"
	Rooms []RoomPlan `json:"rooms"`
}
