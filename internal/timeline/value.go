package timeline

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the two value domains a slot instruction can belong to.
type Kind int

const (
	KindInvalid Kind = iota
	KindTemperature
	KindOnOff
)

// Persisted type tags. Slots are stored with an explicit tag instead of the
// editor's untyped string.
const (
	TagTemperature = "temp"
	TagOnOff       = "onoff"
)

// Binary state literals.
const (
	StateOn  = "on"
	StateOff = "off"
)

// Accepted setpoint range in °C.
const (
	MinSetpointC = 0.0
	MaxSetpointC = 30.0
)

// Value is a classified heating instruction: either a temperature setpoint or
// a binary on/off state. The zero Value is invalid. All consumers (validator,
// resolver, label rendering, persistence) agree on the single classification
// done by Classify.
type Value struct {
	kind  Kind
	temp  float64
	state string
}

// Temperature builds a setpoint value. Range is checked by the validator,
// not here.
func Temperature(n float64) Value {
	return Value{kind: KindTemperature, temp: n}
}

// OnOff builds a binary state value. Anything but "on"/"off" (any case)
// yields an invalid Value.
func OnOff(state string) Value {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case StateOn:
		return Value{kind: KindOnOff, state: StateOn}
	case StateOff:
		return Value{kind: KindOnOff, state: StateOff}
	}
	return Value{}
}

// Classify parses the editor's raw string. "on"/"off" matches
// case-insensitively, anything else is attempted as a number; a string that
// is neither yields an invalid Value.
func Classify(raw string) Value {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case StateOn, StateOff:
		return OnOff(s)
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return Temperature(n)
	}
	return Value{}
}

// ClassifyAny accepts the loosely typed wire form, where a value arrives as
// either a string or a JSON number.
func ClassifyAny(raw any) Value {
	switch v := raw.(type) {
	case string:
		return Classify(v)
	case float64:
		return Temperature(v)
	case int:
		return Temperature(float64(v))
	}
	return Value{}
}

// Kind returns the value's domain.
func (v Value) Kind() Kind { return v.kind }

// Setpoint returns the temperature of a KindTemperature value.
func (v Value) Setpoint() float64 { return v.temp }

// State returns the normalized "on"/"off" literal of a KindOnOff value.
func (v Value) State() string { return v.state }

// Label renders the display label shown on a slot bar: "ON"/"OFF" for binary
// states, "<n>°" for temperatures.
func (v Value) Label() string {
	switch v.kind {
	case KindOnOff:
		return strings.ToUpper(v.state)
	case KindTemperature:
		return strconv.FormatFloat(v.temp, 'f', -1, 64) + "°"
	}
	return ""
}

// SameType reports whether both values classify to the same kind. Invalid
// never matches anything, including itself.
func (v Value) SameType(o Value) bool {
	if v.kind == KindInvalid || o.kind == KindInvalid {
		return false
	}
	return v.kind == o.kind
}

// Tag returns the persisted type tag, empty for an invalid value.
func (v Value) Tag() string {
	switch v.kind {
	case KindTemperature:
		return TagTemperature
	case KindOnOff:
		return TagOnOff
	}
	return ""
}

// Raw returns the persisted representation: a float64 for temperatures, the
// "on"/"off" literal for binary states, nil for an invalid value.
func (v Value) Raw() any {
	switch v.kind {
	case KindTemperature:
		return v.temp
	case KindOnOff:
		return v.state
	}
	return nil
}

// FromTagged rebuilds a Value from its persisted tag and raw representation,
// as read back from storage or a save payload.
func FromTagged(tag string, raw any) (Value, error) {
	switch tag {
	case TagTemperature:
		switch n := raw.(type) {
		case float64:
			return Temperature(n), nil
		case int:
			return Temperature(float64(n)), nil
		}
		return Value{}, fmt.Errorf("temp slot value %v is not numeric", raw)
	case TagOnOff:
		s, ok := raw.(string)
		if ok {
			if v := OnOff(s); v.Kind() == KindOnOff {
				return v, nil
			}
		}
		return Value{}, fmt.Errorf("onoff slot value %v is not %q or %q", raw, StateOn, StateOff)
	}
	return Value{}, fmt.Errorf("unknown slot type %q", tag)
}
