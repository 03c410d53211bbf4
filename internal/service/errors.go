package service

import (
	"errors"
	"strings"

	"heatplan/internal/timeline"
)

var (
	ErrInvalidDate   = errors.New("date must be formatted as YYYY-MM-DD")
	ErrUnknownRoom   = errors.New("unknown room")
	ErrNoSession     = errors.New("no editing session open for this date")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrBadEditIndex  = errors.New("edit index out of range")
)

// ValidationError carries field-keyed slot violations back to the HTTP layer.
type ValidationError struct {
	Violations timeline.Violations
}

func (e *ValidationError) Error() string {
	var msgs []string
	msgs = append(msgs, e.Violations.Time...)
	msgs = append(msgs, e.Violations.Value...)
	return "invalid slot: " + strings.Join(msgs, "; ")
}

const dateLayout = "2006-01-02"
