package models

import "time"

// Audit event types.
const (
	EventPlanSaved      = "PLAN_SAVED"
	EventPlanDuplicated = "PLAN_DUPLICATED"
	EventHeatingSync    = "HEATING_SYNC"
)

// PlanEvent is a single audit log entry.
type PlanEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // PLAN_SAVED | PLAN_DUPLICATED | HEATING_SYNC
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
