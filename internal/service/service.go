package service

import (
	"context"
	"time"

	"heatplan/internal/models"
	"heatplan/internal/repository"
)

// Authorization provides user authentication and token management
type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(token string) (int, error)
}

// Rooms exposes the configured rooms
type Rooms interface {
	List(ctx context.Context) ([]models.Room, error)
}

// Schedule reads and persists day plans for all rooms
type Schedule interface {
	DailyPlan(ctx context.Context, date string) (models.DayPlan, error)
	SavePlans(ctx context.Context, plans []RoomDayPlanInput) (SaveSummary, error)
}

// Calendar builds the month overview grid
type Calendar interface {
	Month(ctx context.Context, year, month int) (models.HeatingCalendar, error)
}

// Duplication copies an existing day of plans onto future dates
type Duplication interface {
	Duplicate(ctx context.Context, params DuplicationParams) (int, error)
}

// Editor manages interactive editing sessions with undo support
type Editor interface {
	Open(ctx context.Context, date string) (models.DayPlan, error)
	ApplySlot(ctx context.Context, edit SlotEdit) (models.DayPlan, error)
	Undo(ctx context.Context, date string) (models.DayPlan, error)
	Save(ctx context.Context, date string) (SaveSummary, error)
	Discard(ctx context.Context, date string) error
}

// EventLog queries the plan history log
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.PlanEvent, error)
}

// Synchronizer pushes the currently active slot of every room to its heater
type Synchronizer interface {
	Run(ctx context.Context, tick time.Duration)
}

// RoomDayPlanInput is one room's slot list for one date as submitted by a client
type RoomDayPlanInput struct {
	RoomID int64         `json:"room_id"`
	Date   string        `json:"date"`
	Slots  []models.Slot `json:"slots"`
}

// SaveSummary reports how many day plans a save touched
type SaveSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// DuplicationParams describes a duplication request
type DuplicationParams struct {
	Type        string   `json:"type"`
	SourceDate  string   `json:"source_date"`
	RepeatSince string   `json:"repeat_since"`
	RepeatUntil string   `json:"repeat_until"`
	RoomIDs     []int64  `json:"room_ids"`
	Weekdays    []string `json:"weekdays"`
}

// SlotEdit is a single slot change applied inside an editing session
type SlotEdit struct {
	Date      string `json:"date"`
	RoomID    int64  `json:"room_id"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Value     string `json:"value"`
	EditIndex int    `json:"edit_index"`
}

// LogFilter narrows an event log query
type LogFilter struct {
	From time.Time
	To   time.Time
	Type string
}

// AuthConfig carries the token signing material
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// Config holds runtime settings for the service layer
type Config struct {
	Auth AuthConfig
}

// Service bundles all business logic behind one set of interfaces
type Service struct {
	Rooms
	Schedule
	Calendar
	Duplication
	Editor
	EventLog
	Synchronizer
	Authorization
}

func NewService(repos *repository.Repository, cfg Config) *Service {
	sched := NewScheduleService(repos.Rooms, repos.Patterns, repos.Plans, repos.Events)
	return &Service{
		Rooms:         NewRoomService(repos.Rooms),
		Schedule:      sched,
		Calendar:      NewCalendarService(repos.Plans),
		Duplication:   NewDuplicationService(repos.Rooms, repos.Patterns, repos.Plans, repos.Events),
		Editor:        NewEditorService(sched),
		EventLog:      NewEventLogService(repos.Events),
		Synchronizer:  NewSyncService(repos.Rooms, repos.Patterns, repos.Plans, repos.Events),
		Authorization: NewAuthService(repos.Auth, cfg.Auth),
	}
}
