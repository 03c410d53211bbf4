package repository

import (
	"context"
	"database/sql"
	"time"

	"heatplan/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// RoomRepo manages the rooms table and the heating state the synchronizer
// writes back to it.
type RoomRepo interface {
	List(ctx context.Context) ([]models.Room, error)
	ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
	SetHeatingState(ctx context.Context, roomID int64, state string, setpointC *float64) error
}

// PatternRef identifies a stored, deduplicated heating pattern.
type PatternRef struct {
	ID   int64
	Hash string
}

// PatternRepo stores deduplicated slot patterns. Identical slot lists share
// one row, keyed by a content hash.
type PatternRepo interface {
	GetOrCreate(ctx context.Context, slots []models.Slot) (PatternRef, bool, error)
	SlotsByID(ctx context.Context, id int64) ([]models.Slot, error)
}

// UpsertResult reports what a plan upsert did.
type UpsertResult int

const (
	PlanUnchanged UpsertResult = iota
	PlanCreated
	PlanUpdated
)

// DateHash pairs a plan date with the hash of its pattern.
type DateHash struct {
	Date string
	Hash string
}

// PlanRepo links rooms to patterns per calendar day.
type PlanRepo interface {
	Upsert(ctx context.Context, roomID int64, date string, patternID int64) (UpsertResult, error)
	ListByDate(ctx context.Context, date string) (map[int64]int64, error)
	HashesByDateRange(ctx context.Context, from, to string) ([]DateHash, error)
}

// EventRepo is the append-only audit log.
type EventRepo interface {
	Append(ctx context.Context, e models.PlanEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.PlanEvent, error)
}

type Repository struct {
	Rooms    RoomRepo
	Patterns PatternRepo
	Plans    PlanRepo
	Events   EventRepo
	Auth     Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Rooms:    NewRoomSQLite(db),
		Patterns: NewPatternSQLite(db),
		Plans:    NewPlanSQLite(db),
		Events:   NewEventSQLite(db),
		Auth:     NewUserRepository(db),
	}
}
