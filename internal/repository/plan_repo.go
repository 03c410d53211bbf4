package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type PlanSQLite struct {
	db *sql.DB
}

func NewPlanSQLite(db *sql.DB) *PlanSQLite { return &PlanSQLite{db: db} }

var _ PlanRepo = (*PlanSQLite)(nil)

const (
	selectPlanPatternSQL = `SELECT pattern_id FROM room_day_plans WHERE room_id = ? AND date = ?`

	insertPlanSQL = `
		INSERT INTO room_day_plans (room_id, date, pattern_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	updatePlanSQL = `
		UPDATE room_day_plans SET pattern_id = ?, updated_at = ? WHERE room_id = ? AND date = ?
	`

	selectPlansByDateSQL = `SELECT room_id, pattern_id FROM room_day_plans WHERE date = ?`

	selectHashesByRangeSQL = `
		SELECT p.date, hp.slots_hash
		FROM room_day_plans p
		JOIN heating_patterns hp ON hp.id = p.pattern_id
		WHERE p.date >= ? AND p.date <= ?
	`
)

// Upsert stores the pattern for a room/day, overriding an existing plan.
// Returns whether a plan was created, updated, or already identical.
func (r *PlanSQLite) Upsert(ctx context.Context, roomID int64, date string, patternID int64) (UpsertResult, error) {
	now := time.Now().UTC()

	var current int64
	err := r.db.QueryRowContext(ctx, selectPlanPatternSQL, roomID, date).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := r.db.ExecContext(ctx, insertPlanSQL, roomID, date, patternID, now, now); err != nil {
			return PlanUnchanged, fmt.Errorf("insert plan room=%d date=%s: %w", roomID, date, err)
		}
		return PlanCreated, nil
	case err != nil:
		return PlanUnchanged, fmt.Errorf("select plan room=%d date=%s: %w", roomID, date, err)
	case current == patternID:
		return PlanUnchanged, nil
	}

	if _, err := r.db.ExecContext(ctx, updatePlanSQL, patternID, now, roomID, date); err != nil {
		return PlanUnchanged, fmt.Errorf("update plan room=%d date=%s: %w", roomID, date, err)
	}
	return PlanUpdated, nil
}

// ListByDate returns roomID -> patternID for every plan stored on the date.
func (r *PlanSQLite) ListByDate(ctx context.Context, date string) (map[int64]int64, error) {
	rows, err := r.db.QueryContext(ctx, selectPlansByDateSQL, date)
	if err != nil {
		return nil, fmt.Errorf("select plans for %s: %w", date, err)
	}
	defer rows.Close()

	out := make(map[int64]int64, 8)
	for rows.Next() {
		var roomID, patternID int64
		if err := rows.Scan(&roomID, &patternID); err != nil {
			return nil, err
		}
		out[roomID] = patternID
	}
	return out, rows.Err()
}

// HashesByDateRange returns every (date, pattern hash) pair in [from, to],
// one entry per stored room plan.
func (r *PlanSQLite) HashesByDateRange(ctx context.Context, from, to string) ([]DateHash, error) {
	rows, err := r.db.QueryContext(ctx, selectHashesByRangeSQL, from, to)
	if err != nil {
		return nil, fmt.Errorf("select plan hashes %s..%s: %w", from, to, err)
	}
	defer rows.Close()

	out := make([]DateHash, 0, 64)
	for rows.Next() {
		var dh DateHash
		if err := rows.Scan(&dh.Date, &dh.Hash); err != nil {
			return nil, err
		}
		out = append(out, dh)
	}
	return out, rows.Err()
}
