package repository

import (
	"context"
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"heatplan/internal/models"
)

type PatternSQLite struct {
	db *sql.DB
}

func NewPatternSQLite(db *sql.DB) *PatternSQLite { return &PatternSQLite{db: db} }

var _ PatternRepo = (*PatternSQLite)(nil)

const (
	selectPatternByHashSQL = `SELECT id FROM heating_patterns WHERE slots_hash = ?`
	insertPatternSQL       = `INSERT INTO heating_patterns (slots, slots_hash, created_at) VALUES (?, ?, ?)`
	selectPatternSlotsSQL  = `SELECT slots FROM heating_patterns WHERE id = ?`
)

// hashSlot fixes the key order of the canonical serialization used for the
// content hash (keys sorted alphabetically, like the original stable dump).
type hashSlot struct {
	End   string `json:"end"`
	Start string `json:"start"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// PatternHash computes the deduplication hash of a slot list. Callers must
// pass slots already sorted by start so equal patterns hash equally.
func PatternHash(slots []models.Slot) (string, error) {
	canonical := make([]hashSlot, 0, len(slots))
	for _, s := range slots {
		canonical = append(canonical, hashSlot{End: s.End, Start: s.Start, Type: s.Type, Value: s.Value})
	}
	b, err := json.Marshal(canonical)
	if err != nil {
		return "", fmt.Errorf("marshal slots for hashing: %w", err)
	}
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:]), nil
}

// GetOrCreate returns the pattern row matching the slots, creating it when no
// identical pattern is stored yet. The second return reports creation.
func (r *PatternSQLite) GetOrCreate(ctx context.Context, slots []models.Slot) (PatternRef, bool, error) {
	hash, err := PatternHash(slots)
	if err != nil {
		return PatternRef{}, false, err
	}

	var id int64
	err = r.db.QueryRowContext(ctx, selectPatternByHashSQL, hash).Scan(&id)
	switch {
	case err == nil:
		return PatternRef{ID: id, Hash: hash}, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return PatternRef{}, false, fmt.Errorf("select pattern by hash: %w", err)
	}

	payload, err := json.Marshal(slots)
	if err != nil {
		return PatternRef{}, false, fmt.Errorf("marshal slots: %w", err)
	}
	res, err := r.db.ExecContext(ctx, insertPatternSQL, string(payload), hash, time.Now().UTC())
	if err != nil {
		return PatternRef{}, false, fmt.Errorf("insert pattern: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return PatternRef{}, false, fmt.Errorf("pattern insert id: %w", err)
	}
	return PatternRef{ID: id, Hash: hash}, true, nil
}

// SlotsByID loads and decodes a stored pattern's slot list.
func (r *PatternSQLite) SlotsByID(ctx context.Context, id int64) ([]models.Slot, error) {
	var payload string
	if err := r.db.QueryRowContext(ctx, selectPatternSlotsSQL, id).Scan(&payload); err != nil {
		return nil, fmt.Errorf("select pattern %d: %w", id, err)
	}
	slots := make([]models.Slot, 0, 8)
	if err := json.Unmarshal([]byte(payload), &slots); err != nil {
		return nil, fmt.Errorf("decode pattern %d slots: %w", id, err)
	}
	return slots, nil
}
