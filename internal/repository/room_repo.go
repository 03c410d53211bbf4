package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"heatplan/internal/models"
)

type RoomSQLite struct {
	db *sql.DB
}

func NewRoomSQLite(db *sql.DB) *RoomSQLite { return &RoomSQLite{db: db} }

var _ RoomRepo = (*RoomSQLite)(nil)

const (
	selectRoomsSQL = `
		SELECT id, name, heating_control_mode, temperature_setpoint, requested_heating_state
		FROM rooms ORDER BY name, id
	`

	updateRoomHeatingSQL = `
		UPDATE rooms SET requested_heating_state = ?, temperature_setpoint = ? WHERE id = ?
	`
)

// List returns all rooms ordered by name.
func (r *RoomSQLite) List(ctx context.Context) ([]models.Room, error) {
	rows, err := r.db.QueryContext(ctx, selectRoomsSQL)
	if err != nil {
		return nil, fmt.Errorf("select rooms: %w", err)
	}
	defer rows.Close()

	out := make([]models.Room, 0, 16)
	for rows.Next() {
		var (
			room     models.Room
			setpoint sql.NullFloat64
		)
		if err := rows.Scan(&room.ID, &room.Name, &room.ControlMode, &setpoint, &room.RequestedState); err != nil {
			return nil, err
		}
		if setpoint.Valid {
			v := setpoint.Float64
			room.SetpointC = &v
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

// ExistingIDs reports which of the given room ids exist.
func (r *RoomSQLite) ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	found := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM rooms WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("select room ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = true
	}
	return found, rows.Err()
}

// SetHeatingState writes the requested state and setpoint for a room. A nil
// setpoint clears the stored one.
func (r *RoomSQLite) SetHeatingState(ctx context.Context, roomID int64, state string, setpointC *float64) error {
	var setpoint any
	if setpointC != nil {
		setpoint = *setpointC
	}
	if _, err := r.db.ExecContext(ctx, updateRoomHeatingSQL, state, setpoint, roomID); err != nil {
		return fmt.Errorf("update room %d heating state: %w", roomID, err)
	}
	return nil
}
