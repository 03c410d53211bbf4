package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings; SQLite does not like many writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := seedRooms(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const schemaRooms = `
CREATE TABLE IF NOT EXISTS rooms (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE NOT NULL,
    heating_control_mode TEXT NOT NULL DEFAULT 'on_off',
    temperature_setpoint REAL,
    requested_heating_state TEXT NOT NULL DEFAULT 'unknown'
);
`

const schemaHeatingPatterns = `
CREATE TABLE IF NOT EXISTS heating_patterns (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    slots TEXT NOT NULL,
    slots_hash TEXT UNIQUE NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

const schemaRoomDayPlans = `
CREATE TABLE IF NOT EXISTS room_day_plans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    room_id INTEGER NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
    date TEXT NOT NULL,
    pattern_id INTEGER NOT NULL REFERENCES heating_patterns(id),
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    UNIQUE(room_id, date)
);
`

const schemaPlanEvents = `
CREATE TABLE IF NOT EXISTS plan_events (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

// Rooms provisioned on first start. There is no room-management endpoint,
// so a fresh database must come up with something to plan against.
var defaultRooms = []string{
	"Living room",
	"Kitchen",
	"Bedroom",
	"Bathroom",
}

// seedRooms inserts the default rooms when the table is empty. A populated
// table, whatever its contents, is left alone.
func seedRooms(db *sql.DB) error {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM rooms").Scan(&n); err != nil {
		return fmt.Errorf("count rooms: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, name := range defaultRooms {
		if _, err := db.Exec("INSERT INTO rooms (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("seed room %q: %w", name, err)
		}
	}
	return nil
}

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaRooms,
		schemaHeatingPatterns,
		schemaRoomDayPlans,
		schemaPlanEvents,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
