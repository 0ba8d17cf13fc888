package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/NafiGit/omnify/internal/utils"
)

// InitSchema creates the classes and bookings tables when they do not
// exist yet.  The unique key on (class_id, client_email) backs the
// one-booking-per-client-per-class invariant at the storage level; the
// transactional re-check in the repository remains the authoritative
// source of the user-facing rejection reason.
func InitSchema(ctx context.Context, db *sql.DB) error {
	const classes = `CREATE TABLE IF NOT EXISTS classes (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		start_at DATETIME NOT NULL,
		instructor VARCHAR(255) NOT NULL,
		available_slots INT UNSIGNED NOT NULL,
		total_slots INT UNSIGNED NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.ExecContext(ctx, classes); err != nil {
		return err
	}
	const bookings = `CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		class_id BIGINT UNSIGNED NOT NULL,
		client_name VARCHAR(255) NOT NULL,
		client_email VARCHAR(255) NOT NULL,
		booking_date DATETIME NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_class_email (class_id, client_email),
		CONSTRAINT fk_bookings_class FOREIGN KEY (class_id) REFERENCES classes (id)
	)`
	_, err := db.ExecContext(ctx, bookings)
	return err
}

// seedClass describes one sample class scheduled relative to "now".
type seedClass struct {
	name       string
	offset     time.Duration
	instructor string
	slots      uint32
}

var sampleClasses = []seedClass{
	{"Yoga", 24*time.Hour + 10*time.Hour, "Sarah Johnson", 20},
	{"Zumba", 24*time.Hour + 18*time.Hour, "Mike Rodriguez", 15},
	{"HIIT", 48*time.Hour + 7*time.Hour, "Emma Wilson", 12},
	{"Pilates", 48*time.Hour + 16*time.Hour, "David Chen", 10},
	{"Spinning", 72*time.Hour + 9*time.Hour, "Lisa Thompson", 18},
}

// Seed inserts the sample class schedule into an empty classes table.
// When any class already exists the database is left untouched, so the
// seed is safe to run on every startup.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM classes`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := utils.NowIST()
	const q = `INSERT INTO classes (name, start_at, instructor, available_slots, total_slots)
	           VALUES (?, ?, ?, ?, ?)`
	for _, c := range sampleClasses {
		startAt := now.Add(c.offset).UTC()
		if _, err := db.ExecContext(ctx, q, c.name, startAt, c.instructor, c.slots, c.slots); err != nil {
			return err
		}
	}
	return nil
}
