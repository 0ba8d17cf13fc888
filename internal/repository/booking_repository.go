package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/NafiGit/omnify/internal/model"
	"github.com/NafiGit/omnify/internal/utils"
)

// BookingRepo manages persistence for bookings and is the single point
// where the available_slots decrement is made atomic with the booking
// insert.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// Create books one slot for the client as a single atomic unit.
//
// A validate call followed by a separate write is not safe: two
// concurrent requests could both observe one free slot before either
// commits, and the class would be overbooked.  The class row is
// therefore locked with SELECT ... FOR UPDATE, which serialises
// concurrent attempts per class, and every check runs again under that
// lock:
//
//  1. class exists and its start time is still in the future
//  2. available_slots > 0
//  3. no booking yet for (class_id, client_email)
//
// Only then is the booking inserted (booking_date = the class start
// time) and available_slots decremented by exactly 1.  Any failed check
// aborts the whole unit with no side effects and returns ErrNotCreated
// without distinguishing the reason; callers wanting a user-facing
// message re-derive it with read-only checks.  Unexpected storage
// faults are logged here and also collapse to ErrNotCreated.
func (r *BookingRepo) Create(ctx context.Context, classID uint64, clientName, clientEmail string) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("booking-repo: begin tx failed: %v", err)
		return 0, ErrNotCreated
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const lockQ = `SELECT start_at, available_slots FROM classes WHERE id = ? FOR UPDATE`
	var startAt time.Time
	var available uint32
	if err := tx.QueryRowContext(ctx, lockQ, classID).Scan(&startAt, &available); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("booking-repo: lock class %d failed: %v", classID, err)
		}
		return 0, ErrNotCreated
	}
	if !utils.IsFuture(startAt) {
		return 0, ErrNotCreated
	}
	if available == 0 {
		return 0, ErrNotCreated
	}

	const dupQ = `SELECT COUNT(*) FROM bookings WHERE class_id = ? AND client_email = ?`
	var dup int
	if err := tx.QueryRowContext(ctx, dupQ, classID, clientEmail).Scan(&dup); err != nil {
		log.Printf("booking-repo: duplicate check failed: %v", err)
		return 0, ErrNotCreated
	}
	if dup > 0 {
		return 0, ErrNotCreated
	}

	const insQ = `INSERT INTO bookings (class_id, client_name, client_email, booking_date)
	              VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, insQ, classID, clientName, clientEmail, startAt)
	if err != nil {
		log.Printf("booking-repo: insert booking failed: %v", err)
		return 0, ErrNotCreated
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Printf("booking-repo: last insert id failed: %v", err)
		return 0, ErrNotCreated
	}

	const decQ = `UPDATE classes SET available_slots = available_slots - 1 WHERE id = ?`
	if _, err := tx.ExecContext(ctx, decQ, classID); err != nil {
		log.Printf("booking-repo: decrement slots failed: %v", err)
		return 0, ErrNotCreated
	}

	if err := tx.Commit(); err != nil {
		log.Printf("booking-repo: commit failed: %v", err)
		return 0, ErrNotCreated
	}
	committed = true
	return uint64(id), nil
}

// HasBooking reports whether the email already holds a booking for the
// class.  This is the read-only duplicate check used to build rejection
// messages; the authoritative check lives inside Create.
func (r *BookingRepo) HasBooking(ctx context.Context, classID uint64, clientEmail string) (bool, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE class_id = ? AND client_email = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, classID, clientEmail).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByEmail returns all bookings made by the given email joined with
// the class name, most recent booking_date first.
func (r *BookingRepo) ListByEmail(ctx context.Context, email string) ([]model.BookingHistory, error) {
	const q = `SELECT b.id, c.name, b.client_name, b.client_email, b.booking_date
	           FROM bookings b
	           JOIN classes c ON c.id = b.class_id
	           WHERE b.client_email = ?
	           ORDER BY b.booking_date DESC`
	rows, err := r.db.QueryContext(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]model.BookingHistory, 0)
	for rows.Next() {
		var h model.BookingHistory
		if err := rows.Scan(&h.ID, &h.ClassName, &h.ClientName, &h.ClientEmail, &h.BookingDate); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// GetByID returns a single booking joined with its class name, or
// ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.BookingHistory, error) {
	const q = `SELECT b.id, c.name, b.client_name, b.client_email, b.booking_date
	           FROM bookings b
	           JOIN classes c ON c.id = b.class_id
	           WHERE b.id = ?`
	var h model.BookingHistory
	err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.ClassName, &h.ClientName, &h.ClientEmail, &h.BookingDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &h, nil
}
