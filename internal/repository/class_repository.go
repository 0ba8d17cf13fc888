package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/NafiGit/omnify/internal/model"
)

// ClassRepo manages persistence for fitness classes.  All timestamps
// are stored in UTC (parseTime + loc=UTC on the DSN scan DATETIME
// columns straight into time.Time).
type ClassRepo struct {
	db *sql.DB
}

// NewClassRepo constructs a ClassRepo with the given DB handle.
func NewClassRepo(db *sql.DB) *ClassRepo {
	return &ClassRepo{db: db}
}

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning multiple repositories.
func (r *ClassRepo) DB() *sql.DB {
	return r.db
}

// ListUpcoming returns all classes whose start time is still ahead of
// the database clock, ordered by start time ascending.  The service
// layer applies the canonical IST comparison on top, so a class right
// on the boundary can never slip through due to clock skew between the
// two checks.
func (r *ClassRepo) ListUpcoming(ctx context.Context) ([]model.FitnessClass, error) {
	const q = `SELECT id, name, start_at, instructor, available_slots, total_slots
	           FROM classes
	           WHERE start_at > UTC_TIMESTAMP()
	           ORDER BY start_at ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make([]model.FitnessClass, 0)
	for rows.Next() {
		var c model.FitnessClass
		if err := rows.Scan(&c.ID, &c.Name, &c.StartAt, &c.Instructor, &c.AvailableSlots, &c.TotalSlots); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// GetByID retrieves a class by its ID.  It returns ErrClassNotFound if
// there is no matching row.  Past classes are still returned here; the
// future-dated check belongs to the service layer, which owns the
// comparison clock.
func (r *ClassRepo) GetByID(ctx context.Context, id uint64) (*model.FitnessClass, error) {
	const q = `SELECT id, name, start_at, instructor, available_slots, total_slots
	           FROM classes WHERE id = ?`
	var c model.FitnessClass
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&c.ID, &c.Name, &c.StartAt, &c.Instructor, &c.AvailableSlots, &c.TotalSlots,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &c, nil
}
