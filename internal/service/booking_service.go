// Package service implements the booking engine: the decision logic
// that validates booking requests against store state and commits them
// through the repository's atomic unit.
package service

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/NafiGit/omnify/internal/model"
	"github.com/NafiGit/omnify/internal/queue"
	"github.com/NafiGit/omnify/internal/repository"
	"github.com/NafiGit/omnify/internal/utils"
)

// ClassStore is the slice of the persistence layer the engine needs for
// class lookups.  *repository.ClassRepo satisfies it; tests substitute
// in-memory fakes.
type ClassStore interface {
	ListUpcoming(ctx context.Context) ([]model.FitnessClass, error)
	GetByID(ctx context.Context, id uint64) (*model.FitnessClass, error)
}

// BookingStore is the persistence surface for bookings.  Create must
// execute its checks and writes as one atomic unit (see
// repository.BookingRepo.Create).
type BookingStore interface {
	Create(ctx context.Context, classID uint64, clientName, clientEmail string) (uint64, error)
	HasBooking(ctx context.Context, classID uint64, clientEmail string) (bool, error)
	ListByEmail(ctx context.Context, email string) ([]model.BookingHistory, error)
	GetByID(ctx context.Context, id uint64) (*model.BookingHistory, error)
}

// EventPublisher emits domain events after a booking commits.  A nil
// publisher disables events.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, event queue.BookingCreatedEvent) error
}

// BookingService orchestrates validation and creation of bookings.  The
// store handles are injected so the engine can be tested against
// isolated store instances.
type BookingService struct {
	classes   ClassStore
	bookings  BookingStore
	publisher EventPublisher
}

// NewBookingService constructs a BookingService with its dependencies.
// publisher may be nil.
func NewBookingService(classes ClassStore, bookings BookingStore, publisher EventPublisher) *BookingService {
	return &BookingService{classes: classes, bookings: bookings, publisher: publisher}
}

// ListClasses returns all upcoming classes, soonest first.  Classes
// whose start time has passed relative to the IST clock at call time
// are never included.
func (s *BookingService) ListClasses(ctx context.Context) ([]model.FitnessClass, error) {
	classes, err := s.classes.ListUpcoming(ctx)
	if err != nil {
		return nil, err
	}
	upcoming := make([]model.FitnessClass, 0, len(classes))
	for _, c := range classes {
		if utils.IsFuture(c.StartAt) {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}

// GetClass returns a single upcoming class.  A class that exists but
// has already started is reported as repository.ErrClassNotFound, the
// same as a missing row: past classes are not bookable and not shown.
func (s *BookingService) GetClass(ctx context.Context, id uint64) (*model.FitnessClass, error) {
	c, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !utils.IsFuture(c.StartAt) {
		return nil, repository.ErrClassNotFound
	}
	return c, nil
}

// Validate decides whether a booking request is admissible without
// committing anything.  It returns nil when the request may proceed, or
// one of the repository sentinels naming the rejection:
// ErrClassNotFound (missing or past class), ErrNoSlots, or
// ErrDuplicateBooking.  clientEmail must already be normalized.
//
// A passing Validate is advisory only: the authoritative checks run
// again inside the Create transaction, because two concurrent requests
// could both pass here before either commits.
func (s *BookingService) Validate(ctx context.Context, classID uint64, clientEmail string) error {
	c, err := s.GetClass(ctx, classID)
	if err != nil {
		return err
	}
	if c.AvailableSlots == 0 {
		return repository.ErrNoSlots
	}
	booked, err := s.bookings.HasBooking(ctx, classID, clientEmail)
	if err != nil {
		return err
	}
	if booked {
		return repository.ErrDuplicateBooking
	}
	return nil
}

// Create books one slot for the client.  The existence, future-dated,
// capacity and duplicate checks all run inside the store's transaction;
// on rejection the reason is re-derived via Validate so the caller gets
// the same sentinel taxonomy.  A rejection that Validate cannot explain
// (lost race, storage fault) surfaces as repository.ErrNotCreated.
func (s *BookingService) Create(ctx context.Context, classID uint64, clientName, clientEmail string) (*model.BookingResult, error) {
	c, err := s.GetClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	bookingID, err := s.bookings.Create(ctx, classID, clientName, clientEmail)
	if err != nil {
		if verr := s.Validate(ctx, classID, clientEmail); verr != nil {
			return nil, verr
		}
		return nil, repository.ErrNotCreated
	}

	log.Printf("booking created: %s - %s", clientEmail, c.Name)
	s.publishCreated(ctx, bookingID, c, clientName, clientEmail)

	return &model.BookingResult{
		BookingID:   bookingID,
		ClassName:   c.Name,
		ClientName:  clientName,
		ClientEmail: clientEmail,
		BookingDate: c.StartAt,
		Message:     "Booking successful!",
	}, nil
}

// publishCreated emits the booking event.  Publish failures are already
// logged by the publisher and never fail the booking.
func (s *BookingService) publishCreated(ctx context.Context, bookingID uint64, c *model.FitnessClass, clientName, clientEmail string) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.PublishBookingCreated(ctx, queue.BookingCreatedEvent{
		BookingID:   bookingID,
		ClassID:     c.ID,
		ClassName:   c.Name,
		ClientName:  clientName,
		ClientEmail: clientEmail,
		BookingDate: c.StartAt.UTC().Format(time.RFC3339),
		CreatedAt:   utils.NowIST().Format(time.RFC3339),
	})
}

// BookingsByEmail returns the booking history for a normalized email,
// most recent booking first.
func (s *BookingService) BookingsByEmail(ctx context.Context, email string) ([]model.BookingHistory, error) {
	return s.bookings.ListByEmail(ctx, email)
}

// GetBooking returns a single booking by ID, or
// repository.ErrBookingNotFound.
func (s *BookingService) GetBooking(ctx context.Context, id uint64) (*model.BookingHistory, error) {
	return s.bookings.GetByID(ctx, id)
}

// Statistics summarises utilization across upcoming classes.  The
// percentage is rounded to two decimals and reported as 0 when there
// are no slots at all.
func (s *BookingService) Statistics(ctx context.Context) (*model.Statistics, error) {
	classes, err := s.ListClasses(ctx)
	if err != nil {
		return nil, err
	}
	stats := &model.Statistics{TotalClasses: len(classes)}
	for _, c := range classes {
		stats.TotalSlots += c.TotalSlots
		stats.AvailableSlots += c.AvailableSlots
	}
	stats.BookedSlots = stats.TotalSlots - stats.AvailableSlots
	if stats.TotalSlots > 0 {
		pct := float64(stats.BookedSlots) / float64(stats.TotalSlots) * 100
		stats.BookingPercentage = math.Round(pct*100) / 100
	}
	return stats, nil
}

// IsRejection reports whether err is one of the expected negative
// booking outcomes rather than a storage fault.
func IsRejection(err error) bool {
	return errors.Is(err, repository.ErrClassNotFound) ||
		errors.Is(err, repository.ErrNoSlots) ||
		errors.Is(err, repository.ErrDuplicateBooking) ||
		errors.Is(err, repository.ErrNotCreated)
}
