// Package handler exposes the HTTP handlers for the booking API.
package handler

import (
	"context"

	"github.com/NafiGit/omnify/internal/model"
)

// BookingService is the engine surface consumed by the handlers.
// *service.BookingService satisfies it; tests substitute mocks.
type BookingService interface {
	ListClasses(ctx context.Context) ([]model.FitnessClass, error)
	GetClass(ctx context.Context, id uint64) (*model.FitnessClass, error)
	Validate(ctx context.Context, classID uint64, clientEmail string) error
	Create(ctx context.Context, classID uint64, clientName, clientEmail string) (*model.BookingResult, error)
	BookingsByEmail(ctx context.Context, email string) ([]model.BookingHistory, error)
	GetBooking(ctx context.Context, id uint64) (*model.BookingHistory, error)
	Statistics(ctx context.Context) (*model.Statistics, error)
}
