// Package repository contains the data access layer.  Sentinel errors
// defined here let the service and handler layers distinguish expected
// negative outcomes from real storage faults with errors.Is.
package repository

import "errors"

// ErrClassNotFound is returned when no class row matches the requested
// ID, or the class has already started and is therefore not bookable.
var ErrClassNotFound = errors.New("class not found")

// ErrNoSlots is returned when a class has no remaining available slots.
var ErrNoSlots = errors.New("no available slots")

// ErrDuplicateBooking is returned when the same email already holds a
// booking for the class.
var ErrDuplicateBooking = errors.New("duplicate booking")

// ErrBookingNotFound is returned when a booking lookup matches no row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrNotCreated is the collapsed failure result of the transactional
// booking creation: the atomic unit aborted with no side effects.  The
// repository deliberately does not say why; callers re-derive the
// reason through read-only checks when they need a message.
var ErrNotCreated = errors.New("booking not created")
