package model

import "time"

// FitnessClass represents a scheduled class session with a fixed
// capacity.  AvailableSlots is the live count of unbooked slots and is
// only ever mutated by decrementing it on a successful booking.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – class name (Yoga, Zumba, ...).
//  StartAt        – when the class begins (stored in UTC).
//  Instructor     – instructor's display name.
//  AvailableSlots – remaining bookable slots, 0..TotalSlots.
//  TotalSlots     – capacity, immutable after creation.
//  CreatedAt      – row creation timestamp.
type FitnessClass struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	StartAt        time.Time `json:"start_time"`
	Instructor     string    `json:"instructor"`
	AvailableSlots uint32    `json:"available_slots"`
	TotalSlots     uint32    `json:"total_slots"`
	CreatedAt      time.Time `json:"-"`
}
