// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records booking activity.
package queue

// BookingCreatedEvent is published after a booking commits.  It carries
// enough information for downstream consumers to log or notify without
// querying the primary database.
type BookingCreatedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	ClassID     uint64 `json:"class_id"`
	ClassName   string `json:"class_name"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	BookingDate string `json:"booking_date"`
	CreatedAt   string `json:"created_at"`
}
