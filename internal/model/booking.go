package model

import "time"

// Booking records one client's confirmed reservation of one slot in one
// class.  BookingDate is a copy of the class start time taken at booking
// time.  Bookings are created once and never mutated or deleted.
type Booking struct {
	ID          uint64    `json:"id"`
	ClassID     uint64    `json:"class_id"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	BookingDate time.Time `json:"booking_date"`
	CreatedAt   time.Time `json:"-"`
}

// BookingHistory is a booking joined with the class name, as returned to
// clients querying their history.
type BookingHistory struct {
	ID          uint64    `json:"id"`
	ClassName   string    `json:"class_name"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	BookingDate time.Time `json:"booking_date"`
}

// BookingResult is the response payload for a successful booking.
type BookingResult struct {
	BookingID   uint64    `json:"booking_id"`
	ClassName   string    `json:"class_name"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	BookingDate time.Time `json:"booking_date"`
	Message     string    `json:"message"`
}

// Statistics summarises utilization across all upcoming classes.
// BookingPercentage is booked/total*100 rounded to two decimals, or 0
// when there are no slots at all.
type Statistics struct {
	TotalClasses      int     `json:"total_classes"`
	TotalSlots        uint32  `json:"total_slots"`
	AvailableSlots    uint32  `json:"available_slots"`
	BookedSlots       uint32  `json:"booked_slots"`
	BookingPercentage float64 `json:"booking_percentage"`
}
