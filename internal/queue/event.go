// Package queue defines message payloads exchanged over the message broker.
package queue

// Booking event actions.
const (
	ActionBookingCreated  = "created"
	ActionBookingCanceled = "canceled"
)

// BookingEvent is published when a booking is created or canceled. It carries
// enough information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database.
type BookingEvent struct {
	Action      string  `json:"action"`
	BookingID   uint64  `json:"booking_id"`
	ClientID    uint64  `json:"client_id"`
	HallID      uint64  `json:"hall_id"`
	HallName    string  `json:"hall_name"`
	EventDate   string  `json:"event_date"`
	BookedSeats uint32  `json:"booked_seats"`
	TotalPrice  float64 `json:"total_price"`
	OccurredAt  string  `json:"occurred_at"`
}
