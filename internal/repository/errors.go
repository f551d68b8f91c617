// Package repository holds the data access layer: one repo per table, raw
// parameterized SQL over database/sql. This file defines the sentinel errors
// shared across repositories; handlers translate them into HTTP responses.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into a 403.
var ErrForbidden = errors.New("forbidden")

// ErrUsernameExists is returned when registration or owner creation hits the
// unique constraint on users.username. Maps to a 409.
var ErrUsernameExists = errors.New("username already exists")

// ErrHallNotFound is returned when a hall lookup fails. Maps to a 404.
var ErrHallNotFound = errors.New("hall not found")

// ErrBookingNotFound is returned when a booking lookup fails. On the owner
// cancellation path it also covers bookings of halls the caller does not own;
// the two cases are deliberately indistinguishable so the endpoint does not
// leak booking existence. Maps to a 404.
var ErrBookingNotFound = errors.New("booking not found")

// ErrDateConflict is returned when a non-canceled booking already holds the
// (hall, event_date) slot. Maps to a 409.
var ErrDateConflict = errors.New("hall is already booked for this date")

// ErrCapacityExceeded is returned when the requested seats exceed the hall
// capacity. Maps to a 409.
var ErrCapacityExceeded = errors.New("requested seats exceed hall capacity")

// ErrHallBooked is returned when a hall cannot be deleted because
// non-canceled bookings still reference it. Maps to a 409.
var ErrHallBooked = errors.New("hall still has active bookings")
