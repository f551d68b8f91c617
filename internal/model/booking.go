package model

import (
	"errors"
	"time"
)

// BookingStatus enumerates the persisted booking states. Only "canceled" is a
// terminal state written by the application; "happened" exists in the schema
// but is derived at read time (see DisplayStatus) rather than advanced by any
// background process.
type BookingStatus string

const (
	StatusWillHappen BookingStatus = "will_happen"
	StatusHappened   BookingStatus = "happened"
	StatusCanceled   BookingStatus = "canceled"
)

// Cancellation rule violations. Repositories surface these unchanged so
// handlers can map each to a distinct response.
var (
	ErrAlreadyCanceled = errors.New("booking is already canceled")
	ErrEventOccurred   = errors.New("booking has already happened")
	ErrPastEvent       = errors.New("event date has already passed")
)

// EventDateLayout is the wire and storage format for event dates.
const EventDateLayout = "2006-01-02"

// Cancelable reports whether a booking in the given status with the given
// event date may still be canceled at time now. The transition is one way:
// will_happen -> canceled. Re-canceling and canceling past or already held
// events are rejected, never silently accepted.
func Cancelable(status BookingStatus, eventDate, now time.Time) error {
	switch status {
	case StatusCanceled:
		return ErrAlreadyCanceled
	case StatusHappened:
		return ErrEventOccurred
	}
	if eventDate.Before(startOfDay(now)) {
		return ErrPastEvent
	}
	return nil
}

// DisplayStatus derives the status shown to callers: a will_happen booking
// whose event date is behind us reads as happened. The stored row is never
// mutated by this rule.
func DisplayStatus(status BookingStatus, eventDate, now time.Time) BookingStatus {
	if status == StatusWillHappen && eventDate.Before(startOfDay(now)) {
		return StatusHappened
	}
	return status
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
