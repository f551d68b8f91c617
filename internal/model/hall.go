package model

import "errors"

// HallStatus enumerates hall visibility states. Admin-created halls start
// confirmed; owner-created halls start unconfirmed and wait for approval.
type HallStatus string

const (
	HallConfirmed   HallStatus = "confirmed"
	HallUnconfirmed HallStatus = "unconfirmed"
)

var (
	ErrInvalidCapacity = errors.New("capacity must be a positive integer")
	ErrInvalidPrice    = errors.New("price_per_seat must be a non-negative number")
)

// ValidateHallFields enforces the hall invariants shared by the admin and
// owner creation paths: capacity > 0 and price_per_seat >= 0.
func ValidateHallFields(capacity int64, pricePerSeat float64) error {
	if capacity <= 0 {
		return ErrInvalidCapacity
	}
	if pricePerSeat < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// ParseHallStatus validates a raw status string (admin edits may change it).
func ParseHallStatus(s string) (HallStatus, bool) {
	switch HallStatus(s) {
	case HallConfirmed, HallUnconfirmed:
		return HallStatus(s), true
	}
	return "", false
}
