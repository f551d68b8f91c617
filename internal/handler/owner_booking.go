package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/queue"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/repository"
)

// OwnerBookingStore is the slice of the booking repository the owner
// endpoints need.
type OwnerBookingStore interface {
	ListByOwner(ctx context.Context, ownerID uint64) ([]repository.OwnerBookingView, error)
	CancelByOwner(ctx context.Context, bookingID, ownerID uint64) error
}

// OwnerBookingHandler serves booking listing and cancellation for the
// hall_owner role, scoped to the caller's halls.
type OwnerBookingHandler struct {
	Bookings OwnerBookingStore
	Events   BookingEventPublisher
	Log      zerolog.Logger
}

func NewOwnerBookingHandler(bookings OwnerBookingStore, events BookingEventPublisher, log zerolog.Logger) *OwnerBookingHandler {
	return &OwnerBookingHandler{Bookings: bookings, Events: events, Log: log}
}

// GetBookings lists every booking on the caller's halls.
func (h *OwnerBookingHandler) GetBookings(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListByOwner(ctx, ownerID)
	if err != nil {
		h.Log.Error().Err(err).Uint64("owner_id", ownerID).Msg("list owner bookings failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "bookings fetched successfully",
		"bookings": bookings,
		"total":    len(bookings),
	})
}

// CancelBooking soft-cancels a booking on one of the caller's halls. A
// booking on a foreign hall reads as not found, so the endpoint never
// reveals whether the booking exists.
func (h *OwnerBookingHandler) CancelBooking(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.CancelByOwner(ctx, bookingID, ownerID); err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
		case errors.Is(err, model.ErrAlreadyCanceled):
			return c.JSON(http.StatusConflict, echo.Map{"message": "booking is already canceled"})
		case errors.Is(err, model.ErrEventOccurred):
			return c.JSON(http.StatusConflict, echo.Map{"message": "booking has already happened"})
		case errors.Is(err, model.ErrPastEvent):
			return c.JSON(http.StatusConflict, echo.Map{"message": "event date has already passed"})
		}
		h.Log.Error().Err(err).Uint64("booking_id", bookingID).Msg("owner cancel booking failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not cancel booking"})
	}

	if h.Events != nil {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer pubCancel()
		ev := queue.BookingEvent{
			Action:     queue.ActionBookingCanceled,
			BookingID:  bookingID,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Events.PublishBookingEvent(pubCtx, ev); err != nil {
			h.Log.Warn().Err(err).Uint64("booking_id", bookingID).Msg("booking event publish failed")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "booking canceled successfully"})
}
