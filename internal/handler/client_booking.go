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

// ClientBookingStore is the slice of the booking repository the client
// endpoints need.
type ClientBookingStore interface {
	Create(ctx context.Context, clientID, hallID uint64, eventDate time.Time, seats uint32) (*repository.Booking, *repository.Hall, error)
	ListByClient(ctx context.Context, clientID uint64) ([]repository.ClientBookingView, error)
	CancelByClient(ctx context.Context, bookingID, clientID uint64) error
}

// BookingEventPublisher pushes booking lifecycle events to the broker.
// Publish failures must never fail the request.
type BookingEventPublisher interface {
	PublishBookingEvent(ctx context.Context, ev queue.BookingEvent) error
}

// ClientBookingHandler serves booking creation, listing and cancellation for
// the client role.
type ClientBookingHandler struct {
	Bookings ClientBookingStore
	Events   BookingEventPublisher
	Log      zerolog.Logger
}

func NewClientBookingHandler(bookings ClientBookingStore, events BookingEventPublisher, log zerolog.Logger) *ClientBookingHandler {
	return &ClientBookingHandler{Bookings: bookings, Events: events, Log: log}
}

type createBookingRequest struct {
	EventDate     string `json:"event_date" validate:"required"`
	NumberOfSeats uint32 `json:"number_of_seats" validate:"required,gt=0"`
	HallID        uint64 `json:"hall_id" validate:"required"`
}

// CreateBooking reserves a hall for a date on behalf of the caller.
// Validation order is hall exists, seats within capacity, date free; the
// repository runs all three atomically.
func (h *ClientBookingHandler) CreateBooking(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	eventDate, err := time.Parse(model.EventDateLayout, req.EventDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "event_date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	booking, hall, err := h.Bookings.Create(ctx, clientID, req.HallID, eventDate, req.NumberOfSeats)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrHallNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hall not found"})
		case errors.Is(err, repository.ErrCapacityExceeded):
			return c.JSON(http.StatusConflict, echo.Map{"message": "requested seats exceed hall capacity"})
		case errors.Is(err, repository.ErrDateConflict):
			return c.JSON(http.StatusConflict, echo.Map{"message": "hall is already booked for the selected date"})
		}
		h.Log.Error().Err(err).Uint64("client_id", clientID).Uint64("hall_id", req.HallID).Msg("create booking failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create booking"})
	}

	h.publish(queue.BookingEvent{
		Action:      queue.ActionBookingCreated,
		BookingID:   booking.ID,
		ClientID:    booking.ClientID,
		HallID:      hall.ID,
		HallName:    hall.Name,
		EventDate:   booking.EventDate,
		BookedSeats: booking.BookedSeats,
		TotalPrice:  float64(booking.BookedSeats) * hall.PricePerSeat,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "booking created successfully",
		"booking": booking,
		"hall":    hall,
	})
}

// MyBookings lists the caller's bookings with the derived display status.
func (h *ClientBookingHandler) MyBookings(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListByClient(ctx, clientID)
	if err != nil {
		h.Log.Error().Err(err).Uint64("client_id", clientID).Msg("list client bookings failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "bookings fetched successfully", "bookings": bookings})
}

// CancelBooking soft-cancels one of the caller's bookings. Cancellation is
// refused for foreign, already-canceled, happened, or past-date bookings.
func (h *ClientBookingHandler) CancelBooking(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.CancelByClient(ctx, bookingID, clientID); err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "you can't cancel this booking"})
		case errors.Is(err, model.ErrAlreadyCanceled):
			return c.JSON(http.StatusConflict, echo.Map{"message": "booking is already canceled"})
		case errors.Is(err, model.ErrEventOccurred):
			return c.JSON(http.StatusConflict, echo.Map{"message": "booking has already happened"})
		case errors.Is(err, model.ErrPastEvent):
			return c.JSON(http.StatusConflict, echo.Map{"message": "event date has already passed"})
		}
		h.Log.Error().Err(err).Uint64("booking_id", bookingID).Msg("cancel booking failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not cancel booking"})
	}

	h.publish(queue.BookingEvent{
		Action:     queue.ActionBookingCanceled,
		BookingID:  bookingID,
		ClientID:   clientID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "booking canceled successfully"})
}

func (h *ClientBookingHandler) publish(ev queue.BookingEvent) {
	if h.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := h.Events.PublishBookingEvent(ctx, ev); err != nil {
		h.Log.Warn().Err(err).Str("action", ev.Action).Uint64("booking_id", ev.BookingID).Msg("booking event publish failed")
	}
}
