package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/repository"
)

// HallReader is the read-only slice of the hall repository used by the
// public endpoints.
type HallReader interface {
	ListPublic(ctx context.Context) ([]repository.HallListItem, error)
	GetDetail(ctx context.Context, id uint64) (*repository.HallDetail, error)
	GetByID(ctx context.Context, id uint64) (*repository.Hall, error)
}

// ImageReader lists a hall's stored images.
type ImageReader interface {
	ListByHall(ctx context.Context, hallID uint64) ([]repository.HallImage, error)
}

// BookedDatesReader lists the dates a hall is already taken.
type BookedDatesReader interface {
	BookedDates(ctx context.Context, hallID uint64) ([]string, error)
}

// PublicHandler serves the unauthenticated hall browsing endpoints.
type PublicHandler struct {
	Halls    HallReader
	Images   ImageReader
	Bookings BookedDatesReader
	Log      zerolog.Logger
}

func NewPublicHandler(halls HallReader, images ImageReader, bookings BookedDatesReader, log zerolog.Logger) *PublicHandler {
	return &PublicHandler{Halls: halls, Images: images, Bookings: bookings, Log: log}
}

// GetHalls lists every hall with its main image.
func (h *PublicHandler) GetHalls(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	halls, err := h.Halls.ListPublic(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("list halls failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch halls"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "halls fetched successfully", "data": halls})
}

// hallDetailPayload is the single-hall page: the hall with owner contact,
// every image, and the dates that are already taken.
type hallDetailPayload struct {
	repository.HallDetail
	Images      []repository.HallImage `json:"images"`
	BookedDates []string               `json:"booked_dates"`
}

// GetHallByID returns one hall with images and its booked dates.
func (h *PublicHandler) GetHallByID(c echo.Context) error {
	id, err := pathID(c, "hall_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid hall id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Halls.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hall not found"})
		}
		h.Log.Error().Err(err).Uint64("hall_id", id).Msg("get hall failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch hall"})
	}

	images, err := h.Images.ListByHall(ctx, id)
	if err != nil {
		h.Log.Error().Err(err).Uint64("hall_id", id).Msg("list hall images failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch hall"})
	}
	dates, err := h.Bookings.BookedDates(ctx, id)
	if err != nil {
		h.Log.Error().Err(err).Uint64("hall_id", id).Msg("list booked dates failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch hall"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "hall fetched successfully",
		"data":    hallDetailPayload{HallDetail: *detail, Images: images, BookedDates: dates},
	})
}

// GetHallBookings returns only the taken dates of a hall, for calendar
// rendering. 404s when the hall does not exist rather than returning an
// empty list for a phantom id.
func (h *PublicHandler) GetHallBookings(c echo.Context) error {
	id, err := pathID(c, "hall_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid hall id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Halls.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hall not found"})
		}
		h.Log.Error().Err(err).Uint64("hall_id", id).Msg("get hall failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch hall bookings"})
	}

	dates, err := h.Bookings.BookedDates(ctx, id)
	if err != nil {
		h.Log.Error().Err(err).Uint64("hall_id", id).Msg("list booked dates failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch hall bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booked dates fetched successfully", "data": dates})
}
