package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/config"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/repository"
)

// AdminUserStore extends the auth user store with the owner listing.
type AdminUserStore interface {
	UserStore
	ListOwners(ctx context.Context) ([]repository.OwnerSummary, error)
}

// AdminBookingStore is the slice of the booking repository the admin
// endpoints need.
type AdminBookingStore interface {
	ListAll(ctx context.Context) ([]repository.AdminBookingView, error)
	CancelByAdmin(ctx context.Context, bookingID uint64) error
}

// AdminHandler serves the admin role: owner accounts, unrestricted hall
// management and system-wide booking oversight.
type AdminHandler struct {
	Cfg      config.Config
	Users    AdminUserStore
	Halls    HallStore
	Images   ImageStore
	Bookings AdminBookingStore
	Log      zerolog.Logger
}

func NewAdminHandler(cfg config.Config, users AdminUserStore, halls HallStore, images ImageStore, bookings AdminBookingStore, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Users: users, Halls: halls, Images: images, Bookings: bookings, Log: log}
}

// CreateOwner registers a hall_owner account. This is the only path that
// creates the hall_owner role.
func (h *AdminHandler) CreateOwner(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.FirstName, req.LastName, req.Username, req.Password, req.PhoneNumber, model.RoleOwner, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "username already exists"})
		}
		h.Log.Error().Err(err).Str("username", req.Username).Msg("create owner failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create hall owner"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "hall owner created successfully",
		"user":    userPayload{ID: u.ID, FirstName: u.FirstName, Username: u.Username, Role: u.Role.String()},
	})
}

// GetOwners lists every hall owner with their hall count and hall names.
func (h *AdminHandler) GetOwners(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	owners, err := h.Users.ListOwners(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("list owners failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch hall owners"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "hall owners fetched successfully", "data": owners})
}

// GetHalls lists every hall, confirmed or not, with its main image.
func (h *AdminHandler) GetHalls(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	halls, err := h.Halls.ListAll(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("list halls failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch halls"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "halls fetched successfully", "data": halls})
}

// GetBookings lists every booking system-wide with client and owner identity.
func (h *AdminHandler) GetBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListAll(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("list bookings failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "bookings fetched successfully",
		"bookings": bookings,
		"total":    len(bookings),
	})
}

// CreateHall registers a hall as admin. Admin-created halls start confirmed
// and may optionally be assigned to an owner via the owner_id form field.
func (h *AdminHandler) CreateHall(c echo.Context) error {
	var ownerID *uint64
	if raw := c.FormValue("owner_id"); raw != "" {
		id, err := parseUint(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "owner_id must be a number"})
		}
		ownerID = &id
	}
	return createHall(c, h.Cfg, h.Halls, h.Images, h.Log, model.HallConfirmed, ownerID)
}

// adminHallEditRequest extends the owner edit with status and owner
// assignment. Sending owner_id 0 clears the owner.
type adminHallEditRequest struct {
	hallEditRequest
	Status  *string `json:"status"`
	OwnerID *uint64 `json:"owner_id"`
}

// EditHall applies a partial update to any hall, including confirmation
// status and owner reassignment.
func (h *AdminHandler) EditHall(c echo.Context) error {
	hallID, err := pathID(c, "hall_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid hall id"})
	}
	var req adminHallEditRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	upd := req.toUpdate()
	if req.Status != nil {
		st, ok := model.ParseHallStatus(*req.Status)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "status must be confirmed or unconfirmed"})
		}
		upd.Status = &st
	}
	if req.OwnerID != nil {
		upd.OwnerSet = true
		if *req.OwnerID != 0 {
			upd.Owner = req.OwnerID
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Halls.GetByID(ctx, hallID); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hall not found"})
		}
		h.Log.Error().Err(err).Uint64("hall_id", hallID).Msg("get hall failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not edit hall"})
	}

	if err := h.Halls.Update(ctx, hallID, upd); err != nil {
		h.Log.Error().Err(err).Uint64("hall_id", hallID).Msg("update hall failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not edit hall"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "hall updated successfully"})
}

// DeleteHall removes any hall unless active bookings still reference it. No
// ownership check: the admin path is unrestricted.
func (h *AdminHandler) DeleteHall(c echo.Context) error {
	hallID, err := pathID(c, "hall_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid hall id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Halls.Delete(ctx, hallID); err != nil {
		switch {
		case errors.Is(err, repository.ErrHallNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hall not found"})
		case errors.Is(err, repository.ErrHallBooked):
			return c.JSON(http.StatusConflict, echo.Map{"message": "hall still has active bookings"})
		}
		h.Log.Error().Err(err).Uint64("hall_id", hallID).Msg("delete hall failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not delete hall"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "hall deleted successfully"})
}

// CancelBooking soft-cancels any booking. Only re-canceling is rejected;
// past and happened bookings may still be canceled by an admin.
func (h *AdminHandler) CancelBooking(c echo.Context) error {
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.CancelByAdmin(ctx, bookingID); err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
		case errors.Is(err, model.ErrAlreadyCanceled):
			return c.JSON(http.StatusConflict, echo.Map{"message": "booking is already canceled"})
		}
		h.Log.Error().Err(err).Uint64("booking_id", bookingID).Msg("admin cancel booking failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not cancel booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking canceled successfully"})
}
