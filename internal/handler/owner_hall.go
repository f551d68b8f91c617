package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/config"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/repository"
)

// HallStore is the slice of the hall repository the owner and admin hall
// endpoints need.
type HallStore interface {
	Create(ctx context.Context, h *repository.Hall) error
	GetByID(ctx context.Context, id uint64) (*repository.Hall, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]repository.HallListItem, error)
	ListAll(ctx context.Context) ([]repository.HallListItem, error)
	Update(ctx context.Context, id uint64, upd repository.HallUpdate) error
	Delete(ctx context.Context, id uint64) error
}

// ImageStore persists uploaded hall image records.
type ImageStore interface {
	CreateBulk(ctx context.Context, hallID uint64, paths []string) error
}

// OwnerHallHandler serves hall management for the hall_owner role. Every
// write is scoped to halls the caller owns.
type OwnerHallHandler struct {
	Cfg    config.Config
	Halls  HallStore
	Images ImageStore
	Log    zerolog.Logger
}

func NewOwnerHallHandler(cfg config.Config, halls HallStore, images ImageStore, log zerolog.Logger) *OwnerHallHandler {
	return &OwnerHallHandler{Cfg: cfg, Halls: halls, Images: images, Log: log}
}

// hallForm reads the multipart hall fields shared by the owner and admin
// creation endpoints. Numeric fields go through model.ValidateHallFields.
func hallForm(c echo.Context) (name, region, phone string, capacity uint32, price float64, err error) {
	name = c.FormValue("name")
	region = c.FormValue("region")
	phone = c.FormValue("phone_number")
	if name == "" || region == "" {
		return "", "", "", 0, 0, errors.New("name and region are required")
	}
	cap64, err := strconv.ParseInt(c.FormValue("capacity"), 10, 64)
	if err != nil {
		return "", "", "", 0, 0, errors.New("capacity must be a number")
	}
	price, err = strconv.ParseFloat(c.FormValue("price_per_seat"), 64)
	if err != nil {
		return "", "", "", 0, 0, errors.New("price_per_seat must be a number")
	}
	if err := model.ValidateHallFields(cap64, price); err != nil {
		return "", "", "", 0, 0, err
	}
	return name, region, phone, uint32(cap64), price, nil
}

// createHall stores the images, inserts the hall and records the image rows.
// Shared by the owner and admin paths, which differ only in status and owner.
func createHall(c echo.Context, cfg config.Config, halls HallStore, images ImageStore, log zerolog.Logger,
	status model.HallStatus, ownerID *uint64) error {

	name, region, phone, capacity, price, err := hallForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	paths, err := saveHallImages(c, cfg.UploadDir)
	if err != nil {
		switch {
		case errors.Is(err, errBadImageExt), errors.Is(err, errTooManyImages):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		log.Error().Err(err).Msg("image upload failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not store images"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var phonePtr *string
	if phone != "" {
		phonePtr = &phone
	}
	hall := &repository.Hall{
		Name:         name,
		Region:       region,
		Capacity:     capacity,
		PricePerSeat: price,
		Status:       status,
		OwnerID:      ownerID,
		PhoneNumber:  phonePtr,
	}
	if err := halls.Create(ctx, hall); err != nil {
		log.Error().Err(err).Str("name", name).Msg("create hall failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create hall"})
	}
	if err := images.CreateBulk(ctx, hall.ID, paths); err != nil {
		log.Error().Err(err).Uint64("hall_id", hall.ID).Msg("store image records failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not store images"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "hall created successfully", "data": hall})
}

// CreateHall registers a new hall for the caller. Owner-created halls start
// unconfirmed until an admin approves them.
func (h *OwnerHallHandler) CreateHall(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	return createHall(c, h.Cfg, h.Halls, h.Images, h.Log, model.HallUnconfirmed, &ownerID)
}

// MyHalls lists the caller's halls with their main image.
func (h *OwnerHallHandler) MyHalls(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	halls, err := h.Halls.ListByOwner(ctx, ownerID)
	if err != nil {
		h.Log.Error().Err(err).Uint64("owner_id", ownerID).Msg("list owner halls failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch halls"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "halls fetched successfully", "data": halls})
}

// hallEditRequest is a partial edit: absent fields stay untouched. Owners
// cannot change status or owner; those fields only exist on the admin path.
type hallEditRequest struct {
	Name         *string  `json:"name"`
	Region       *string  `json:"region"`
	Capacity     *uint32  `json:"capacity"`
	PricePerSeat *float64 `json:"price_per_seat"`
	PhoneNumber  *string  `json:"phone_number"`
}

func (req *hallEditRequest) validate() error {
	var cap64 int64 = 1
	var price float64 = 1
	if req.Capacity != nil {
		cap64 = int64(*req.Capacity)
	}
	if req.PricePerSeat != nil {
		price = *req.PricePerSeat
	}
	return model.ValidateHallFields(cap64, price)
}

func (req *hallEditRequest) toUpdate() repository.HallUpdate {
	return repository.HallUpdate{
		Name:         req.Name,
		Region:       req.Region,
		Capacity:     req.Capacity,
		PricePerSeat: req.PricePerSeat,
		PhoneNumber:  req.PhoneNumber,
	}
}

// EditHall applies a partial update to one of the caller's halls.
func (h *OwnerHallHandler) EditHall(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	hallID, err := pathID(c, "hall_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid hall id"})
	}
	var req hallEditRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hall, err := h.Halls.GetByID(ctx, hallID)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hall not found"})
		}
		h.Log.Error().Err(err).Uint64("hall_id", hallID).Msg("get hall failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not edit hall"})
	}
	if hall.OwnerID == nil || *hall.OwnerID != ownerID {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "you can't edit this hall"})
	}

	if err := h.Halls.Update(ctx, hallID, req.toUpdate()); err != nil {
		h.Log.Error().Err(err).Uint64("hall_id", hallID).Msg("update hall failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not edit hall"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "hall updated successfully"})
}

// DeleteHall removes one of the caller's halls unless active bookings still
// reference it.
func (h *OwnerHallHandler) DeleteHall(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	hallID, err := pathID(c, "hall_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid hall id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hall, err := h.Halls.GetByID(ctx, hallID)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hall not found"})
		}
		h.Log.Error().Err(err).Uint64("hall_id", hallID).Msg("get hall failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not delete hall"})
	}
	if hall.OwnerID == nil || *hall.OwnerID != ownerID {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "you can't delete this hall"})
	}

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
