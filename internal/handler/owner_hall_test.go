package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/config"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/repository"
)

type stubHalls struct {
	hall      *repository.Hall
	getErr    error
	updateErr error
	deleteErr error
	listed    []repository.HallListItem

	gotUpdate   repository.HallUpdate
	gotUpdateID uint64
	gotDeleteID uint64
}

func (s *stubHalls) Create(_ context.Context, h *repository.Hall) error { h.ID = 1; return nil }
func (s *stubHalls) GetByID(_ context.Context, id uint64) (*repository.Hall, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.hall, nil
}
func (s *stubHalls) ListByOwner(_ context.Context, _ uint64) ([]repository.HallListItem, error) {
	return s.listed, nil
}
func (s *stubHalls) ListAll(_ context.Context) ([]repository.HallListItem, error) {
	return s.listed, nil
}
func (s *stubHalls) Update(_ context.Context, id uint64, upd repository.HallUpdate) error {
	s.gotUpdateID, s.gotUpdate = id, upd
	return s.updateErr
}
func (s *stubHalls) Delete(_ context.Context, id uint64) error {
	s.gotDeleteID = id
	return s.deleteErr
}

type stubImages struct{ gotPaths []string }

func (s *stubImages) CreateBulk(_ context.Context, _ uint64, paths []string) error {
	s.gotPaths = paths
	return nil
}

func ownerHall(ownerID uint64) *repository.Hall {
	return &repository.Hall{ID: 10, Name: "Orzu", Region: "Tashkent", Capacity: 300, PricePerSeat: 9, Status: model.HallUnconfirmed, OwnerID: &ownerID}
}

func newOwnerHandler(halls *stubHalls) *OwnerHallHandler {
	return NewOwnerHallHandler(config.Config{UploadDir: "uploads"}, halls, &stubImages{}, zerolog.Nop())
}

func TestEditHallPartialUpdate(t *testing.T) {
	store := &stubHalls{hall: ownerHall(5)}
	h := newOwnerHandler(store)

	c, rec := newTestContext(http.MethodPut, "/hall-owner/edit-hall/10", `{"capacity":450,"region":"Samarkand"}`)
	c.SetParamNames("hall_id")
	c.SetParamValues("10")
	c.Set("user_id", float64(5))

	require.NoError(t, h.EditHall(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(10), store.gotUpdateID)

	// Only the supplied fields travel; the rest stay nil so the repository
	// leaves those columns untouched.
	require.NotNil(t, store.gotUpdate.Capacity)
	assert.Equal(t, uint32(450), *store.gotUpdate.Capacity)
	require.NotNil(t, store.gotUpdate.Region)
	assert.Equal(t, "Samarkand", *store.gotUpdate.Region)
	assert.Nil(t, store.gotUpdate.Name)
	assert.Nil(t, store.gotUpdate.PricePerSeat)
	assert.Nil(t, store.gotUpdate.Status)
	assert.False(t, store.gotUpdate.OwnerSet)
}

func TestEditHallForeignHall(t *testing.T) {
	store := &stubHalls{hall: ownerHall(99)}
	h := newOwnerHandler(store)

	c, rec := newTestContext(http.MethodPut, "/hall-owner/edit-hall/10", `{"name":"Taken Over"}`)
	c.SetParamNames("hall_id")
	c.SetParamValues("10")
	c.Set("user_id", float64(5))

	require.NoError(t, h.EditHall(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, store.gotUpdateID)
}

func TestEditHallNotFound(t *testing.T) {
	store := &stubHalls{getErr: repository.ErrHallNotFound}
	h := newOwnerHandler(store)

	c, rec := newTestContext(http.MethodPut, "/hall-owner/edit-hall/77", `{"name":"Ghost"}`)
	c.SetParamNames("hall_id")
	c.SetParamValues("77")
	c.Set("user_id", float64(5))

	require.NoError(t, h.EditHall(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditHallInvalidCapacity(t *testing.T) {
	store := &stubHalls{hall: ownerHall(5)}
	h := newOwnerHandler(store)

	c, rec := newTestContext(http.MethodPut, "/hall-owner/edit-hall/10", `{"capacity":0}`)
	c.SetParamNames("hall_id")
	c.SetParamValues("10")
	c.Set("user_id", float64(5))

	require.NoError(t, h.EditHall(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteHallWithActiveBookings(t *testing.T) {
	store := &stubHalls{hall: ownerHall(5), deleteErr: repository.ErrHallBooked}
	h := newOwnerHandler(store)

	c, rec := newTestContext(http.MethodDelete, "/hall-owner/delete-hall/10", "")
	c.SetParamNames("hall_id")
	c.SetParamValues("10")
	c.Set("user_id", float64(5))

	require.NoError(t, h.DeleteHall(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteHallForeignHall(t *testing.T) {
	store := &stubHalls{hall: ownerHall(99)}
	h := newOwnerHandler(store)

	c, rec := newTestContext(http.MethodDelete, "/hall-owner/delete-hall/10", "")
	c.SetParamNames("hall_id")
	c.SetParamValues("10")
	c.Set("user_id", float64(5))

	require.NoError(t, h.DeleteHall(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, store.gotDeleteID)
}

func TestDeleteHallSuccess(t *testing.T) {
	store := &stubHalls{hall: ownerHall(5)}
	h := newOwnerHandler(store)

	c, rec := newTestContext(http.MethodDelete, "/hall-owner/delete-hall/10", "")
	c.SetParamNames("hall_id")
	c.SetParamValues("10")
	c.Set("user_id", float64(5))

	require.NoError(t, h.DeleteHall(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(10), store.gotDeleteID)
}
