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

type stubUsers struct {
	createErr error
	created   repository.User
	gotRole   model.Role
	owners    []repository.OwnerSummary
}

func (s *stubUsers) Create(_ context.Context, firstName, _, username, _, _ string, role model.Role, _ int) (repository.User, error) {
	s.gotRole = role
	if s.createErr != nil {
		return repository.User{}, s.createErr
	}
	u := s.created
	u.FirstName, u.Username, u.Role = firstName, username, role
	return u, nil
}

func (s *stubUsers) GetByUsername(_ context.Context, _ string) (repository.User, error) {
	return repository.User{}, nil
}

func (s *stubUsers) ListOwners(_ context.Context) ([]repository.OwnerSummary, error) {
	return s.owners, nil
}

type stubAdminBookings struct {
	cancelErr error
	gotID     uint64
	all       []repository.AdminBookingView
}

func (s *stubAdminBookings) ListAll(_ context.Context) ([]repository.AdminBookingView, error) {
	return s.all, nil
}

func (s *stubAdminBookings) CancelByAdmin(_ context.Context, bookingID uint64) error {
	s.gotID = bookingID
	return s.cancelErr
}

func newAdminHandler(users *stubUsers, halls *stubHalls, bookings *stubAdminBookings) *AdminHandler {
	if users == nil {
		users = &stubUsers{}
	}
	if halls == nil {
		halls = &stubHalls{}
	}
	if bookings == nil {
		bookings = &stubAdminBookings{}
	}
	return NewAdminHandler(config.Config{BcryptCost: 4, UploadDir: "uploads"}, users, halls, &stubImages{}, bookings, zerolog.Nop())
}

func TestCreateOwnerForcesRole(t *testing.T) {
	users := &stubUsers{created: repository.User{ID: 21}}
	h := newAdminHandler(users, nil, nil)

	c, rec := newTestContext(http.MethodPost, "/admin/create-owner",
		`{"first_name":"Nodira","username":"nodira","password":"pass1234","phone_number":"+998901112233"}`)

	require.NoError(t, h.CreateOwner(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, model.RoleOwner, users.gotRole)
	assert.Contains(t, rec.Body.String(), `"role":"hall_owner"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestCreateOwnerDuplicateUsername(t *testing.T) {
	users := &stubUsers{createErr: repository.ErrUsernameExists}
	h := newAdminHandler(users, nil, nil)

	c, rec := newTestContext(http.MethodPost, "/admin/create-owner",
		`{"first_name":"Nodira","username":"nodira","password":"pass1234","phone_number":"+998901112233"}`)

	require.NoError(t, h.CreateOwner(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateOwnerMissingFields(t *testing.T) {
	h := newAdminHandler(nil, nil, nil)

	c, rec := newTestContext(http.MethodPost, "/admin/create-owner", `{"username":"solo"}`)

	require.NoError(t, h.CreateOwner(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminEditHallStatusAndOwner(t *testing.T) {
	halls := &stubHalls{hall: ownerHall(5)}
	h := newAdminHandler(nil, halls, nil)

	c, rec := newTestContext(http.MethodPut, "/admin/edit-hall/10",
		`{"status":"confirmed","owner_id":7}`)
	c.SetParamNames("hall_id")
	c.SetParamValues("10")

	require.NoError(t, h.EditHall(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, halls.gotUpdate.Status)
	assert.Equal(t, model.HallConfirmed, *halls.gotUpdate.Status)
	assert.True(t, halls.gotUpdate.OwnerSet)
	require.NotNil(t, halls.gotUpdate.Owner)
	assert.Equal(t, uint64(7), *halls.gotUpdate.Owner)
}

func TestAdminEditHallClearsOwner(t *testing.T) {
	halls := &stubHalls{hall: ownerHall(5)}
	h := newAdminHandler(nil, halls, nil)

	c, rec := newTestContext(http.MethodPut, "/admin/edit-hall/10", `{"owner_id":0}`)
	c.SetParamNames("hall_id")
	c.SetParamValues("10")

	require.NoError(t, h.EditHall(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, halls.gotUpdate.OwnerSet)
	assert.Nil(t, halls.gotUpdate.Owner)
}

func TestAdminEditHallRejectsUnknownStatus(t *testing.T) {
	halls := &stubHalls{hall: ownerHall(5)}
	h := newAdminHandler(nil, halls, nil)

	c, rec := newTestContext(http.MethodPut, "/admin/edit-hall/10", `{"status":"pending"}`)
	c.SetParamNames("hall_id")
	c.SetParamValues("10")

	require.NoError(t, h.EditHall(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, halls.gotUpdateID)
}

func TestAdminCancelBookingMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"success", nil, http.StatusOK},
		{"not found", repository.ErrBookingNotFound, http.StatusNotFound},
		{"already canceled", model.ErrAlreadyCanceled, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bookings := &stubAdminBookings{cancelErr: tc.err}
			h := newAdminHandler(nil, nil, bookings)

			c, rec := newTestContext(http.MethodDelete, "/admin/cancel-booking/33", "")
			c.SetParamNames("booking_id")
			c.SetParamValues("33")

			require.NoError(t, h.CancelBooking(c))
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, uint64(33), bookings.gotID)
		})
	}
}

func TestGetOwners(t *testing.T) {
	users := &stubUsers{owners: []repository.OwnerSummary{
		{ID: 1, FirstName: "Nodira", HallCount: 2, HallsInfo: "Orzu, Crystal"},
		{ID: 2, FirstName: "Bek", HallCount: 0, HallsInfo: "No halls"},
	}}
	h := newAdminHandler(users, nil, nil)

	c, rec := newTestContext(http.MethodGet, "/admin/get-owners", "")

	require.NoError(t, h.GetOwners(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No halls")
}
