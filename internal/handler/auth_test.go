package handler

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/config"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/repository"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/utils"
)

type stubAuthUsers struct {
	createErr error
	created   repository.User
	gotRole   model.Role

	byUsername repository.User
	lookupErr  error
}

func (s *stubAuthUsers) Create(_ context.Context, firstName, _, username, _, _ string, role model.Role, _ int) (repository.User, error) {
	s.gotRole = role
	if s.createErr != nil {
		return repository.User{}, s.createErr
	}
	u := s.created
	u.FirstName, u.Username, u.Role = firstName, username, role
	return u, nil
}

func (s *stubAuthUsers) GetByUsername(_ context.Context, _ string) (repository.User, error) {
	if s.lookupErr != nil {
		return repository.User{}, s.lookupErr
	}
	return s.byUsername, nil
}

func newAuthHandler(users *stubAuthUsers) *AuthHandler {
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 120, BcryptCost: 4}
	return NewAuthHandler(cfg, users, zerolog.Nop())
}

func TestRegisterCreatesClient(t *testing.T) {
	users := &stubAuthUsers{created: repository.User{ID: 11}}
	h := newAuthHandler(users)

	c, rec := newTestContext(http.MethodPost, "/auth/register",
		`{"first_name":"Aziz","username":"aziz","password":"pass1234","phone_number":"+998900000001"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, model.RoleClient, users.gotRole)
	assert.Contains(t, rec.Body.String(), `"role":"client"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := &stubAuthUsers{createErr: repository.ErrUsernameExists}
	h := newAuthHandler(users)

	c, rec := newTestContext(http.MethodPost, "/auth/register",
		`{"first_name":"Aziz","username":"aziz","password":"pass1234","phone_number":"+998900000001"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterShortPassword(t *testing.T) {
	h := newAuthHandler(&stubAuthUsers{})

	c, rec := newTestContext(http.MethodPost, "/auth/register",
		`{"first_name":"Aziz","username":"aziz","password":"ab","phone_number":"+998900000001"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginSuccess(t *testing.T) {
	hash, err := utils.HashPassword("pass1234", 4)
	require.NoError(t, err)
	users := &stubAuthUsers{byUsername: repository.User{
		ID: 11, FirstName: "Aziz", Username: "aziz", PasswordHash: hash, Role: model.RoleClient,
	}}
	h := newAuthHandler(users)

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"username":"aziz","password":"pass1234"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
	assert.Contains(t, rec.Body.String(), `"role":"client"`)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("pass1234", 4)
	require.NoError(t, err)
	users := &stubAuthUsers{byUsername: repository.User{ID: 11, PasswordHash: hash}}
	h := newAuthHandler(users)

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"username":"aziz","password":"nope"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	users := &stubAuthUsers{lookupErr: sql.ErrNoRows}
	h := newAuthHandler(users)

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"username":"ghost","password":"whatever"}`)

	require.NoError(t, h.Login(c))
	// Unknown usernames and wrong passwords are indistinguishable.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "incorrect username or password")
}
