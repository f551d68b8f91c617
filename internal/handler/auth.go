package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/config"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/repository"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/utils"
)

// UserStore is the slice of the user repository the auth endpoints need.
type UserStore interface {
	Create(ctx context.Context, firstName, lastName, username, password, phone string, role model.Role, cost int) (repository.User, error)
	GetByUsername(ctx context.Context, username string) (repository.User, error)
}

// AuthHandler serves registration and login.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
	Log   zerolog.Logger
}

func NewAuthHandler(cfg config.Config, users UserStore, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Log: log}
}

type registerRequest struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name"`
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required,min=4"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userPayload is the public projection of a user for auth responses.
type userPayload struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// Register creates a client account. The role is fixed server-side: the only
// way to obtain hall_owner is through the admin endpoint, and admins are
// seeded out of band.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.FirstName, req.LastName, req.Username, req.Password, req.PhoneNumber, model.RoleClient, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "username already exists"})
		}
		h.Log.Error().Err(err).Str("username", req.Username).Msg("register failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not register user"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "registered successfully",
		"user":    userPayload{ID: u.ID, FirstName: u.FirstName, Username: u.Username, Role: u.Role.String()},
	})
}

// Login verifies credentials and issues a signed access token. Unknown
// usernames and wrong passwords produce the same response.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "incorrect username or password"})
		}
		h.Log.Error().Err(err).Msg("login lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not log in"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "incorrect username or password"})
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		h.Log.Error().Err(err).Msg("token signing failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not log in"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged in successfully",
		"token":   tok.Token,
		"user":    userPayload{ID: u.ID, FirstName: u.FirstName, Username: u.Username, Role: u.Role.String()},
	})
}
