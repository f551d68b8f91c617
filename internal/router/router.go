// Package router wires the HTTP routes, one file per role group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/handler"
)

// Handlers aggregates everything the route tree needs.
type Handlers struct {
	Auth          *handler.AuthHandler
	Public        *handler.PublicHandler
	Client        *handler.ClientBookingHandler
	OwnerHalls    *handler.OwnerHallHandler
	OwnerBookings *handler.OwnerBookingHandler
	Admin         *handler.AdminHandler
}

// RegisterRoutes mounts every route group. The public hall views go through
// the response cache; everything behind /client, /hall-owner and /admin is
// JWT-protected and role-gated in its own file.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret, uploadDir string, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)
	e.Static("/uploads", uploadDir)

	auth := e.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	public := e.Group("/public")
	if cache != nil {
		public.Use(cache)
	}
	public.GET("/get-halls", h.Public.GetHalls)
	public.GET("/get-hall/:hall_id", h.Public.GetHallByID)
	public.GET("/hall-bookings/:hall_id", h.Public.GetHallBookings)

	registerClientRoutes(e, h.Client, jwtSecret)
	registerOwnerRoutes(e, h.OwnerHalls, h.OwnerBookings, jwtSecret)
	registerAdminRoutes(e, h.Admin, jwtSecret)
}
