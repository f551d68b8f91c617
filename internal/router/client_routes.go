package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/handler"
	appmw "github.com/Abdulazizdev09/wedding-hall-booking/internal/middleware"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
)

func registerClientRoutes(e *echo.Echo, h *handler.ClientBookingHandler, jwtSecret string) {
	g := e.Group("/client", appmw.JWTAuth(jwtSecret), appmw.RequireRole(model.RoleClient))

	g.POST("/create-booking", h.CreateBooking)
	g.GET("/my-bookings", h.MyBookings)
	g.DELETE("/cancel-booking/:booking_id", h.CancelBooking)
}
