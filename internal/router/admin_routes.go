package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/handler"
	appmw "github.com/Abdulazizdev09/wedding-hall-booking/internal/middleware"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
)

func registerAdminRoutes(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/admin", appmw.JWTAuth(jwtSecret), appmw.RequireRole(model.RoleAdmin))

	g.POST("/create-owner", h.CreateOwner)
	g.GET("/get-owners", h.GetOwners)

	g.POST("/create-hall", h.CreateHall)
	g.GET("/get-halls", h.GetHalls)
	g.PUT("/edit-hall/:hall_id", h.EditHall)
	g.DELETE("/delete-hall/:hall_id", h.DeleteHall)

	g.GET("/get-bookings", h.GetBookings)
	g.DELETE("/cancel-booking/:booking_id", h.CancelBooking)
}
