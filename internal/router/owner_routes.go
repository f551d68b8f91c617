package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/handler"
	appmw "github.com/Abdulazizdev09/wedding-hall-booking/internal/middleware"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
)

func registerOwnerRoutes(e *echo.Echo, halls *handler.OwnerHallHandler, bookings *handler.OwnerBookingHandler, jwtSecret string) {
	g := e.Group("/hall-owner", appmw.JWTAuth(jwtSecret), appmw.RequireRole(model.RoleOwner))

	g.POST("/create-hall", halls.CreateHall)
	g.GET("/my-halls", halls.MyHalls)
	g.PUT("/edit-hall/:hall_id", halls.EditHall)
	g.DELETE("/delete-hall/:hall_id", halls.DeleteHall)

	g.GET("/get-bookings", bookings.GetBookings)
	g.DELETE("/cancel-booking/:booking_id", bookings.CancelBooking)
}
