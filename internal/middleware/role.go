package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
)

// RequireRole enforces that the authenticated caller holds one of the given
// roles. The role comes from the JWT's "role" claim, stored in the context by
// JWTAuth. Anything outside the closed model.Role set, or a role not in the
// allowed list, is rejected with 403. Roles are disjoint: there is no
// hierarchy, so an admin passes only through groups that name RoleAdmin.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := c.Get("role").(string)
			role, ok := model.ParseRole(raw)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "you don't have access to this API"})
			}
			return next(c)
		}
	}
}
