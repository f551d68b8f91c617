package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
)

func runRequireRole(t *testing.T, ctxRole any, allowed ...model.Role) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if ctxRole != nil {
		c.Set("role", ctxRole)
	}

	h := RequireRole(allowed...)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, h(c))
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	rec := runRequireRole(t, "client", model.RoleClient)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleDeniesOtherRole(t *testing.T) {
	rec := runRequireRole(t, "client", model.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleNoHierarchy(t *testing.T) {
	// Roles are disjoint: admin does not pass owner-only groups.
	rec := runRequireRole(t, "admin", model.RoleOwner)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleMissingRole(t *testing.T) {
	rec := runRequireRole(t, nil, model.RoleClient)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleUnknownRole(t *testing.T) {
	rec := runRequireRole(t, "superuser", model.RoleClient, model.RoleOwner, model.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
