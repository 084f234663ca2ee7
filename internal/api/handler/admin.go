package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zosai/marketplace-bot/internal/core/ports"
)

// AdminTokenHeader carries the caller's admin credential on the HTTP API.
const AdminTokenHeader = "X-Admin-Token"

// AdminHandler serves the restricted operational endpoints.
type AdminHandler struct {
	authorizer ports.Authorizer
}

func NewAdminHandler(authorizer ports.Authorizer) *AdminHandler {
	return &AdminHandler{authorizer: authorizer}
}

// Status handles GET /admin/status. The token must match the configured
// super-admin id exactly; every attempt is audited.
func (h *AdminHandler) Status(c echo.Context) error {
	token := c.Request().Header.Get(AdminTokenHeader)
	if !h.authorizer.IsTokenAuthorized(c.Request().Context(), token, "admin_status") {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":   "super admin authenticated",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
