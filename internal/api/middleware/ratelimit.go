package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zosai/marketplace-bot/internal/core/ports"
)

const adminTokenHeader = "X-Admin-Token"

// rateLimitedResponse is the canonical 429 body.
type rateLimitedResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after_seconds"`
}

// RateLimit admits requests through the given limiter, keyed by client IP.
// A caller presenting the super-admin token is exempted from the check
// entirely. retryAfter is advisory, reported in the 429 body.
func RateLimit(limiter ports.RateLimiter, authorizer ports.Authorizer, retryAfter int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := c.Request().Header.Get(adminTokenHeader); token != "" {
				if authorizer.IsTokenAuthorized(c.Request().Context(), token, "api_rate_limit_bypass") {
					return next(c)
				}
			}

			if !limiter.Check(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, rateLimitedResponse{
					Error:      "rate limit exceeded",
					RetryAfter: retryAfter,
				})
			}
			return next(c)
		}
	}
}
