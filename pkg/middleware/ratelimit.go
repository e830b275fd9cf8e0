package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// errorBody mirrors the API's response envelope so throttled clients
// see the same JSON shape as every other error.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewRateLimiterMiddleware throttles API traffic per client IP at r
// requests per second with the given burst. Limiter state for an idle
// IP is dropped after a few minutes.
func NewRateLimiterMiddleware(r float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(r),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		},
	)

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, errorBody{
				Code:    http.StatusForbidden,
				Message: "could not identify client for rate limiting",
			})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, errorBody{
				Code:    http.StatusTooManyRequests,
				Message: "rate limit exceeded, retry later",
			})
		},
	})
}
