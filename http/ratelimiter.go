/*
 * Copyright (C) 2024 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nuts-foundation/nuts-siga/core"
	"golang.org/x/time/rate"
)

// limiterExpiry is how long an idle client keeps its token bucket.
const limiterExpiry = 3 * time.Minute

// signingStartPaths are the routes that start a session at a signing provider or build data to sign.
var signingStartPaths = func() []string {
	var result []string
	for _, prefix := range []string{"/hashcodecontainers", "/containers"} {
		base := prefix + "/:containerId"
		result = append(result,
			base+"/remotesigning",
			base+"/mobileidsigning",
			base+"/smartidsigning",
			base+"/smartidsigning/certificatechoice",
		)
	}
	return result
}()

// newClientRateLimiter creates rate limiting middleware that gives every client a token bucket.
// It only limits the given paths for the given method. Paths are matched against the exact router path, so paths can contain a variable.
func newClientRateLimiter(method string, protectedPaths []string, config RateLimitConfig) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		// Returning true means skipping the middleware
		Skipper: func(c echo.Context) bool {
			if c.Request().Method != method {
				return true
			}
			for _, path := range protectedPaths {
				if c.Path() == path {
					return false
				}
			}
			return true
		},
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return clientIdentifier(ctx), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return &echo.HTTPError{
				Code:     middleware.ErrExtractorError.Code,
				Message:  middleware.ErrExtractorError.Message,
				Internal: err,
			}
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return &echo.HTTPError{
				Code:     http.StatusTooManyRequests,
				Message:  "too many signing requests, try again later",
				Internal: err,
			}
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(config.Requests),
			Burst:     config.Burst,
			ExpiresIn: limiterExpiry,
		}),
	})
}

// clientIdentifier returns the name the client identified itself with, or its IP address.
func clientIdentifier(ctx echo.Context) string {
	if user, ok := ctx.Get(core.UserContextKey).(string); ok && user != "" {
		return user
	}
	return ctx.RealIP()
}
