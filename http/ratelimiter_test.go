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
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/stretchr/testify/assert"
)

func TestNewClientRateLimiter(t *testing.T) {
	t.Run("it limits per client", func(t *testing.T) {
		e := echo.New()
		rlMiddleware := newClientRateLimiter(http.MethodPost, []string{"/foo/:id"}, RateLimitConfig{Requests: 1, Burst: 2})
		handler := func(c echo.Context) error {
			return c.String(http.StatusOK, "OK")
		}

		testcases := []struct {
			method            string
			expectedStatus    int
			waitBeforeRequest time.Duration
			path              string
			client            string
		}{
			{http.MethodPost, http.StatusOK, 0, "/foo/:id", "a"},                       // first request in burst
			{http.MethodPost, http.StatusOK, 0, "/foo/:id", "a"},                       // second request in burst
			{http.MethodPost, http.StatusTooManyRequests, 0, "/foo/:id", "a"},          // bucket empty
			{http.MethodPost, http.StatusOK, 0, "/foo/:id", "b"},                       // other client has its own bucket
			{http.MethodPost, http.StatusOK, 0, "/other", "a"},                         // unprotected path should still work
			{http.MethodGet, http.StatusOK, 0, "/foo/:id", "a"},                        // other method same path should still work
			{http.MethodPost, http.StatusTooManyRequests, 0, "/foo/:id", "a"},          // check bucket still empty
			{http.MethodPost, http.StatusOK, 1100 * time.Millisecond, "/foo/:id", "a"}, // wait to refill bucket
			{http.MethodPost, http.StatusTooManyRequests, 0, "/foo/:id", "a"},          // bucket empty again
		}

		for _, testcase := range testcases {
			time.Sleep(testcase.waitBeforeRequest)
			req := httptest.NewRequest(testcase.method, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetPath(testcase.path)
			c.Set(core.UserContextKey, testcase.client)
			if err := rlMiddleware(handler)(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			assert.Equalf(t, testcase.expectedStatus, rec.Code, "unexpected HTTP response for %s on %s by %s", testcase.method, testcase.path, testcase.client)
		}
	})
}

func Test_signingStartPaths(t *testing.T) {
	assert.Len(t, signingStartPaths, 8)
	assert.Contains(t, signingStartPaths, "/hashcodecontainers/:containerId/remotesigning")
	assert.Contains(t, signingStartPaths, "/containers/:containerId/smartidsigning/certificatechoice")
}

func Test_clientIdentifier(t *testing.T) {
	t.Run("client name", func(t *testing.T) {
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.Set(core.UserContextKey, "portal")

		assert.Equal(t, "portal", clientIdentifier(c))
	})
	t.Run("IP address", func(t *testing.T) {
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		assert.Equal(t, "192.0.2.1", clientIdentifier(c))
	})
}
