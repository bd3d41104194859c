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

package core

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"schneider.vip/problem"
)

type statusCodeResolver map[error]int

func (s statusCodeResolver) ResolveStatusCode(err error) int {
	return ResolveStatusCode(err, s)
}

func TestHttpErrorHandler(t *testing.T) {
	errInvalid := NewCodedError("INVALID_SESSION_DATA", "invalid session data")
	server := echo.New()
	server.HTTPErrorHandler = CreateHTTPErrorHandler()

	do := func(handler echo.HandlerFunc) (int, string, string) {
		server.Add(http.MethodGet, "/", handler)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		body, _ := io.ReadAll(rec.Result().Body)
		return rec.Code, rec.Header().Get("Content-Type"), string(body)
	}

	t.Run("is echo HTTPError", func(t *testing.T) {
		status, contentType, body := do(func(c echo.Context) error {
			return &echo.HTTPError{Code: http.StatusForbidden, Message: "failed"}
		})

		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, problem.ContentTypeJSON, contentType)
		assert.JSONEq(t, `{"code":"INTERNAL_SERVER_ERROR","detail":"failed","status":403,"title":"Operation failed"}`, body)
	})
	t.Run("mapped by resolver, with error code", func(t *testing.T) {
		status, _, body := do(func(c echo.Context) error {
			c.Set(OperationIDContextKey, "FinalizeSigning")
			c.Set(StatusCodeResolverContextKey, statusCodeResolver{errInvalid: http.StatusBadRequest})
			return WrapError(errInvalid, errors.New("unknown signature"))
		})

		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, `{"code":"INVALID_SESSION_DATA","detail":"invalid session data: unknown signature","status":400,"title":"FinalizeSigning failed"}`, body)
	})
	t.Run("unmapped", func(t *testing.T) {
		status, _, body := do(func(c echo.Context) error {
			return errors.New("other error")
		})

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.JSONEq(t, `{"code":"INTERNAL_SERVER_ERROR","detail":"other error","status":500,"title":"Operation failed"}`, body)
	})
}

func Test_NotFoundError(t *testing.T) {
	err := NotFoundError("failed: %s", "oops").(httpStatusCodeError)
	assert.EqualError(t, err, "failed: oops")
	assert.Equal(t, http.StatusNotFound, err.statusCode)
	assert.ErrorIs(t, err, NotFoundError(""))
}

func Test_InvalidInputError(t *testing.T) {
	err := InvalidInputError("failed: %s", "oops").(httpStatusCodeError)
	assert.EqualError(t, err, "failed: oops")
	assert.Equal(t, http.StatusBadRequest, err.statusCode)
	assert.ErrorIs(t, err, InvalidInputError(""))
}
