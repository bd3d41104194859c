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
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsEngine_Name(t *testing.T) {
	named := NewMetricsEngine().(Named)
	assert.Equal(t, "Metrics", named.Name())
}

func TestNewMetricsEngine_Metrics(t *testing.T) {
	engine := NewMetricsEngine().(*metrics)
	require.NoError(t, engine.Configure(*NewServerConfig()))
	defer func() {
		_ = engine.Shutdown()
	}()
	e := echo.New()
	engine.Routes(e)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	bodyBytes, _ := io.ReadAll(rec.Result().Body)
	response := string(bodyBytes)

	assert.Contains(t, response, "go_goroutines")
	assert.Contains(t, response, "promhttp_metric_handler_requests_in_flight")
}

func TestRegisterCollector(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{Namespace: MetricsNamespace, Name: "test_total"})
	defer prometheus.Unregister(counter)

	assert.NoError(t, RegisterCollector(counter))
	assert.NoError(t, RegisterCollector(counter), "registering twice is not an error")
}
