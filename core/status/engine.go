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

package status

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/nuts-siga/core"
)

const moduleName = "Status"

const (
	diagnosticsEndpoint = "/status/diagnostics"
	statusEndpoint      = "/status"
	healthEndpoint      = "/health"
)

// HealthChecker is implemented by engines that depend on an external system, e.g. the session database.
type HealthChecker interface {
	core.Named
	CheckHealth() error
}

// Health is the response of the health endpoint.
type Health struct {
	Status  string            `json:"status"`
	Details map[string]string `json:"details,omitempty"`
}

const (
	statusUp   = "UP"
	statusDown = "DOWN"
)

type status struct {
	system    *core.System
	startTime time.Time
}

// NewStatusEngine creates an engine that reports the status, health and diagnostics of all engines of the system.
func NewStatusEngine(system *core.System) core.Engine {
	return &status{
		system:    system,
		startTime: time.Now(),
	}
}

func (s *status) Name() string {
	return moduleName
}

func (s *status) Routes(router core.EchoRouter) {
	router.GET(diagnosticsEndpoint, s.diagnosticsOverview)
	router.GET(statusEndpoint, statusOK)
	router.GET(healthEndpoint, s.health)
}

// diagnosticsOverview returns the diagnostics of every engine, keyed by engine name.
func (s *status) diagnosticsOverview(ctx echo.Context) error {
	result := map[string]map[string]interface{}{}
	s.system.VisitEngines(func(engine core.Engine) {
		if m, ok := engine.(core.Diagnosable); ok {
			entries := map[string]interface{}{}
			for _, d := range m.Diagnostics() {
				entries[d.Name()] = d.Result()
			}
			result[m.Name()] = entries
		}
	})
	return ctx.JSON(http.StatusOK, result)
}

// health returns 503 when one of the checked engines is down.
func (s *status) health(ctx echo.Context) error {
	result := Health{Status: statusUp, Details: map[string]string{}}
	s.system.VisitEngines(func(engine core.Engine) {
		if checker, ok := engine.(HealthChecker); ok {
			if err := checker.CheckHealth(); err != nil {
				result.Status = statusDown
				result.Details[checker.Name()] = statusDown + ": " + err.Error()
			} else {
				result.Details[checker.Name()] = statusUp
			}
		}
	})
	code := http.StatusOK
	if result.Status != statusUp {
		code = http.StatusServiceUnavailable
	}
	return ctx.JSON(code, result)
}

// Diagnostics returns the registered engines, uptime and build information.
func (s *status) Diagnostics() []core.DiagnosticResult {
	return []core.DiagnosticResult{
		core.GenericDiagnosticResult{Title: "registered_engines", Outcome: s.listAllEngines()},
		core.GenericDiagnosticResult{Title: "uptime", Outcome: time.Since(s.startTime).Truncate(time.Second).String()},
		core.GenericDiagnosticResult{Title: "software_version", Outcome: core.Version()},
		core.GenericDiagnosticResult{Title: "git_commit", Outcome: core.GitCommit},
		core.GenericDiagnosticResult{Title: "os_arch", Outcome: core.OSArch()},
	}
}

func (s *status) listAllEngines() []string {
	var names []string
	s.system.VisitEngines(func(engine core.Engine) {
		if m, ok := engine.(core.Named); ok {
			names = append(names, m.Name())
		}
	})
	return names
}

// statusOK returns 200 OK with a "OK" body
func statusOK(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "OK")
}
