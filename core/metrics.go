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

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsNamespace is the namespace of all prometheus metrics of the signing gateway.
const MetricsNamespace = "siga"

// NewMetricsEngine creates a new Engine for exposing prometheus metrics via http.
// Metrics are exposed on /metrics, by default the GoCollector and ProcessCollector are enabled.
func NewMetricsEngine() Engine {
	return &metrics{}
}

type metrics struct {
	collectors []prometheus.Collector
}

func (e *metrics) Name() string {
	return "Metrics"
}

func (e *metrics) Configure(_ ServerConfig) error {
	e.collectors = []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range e.collectors {
		if err := RegisterCollector(c); err != nil {
			return err
		}
	}
	return nil
}

func (e *metrics) Start() error {
	return nil
}

func (e *metrics) Shutdown() error {
	for _, c := range e.collectors {
		prometheus.Unregister(c)
	}
	return nil
}

func (e *metrics) Routes(router EchoRouter) {
	router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterCollector registers the collector with the default prometheus registry.
// A collector that was registered before is not an error.
func RegisterCollector(collector prometheus.Collector) error {
	err := prometheus.Register(collector)
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		return nil
	}
	return err
}
