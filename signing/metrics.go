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

package signing

import (
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsSubsystem = "signing"

type metrics struct {
	started   *prometheus.CounterVec
	finished  *prometheus.CounterVec
	polls     *prometheus.CounterVec
	checks    *prometheus.CounterVec
	providers *prometheus.HistogramVec
}

func newMetrics() *metrics {
	return &metrics{
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: core.MetricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "started_total",
			Help:      "Number of signature sub-sessions started, by signing type.",
		}, []string{"signing_type"}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: core.MetricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "finished_total",
			Help:      "Number of signature sub-sessions that reached a final status, by signing type and status.",
		}, []string{"signing_type", "status"}),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: core.MetricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "provider_polls_total",
			Help:      "Number of status polls at Mobile-ID and Smart-ID, by signing type and resulting status.",
		}, []string{"signing_type", "status"}),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: core.MetricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "checks_total",
			Help:      "Number of checks performed while finalizing signatures, by check and outcome.",
		}, []string{"check", "outcome"}),
		providers: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: core.MetricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of requests to Mobile-ID and Smart-ID, by signing type and operation.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"signing_type", "operation"}),
	}
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.started, m.finished, m.polls, m.checks, m.providers}
}

func (m *metrics) register() error {
	for _, collector := range m.collectors() {
		if err := core.RegisterCollector(collector); err != nil {
			return err
		}
	}
	return nil
}

func (m *metrics) unregister() {
	for _, collector := range m.collectors() {
		prometheus.Unregister(collector)
	}
}
