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

package reprocessing

import (
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsSubsystem = "reprocessing"

type metrics struct {
	runs        prometheus.Counter
	skippedRuns prometheus.Counter
	matched     *prometheus.CounterVec
	tasks       *prometheus.CounterVec
	activeTasks prometheus.GaugeFunc
}

func newMetrics(activeTasks func() float64) *metrics {
	return &metrics{
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: core.MetricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "runs_total",
			Help:      "Number of reprocessing runs.",
		}),
		skippedRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: core.MetricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "skipped_runs_total",
			Help:      "Number of reprocessing runs skipped because the previous run was still busy.",
		}),
		matched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: core.MetricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "matched_total",
			Help:      "Number of stalled sub-sessions found, by kind.",
		}, []string{"kind"}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: core.MetricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "tasks_total",
			Help:      "Number of reprocessing polls, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		activeTasks: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: core.MetricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "active_tasks",
			Help:      "Number of reprocessing polls currently running.",
		}, activeTasks),
	}
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.runs, m.skippedRuns, m.matched, m.tasks, m.activeTasks}
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
