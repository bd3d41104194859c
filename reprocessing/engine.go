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
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nuts-foundation/nuts-siga/audit"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/reprocessing/log"
	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/nuts-foundation/nuts-siga/storage"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
	"golang.org/x/time/rate"
)

// ModuleName is the name of the status reprocessing engine.
const ModuleName = "Reprocessing"

var nowFunc = time.Now

var _ core.Injectable = (*Engine)(nil)
var _ core.Configurable = (*Engine)(nil)
var _ core.Runnable = (*Engine)(nil)

// Processor polls the provider of a sub-session and records the outcome in the container session.
// It is implemented by the signing module.
type Processor interface {
	ProcessMobileIDStatus(ctx context.Context, containerID string, signatureID string) error
	ProcessSmartIDStatus(ctx context.Context, containerID string, signatureID string) error
	ProcessSmartIDCertificateStatus(ctx context.Context, containerID string, certificateID string) error
}

// kind is the kind of sub-session a task polls.
type kind string

const (
	mobileIDSignature  kind = "MOBILE_ID"
	smartIDSignature   kind = "SMART_ID"
	smartIDCertificate kind = "SMART_ID_CERTIFICATE"
)

type task struct {
	kind        kind
	containerID string
	id          string
}

func (t task) key() string {
	return t.containerID + "/" + t.id
}

// Engine periodically scans all container sessions for Mobile-ID and Smart-ID sub-sessions
// whose provider poll stalled or failed, and polls them again.
type Engine struct {
	config    Config
	storage   storage.Engine
	store     session.Store
	processor Processor
	pool      *pool
	limiter   *rate.Limiter
	metrics   *metrics
	busy      *atomic.Bool
	lastRun   *atomic.Time
	ctx       context.Context
	cancel    context.CancelFunc
	routines  *sync.WaitGroup
}

// New creates a new status reprocessing engine.
func New(storageEngine storage.Engine, processor Processor) *Engine {
	return &Engine{
		config:    DefaultConfig(),
		storage:   storageEngine,
		processor: processor,
		busy:      atomic.NewBool(false),
		lastRun:   atomic.NewTime(time.Time{}),
		routines:  &sync.WaitGroup{},
	}
}

func (e *Engine) Name() string {
	return ModuleName
}

func (e *Engine) Config() interface{} {
	return &e.config
}

func (e *Engine) Configure(_ core.ServerConfig) error {
	if err := e.config.validate(); err != nil {
		return err
	}
	e.store = session.NewStore(e.storage.GetSessionStore(session.StoreKeys...))
	e.pool = newPool(e.config.Workers)
	limit := rate.Inf
	if e.config.RateLimit > 0 {
		limit = rate.Limit(e.config.RateLimit)
	}
	e.limiter = rate.NewLimiter(limit, e.config.Workers)
	e.metrics = newMetrics(func() float64 {
		return float64(e.pool.activeCount())
	})
	return e.metrics.register()
}

// Diagnostics reports whether reprocessing is enabled, the number of active polls and when the last run started.
func (e *Engine) Diagnostics() []core.DiagnosticResult {
	var active int32
	if e.pool != nil {
		active = e.pool.activeCount()
	}
	lastRun := "never"
	if t := e.lastRun.Load(); !t.IsZero() {
		lastRun = t.UTC().Format(time.RFC3339)
	}
	return []core.DiagnosticResult{
		core.GenericDiagnosticResult{Title: "enabled", Outcome: e.config.Enabled},
		core.GenericDiagnosticResult{Title: "active_tasks", Outcome: active},
		core.GenericDiagnosticResult{Title: "last_run", Outcome: lastRun},
	}
}

func (e *Engine) Start() error {
	if !e.config.Enabled {
		log.Logger().Info("Status reprocessing is disabled")
		return nil
	}
	e.ctx, e.cancel = context.WithCancel(audit.Context(context.Background(), "system", ModuleName, "ReprocessStatus"))
	e.routines.Add(1)
	go func() {
		defer e.routines.Done()
		e.schedule()
	}()
	return nil
}

// Shutdown stops scheduling runs and waits for running polls, up to the configured timeout.
func (e *Engine) Shutdown() error {
	if e.cancel != nil {
		e.cancel()
		e.routines.Wait()
		log.Logger().Info("Waiting for active status polling tasks")
		if err := e.pool.awaitIdle(e.config.ShutdownTimeout); err != nil {
			log.Logger().WithError(err).Warn("Abandoning active status polling tasks")
		}
	}
	if e.metrics != nil {
		e.metrics.unregister()
	}
	return nil
}

func (e *Engine) schedule() {
	select {
	case <-e.ctx.Done():
		return
	case <-time.After(e.config.InitialDelay):
		e.tick()
	}
	ticker := time.NewTicker(e.config.FixedRate)
	defer ticker.Stop()
	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

// tick starts a run, unless the previous one is still busy.
func (e *Engine) tick() {
	if !e.busy.CompareAndSwap(false, true) {
		e.metrics.skippedRuns.Inc()
		log.Logger().Debug("Previous reprocessing run still busy, skipping run")
		return
	}
	e.routines.Add(1)
	go func() {
		defer e.routines.Done()
		defer e.busy.Store(false)
		if err := e.run(e.ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Logger().WithError(err).Error("Reprocessing run failed")
		}
	}()
}

// run scans all container sessions and submits a poll for every stalled sub-session.
func (e *Engine) run(ctx context.Context) error {
	e.metrics.runs.Inc()
	now := nowFunc()
	e.lastRun.Store(now)
	var submitted int
	err := e.store.Scan(func(container *session.ContainerSession) error {
		for _, t := range e.stalled(container, now) {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.metrics.matched.WithLabelValues(string(t.kind)).Inc()
			if e.pool.submit(ctx, t.key(), e.execute(ctx, t)) {
				submitted++
			}
		}
		return nil
	})
	if submitted > 0 {
		log.Logger().Debugf("Submitted %d stalled sub-session(s) for reprocessing", submitted)
	}
	return err
}

// stalled returns the tasks for the sub-sessions of the container that need reprocessing.
// REMOTE signatures have nothing to poll.
func (e *Engine) stalled(container *session.ContainerSession, now time.Time) []task {
	var result []task
	for id, signatureSession := range container.SignatureSessions {
		var k kind
		switch signatureSession.SigningType {
		case session.MobileID:
			k = mobileIDSignature
		case session.SmartID:
			k = smartIDSignature
		default:
			continue
		}
		if e.config.ShouldReprocess(signatureSession.Status, now) {
			result = append(result, task{kind: k, containerID: container.ID, id: id})
		}
	}
	for id, certificateSession := range container.CertificateSessions {
		if e.config.ShouldReprocess(certificateSession.Status, now) {
			result = append(result, task{kind: smartIDCertificate, containerID: container.ID, id: id})
		}
	}
	return result
}

// execute returns the function polling the sub-session of the task.
// A poll that started is not cancelled by shutdown, it's abandoned when the shutdown timeout passes.
func (e *Engine) execute(ctx context.Context, t task) func() {
	return func() {
		if err := e.limiter.Wait(ctx); err != nil {
			return
		}
		logger := log.Logger().
			WithField(core.LogFieldContainerID, t.containerID).
			WithField("kind", t.kind)
		logger.Infof("Reprocessing stalled status request: %s", t.id)
		pollCtx := context.WithoutCancel(ctx)
		var err error
		switch t.kind {
		case mobileIDSignature:
			err = e.processor.ProcessMobileIDStatus(pollCtx, t.containerID, t.id)
		case smartIDSignature:
			err = e.processor.ProcessSmartIDStatus(pollCtx, t.containerID, t.id)
		case smartIDCertificate:
			err = e.processor.ProcessSmartIDCertificateStatus(pollCtx, t.containerID, t.id)
		}
		e.report(logger, t, err)
	}
}

func (e *Engine) report(logger *logrus.Entry, t task, err error) {
	if err != nil {
		e.metrics.tasks.WithLabelValues(string(t.kind), "failure").Inc()
		logger.WithError(err).Warnf("Reprocessing status request %s failed", t.id)
		return
	}
	e.metrics.tasks.WithLabelValues(string(t.kind), "success").Inc()
}
