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
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nuts-foundation/nuts-siga/reprocessing/log"
	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"
)

// pool runs tasks on a bounded number of goroutines. A task is identified by a key,
// a key that still has a task in flight is not accepted again.
type pool struct {
	slots    *semaphore.Weighted
	active   *atomic.Int32
	inFlight sync.Map
}

func newPool(workers int) *pool {
	return &pool{
		slots:  semaphore.NewWeighted(int64(workers)),
		active: atomic.NewInt32(0),
	}
}

// submit runs fn on its own goroutine as soon as a slot is free. It blocks until then, or until ctx is done.
// It returns false if the task was not accepted: the key is in flight or ctx is done.
func (p *pool) submit(ctx context.Context, key string, fn func()) bool {
	if _, loaded := p.inFlight.LoadOrStore(key, struct{}{}); loaded {
		return false
	}
	if err := p.slots.Acquire(ctx, 1); err != nil {
		p.inFlight.Delete(key)
		return false
	}
	p.active.Inc()
	go func() {
		defer func() {
			p.slots.Release(1)
			p.inFlight.Delete(key)
			// last, so an idle pool has released every key and slot
			p.active.Dec()
		}()
		fn()
	}()
	return true
}

func (p *pool) activeCount() int32 {
	return p.active.Load()
}

// awaitIdle waits up to timeout for running tasks to finish, logging progress every second.
// It returns an error if tasks are still running afterwards. Those are abandoned.
func (p *pool) awaitIdle(timeout time.Duration) error {
	attempts := uint(timeout/time.Second) + 1
	return retry.Do(func() error {
		if active := p.activeCount(); active > 0 {
			return fmt.Errorf("%d reprocessing task(s) still active", active)
		}
		return nil
	},
		retry.Attempts(attempts),
		retry.Delay(time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Logger().Infof("Nr. of active status polling tasks left: %d, timeout in: %ds", p.activeCount(), attempts-n-1)
		}),
	)
}
