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
	"errors"
	"time"

	"github.com/nuts-foundation/nuts-siga/session"
)

// Config contains the configuration of the status reprocessing engine.
type Config struct {
	// Enabled indicates whether stalled sub-sessions are reprocessed on this instance.
	Enabled bool `koanf:"enabled"`
	// MaxProcessingAttempts is the highest processing counter at which a sub-session is still reprocessed.
	MaxProcessingAttempts int `koanf:"maxprocessingattempts"`
	// ProcessingTimeout is the time after which a PROCESSING sub-session is considered stalled.
	ProcessingTimeout time.Duration `koanf:"processingtimeout"`
	// ExceptionTimeout is the time after which an EXCEPTION sub-session is retried.
	ExceptionTimeout time.Duration `koanf:"exceptiontimeout"`
	// FixedRate is the interval between the start of two runs.
	FixedRate time.Duration `koanf:"fixedrate"`
	// InitialDelay is the time between starting the engine and the first run.
	InitialDelay time.Duration `koanf:"initialdelay"`
	// Workers is the maximum number of concurrent provider polls.
	Workers int `koanf:"workers"`
	// ShutdownTimeout is how long shutdown waits for running polls. Polls still running after it are abandoned.
	ShutdownTimeout time.Duration `koanf:"shutdowntimeout"`
	// RateLimit is the maximum number of provider polls per second. 0 means unlimited.
	RateLimit float64 `koanf:"ratelimit"`
}

// DefaultConfig returns the default configuration of the status reprocessing engine.
func DefaultConfig() Config {
	return Config{
		Enabled:               true,
		MaxProcessingAttempts: 10,
		ProcessingTimeout:     30 * time.Second,
		ExceptionTimeout:      5 * time.Second,
		FixedRate:             5 * time.Second,
		InitialDelay:          5 * time.Second,
		Workers:               10,
		ShutdownTimeout:       5 * time.Minute,
	}
}

func (c Config) validate() error {
	if c.FixedRate <= 0 {
		return errors.New("reprocessing.fixedrate must be positive")
	}
	if c.Workers < 1 {
		return errors.New("reprocessing.workers must be at least 1")
	}
	if c.RateLimit < 0 {
		return errors.New("reprocessing.ratelimit can't be negative")
	}
	return nil
}

// ShouldReprocess returns true if the sub-session with the given status stalled and didn't use up its attempts:
// it's PROCESSING for longer than the processing timeout, or EXCEPTION for longer than the exception timeout.
func (c Config) ShouldReprocess(status session.SessionStatus, now time.Time) bool {
	if status.ProcessingCounter > c.MaxProcessingAttempts {
		return false
	}
	switch status.ProcessingStatus {
	case session.Processing:
		return status.Age(now) > c.ProcessingTimeout
	case session.Exception:
		return status.Age(now) > c.ExceptionTimeout
	default:
		return false
	}
}
