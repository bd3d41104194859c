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

package cmd

import (
	"github.com/nuts-foundation/nuts-siga/reprocessing"
	"github.com/spf13/pflag"
)

// FlagSet contains flags relevant for the engine
func FlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("reprocessing", pflag.ContinueOnError)
	defs := reprocessing.DefaultConfig()
	flagSet.Bool("reprocessing.enabled", defs.Enabled, "Whether stalled Mobile-ID and Smart-ID sessions are polled again by this instance.")
	flagSet.Int("reprocessing.maxprocessingattempts", defs.MaxProcessingAttempts, "Number of polls after which a stalled session is no longer reprocessed.")
	flagSet.Duration("reprocessing.processingtimeout", defs.ProcessingTimeout, "Time after which a session that is still being processed is considered stalled, formatted as Golang duration (e.g. 30s).")
	flagSet.Duration("reprocessing.exceptiontimeout", defs.ExceptionTimeout, "Time after which a session whose last poll failed is polled again, formatted as Golang duration (e.g. 5s).")
	flagSet.Duration("reprocessing.fixedrate", defs.FixedRate, "Interval between the start of two reprocessing runs.")
	flagSet.Duration("reprocessing.initialdelay", defs.InitialDelay, "Time between startup and the first reprocessing run.")
	flagSet.Int("reprocessing.workers", defs.Workers, "Maximum number of concurrent provider polls of the reprocessing engine.")
	flagSet.Duration("reprocessing.shutdowntimeout", defs.ShutdownTimeout, "Time shutdown waits for running provider polls before they are abandoned.")
	flagSet.Float64("reprocessing.ratelimit", defs.RateLimit, "Maximum number of provider polls per second of the reprocessing engine, 0 means unlimited.")
	return flagSet
}
