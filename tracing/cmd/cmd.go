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
	"github.com/nuts-foundation/nuts-siga/tracing"
	"github.com/spf13/pflag"
)

// FlagSet contains flags relevant for the engine
func FlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("tracing", pflag.ContinueOnError)
	defs := tracing.DefaultConfig()
	flagSet.String("tracing.endpoint", defs.Endpoint, "OTLP/HTTP collector endpoint for traces and logs (e.g. localhost:4318). Tracing is disabled when not set.")
	flagSet.Bool("tracing.insecure", defs.Insecure, "Disables TLS for the connection to the OTLP collector.")
	flagSet.String("tracing.servicename", defs.ServiceName, "Service name reported to the tracing backend.")
	return flagSet
}
