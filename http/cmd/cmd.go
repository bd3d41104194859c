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
	"fmt"

	"github.com/nuts-foundation/nuts-siga/http"
	"github.com/spf13/pflag"
)

// FlagSet defines the set of flags that sets the engine configuration
func FlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("http", pflag.ContinueOnError)

	defs := http.DefaultConfig()
	flags.String("http.address", defs.Address, "Address and port the server will be listening to.")
	flags.StringSlice("http.cors.origin", defs.CORS.Origin, "When set, enables CORS from the specified origins.")
	flags.String("http.tls", string(defs.TLSMode), fmt.Sprintf("TLS mode of the HTTP interface: '%s', '%s' or '%s' (requires a client certificate). TLS is configured with the tls.* properties.", http.TLSDisabledMode, http.TLSServerCertMode, http.TLServerClientCertMode))
	flags.String("http.log", string(defs.Log), fmt.Sprintf("What to log about HTTP requests. Options are '%s', '%s' (log request method, URI, IP and response code), and '%s' (log the request and response body, in addition to the metadata).", http.LogNothingLevel, http.LogMetadataLevel, http.LogMetadataAndBodyLevel))
	flags.String("http.bodylimit", defs.BodyLimit, "Maximum size of a request body, e.g. 10M. Uploaded containers must fit in it.")
	flags.Duration("http.shutdowntimeout", defs.ShutdownTimeout, "Time in-flight requests get to complete on shutdown, formatted as Golang duration (e.g. 10s).")
	flags.Float64("http.ratelimit.requests", defs.RateLimit.Requests, "Number of signing sessions per second a client may start on average. 0 disables rate limiting.")
	flags.Int("http.ratelimit.burst", defs.RateLimit.Burst, "Number of signing sessions a client may start at once.")

	return flags
}
