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

package http

import "time"

// DefaultConfig returns the default configuration for the HTTP engine.
func DefaultConfig() Config {
	return Config{
		Address:         ":8080",
		Log:             LogMetadataLevel,
		TLSMode:         TLSDisabledMode,
		BodyLimit:       "10M",
		ShutdownTimeout: 10 * time.Second,
		RateLimit: RateLimitConfig{
			Requests: 1,
			Burst:    10,
		},
	}
}

// Config is the config of the HTTP interface of the gateway.
type Config struct {
	// Address holds the interface address the HTTP service must be bound to, in the format of `interface:port` (e.g. localhost:5555).
	Address string `koanf:"address"`
	// CORS holds the configuration for Cross Origin Resource Sharing.
	CORS CORSConfig `koanf:"cors"`
	// TLSMode specifies whether TLS is enabled for this interface, and which flavor.
	TLSMode TLSMode `koanf:"tls"`
	// Log specifies what should be logged of HTTP requests.
	Log LogLevel `koanf:"log"`
	// BodyLimit is the maximum size of a request body, e.g. 10M. Containers are uploaded in the body.
	BodyLimit string `koanf:"bodylimit"`
	// ShutdownTimeout is how long in-flight requests get to complete on shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdowntimeout"`
	// RateLimit limits how often a client may start a signing session.
	RateLimit RateLimitConfig `koanf:"ratelimit"`
}

// LogLevel specifies what to log for incoming HTTP traffic.
type LogLevel string

const (
	// LogNothingLevel indicates nothing will be logged for incoming HTTP traffic.
	LogNothingLevel LogLevel = "nothing"
	// LogMetadataLevel indicates that only metadata (HTTP URI, method, response code, etc) will be logged for incoming HTTP traffic.
	LogMetadataLevel LogLevel = "metadata"
	// LogMetadataAndBodyLevel indicates that metadata and full request/reply bodies will be logged for incoming HTTP traffic.
	LogMetadataAndBodyLevel LogLevel = "metadata-and-body"
)

// TLSMode defines the values for TLS modes
type TLSMode string

const (
	// TLSDisabledMode specifies that TLS is not enabled for this interface.
	TLSDisabledMode TLSMode = "disabled"
	// TLSServerCertMode specifies that TLS is enabled for this interface, but no client certificate is required.
	TLSServerCertMode TLSMode = "server"
	// TLServerClientCertMode specifies that TLS is enabled for this interface, and that it will require a client certificate.
	TLServerClientCertMode TLSMode = "server-client"
)

// CORSConfig contains configuration for Cross Origin Resource Sharing.
type CORSConfig struct {
	// Origin specifies the AllowOrigin option. If no origins are given CORS is considered to be disabled.
	Origin []string `koanf:"origin"`
}

// Enabled returns whether CORS is enabled according to this configuration.
func (cors CORSConfig) Enabled() bool {
	return len(cors.Origin) > 0
}

// RateLimitConfig configures the token bucket every client gets for starting signing sessions.
type RateLimitConfig struct {
	// Requests is the number of requests per second that refill the bucket. 0 disables rate limiting.
	Requests float64 `koanf:"requests"`
	// Burst is the size of the bucket.
	Burst int `koanf:"burst"`
}

// Enabled returns whether rate limiting is enabled.
func (r RateLimitConfig) Enabled() bool {
	return r.Requests > 0
}
