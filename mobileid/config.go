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

package mobileid

import "time"

// DefaultConfig returns the default configuration of the Mobile-ID client.
func DefaultConfig() Config {
	return Config{
		URL:           "https://tsp.demo.sk.ee/mid-api",
		Timeout:       10 * time.Second,
		Retries:       3,
		StatusTimeout: time.Second,
	}
}

// Config specifies the connection to the Mobile-ID REST API.
type Config struct {
	// URL is the base URL of the Mobile-ID REST API.
	URL string `koanf:"url"`
	// Timeout bounds every HTTP request.
	Timeout time.Duration `koanf:"timeout"`
	// Retries is the number of attempts for idempotent requests failing on transport errors.
	Retries int `koanf:"retries"`
	// StatusTimeout is the long poll time the service may wait before answering a status request.
	StatusTimeout time.Duration `koanf:"statustimeout"`
}
