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

package storage

import (
	"errors"
	"time"
)

// DefaultConfig returns the default configuration for the storage engine.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			TTL: 30 * time.Minute,
		},
	}
}

// Config specifies config for the storage engine.
type Config struct {
	Session SessionConfig `koanf:"session"`
}

// SessionConfig specifies config for the session storage engine.
// When neither Memcached nor Redis is configured, sessions are kept in memory, which only works for a single node.
type SessionConfig struct {
	// TTL is the idle time after which a session expires. It is refreshed on every write.
	TTL       time.Duration   `koanf:"ttl"`
	Memcached MemcachedConfig `koanf:"memcached"`
	Redis     RedisConfig     `koanf:"redis"`
}

func (c SessionConfig) validate() error {
	if c.TTL <= 0 {
		return errors.New("session TTL must be positive")
	}
	if c.Memcached.isConfigured() && c.Redis.isConfigured() {
		return errors.New("only one of memcached and redis can be configured for session storage")
	}
	return nil
}
