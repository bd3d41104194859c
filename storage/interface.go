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

	"github.com/nuts-foundation/nuts-siga/core"
)

// ErrNotFound is returned when an entry is not found in a session store.
var ErrNotFound = errors.New("not found")

// Engine defines the interface for the storage engine.
type Engine interface {
	core.Engine
	core.Configurable
	core.Runnable

	// GetSessionDatabase returns the SessionDatabase that was configured.
	GetSessionDatabase() SessionDatabase
	// GetSessionStore returns a SessionStore identified by the given keys, with the configured session TTL.
	GetSessionStore(keys ...string) SessionStore
}

// SessionDatabase is a non-persistent database that holds session data on a KV basis.
// Keys could be container sessions, nonce's, etc.
// All entries are stored with a TTL, so they will be removed automatically.
// The database may be shared by multiple nodes, so callers must not assume they're the only writer.
type SessionDatabase interface {
	// GetStore returns a SessionStore with the given keys as key prefixes.
	// The keys are used to logically partition the store, eg: tenants and/or flows that are not allowed to overlap like credential issuance and verification.
	// The TTL is the time-to-live for the entries in the store, which is refreshed on every Put.
	GetStore(ttl time.Duration, keys ...string) SessionStore
	// close stops any background processes and closes the database.
	close()
}

// SessionStore is a key-value store that holds session data.
// The SessionStore is an abstraction for underlying storage, it automatically adds prefixes for logical partitions.
type SessionStore interface {
	// Delete deletes the entry for the given key.
	// It does not return an error if the key does not exist.
	Delete(key string) error
	// Exists returns true if the key exists.
	Exists(key string) bool
	// Get returns the value for the given key.
	// Returns ErrNotFound if the key does not exist.
	Get(key string, target interface{}) error
	// Put stores the given value for the given key, replacing any existing value.
	Put(key string, value interface{}) error
	// GetAndDelete combines Get and Delete as a convenience for burning nonce entries.
	GetAndDelete(key string, target interface{}) error
	// Iterate calls fn with the key and the JSON value of every entry in the store. The order is undefined.
	// Entries written or deleted during iteration may or may not be visited.
	// If fn returns an error, iteration stops and the error is returned.
	Iterate(fn func(key string, value []byte) error) error
}
