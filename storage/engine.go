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
	"context"
	"fmt"
	"time"

	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/storage/log"
	"github.com/redis/go-redis/v9"
)

const moduleName = "Storage"

// healthCheckTimeout bounds the time a health check waits for the session backend.
const healthCheckTimeout = 2 * time.Second

// sessionStoreName is the name of the Redis store (key prefix) holding all session shelves.
const sessionStoreName = "sessions"

var _ core.Injectable = (*engine)(nil)
var _ core.Diagnosable = (*engine)(nil)

// New creates a new instance of the storage engine.
func New() Engine {
	return &engine{
		config: DefaultConfig(),
	}
}

type engine struct {
	config          Config
	sessionDatabase SessionDatabase
	// backend names the session backend in use, for diagnostics.
	backend string
	// ping checks the connection to the session backend, nil for in-memory.
	ping func(ctx context.Context) error
}

func (e *engine) Name() string {
	return moduleName
}

func (e *engine) Config() interface{} {
	return &e.config
}

func (e *engine) GetSessionDatabase() SessionDatabase {
	return e.sessionDatabase
}

func (e *engine) GetSessionStore(keys ...string) SessionStore {
	return e.sessionDatabase.GetStore(e.config.Session.TTL, keys...)
}

// Start does nothing: all connections are set up in Configure, so dependent engines can use them in their own Configure.
func (e *engine) Start() error {
	return nil
}

// Shutdown closes the session database.
func (e *engine) Shutdown() error {
	if e.sessionDatabase != nil {
		e.sessionDatabase.close()
	}
	return nil
}

// Configure sets up the session database, which is memcached, Redis or in-memory (in that order of preference).
func (e *engine) Configure(config core.ServerConfig) error {
	sessionConfig := e.config.Session
	if err := sessionConfig.validate(); err != nil {
		return fmt.Errorf("invalid session storage config: %w", err)
	}
	switch {
	case sessionConfig.Memcached.isConfigured():
		client, err := newMemcachedClient(sessionConfig.Memcached)
		if err != nil {
			return err
		}
		log.Logger().Infof("Storing sessions in memcached (address=%v)", sessionConfig.Memcached.Address)
		e.sessionDatabase = NewMemcachedSessionDatabase(client)
		e.backend = "memcached"
		e.ping = func(_ context.Context) error {
			return client.Ping()
		}
	case sessionConfig.Redis.isConfigured():
		redis.SetLogger(redisLogWriter{logger: log.Logger()})
		client, err := newRedisClient(sessionConfig.Redis)
		if err != nil {
			return fmt.Errorf("unable to configure Redis client: %w", err)
		}
		if err = pingRedis(context.Background(), client); err != nil {
			_ = client.Close()
			return fmt.Errorf("unable to connect to Redis: %w", err)
		}
		db, err := createRedisStore(sessionConfig.Redis.Database, sessionStoreName, client)
		if err != nil {
			return fmt.Errorf("unable to create Redis session store: %w", err)
		}
		log.Logger().Info("Storing sessions in Redis")
		e.sessionDatabase = NewRedisSessionDatabase(db)
		e.backend = "redis"
		e.ping = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
	default:
		if config.Strictmode {
			log.Logger().Warn("Sessions are stored in memory, which doesn't work when running multiple nodes. Configure memcached or Redis for production use.")
		}
		e.sessionDatabase = NewInMemorySessionDatabase()
		e.backend = "in-memory"
	}
	return nil
}

// CheckHealth returns an error when the session backend can't be reached.
func (e *engine) CheckHealth() error {
	if e.ping == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()
	if err := e.ping(ctx); err != nil {
		return fmt.Errorf("%s unreachable: %w", e.backend, err)
	}
	return nil
}

func (e *engine) Diagnostics() []core.DiagnosticResult {
	return []core.DiagnosticResult{
		core.GenericDiagnosticResult{Title: "session_backend", Outcome: e.backend},
		core.GenericDiagnosticResult{Title: "session_ttl", Outcome: e.config.Session.TTL.String()},
	}
}
