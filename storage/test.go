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
	"fmt"
	"net"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/daangn/minimemcached"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/stretchr/testify/require"
)

// NewTestStorageEngine creates a configured storage engine with an in-memory session database.
func NewTestStorageEngine(t testing.TB) Engine {
	result := New()
	require.NoError(t, result.Configure(*core.NewServerConfig()))
	t.Cleanup(func() {
		_ = result.Shutdown()
	})
	return result
}

// NewTestStorageEngineRedis creates a configured storage engine with a session database backed by an in-process Redis server.
func NewTestStorageEngineRedis(t testing.TB) (Engine, *miniredis.Miniredis) {
	redis := miniredis.RunT(t)
	result := New().(*engine)
	result.config.Session.Redis = RedisConfig{Address: redis.Addr(), Database: "db"}
	require.NoError(t, result.Configure(*core.NewServerConfig()))
	t.Cleanup(func() {
		_ = result.Shutdown()
	})
	return result, redis
}

// NewTestInMemorySessionDatabase creates an in-memory session database, which is closed when the test ends.
func NewTestInMemorySessionDatabase(t testing.TB) *InMemorySessionDatabase {
	db := NewInMemorySessionDatabase()
	t.Cleanup(func() {
		db.close()
	})
	return db
}

func runMemcached(t testing.TB) *minimemcached.MiniMemcached {
	port, err := getRandomAvailablePort()
	require.NoError(t, err)
	m, err := minimemcached.Run(&minimemcached.Config{Port: uint16(port)})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func memcachedAddress(m *minimemcached.MiniMemcached) string {
	return fmt.Sprintf("localhost:%d", m.Port())
}

func getRandomAvailablePort() (int, error) {
	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port, nil
}
