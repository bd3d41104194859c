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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSessionStore_expiry(t *testing.T) {
	storageEngine, miniRedis := NewTestStorageEngineRedis(t)
	store := storageEngine.GetSessionDatabase().GetStore(time.Minute, "expiry")
	require.NoError(t, store.Put(testKey, testValue))

	t.Run("put refreshes the TTL", func(t *testing.T) {
		miniRedis.FastForward(45 * time.Second)
		require.NoError(t, store.Put(testKey, testValue))
		miniRedis.FastForward(45 * time.Second)

		assert.True(t, store.Exists(testKey))
	})
	t.Run("expired entry", func(t *testing.T) {
		miniRedis.FastForward(2 * time.Minute)

		var actual testType
		err := store.Get(testKey, &actual)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRedisSessionStore_keyPrefix(t *testing.T) {
	storageEngine, miniRedis := NewTestStorageEngineRedis(t)
	store := storageEngine.GetSessionStore("siga", "sessions")

	require.NoError(t, store.Put(testKey, testValue))

	// key is hex encoded by go-stoabs
	assert.Equal(t, []string{"db_sessions:siga.sessions.6b65796e616d65"}, miniRedis.Keys())
}

func TestRedisSessionStore_brokenConnection(t *testing.T) {
	storageEngine, miniRedis := NewTestStorageEngineRedis(t)
	store := storageEngine.GetSessionStore("broken")
	miniRedis.Close()

	var actual testType
	err := store.Get(testKey, &actual)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.False(t, store.Exists(testKey))
}
