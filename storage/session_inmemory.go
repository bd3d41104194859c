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
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/store/go_cache/v4"
	gocacheclient "github.com/patrickmn/go-cache"
)

var _ SessionDatabase = (*InMemorySessionDatabase)(nil)

var sessionStorePruneInterval = 10 * time.Minute

// InMemorySessionDatabase is an in memory database that holds session data on a KV basis.
// It is only suitable for a single node, since the data isn't shared.
type InMemorySessionDatabase struct {
	client     *gocacheclient.Cache
	underlying *cache.Cache[[]byte]
}

// NewInMemorySessionDatabase creates a new in memory session database.
func NewInMemorySessionDatabase() *InMemorySessionDatabase {
	gocacheClient := gocacheclient.New(5*time.Minute, sessionStorePruneInterval)
	gocacheStore := go_cache.NewGoCache(gocacheClient)
	return &InMemorySessionDatabase{
		client:     gocacheClient,
		underlying: cache.New[[]byte](gocacheStore),
	}
}

func (s *InMemorySessionDatabase) GetStore(ttl time.Duration, keys ...string) SessionStore {
	return gocacheSessionStore{
		underlying: s.underlying,
		ttl:        ttl,
		prefixes:   keys,
		index:      inMemoryKeyIndex{client: s.client},
	}
}

func (s *InMemorySessionDatabase) close() {
	s.client.Flush()
}

// inMemoryKeyIndex lists keys straight from the go-cache client, which already knows all its keys.
type inMemoryKeyIndex struct {
	client *gocacheclient.Cache
}

func (i inMemoryKeyIndex) add(_ string) error {
	return nil
}

func (i inMemoryKeyIndex) remove(_ string) error {
	return nil
}

func (i inMemoryKeyIndex) keys() ([]string, error) {
	items := i.client.Items()
	result := make([]string, 0, len(items))
	for key := range items {
		result = append(result, key)
	}
	return result, nil
}
