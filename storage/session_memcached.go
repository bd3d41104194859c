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
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	memcachestore "github.com/eko/gocache/store/memcache/v4"
)

var _ SessionDatabase = (*MemcachedSessionDatabase)(nil)

// indexKeySuffix is appended to the store prefix to form the key of the key index.
// '#' is not a valid character in session keys, so it can't collide with an entry.
const indexKeySuffix = "#index"

// maxIndexUpdateAttempts bounds the number of compare-and-swap attempts when updating the key index.
var maxIndexUpdateAttempts uint = 10

var errIndexConflict = errors.New("key index was modified concurrently")

// MemcachedSessionDatabase is a SessionDatabase backed by memcached, which can be shared by multiple nodes.
// Memcached can't list its keys, so every store maintains a key index entry, updated with compare-and-swap.
type MemcachedSessionDatabase struct {
	client     *memcache.Client
	underlying *cache.Cache[[]byte]
}

// NewMemcachedSessionDatabase creates a new MemcachedSessionDatabase using an initialized memcache.Client.
func NewMemcachedSessionDatabase(client *memcache.Client) *MemcachedSessionDatabase {
	memcachedStore := memcachestore.NewMemcache(client, store.WithExpiration(DefaultConfig().Session.TTL))
	return &MemcachedSessionDatabase{
		client:     client,
		underlying: cache.New[[]byte](memcachedStore),
	}
}

func (s *MemcachedSessionDatabase) GetStore(ttl time.Duration, keys ...string) SessionStore {
	return gocacheSessionStore{
		underlying: s.underlying,
		ttl:        ttl,
		prefixes:   keys,
		index: memcachedKeyIndex{
			client: s.client,
			key:    strings.Join(keys, keySeparator) + indexKeySuffix,
			ttl:    ttl,
		},
	}
}

func (s *MemcachedSessionDatabase) close() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

type memcachedKeyIndex struct {
	client *memcache.Client
	key    string
	ttl    time.Duration
}

func (m memcachedKeyIndex) add(key string) error {
	return m.update(func(keys []string) ([]string, bool) {
		if slices.Contains(keys, key) {
			return keys, false
		}
		return append(keys, key), true
	})
}

func (m memcachedKeyIndex) remove(key string) error {
	return m.update(func(keys []string) ([]string, bool) {
		i := slices.Index(keys, key)
		if i < 0 {
			return keys, false
		}
		return slices.Delete(keys, i, i+1), true
	})
}

func (m memcachedKeyIndex) keys() ([]string, error) {
	item, err := m.client.Get(m.key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var keys []string
	if err = json.Unmarshal(item.Value, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// update applies the modifier to the index, retrying when another writer changed the index in between.
// The index is given at least the TTL of the entries, so it never expires before the entries it lists.
func (m memcachedKeyIndex) update(modifier func(keys []string) ([]string, bool)) error {
	return retry.Do(func() error {
		item, err := m.client.Get(m.key)
		if errors.Is(err, memcache.ErrCacheMiss) {
			keys, changed := modifier(nil)
			if !changed {
				return nil
			}
			data, _ := json.Marshal(keys)
			err = m.client.Add(&memcache.Item{Key: m.key, Value: data, Expiration: m.expiration()})
			if errors.Is(err, memcache.ErrNotStored) {
				return errIndexConflict
			}
			return err
		}
		if err != nil {
			return retry.Unrecoverable(err)
		}
		var keys []string
		if err = json.Unmarshal(item.Value, &keys); err != nil {
			return retry.Unrecoverable(err)
		}
		keys, changed := modifier(keys)
		if !changed {
			return nil
		}
		item.Value, _ = json.Marshal(keys)
		item.Expiration = m.expiration()
		err = m.client.CompareAndSwap(item)
		if errors.Is(err, memcache.ErrCASConflict) || errors.Is(err, memcache.ErrNotStored) {
			return errIndexConflict
		}
		return err
	},
		retry.Attempts(maxIndexUpdateAttempts),
		retry.Delay(5*time.Millisecond),
		retry.DelayType(retry.RandomDelay),
		retry.MaxJitter(20*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}

func (m memcachedKeyIndex) expiration() int32 {
	return int32(m.ttl.Seconds()) + 1
}
