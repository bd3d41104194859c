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
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
)

const keySeparator = "/"

// keyIndex lists the keys of a store, for stores whose backend can't list keys itself.
type keyIndex interface {
	add(key string) error
	remove(key string) error
	keys() ([]string, error)
}

// gocacheSessionStore is a SessionStore backed by a gocache cache.
type gocacheSessionStore struct {
	underlying *cache.Cache[[]byte]
	ttl        time.Duration
	prefixes   []string
	index      keyIndex
}

func (s gocacheSessionStore) Delete(key string) error {
	err := s.underlying.Delete(context.Background(), s.getFullKey(key))
	if err != nil && !isNotFound(err) {
		return err
	}
	return s.index.remove(s.getFullKey(key))
}

func (s gocacheSessionStore) Exists(key string) bool {
	_, err := s.underlying.Get(context.Background(), s.getFullKey(key))
	return err == nil
}

func (s gocacheSessionStore) Get(key string, target interface{}) error {
	data, err := s.underlying.Get(context.Background(), s.getFullKey(key))
	if err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, target)
}

func (s gocacheSessionStore) Put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err = s.underlying.Set(context.Background(), s.getFullKey(key), data, store.WithExpiration(s.ttl)); err != nil {
		return err
	}
	return s.index.add(s.getFullKey(key))
}

func (s gocacheSessionStore) GetAndDelete(key string, target interface{}) error {
	if err := s.Get(key, target); err != nil {
		return err
	}
	return s.Delete(key)
}

func (s gocacheSessionStore) Iterate(fn func(key string, value []byte) error) error {
	fullKeys, err := s.index.keys()
	if err != nil {
		return err
	}
	prefix := s.getFullKey("")
	for _, fullKey := range fullKeys {
		if !strings.HasPrefix(fullKey, prefix) {
			continue
		}
		data, err := s.underlying.Get(context.Background(), fullKey)
		if isNotFound(err) {
			// expired since it was listed
			_ = s.index.remove(fullKey)
			continue
		}
		if err != nil {
			return err
		}
		if err = fn(strings.TrimPrefix(fullKey, prefix), data); err != nil {
			return err
		}
	}
	return nil
}

func (s gocacheSessionStore) getFullKey(key string) string {
	return strings.Join(append(append([]string{}, s.prefixes...), key), keySeparator)
}

func isNotFound(err error) bool {
	return errors.Is(err, store.NotFound{}) || errors.Is(err, memcache.ErrCacheMiss)
}
