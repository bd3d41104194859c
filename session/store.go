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

package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/session/log"
	"github.com/nuts-foundation/nuts-siga/storage"
)

// StoreKeys are the session store partition keys of container sessions.
var StoreKeys = []string{"siga", "sessions"}

// Store holds container sessions. Every Put replaces the whole session; concurrent writers to the same session are last-write-wins.
type Store interface {
	// Get returns the session with the given ID. It returns ErrSessionNotFound if it doesn't exist or expired.
	Get(id string) (*ContainerSession, error)
	// Put stores the session, refreshing its TTL.
	Put(session *ContainerSession) error
	// Remove deletes the session. Removing a session that doesn't exist is not an error.
	Remove(id string) error
	// Scan calls fn for every stored session. Sessions that can't be read are skipped.
	// Iteration stops at the first error returned by fn.
	Scan(fn func(session *ContainerSession) error) error
}

// NewStore creates a Store on top of a storage.SessionStore.
func NewStore(sessions storage.SessionStore) Store {
	return &store{sessions: sessions}
}

type store struct {
	sessions storage.SessionStore
}

func (s *store) Get(id string) (*ContainerSession, error) {
	result := new(ContainerSession)
	err := s.sessions.Get(id, result)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read session %s: %w", id, err)
	}
	return result, nil
}

func (s *store) Put(session *ContainerSession) error {
	if err := session.Validate(); err != nil {
		return err
	}
	if err := s.sessions.Put(session.ID, session); err != nil {
		return fmt.Errorf("unable to store session %s: %w", session.ID, err)
	}
	return nil
}

func (s *store) Remove(id string) error {
	if err := s.sessions.Delete(id); err != nil {
		return fmt.Errorf("unable to remove session %s: %w", id, err)
	}
	return nil
}

func (s *store) Scan(fn func(session *ContainerSession) error) error {
	return s.sessions.Iterate(func(key string, value []byte) error {
		session := new(ContainerSession)
		if err := json.Unmarshal(value, session); err != nil {
			log.Logger().
				WithError(err).
				WithField(core.LogFieldContainerID, key).
				Warn("Skipping unreadable container session")
			return nil
		}
		return fn(session)
	})
}
