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
	"testing"

	"github.com/google/uuid"
	"github.com/nuts-foundation/nuts-siga/asic"
	"github.com/nuts-foundation/nuts-siga/storage"
)

// NewTestStore returns a Store backed by an in-memory storage engine.
func NewTestStore(t testing.TB) Store {
	return NewStore(storage.NewTestStorageEngine(t).GetSessionStore(StoreKeys...))
}

// NewTestHashcodeSession returns a HASHCODE session with a random ID and the given data files.
func NewTestHashcodeSession(dataFiles ...asic.DataFile) *ContainerSession {
	return &ContainerSession{
		ID:          uuid.NewString(),
		Type:        Hashcode,
		ClientName:  "client",
		ServiceName: "service",
		ServiceUUID: "a7fd7728-a3ea-4975-bfab-f240a67e894f",
		DataFiles:   dataFiles,
	}
}
