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
	"fmt"

	"github.com/nuts-foundation/nuts-siga/core"
)

const (
	// InvalidSessionDataCode is the error code for requests that don't fit the state of the session.
	InvalidSessionDataCode core.ErrorCode = "INVALID_SESSION_DATA"
	// ResourceNotFoundCode is the error code for unknown or expired container sessions.
	ResourceNotFoundCode core.ErrorCode = "RESOURCE_NOT_FOUND"
)

// ErrInvalidSessionData is returned when an operation is not allowed given the state of the session,
// e.g. finalizing an unknown or already finalized signature.
var ErrInvalidSessionData = core.NewCodedError(InvalidSessionDataCode, "invalid session data")

// ErrSessionNotFound is returned when a container session does not exist (anymore).
var ErrSessionNotFound = core.NewCodedError(ResourceNotFoundCode, "session not found")

// InvalidSessionData returns an ErrInvalidSessionData with the given detail message.
func InvalidSessionData(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidSessionData, fmt.Sprintf(format, args...))
}
