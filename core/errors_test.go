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

package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	outer := NewCodedError("INVALID_SESSION_DATA", "invalid session data")
	cause := errors.New("no data to sign")

	err := WrapError(outer, cause)

	assert.EqualError(t, err, "invalid session data: no data to sign")
	assert.ErrorIs(t, err, outer)
	assert.ErrorIs(t, err, cause)
}

func TestErrorCodeOf(t *testing.T) {
	coded := NewCodedError("INVALID_CONTAINER", "invalid container")

	t.Run("coded error", func(t *testing.T) {
		assert.Equal(t, ErrorCode("INVALID_CONTAINER"), ErrorCodeOf(coded))
	})
	t.Run("wrapped with WrapError", func(t *testing.T) {
		assert.Equal(t, ErrorCode("INVALID_CONTAINER"), ErrorCodeOf(WrapError(coded, errors.New("cause"))))
	})
	t.Run("uncoded error", func(t *testing.T) {
		assert.Equal(t, InternalServerErrorCode, ErrorCodeOf(errors.New("oops")))
	})
}
