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

package mobileid

import (
	"testing"

	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/stretchr/testify/assert"
)

func TestChallengeCode(t *testing.T) {
	testCases := []struct {
		hash     []byte
		expected string
	}{
		{hash: []byte{0x00, 0x00}, expected: "0000"},
		{hash: []byte{0xFF, 0xFF}, expected: "8191"},
		{hash: []byte{0x04, 0x01}, expected: "0129"},
		// only the 6 leftmost bits of the first byte count
		{hash: []byte{0x07, 0x01}, expected: "0129"},
		// only the 7 rightmost bits of the last byte count
		{hash: []byte{0x04, 0x55, 0x81}, expected: "0129"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ChallengeCode(tc.hash))
	}
	assert.Empty(t, ChallengeCode(nil))
}

func TestResolveLanguage(t *testing.T) {
	language, err := ResolveLanguage("")
	assert.NoError(t, err)
	assert.Equal(t, "EST", language)

	language, err = ResolveLanguage("LIT")
	assert.NoError(t, err)
	assert.Equal(t, "LIT", language)

	_, err = ResolveLanguage("FIN")
	assert.ErrorIs(t, err, ErrInvalidLanguage)
}

func TestMapStatus(t *testing.T) {
	testCases := map[[2]string]string{
		{"RUNNING", ""}:                         session.StatusOutstandingTransaction,
		{"COMPLETE", "OK"}:                      session.StatusSignature,
		{"COMPLETE", "TIMEOUT"}:                 session.StatusExpiredTransaction,
		{"COMPLETE", "USER_CANCELLED"}:          session.StatusUserCancel,
		{"COMPLETE", "SIGNATURE_HASH_MISMATCH"}: session.StatusNotValid,
		{"COMPLETE", "DELIVERY_ERROR"}:          session.StatusSendingError,
		{"COMPLETE", "SIM_ERROR"}:               session.StatusSimError,
		{"COMPLETE", "PHONE_ABSENT"}:            session.StatusPhoneAbsent,
	}
	for input, expected := range testCases {
		status, err := MapStatus(input[0], input[1])

		assert.NoError(t, err)
		assert.Equal(t, expected, status, input)
	}
	t.Run("unexpected result", func(t *testing.T) {
		_, err := MapStatus("COMPLETE", "NOT_MID_CLIENT")

		assert.ErrorIs(t, err, ErrClient)
	})
	t.Run("unexpected state", func(t *testing.T) {
		_, err := MapStatus("PAUSED", "")

		assert.ErrorIs(t, err, ErrClient)
	})
}
