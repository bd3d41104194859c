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

package smartid

import (
	"testing"

	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/stretchr/testify/assert"
)

func TestVerificationCode(t *testing.T) {
	assert.Equal(t, "7189", VerificationCode(nil))
	assert.Equal(t, "2568", VerificationCode([]byte("test")))
	assert.Equal(t, "4331", VerificationCode(make([]byte, 64)))
}

func TestMapStatus(t *testing.T) {
	testCases := map[string]string{
		"USER_REFUSED":                              session.StatusUserCancel,
		"USER_REFUSED_CERT_CHOICE":                  session.StatusUserCancel,
		"USER_REFUSED_VC_CHOICE":                    session.StatusUserCancel,
		"USER_REFUSED_DISPLAYTEXTANDPIN":            session.StatusUserCancel,
		"USER_REFUSED_CONFIRMATIONMESSAGE":          session.StatusUserCancel,
		"WRONG_VC":                                  session.StatusUserSelectedWrongVC,
		"TIMEOUT":                                   session.StatusExpiredTransaction,
		"DOCUMENT_UNUSABLE":                         session.StatusDocumentUnusable,
		"REQUIRED_INTERACTION_NOT_SUPPORTED_BY_APP": session.StatusNotSupportedByApp,
	}
	for endResult, expected := range testCases {
		for _, sessionType := range []SessionType{SigningSession, CertificateChoiceSession} {
			status, err := MapStatus("COMPLETE", endResult, sessionType)

			assert.NoError(t, err)
			assert.Equal(t, expected, status, endResult)
		}
	}
	t.Run("ok depends on session type", func(t *testing.T) {
		status, _ := MapStatus("COMPLETE", "OK", SigningSession)
		assert.Equal(t, session.StatusSignature, status)

		status, _ = MapStatus("COMPLETE", "OK", CertificateChoiceSession)
		assert.Equal(t, session.StatusCertificate, status)
	})
	t.Run("running", func(t *testing.T) {
		status, err := MapStatus("RUNNING", "", SigningSession)

		assert.NoError(t, err)
		assert.Equal(t, session.StatusOutstandingTransaction, status)
	})
	t.Run("unexpected end result", func(t *testing.T) {
		_, err := MapStatus("COMPLETE", "SERVER_ERROR", SigningSession)

		assert.ErrorIs(t, err, ErrClient)
	})
}
