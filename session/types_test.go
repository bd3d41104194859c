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

	"github.com/nuts-foundation/nuts-siga/asic"
	"github.com/stretchr/testify/assert"
)

func TestContainerSession_Validate(t *testing.T) {
	t.Run("hashcode", func(t *testing.T) {
		session := NewTestHashcodeSession(asic.NewDataFile("a.txt", []byte("a")))

		assert.NoError(t, session.Validate())
	})
	t.Run("hashcode with container", func(t *testing.T) {
		session := NewTestHashcodeSession()
		session.Container = []byte("zip")

		assert.ErrorIs(t, session.Validate(), ErrInvalidSessionData)
	})
	t.Run("asic", func(t *testing.T) {
		session := &ContainerSession{ID: "1", Type: ASiC, Container: []byte("zip")}

		assert.NoError(t, session.Validate())
	})
	t.Run("asic without container", func(t *testing.T) {
		session := &ContainerSession{ID: "1", Type: ASiC}

		assert.ErrorIs(t, session.Validate(), ErrInvalidSessionData)
	})
	t.Run("unknown type", func(t *testing.T) {
		session := &ContainerSession{ID: "1", Type: "DDOC"}

		err := session.Validate()

		assert.ErrorIs(t, err, ErrInvalidSessionData)
		assert.ErrorContains(t, err, "unknown type 'DDOC'")
	})
	t.Run("no ID", func(t *testing.T) {
		session := &ContainerSession{Type: Hashcode}

		assert.ErrorIs(t, session.Validate(), ErrInvalidSessionData)
	})
}

func TestContainerSession_SignatureSessions(t *testing.T) {
	session := NewTestHashcodeSession()
	assert.Nil(t, session.SignatureSession("1"))

	session.AddSignatureSession("1", &SignatureSession{SigningType: Remote})
	assert.Equal(t, Remote, session.SignatureSession("1").SigningType)

	session.RemoveSignatureSession("1")
	session.RemoveSignatureSession("unknown")
	assert.Nil(t, session.SignatureSession("1"))
}

func TestContainerSession_SetCertificateSession(t *testing.T) {
	session := NewTestHashcodeSession()

	session.SetCertificateSession("first", &CertificateSession{SessionCode: "1"})
	session.SetCertificateSession("second", &CertificateSession{SessionCode: "2"})

	assert.Nil(t, session.CertificateSession("first"))
	assert.Equal(t, "2", session.CertificateSession("second").SessionCode)
	assert.Len(t, session.CertificateSessions, 1)
}

func TestContainerSession_TakeCertificate(t *testing.T) {
	session := NewTestHashcodeSession()
	session.AddCertificate("PNOEE-1", []byte{1, 2, 3})

	certificate, ok := session.TakeCertificate("PNOEE-1")
	assert.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, certificate)

	_, ok = session.TakeCertificate("PNOEE-1")
	assert.False(t, ok)
}

func TestContainerSession_FindSignature(t *testing.T) {
	session := NewTestHashcodeSession()
	session.AddSignature(asic.Signature{ID: "1"})
	session.AddSignature(asic.Signature{ID: "2"})

	signature, ok := session.FindSignature("2")
	assert.True(t, ok)
	assert.Equal(t, "2", signature.ID)

	_, ok = session.FindSignature("3")
	assert.False(t, ok)
}

func TestSignatureSession_IsFinalized(t *testing.T) {
	assert.False(t, SignatureSession{DataToSign: &DataToSign{}}.IsFinalized())
	assert.True(t, SignatureSession{}.IsFinalized())
}
