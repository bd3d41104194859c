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
	"context"
	"crypto/sha256"
	"crypto/x509"
	"encoding/binary"
	"fmt"

	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/session"
)

const (
	// ClientExceptionCode is the error code for failing or unusable responses of the Smart-ID service.
	ClientExceptionCode core.ErrorCode = "CLIENT_EXCEPTION"
	// UserAccountNotFoundCode is the error code when the person has no Smart-ID account.
	UserAccountNotFoundCode core.ErrorCode = "USER_ACCOUNT_NOT_FOUND"
	// SessionNotFoundCode is the error code when the Smart-ID service doesn't know the session.
	SessionNotFoundCode core.ErrorCode = "SESSION_NOT_FOUND"
)

// ErrClient is returned when the Smart-ID service fails or returns an unexpected response.
var ErrClient = core.NewCodedError(ClientExceptionCode, "Smart-ID service error")

// ErrUserAccountNotFound is returned when no Smart-ID account exists for the person or document.
var ErrUserAccountNotFound = core.NewCodedError(UserAccountNotFoundCode, "Smart-ID user account not found")

// ErrSessionNotFound is returned when a session status is requested for an unknown or expired session.
var ErrSessionNotFound = core.NewCodedError(SessionNotFoundCode, "Smart-ID session not found")

// SessionType tells which flow a provider session belongs to, since a successful end result maps differently.
type SessionType int

const (
	// SigningSession is a session started by InitSignature.
	SigningSession SessionType = iota
	// CertificateChoiceSession is a session started by InitCertificateChoice.
	CertificateChoiceSession
)

// CertificateChoiceRequest identifies the person whose certificate is chosen,
// either by country and personal identifier or by document number.
type CertificateChoiceRequest struct {
	Country          string
	PersonIdentifier string
	DocumentNumber   string
}

// SignatureRequest asks the owner of a document to sign a hash.
type SignatureRequest struct {
	DocumentNumber string
	Hash           []byte
	// HashType defaults to SHA512.
	HashType    string
	DisplayText string
}

// SignatureResponse is the result of starting a signing session.
type SignatureResponse struct {
	SessionID string
	// ChallengeID is the verification code shown to the person.
	ChallengeID string
}

// StatusResponse is the state of a Smart-ID session, expressed as session status.
type StatusResponse struct {
	Status string
	// Signature is set for completed signing sessions.
	Signature []byte
	// Certificate and DocumentNumber are set for completed sessions the service returned them for.
	Certificate    *x509.Certificate
	DocumentNumber string
}

// Client is a Smart-ID relying party client.
type Client interface {
	// InitCertificateChoice starts a certificate choice session and returns its session ID.
	InitCertificateChoice(ctx context.Context, relyingParty session.RelyingParty, request CertificateChoiceRequest) (string, error)
	// InitSignature starts a signing session.
	InitSignature(ctx context.Context, relyingParty session.RelyingParty, request SignatureRequest) (*SignatureResponse, error)
	// GetSessionStatus returns the status of a session.
	// A failing service results in INTERNAL_ERROR, transport errors are returned as error.
	GetSessionStatus(ctx context.Context, sessionID string, sessionType SessionType) (*StatusResponse, error)
}

// VerificationCode calculates the 4 digit verification code of a hash:
// the 2 rightmost bytes of its SHA-256 digest as integer, modulo 10000.
func VerificationCode(hash []byte) string {
	digest := sha256.Sum256(hash)
	code := binary.BigEndian.Uint16(digest[len(digest)-2:])
	return fmt.Sprintf("%04d", int(code)%10000)
}

var endResults = map[string]string{
	"USER_REFUSED":                                    session.StatusUserCancel,
	"USER_REFUSED_CERT_CHOICE":                        session.StatusUserCancel,
	"USER_REFUSED_CONFIRMATIONMESSAGE":                session.StatusUserCancel,
	"USER_REFUSED_CONFIRMATIONMESSAGE_WITH_VC_CHOICE": session.StatusUserCancel,
	"USER_REFUSED_DISPLAYTEXTANDPIN":                  session.StatusUserCancel,
	"USER_REFUSED_VC_CHOICE":                          session.StatusUserCancel,
	"WRONG_VC":                                        session.StatusUserSelectedWrongVC,
	"TIMEOUT":                                         session.StatusExpiredTransaction,
	"DOCUMENT_UNUSABLE":                               session.StatusDocumentUnusable,
	"REQUIRED_INTERACTION_NOT_SUPPORTED_BY_APP":       session.StatusNotSupportedByApp,
}

// MapStatus maps the state and end result of a Smart-ID session to a session status.
func MapStatus(state string, endResult string, sessionType SessionType) (string, error) {
	switch state {
	case "RUNNING":
		return session.StatusOutstandingTransaction, nil
	case "COMPLETE":
		if endResult == "OK" {
			if sessionType == CertificateChoiceSession {
				return session.StatusCertificate, nil
			}
			return session.StatusSignature, nil
		}
		if status, ok := endResults[endResult]; ok {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: unexpected response (state=%s, endResult=%s)", ErrClient, state, endResult)
}
