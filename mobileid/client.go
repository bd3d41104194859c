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
	"context"
	"crypto/x509"
	"fmt"

	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/session"
)

// DefaultLanguage is the language of the signing prompt when none is requested.
const DefaultLanguage = "EST"

var languages = map[string]bool{"EST": true, "ENG": true, "RUS": true, "LIT": true}

var hashTypes = map[string]bool{"SHA256": true, "SHA384": true, "SHA512": true}

const (
	// ClientExceptionCode is the error code for unusable responses of the Mobile-ID service.
	ClientExceptionCode core.ErrorCode = "CLIENT_EXCEPTION"
	// CertificateNotFoundCode is the error code when the person has no Mobile-ID signing certificate.
	CertificateNotFoundCode core.ErrorCode = "NOT_FOUND"
	// UnexpectedCertificateStatusCode is the error code for other certificate lookup results, e.g. NOT_ACTIVE.
	UnexpectedCertificateStatusCode core.ErrorCode = "UNEXPECTED_STATUS"
	// InvalidLanguageCode is the error code for unsupported prompt languages.
	InvalidLanguageCode core.ErrorCode = "INVALID_LANGUAGE"
)

// ErrClient is returned when the Mobile-ID service fails or returns an unexpected response.
var ErrClient = core.NewCodedError(ClientExceptionCode, "Mobile-ID service error")

// ErrCertificateNotFound is returned when no signing certificate is found for the person.
var ErrCertificateNotFound = core.NewCodedError(CertificateNotFoundCode, "Mobile-ID certificate not found")

// ErrUnexpectedCertificateStatus is returned when the certificate lookup has another result than OK or NOT_FOUND.
var ErrUnexpectedCertificateStatus = core.NewCodedError(UnexpectedCertificateStatusCode, "unexpected Mobile-ID certificate status")

// ErrInvalidLanguage is returned for unsupported prompt languages.
var ErrInvalidLanguage = core.NewCodedError(InvalidLanguageCode, "invalid Mobile-ID language")

// CertificateRequest identifies the person whose signing certificate is requested.
type CertificateRequest struct {
	PhoneNumber            string
	NationalIdentityNumber string
}

// SignatureRequest asks the person to sign a hash on their phone.
type SignatureRequest struct {
	PhoneNumber            string
	NationalIdentityNumber string
	Hash                   []byte
	HashType               string
	// Language of the prompt, defaults to DefaultLanguage.
	Language    string
	DisplayText string
}

// SignatureResponse is the result of starting a signing session.
type SignatureResponse struct {
	SessionID string
	// ChallengeID is the verification code shown to the person, calculated from the hash.
	ChallengeID string
}

// StatusResponse is the state of a signing session, expressed as session status.
type StatusResponse struct {
	Status string
	// Signature is set when Status is SIGNATURE.
	Signature []byte
}

// Client is a Mobile-ID client.
type Client interface {
	// GetCertificate returns the signing certificate of the person.
	GetCertificate(ctx context.Context, relyingParty session.RelyingParty, request CertificateRequest) (*x509.Certificate, error)
	// InitSignHash starts a signing session.
	InitSignHash(ctx context.Context, relyingParty session.RelyingParty, request SignatureRequest) (*SignatureResponse, error)
	// GetSignHashStatus returns the status of a signing session.
	// A failing service results in INTERNAL_ERROR, transport errors are returned as error.
	GetSignHashStatus(ctx context.Context, sessionID string) (*StatusResponse, error)
}

// ChallengeCode calculates the 4 digit verification code for a hash:
// the 6 leftmost bits of the first byte followed by the 7 rightmost bits of the last byte.
func ChallengeCode(hash []byte) string {
	if len(hash) == 0 {
		return ""
	}
	code := (int(hash[0])&0xFC)<<5 | int(hash[len(hash)-1])&0x7F
	return fmt.Sprintf("%04d", code)
}

// ResolveLanguage returns the prompt language, validating it is supported.
func ResolveLanguage(language string) (string, error) {
	if language == "" {
		return DefaultLanguage, nil
	}
	if !languages[language] {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidLanguage, language)
	}
	return language, nil
}

var completeResults = map[string]string{
	"OK":                      session.StatusSignature,
	"TIMEOUT":                 session.StatusExpiredTransaction,
	"USER_CANCELLED":          session.StatusUserCancel,
	"SIGNATURE_HASH_MISMATCH": session.StatusNotValid,
	"DELIVERY_ERROR":          session.StatusSendingError,
	"SIM_ERROR":               session.StatusSimError,
	"PHONE_ABSENT":            session.StatusPhoneAbsent,
}

// MapStatus maps the state and result of a Mobile-ID session to a session status.
func MapStatus(state string, result string) (string, error) {
	switch state {
	case "RUNNING":
		return session.StatusOutstandingTransaction, nil
	case "COMPLETE":
		if status, ok := completeResults[result]; ok {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: unexpected response (state=%s, result=%s)", ErrClient, state, result)
}
