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

package xades

// EventType is the kind of check reported by Finalize.
type EventType string

const (
	// CertificateValidationEvent reports the validation of the signer certificate.
	CertificateValidationEvent EventType = "CERTIFICATE_VALIDATION"
	// SignatureVerificationEvent reports the verification of the signature value.
	SignatureVerificationEvent EventType = "SIGNATURE_VERIFICATION"
)

// Event is a check performed while finalizing a signature.
type Event struct {
	Type        EventType
	SignatureID string
	// Subject is the subject of the signer certificate.
	Subject string
	// Err is set when the check failed.
	Err error
}

// Succeeded returns true if the check passed.
func (e Event) Succeeded() bool {
	return e.Err == nil
}

// EventHook receives the checks performed while finalizing a signature.
type EventHook func(event Event)

func (h EventHook) emit(event Event) {
	if h != nil {
		h(event)
	}
}
