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

package v1

import (
	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/nuts-foundation/nuts-siga/signing"
)

// SignatureProductionPlace is the place where the signature is claimed to be created.
type SignatureProductionPlace = signing.SignatureProductionPlace

// StatusError is the error of the last failed provider poll.
type StatusError = session.StatusError

// RemoteSigningRequest is the request body for preparing a remote signature.
type RemoteSigningRequest struct {
	// SigningCertificate is the DER encoded signer certificate, base64 encoded.
	SigningCertificate       []byte                    `json:"signingCertificate"`
	DigestAlgorithm          string                    `json:"digestAlgorithm,omitempty"`
	Roles                    []string                  `json:"roles,omitempty"`
	SignatureProductionPlace *SignatureProductionPlace `json:"signatureProductionPlace,omitempty"`
}

// RemoteSigningResponse contains the data the signer has to sign.
type RemoteSigningResponse struct {
	GeneratedSignatureID string `json:"generatedSignatureId"`
	DataToSign           []byte `json:"dataToSign"`
	DigestAlgorithm      string `json:"digestAlgorithm"`
}

// FinalizeRemoteSigningRequest is the request body for finalizing a remote signature.
type FinalizeRemoteSigningRequest struct {
	SignatureValue []byte `json:"signatureValue"`
}

// ResultResponse is returned by operations that have no other result.
type ResultResponse struct {
	Result string `json:"result"`
}

// MobileIDSigningRequest is the request body for starting a Mobile-ID signature.
type MobileIDSigningRequest struct {
	PhoneNo                  string                    `json:"phoneNo"`
	PersonIdentifier         string                    `json:"personIdentifier"`
	Language                 string                    `json:"language,omitempty"`
	MessageToDisplay         string                    `json:"messageToDisplay,omitempty"`
	Roles                    []string                  `json:"roles,omitempty"`
	SignatureProductionPlace *SignatureProductionPlace `json:"signatureProductionPlace,omitempty"`
}

// SmartIDCertificateChoiceRequest is the request body for starting a Smart-ID certificate choice.
type SmartIDCertificateChoiceRequest struct {
	Country          string `json:"country"`
	PersonIdentifier string `json:"personIdentifier"`
}

// SmartIDCertificateChoiceResponse identifies a started certificate choice.
type SmartIDCertificateChoiceResponse struct {
	GeneratedCertificateID string `json:"generatedCertificateId"`
}

// SmartIDCertificateChoiceStatusResponse is the status of a certificate choice.
// DocumentNumber is set once the certificate is resolved.
type SmartIDCertificateChoiceStatusResponse struct {
	SidStatus      string       `json:"sidStatus"`
	DocumentNumber string       `json:"documentNumber,omitempty"`
	Error          *StatusError `json:"error,omitempty"`
}

// SmartIDSigningRequest is the request body for starting a Smart-ID signature.
type SmartIDSigningRequest struct {
	DocumentNumber           string                    `json:"documentNumber"`
	MessageToDisplay         string                    `json:"messageToDisplay,omitempty"`
	Roles                    []string                  `json:"roles,omitempty"`
	SignatureProductionPlace *SignatureProductionPlace `json:"signatureProductionPlace,omitempty"`
}

// SigningChallengeResponse identifies a started signature and the code the signer should see on their device.
type SigningChallengeResponse struct {
	GeneratedSignatureID string `json:"generatedSignatureId"`
	ChallengeID          string `json:"challengeId"`
}

// MobileIDSigningStatusResponse is the status of a Mobile-ID signature.
type MobileIDSigningStatusResponse struct {
	MidStatus string       `json:"midStatus"`
	Error     *StatusError `json:"error,omitempty"`
}

// SmartIDSigningStatusResponse is the status of a Smart-ID signature.
type SmartIDSigningStatusResponse struct {
	SidStatus string       `json:"sidStatus"`
	Error     *StatusError `json:"error,omitempty"`
}
