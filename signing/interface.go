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

package signing

import (
	"context"

	"github.com/nuts-foundation/nuts-siga/asic"
	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/nuts-foundation/nuts-siga/xades"
)

// ModuleName is the name of the signing module.
const ModuleName = "Signing"

// SignatureEngine builds the data to sign for data files and turns signature values into signatures.
type SignatureEngine interface {
	// BuildDataToSign creates the data to sign over the given data files.
	BuildDataToSign(ctx context.Context, dataFiles []asic.DataFile, params session.SignatureParameters) (*session.DataToSign, error)
	// Finalize verifies the signature value and creates the signature. The checks it performs are reported to hook.
	Finalize(ctx context.Context, dataToSign *session.DataToSign, signatureValue []byte, hook xades.EventHook) (*asic.Signature, error)
}

// Service orchestrates the signing of containers.
type Service interface {
	// CreateDataToSign starts a remote signature. The client signs the returned data itself.
	CreateDataToSign(ctx context.Context, containerID string, request RemoteSigningRequest) (*DataToSignResponse, error)
	// FinalizeSigning adds the remote signature to the container.
	FinalizeSigning(ctx context.Context, containerID string, signatureID string, signatureValue []byte) error

	// StartMobileIDSigning starts a Mobile-ID signature.
	StartMobileIDSigning(ctx context.Context, containerID string, request MobileIDSigningRequest) (*SigningChallenge, error)
	// ProcessMobileIDStatus polls the Mobile-ID service and records the result in the signature sub-session.
	ProcessMobileIDStatus(ctx context.Context, containerID string, signatureID string) error
	// GetMobileIDSigningStatus returns the status of a Mobile-ID signature, polling the service if it isn't finished.
	GetMobileIDSigningStatus(ctx context.Context, containerID string, signatureID string) (*session.SessionStatus, error)

	// StartSmartIDCertificateChoice starts the choice of the signing certificate of a Smart-ID user.
	StartSmartIDCertificateChoice(ctx context.Context, containerID string, request SmartIDCertificateRequest) (string, error)
	// ProcessSmartIDCertificateStatus polls the Smart-ID service and records the result in the certificate sub-session.
	ProcessSmartIDCertificateStatus(ctx context.Context, containerID string, certificateID string) error
	// GetSmartIDCertificateStatus returns the status of a certificate choice, polling the service if it isn't finished.
	GetSmartIDCertificateStatus(ctx context.Context, containerID string, certificateID string) (*CertificateStatus, error)
	// StartSmartIDSigning starts a Smart-ID signature with a certificate resolved by a certificate choice.
	StartSmartIDSigning(ctx context.Context, containerID string, request SmartIDSigningRequest) (*SigningChallenge, error)
	// ProcessSmartIDStatus polls the Smart-ID service and records the result in the signature sub-session.
	ProcessSmartIDStatus(ctx context.Context, containerID string, signatureID string) error
	// GetSmartIDSigningStatus returns the status of a Smart-ID signature, polling the service if it isn't finished.
	GetSmartIDSigningStatus(ctx context.Context, containerID string, signatureID string) (*session.SessionStatus, error)
}

// SignatureProductionPlace is where the signature is claimed to be created.
type SignatureProductionPlace struct {
	City            string `json:"city,omitempty"`
	StateOrProvince string `json:"stateOrProvince,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	CountryName     string `json:"countryName,omitempty"`
}

// SignatureOptions are the optional signer properties of a signature.
type SignatureOptions struct {
	Roles                    []string                  `json:"roles,omitempty"`
	SignatureProductionPlace *SignatureProductionPlace `json:"signatureProductionPlace,omitempty"`
}

// RemoteSigningRequest starts a remote signature.
type RemoteSigningRequest struct {
	SignatureOptions
	// SigningCertificate is the DER encoded certificate of the signer.
	SigningCertificate []byte
	// DigestAlgorithm is SHA256 or SHA512. The signature engine default is used when empty.
	DigestAlgorithm string
}

// DataToSignResponse is the data a remote signer has to sign.
type DataToSignResponse struct {
	SignatureID string
	DataToSign  []byte
	// Digest is the digest of DataToSign, for signers that sign digests.
	Digest          []byte
	DigestAlgorithm string
}

// MobileIDSigningRequest starts a Mobile-ID signature.
type MobileIDSigningRequest struct {
	SignatureOptions
	PhoneNumber      string
	PersonIdentifier string
	// Language is EST, ENG, RUS or LIT.
	Language         string
	MessageToDisplay string
}

// SmartIDCertificateRequest identifies the Smart-ID user whose certificate is chosen.
type SmartIDCertificateRequest struct {
	Country          string
	PersonIdentifier string
}

// SmartIDSigningRequest starts a Smart-ID signature.
type SmartIDSigningRequest struct {
	SignatureOptions
	// DocumentNumber must have been resolved by a certificate choice on the same container.
	DocumentNumber   string
	MessageToDisplay string
}

// SigningChallenge is the result of starting a provider signature.
type SigningChallenge struct {
	SignatureID string
	// ChallengeID is the verification code the signer has to compare with the one on their device.
	ChallengeID string
}

// CertificateStatus is the status of a Smart-ID certificate choice.
type CertificateStatus struct {
	Status session.SessionStatus
	// DocumentNumber is set once the status is CERTIFICATE.
	DocumentNumber string
}
