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
	"time"

	"github.com/nuts-foundation/nuts-siga/asic"
)

// ContainerType is the discriminant of a ContainerSession.
type ContainerType string

const (
	// ASiC is a session holding a complete ASiC-E container.
	ASiC ContainerType = "ASIC"
	// Hashcode is a session holding only the data file digests.
	Hashcode ContainerType = "HASHCODE"
)

// SigningType is the protocol a signature is created with.
type SigningType string

const (
	// Remote signing: the client signs the data to sign itself.
	Remote SigningType = "REMOTE"
	// MobileID signing through the Mobile-ID REST API.
	MobileID SigningType = "MOBILE_ID"
	// SmartID signing through the Smart-ID relying party API.
	SmartID SigningType = "SMART_ID"
)

// RelyingParty identifies the party on whose behalf a provider session is started.
type RelyingParty struct {
	Name string `json:"name"`
	UUID string `json:"uuid"`
}

// SignatureParameters are the signer properties included in a signature.
type SignatureParameters struct {
	// SigningCertificate is the DER encoded certificate of the signer.
	SigningCertificate []byte   `json:"signingCertificate"`
	Roles              []string `json:"roles,omitempty"`
	City               string   `json:"city,omitempty"`
	StateOrProvince    string   `json:"stateOrProvince,omitempty"`
	PostalCode         string   `json:"postalCode,omitempty"`
	CountryName        string   `json:"countryName,omitempty"`
	// DigestAlgorithm is the algorithm name (SHA256, SHA512) used for the data to sign.
	DigestAlgorithm string `json:"digestAlgorithm,omitempty"`
}

// DataToSign is the state between building a signature and finalizing it.
// It is produced and consumed by a signature engine, other code only uses Data and DigestAlgorithm.
type DataToSign struct {
	SignatureID     string              `json:"signatureId"`
	Data            []byte              `json:"data"`
	DigestAlgorithm string              `json:"digestAlgorithm"`
	SigningTime     time.Time           `json:"signingTime"`
	Parameters      SignatureParameters `json:"parameters"`
	// State is engine specific, e.g. the signed properties the data to sign was built from.
	State []byte `json:"state,omitempty"`
}

// SignatureSession is the state of one signature being created.
type SignatureSession struct {
	SigningType    SigningType   `json:"signingType"`
	DataToSign     *DataToSign   `json:"dataToSign,omitempty"`
	SessionCode    string        `json:"sessionCode,omitempty"`
	RelyingParty   RelyingParty  `json:"relyingParty"`
	DocumentNumber string        `json:"documentNumber,omitempty"`
	Status         SessionStatus `json:"status"`
}

// IsFinalized returns true if the data to sign was consumed.
func (s SignatureSession) IsFinalized() bool {
	return s.DataToSign == nil
}

// CertificateSession is the state of a Smart-ID certificate choice.
type CertificateSession struct {
	RelyingParty   RelyingParty  `json:"relyingParty"`
	SessionCode    string        `json:"sessionCode,omitempty"`
	DocumentNumber string        `json:"documentNumber,omitempty"`
	Status         SessionStatus `json:"status"`
}

// ContainerSession is the aggregate stored per container. It's always written as a whole.
type ContainerSession struct {
	ID            string        `json:"id"`
	Type          ContainerType `json:"type"`
	ClientName    string        `json:"clientName,omitempty"`
	ServiceName   string        `json:"serviceName,omitempty"`
	ServiceUUID   string        `json:"serviceUuid,omitempty"`
	ContainerName string        `json:"containerName,omitempty"`
	// Container holds the complete container of an ASIC session.
	Container []byte `json:"container,omitempty"`
	// DataFiles are the data files of a HASHCODE session, or those read from the container of an ASIC session.
	DataFiles           []asic.DataFile                `json:"dataFiles"`
	Signatures          []asic.Signature               `json:"signatures,omitempty"`
	SignatureSessions   map[string]*SignatureSession   `json:"signatureSessions,omitempty"`
	CertificateSessions map[string]*CertificateSession `json:"certificateSessions,omitempty"`
	// Certificates holds the DER encoded certificates resolved by a certificate choice, by document number.
	Certificates map[string][]byte `json:"certificates,omitempty"`
}

// Validate checks the session is consistent with its type.
func (c *ContainerSession) Validate() error {
	if c.ID == "" {
		return InvalidSessionData("session has no ID")
	}
	switch c.Type {
	case ASiC:
		if len(c.Container) == 0 {
			return InvalidSessionData("ASIC session %s has no container", c.ID)
		}
	case Hashcode:
		if len(c.Container) != 0 {
			return InvalidSessionData("HASHCODE session %s must not hold a container", c.ID)
		}
	default:
		return InvalidSessionData("session %s has unknown type '%s'", c.ID, c.Type)
	}
	return nil
}

// SignatureSession returns the signature sub-session with the given ID, or nil.
func (c *ContainerSession) SignatureSession(id string) *SignatureSession {
	return c.SignatureSessions[id]
}

// AddSignatureSession adds a signature sub-session.
func (c *ContainerSession) AddSignatureSession(id string, signatureSession *SignatureSession) {
	if c.SignatureSessions == nil {
		c.SignatureSessions = map[string]*SignatureSession{}
	}
	c.SignatureSessions[id] = signatureSession
}

// RemoveSignatureSession removes a signature sub-session, if present.
func (c *ContainerSession) RemoveSignatureSession(id string) {
	delete(c.SignatureSessions, id)
}

// CertificateSession returns the certificate sub-session with the given ID, or nil.
func (c *ContainerSession) CertificateSession(id string) *CertificateSession {
	return c.CertificateSessions[id]
}

// SetCertificateSession makes the given certificate sub-session the only one of the container.
func (c *ContainerSession) SetCertificateSession(id string, certificateSession *CertificateSession) {
	c.CertificateSessions = map[string]*CertificateSession{id: certificateSession}
}

// AddCertificate stores the certificate resolved for a document number.
func (c *ContainerSession) AddCertificate(documentNumber string, certificate []byte) {
	if c.Certificates == nil {
		c.Certificates = map[string][]byte{}
	}
	c.Certificates[documentNumber] = certificate
}

// TakeCertificate returns and removes the certificate resolved for a document number.
func (c *ContainerSession) TakeCertificate(documentNumber string) ([]byte, bool) {
	certificate, ok := c.Certificates[documentNumber]
	if ok {
		delete(c.Certificates, documentNumber)
	}
	return certificate, ok
}

// AddSignature appends a finished signature.
func (c *ContainerSession) AddSignature(signature asic.Signature) {
	c.Signatures = append(c.Signatures, signature)
}

// FindSignature returns the finished signature with the given ID.
func (c *ContainerSession) FindSignature(id string) (*asic.Signature, bool) {
	for i := range c.Signatures {
		if c.Signatures[i].ID == id {
			return &c.Signatures[i], true
		}
	}
	return nil, false
}
