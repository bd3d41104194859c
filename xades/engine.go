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

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nuts-foundation/nuts-siga/asic"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/nuts-foundation/nuts-siga/xades/log"
)

const moduleName = "XAdES"

var nowFunc = time.Now

var _ core.Injectable = (*Engine)(nil)
var _ core.Configurable = (*Engine)(nil)

// Engine creates XAdES signatures for ASiC-E containers.
// Private keys are held by the signer, the engine only builds the data to sign and assembles the signature.
type Engine struct {
	config Config
	roots  *x509.CertPool
}

// New creates a new signature engine.
func New() *Engine {
	return &Engine{config: DefaultConfig()}
}

func (e *Engine) Name() string {
	return moduleName
}

func (e *Engine) Config() interface{} {
	return &e.config
}

// Configure loads the trust store for signer certificates, if configured.
func (e *Engine) Configure(_ core.ServerConfig) error {
	if _, err := lookupDigestAlgorithm(e.config.DigestAlgorithm); err != nil {
		return err
	}
	if e.config.TrustStoreFile == "" {
		log.Logger().Warn("No trust store configured for signer certificates, certificate chains are not validated")
		return nil
	}
	trustStore, err := core.LoadTrustStore(e.config.TrustStoreFile)
	if err != nil {
		return err
	}
	e.roots = trustStore.CertPool
	return nil
}

// BuildDataToSign creates the data to sign for a signature over the given data files.
// The digest algorithm of the parameters is used, or the configured default if it's empty.
func (e *Engine) BuildDataToSign(_ context.Context, dataFiles []asic.DataFile, params session.SignatureParameters) (*session.DataToSign, error) {
	if len(dataFiles) == 0 {
		return nil, errors.New("no data files to sign")
	}
	algorithmName := params.DigestAlgorithm
	if algorithmName == "" {
		algorithmName = e.config.DigestAlgorithm
	}
	algorithm, err := lookupDigestAlgorithm(algorithmName)
	if err != nil {
		return nil, err
	}
	certificate, err := x509.ParseCertificate(params.SigningCertificate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCertificate, err)
	}
	signatureMethod, err := algorithm.signatureMethod(certificate)
	if err != nil {
		return nil, err
	}
	signatureID := "S-" + uuid.NewString()
	signingTime := nowFunc().UTC().Truncate(time.Second)
	signedProperties := buildSignedProperties(signatureID, signingTime, certificate, params, dataFiles, algorithm)
	signedInfo, err := buildSignedInfo(signatureID, signatureMethod, dataFiles, signedProperties, algorithm)
	if err != nil {
		return nil, err
	}
	params.DigestAlgorithm = algorithm.name
	return &session.DataToSign{
		SignatureID:     signatureID,
		Data:            signedInfo,
		DigestAlgorithm: algorithm.name,
		SigningTime:     signingTime,
		Parameters:      params,
		State:           signedProperties,
	}, nil
}

// Finalize verifies the signature value and creates the signature.
// The checks it performs are reported to hook, which may be nil.
func (e *Engine) Finalize(_ context.Context, dataToSign *session.DataToSign, signatureValue []byte, hook EventHook) (*asic.Signature, error) {
	if dataToSign == nil {
		return nil, errors.New("no data to sign")
	}
	algorithm, err := lookupDigestAlgorithm(dataToSign.DigestAlgorithm)
	if err != nil {
		return nil, err
	}
	certificate, err := x509.ParseCertificate(dataToSign.Parameters.SigningCertificate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCertificate, err)
	}
	event := Event{SignatureID: dataToSign.SignatureID, Subject: certificate.Subject.String()}

	event.Type = CertificateValidationEvent
	event.Err = validateCertificate(certificate, e.roots, dataToSign.SigningTime)
	hook.emit(event)
	if event.Err != nil {
		return nil, event.Err
	}

	event.Type = SignatureVerificationEvent
	value, err := verifySignature(certificate, algorithm, dataToSign.Data, signatureValue)
	event.Err = err
	hook.emit(event)
	if err != nil {
		return nil, err
	}

	signature, err := asic.ParseSignature(buildSignatureDocument(dataToSign, value, certificate))
	if err != nil {
		return nil, fmt.Errorf("unable to read created signature: %w", err)
	}
	log.Logger().
		WithField(core.LogFieldSignatureID, dataToSign.SignatureID).
		Debugf("Created signature for %s", certificate.Subject)
	return signature, nil
}
