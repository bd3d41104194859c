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
	"errors"

	"github.com/google/uuid"
	"github.com/nuts-foundation/nuts-siga/audit"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/nuts-foundation/nuts-siga/xades"
)

func (m *Module) CreateDataToSign(ctx context.Context, containerID string, request RemoteSigningRequest) (*DataToSignResponse, error) {
	ctx = withAuditInfo(ctx, "CreateDataToSign")
	container, err := m.loadContainer(containerID, true)
	if err != nil {
		return nil, err
	}
	if len(request.SigningCertificate) == 0 {
		return nil, session.InvalidSessionData("Signing certificate is required for remote signing")
	}
	params := signatureParameters(request.SignatureOptions, request.SigningCertificate, request.DigestAlgorithm)
	dataToSign, err := m.signatureEngine.BuildDataToSign(ctx, container.DataFiles, params)
	if err != nil {
		return nil, invalidSigningRequest(err)
	}
	digest, err := xades.Digest(dataToSign.DigestAlgorithm, dataToSign.Data)
	if err != nil {
		return nil, err
	}
	signatureID := uuid.NewString()
	container.AddSignatureSession(signatureID, &session.SignatureSession{
		SigningType:  session.Remote,
		DataToSign:   dataToSign,
		RelyingParty: m.relyingParty(container),
		Status:       session.NewSessionStatus(nowFunc()),
	})
	if err = m.store.Put(container); err != nil {
		return nil, err
	}
	m.metrics.started.WithLabelValues(string(session.Remote)).Inc()
	audit.Log(ctx, m.logger(container, signatureID), audit.SigningStartedEvent).
		WithField(core.LogFieldSigningType, session.Remote).
		Info("Remote signing started")
	return &DataToSignResponse{
		SignatureID:     signatureID,
		DataToSign:      dataToSign.Data,
		Digest:          digest,
		DigestAlgorithm: dataToSign.DigestAlgorithm,
	}, nil
}

func (m *Module) FinalizeSigning(ctx context.Context, containerID string, signatureID string, signatureValue []byte) error {
	ctx = withAuditInfo(ctx, "FinalizeSigning")
	container, err := m.loadContainer(containerID, false)
	if err != nil {
		return err
	}
	signatureSession, err := signatureSession(container, signatureID, session.Remote)
	if err != nil {
		return err
	}
	if err = m.finalize(ctx, container, signatureID, signatureSession, signatureValue); err != nil {
		return invalidSigningRequest(err)
	}
	return m.store.Put(container)
}

// invalidSigningRequest marks errors caused by the signer's input (certificate, algorithm, signature value) as invalid session data.
func invalidSigningRequest(err error) error {
	if errors.Is(err, xades.ErrInvalidCertificate) || errors.Is(err, xades.ErrUnsupportedDigestAlgorithm) ||
		errors.Is(err, xades.ErrUnsupportedKey) || errors.Is(err, xades.ErrInvalidSignature) {
		return core.WrapError(session.ErrInvalidSessionData, err)
	}
	return err
}
