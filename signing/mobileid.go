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
	"time"

	"github.com/google/uuid"
	"github.com/nuts-foundation/nuts-siga/audit"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/mobileid"
	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/nuts-foundation/nuts-siga/xades"
)

func (m *Module) StartMobileIDSigning(ctx context.Context, containerID string, request MobileIDSigningRequest) (*SigningChallenge, error) {
	ctx = withAuditInfo(ctx, "StartMobileIDSigning")
	container, err := m.loadContainer(containerID, true)
	if err != nil {
		return nil, err
	}
	language, err := mobileid.ResolveLanguage(request.Language)
	if err != nil {
		return nil, err
	}
	displayText, err := m.renderDisplayText(container, request.MessageToDisplay)
	if err != nil {
		return nil, err
	}
	relyingParty := m.relyingParty(container)

	start := time.Now()
	certificate, err := m.mobileID.GetCertificate(ctx, relyingParty, mobileid.CertificateRequest{
		PhoneNumber:            request.PhoneNumber,
		NationalIdentityNumber: request.PersonIdentifier,
	})
	m.observe(session.MobileID, "certificate", start)
	if err != nil {
		return nil, err
	}
	params := signatureParameters(request.SignatureOptions, certificate.Raw, xades.SHA256)
	dataToSign, err := m.signatureEngine.BuildDataToSign(ctx, container.DataFiles, params)
	if err != nil {
		return nil, invalidSigningRequest(err)
	}
	hash, err := xades.Digest(dataToSign.DigestAlgorithm, dataToSign.Data)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	response, err := m.mobileID.InitSignHash(ctx, relyingParty, mobileid.SignatureRequest{
		PhoneNumber:            request.PhoneNumber,
		NationalIdentityNumber: request.PersonIdentifier,
		Hash:                   hash,
		HashType:               dataToSign.DigestAlgorithm,
		Language:               language,
		DisplayText:            displayText,
	})
	m.observe(session.MobileID, "init", start)
	if err != nil {
		return nil, err
	}

	signatureID := uuid.NewString()
	container.AddSignatureSession(signatureID, &session.SignatureSession{
		SigningType:  session.MobileID,
		DataToSign:   dataToSign,
		SessionCode:  response.SessionID,
		RelyingParty: relyingParty,
		Status:       session.NewSessionStatus(nowFunc()),
	})
	if err = m.store.Put(container); err != nil {
		return nil, err
	}
	m.metrics.started.WithLabelValues(string(session.MobileID)).Inc()
	audit.Log(ctx, m.logger(container, signatureID), audit.SigningStartedEvent).
		WithField(core.LogFieldSigningType, session.MobileID).
		WithField(core.LogFieldProviderSession, response.SessionID).
		Info("Mobile-ID signing started")
	return &SigningChallenge{SignatureID: signatureID, ChallengeID: response.ChallengeID}, nil
}

func (m *Module) ProcessMobileIDStatus(ctx context.Context, containerID string, signatureID string) error {
	ctx = withAuditInfo(ctx, "ProcessMobileIDStatus")
	return m.processSigningStatus(ctx, containerID, signatureID, session.MobileID, m.mobileIDStatus)
}

func (m *Module) GetMobileIDSigningStatus(ctx context.Context, containerID string, signatureID string) (*session.SessionStatus, error) {
	ctx = withAuditInfo(ctx, "GetMobileIDSigningStatus")
	return m.signingStatus(ctx, containerID, signatureID, session.MobileID, m.mobileIDStatus)
}

func (m *Module) mobileIDStatus(ctx context.Context, sessionCode string) (string, []byte, error) {
	response, err := m.mobileID.GetSignHashStatus(ctx, sessionCode)
	if err != nil {
		return "", nil, err
	}
	return response.Status, response.Signature, nil
}
