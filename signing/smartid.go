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
	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/nuts-foundation/nuts-siga/signing/log"
	"github.com/nuts-foundation/nuts-siga/smartid"
	"github.com/nuts-foundation/nuts-siga/xades"
)

func (m *Module) StartSmartIDCertificateChoice(ctx context.Context, containerID string, request SmartIDCertificateRequest) (string, error) {
	ctx = withAuditInfo(ctx, "StartSmartIDCertificateChoice")
	container, err := m.loadContainer(containerID, false)
	if err != nil {
		return "", err
	}
	if request.Country == "" || request.PersonIdentifier == "" {
		return "", session.InvalidSessionData("Country and person identifier are required for Smart-ID certificate choice")
	}
	relyingParty := m.relyingParty(container)
	start := time.Now()
	sessionCode, err := m.smartID.InitCertificateChoice(ctx, relyingParty, smartid.CertificateChoiceRequest{
		Country:          request.Country,
		PersonIdentifier: request.PersonIdentifier,
	})
	m.observe(session.SmartID, "certificatechoice", start)
	if err != nil {
		return "", err
	}
	certificateID := uuid.NewString()
	container.SetCertificateSession(certificateID, &session.CertificateSession{
		RelyingParty: relyingParty,
		SessionCode:  sessionCode,
		Status:       session.NewSessionStatus(nowFunc()),
	})
	if err = m.store.Put(container); err != nil {
		return "", err
	}
	audit.Log(ctx, log.Logger().
		WithField(core.LogFieldContainerID, container.ID).
		WithField(core.LogFieldCertificateID, certificateID).
		WithField(core.LogFieldProviderSession, sessionCode), audit.CertificateChoiceStartedEvent).
		Info("Smart-ID certificate choice started")
	return certificateID, nil
}

func (m *Module) ProcessSmartIDCertificateStatus(ctx context.Context, containerID string, certificateID string) error {
	ctx = withAuditInfo(ctx, "ProcessSmartIDCertificateStatus")
	container, certificateSession, err := m.loadCertificateSession(containerID, certificateID)
	if err != nil {
		return err
	}
	if certificateSession.Status.IsFinished() {
		return nil
	}
	return m.processCertificateStatus(ctx, container, certificateID, certificateSession)
}

func (m *Module) GetSmartIDCertificateStatus(ctx context.Context, containerID string, certificateID string) (*CertificateStatus, error) {
	ctx = withAuditInfo(ctx, "GetSmartIDCertificateStatus")
	container, certificateSession, err := m.loadCertificateSession(containerID, certificateID)
	if err != nil {
		return nil, err
	}
	if needsPoll(certificateSession.Status) {
		if err = m.processCertificateStatus(ctx, container, certificateID, certificateSession); err != nil {
			return nil, err
		}
	}
	result := &CertificateStatus{Status: certificateSession.Status}
	if certificateSession.Status.IsFinished() {
		result.DocumentNumber = certificateSession.DocumentNumber
	}
	return result, nil
}

func (m *Module) loadCertificateSession(containerID string, certificateID string) (*session.ContainerSession, *session.CertificateSession, error) {
	container, err := m.loadContainer(containerID, false)
	if err != nil {
		return nil, nil, err
	}
	certificateSession := container.CertificateSession(certificateID)
	if certificateSession == nil {
		return nil, nil, session.InvalidSessionData("Unable to find certificate session with id '%s'", certificateID)
	}
	return container, certificateSession, nil
}

// processCertificateStatus polls the certificate choice, records the outcome and stores the container.
// A resolved certificate is kept in the container session until a signature is started with it.
func (m *Module) processCertificateStatus(ctx context.Context, container *session.ContainerSession, certificateID string, certificateSession *session.CertificateSession) error {
	logger := log.Logger().
		WithField(core.LogFieldContainerID, container.ID).
		WithField(core.LogFieldCertificateID, certificateID).
		WithField(core.LogFieldProviderSession, certificateSession.SessionCode)
	start := time.Now()
	response, err := m.smartID.GetSessionStatus(ctx, certificateSession.SessionCode, smartid.CertificateChoiceSession)
	m.observe(session.SmartID, "status", start)
	now := nowFunc()
	status := "ERROR"
	switch {
	case err != nil:
		logger.WithError(err).Warn("Unable to get certificate choice status")
		certificateSession.Status.SetException(string(core.ErrorCodeOf(err)), err.Error(), now)
	case response.Status == session.StatusOutstandingTransaction:
		status = response.Status
		certificateSession.Status.SetOutstanding(now)
	case response.Status == session.StatusCertificate:
		status = response.Status
		container.AddCertificate(response.DocumentNumber, response.Certificate.Raw)
		certificateSession.DocumentNumber = response.DocumentNumber
		certificateSession.Status.SetResult(session.StatusCertificate, now)
		audit.Log(ctx, logger, audit.CertificateResolvedEvent).
			WithField("subject", response.Certificate.Subject.String()).
			Info("Smart-ID certificate resolved")
	default:
		status = response.Status
		certificateSession.Status.SetFailed(response.Status, "Smart-ID certificate choice failed: "+response.Status, now)
	}
	m.metrics.polls.WithLabelValues(string(session.SmartID), status).Inc()
	return m.store.Put(container)
}

func (m *Module) StartSmartIDSigning(ctx context.Context, containerID string, request SmartIDSigningRequest) (*SigningChallenge, error) {
	ctx = withAuditInfo(ctx, "StartSmartIDSigning")
	container, err := m.loadContainer(containerID, true)
	if err != nil {
		return nil, err
	}
	certificate, ok := container.TakeCertificate(request.DocumentNumber)
	if !ok {
		return nil, session.InvalidSessionData("Unable to find certificate for document number '%s', start a certificate choice first", request.DocumentNumber)
	}
	displayText, err := m.renderDisplayText(container, request.MessageToDisplay)
	if err != nil {
		return nil, err
	}
	params := signatureParameters(request.SignatureOptions, certificate, xades.SHA512)
	dataToSign, err := m.signatureEngine.BuildDataToSign(ctx, container.DataFiles, params)
	if err != nil {
		return nil, invalidSigningRequest(err)
	}
	hash, err := xades.Digest(dataToSign.DigestAlgorithm, dataToSign.Data)
	if err != nil {
		return nil, err
	}
	relyingParty := m.relyingParty(container)
	start := time.Now()
	response, err := m.smartID.InitSignature(ctx, relyingParty, smartid.SignatureRequest{
		DocumentNumber: request.DocumentNumber,
		Hash:           hash,
		HashType:       dataToSign.DigestAlgorithm,
		DisplayText:    displayText,
	})
	m.observe(session.SmartID, "init", start)
	if err != nil {
		return nil, err
	}

	signatureID := uuid.NewString()
	container.AddSignatureSession(signatureID, &session.SignatureSession{
		SigningType:    session.SmartID,
		DataToSign:     dataToSign,
		SessionCode:    response.SessionID,
		RelyingParty:   relyingParty,
		DocumentNumber: request.DocumentNumber,
		Status:         session.NewSessionStatus(nowFunc()),
	})
	if err = m.store.Put(container); err != nil {
		return nil, err
	}
	m.metrics.started.WithLabelValues(string(session.SmartID)).Inc()
	audit.Log(ctx, m.logger(container, signatureID), audit.SigningStartedEvent).
		WithField(core.LogFieldSigningType, session.SmartID).
		WithField(core.LogFieldProviderSession, response.SessionID).
		Info("Smart-ID signing started")
	return &SigningChallenge{SignatureID: signatureID, ChallengeID: response.ChallengeID}, nil
}

func (m *Module) ProcessSmartIDStatus(ctx context.Context, containerID string, signatureID string) error {
	ctx = withAuditInfo(ctx, "ProcessSmartIDStatus")
	return m.processSigningStatus(ctx, containerID, signatureID, session.SmartID, m.smartIDStatus)
}

func (m *Module) GetSmartIDSigningStatus(ctx context.Context, containerID string, signatureID string) (*session.SessionStatus, error) {
	ctx = withAuditInfo(ctx, "GetSmartIDSigningStatus")
	return m.signingStatus(ctx, containerID, signatureID, session.SmartID, m.smartIDStatus)
}

func (m *Module) smartIDStatus(ctx context.Context, sessionCode string) (string, []byte, error) {
	response, err := m.smartID.GetSessionStatus(ctx, sessionCode, smartid.SigningSession)
	if err != nil {
		return "", nil, err
	}
	return response.Status, response.Signature, nil
}
