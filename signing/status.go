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
	"fmt"
	"time"

	"github.com/nuts-foundation/nuts-siga/audit"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/session"
)

// statusPoller returns the provider status of a provider session, and the signature value once it's SIGNATURE.
type statusPoller func(ctx context.Context, sessionCode string) (string, []byte, error)

// needsPoll returns true if the provider may still change the status: it hasn't finished and didn't report a failure.
func needsPoll(status session.SessionStatus) bool {
	return !status.IsFinished() && status.Status == session.StatusOutstandingTransaction
}

// processSignatureStatus polls the provider of a signature sub-session, records the outcome and stores the container.
// Poll errors are recorded in the sub-session instead of being returned.
func (m *Module) processSignatureStatus(ctx context.Context, container *session.ContainerSession, signatureID string, signatureSession *session.SignatureSession, poll statusPoller) error {
	signingType := signatureSession.SigningType
	logger := m.logger(container, signatureID).
		WithField(core.LogFieldSigningType, signingType).
		WithField(core.LogFieldProviderSession, signatureSession.SessionCode)

	start := time.Now()
	status, signatureValue, err := poll(ctx, signatureSession.SessionCode)
	m.observe(signingType, "status", start)
	now := nowFunc()
	switch {
	case err != nil:
		logger.WithError(err).Warn("Unable to get signing status")
		signatureSession.Status.SetException(string(core.ErrorCodeOf(err)), err.Error(), now)
		status = "ERROR"
	case status == session.StatusOutstandingTransaction:
		signatureSession.Status.SetOutstanding(now)
	case status == session.StatusSignature:
		if err = m.finalize(ctx, container, signatureID, signatureSession, signatureValue); err != nil {
			logger.WithError(err).Error("Unable to finalize signature")
			signatureSession.Status.SetException(string(core.ErrorCodeOf(err)), err.Error(), now)
			audit.Log(ctx, logger, audit.SigningFailedEvent).WithError(err).Warn("Finalizing signature failed")
		}
	default:
		reported := signatureSession.Status.Status == status
		signatureSession.Status.SetFailed(status, fmt.Sprintf("%s signing failed: %s", signingType, status), now)
		if !reported {
			m.metrics.finished.WithLabelValues(string(signingType), status).Inc()
			audit.Log(ctx, logger, audit.SigningFailedEvent).
				WithField(core.LogFieldSessionStatus, status).
				Info("Provider reported failed signing")
		}
	}
	m.metrics.polls.WithLabelValues(string(signingType), status).Inc()
	return m.store.Put(container)
}

// processSigningStatus is the shared implementation of the provider poll entry points.
// Finished sub-sessions are left alone.
func (m *Module) processSigningStatus(ctx context.Context, containerID string, signatureID string, signingType session.SigningType, poll statusPoller) error {
	container, err := m.loadContainer(containerID, false)
	if err != nil {
		return err
	}
	signatureSession, err := signatureSession(container, signatureID, signingType)
	if err != nil {
		return err
	}
	if signatureSession.Status.IsFinished() {
		return nil
	}
	return m.processSignatureStatus(ctx, container, signatureID, signatureSession, poll)
}

// signingStatus is the shared implementation of the client status requests.
// It polls the provider if needed. A finished signature is removed from the container session once it's read.
func (m *Module) signingStatus(ctx context.Context, containerID string, signatureID string, signingType session.SigningType, poll statusPoller) (*session.SessionStatus, error) {
	container, err := m.loadContainer(containerID, false)
	if err != nil {
		return nil, err
	}
	signatureSession, err := signatureSession(container, signatureID, signingType)
	if err != nil {
		return nil, err
	}
	if needsPoll(signatureSession.Status) {
		if err = m.processSignatureStatus(ctx, container, signatureID, signatureSession, poll); err != nil {
			return nil, err
		}
	}
	result := signatureSession.Status
	if result.IsFinished() && result.Status == session.StatusSignature {
		container.RemoveSignatureSession(signatureID)
		if err = m.store.Put(container); err != nil {
			return nil, err
		}
	}
	return &result, nil
}
