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

	"github.com/cbroglie/mustache"
	"github.com/nuts-foundation/nuts-siga/audit"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/mobileid"
	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/nuts-foundation/nuts-siga/signing/log"
	"github.com/nuts-foundation/nuts-siga/smartid"
	"github.com/nuts-foundation/nuts-siga/storage"
	"github.com/nuts-foundation/nuts-siga/xades"
	"github.com/sirupsen/logrus"
)

var _ Service = (*Module)(nil)
var _ core.Injectable = (*Module)(nil)
var _ core.Configurable = (*Module)(nil)
var _ core.Runnable = (*Module)(nil)

var nowFunc = time.Now

// Module is the signing orchestrator. It keeps the state of every signature in the container session,
// so any node can continue a signing flow started on another node.
type Module struct {
	config          Config
	storage         storage.Engine
	store           session.Store
	signatureEngine SignatureEngine
	mobileID        mobileid.Client
	smartID         smartid.Client
	displayText     *mustache.Template
	metrics         *metrics
}

// New creates a new signing module.
func New(storageEngine storage.Engine, signatureEngine SignatureEngine) *Module {
	return &Module{
		config:          DefaultConfig(),
		storage:         storageEngine,
		signatureEngine: signatureEngine,
		metrics:         newMetrics(),
	}
}

func (m *Module) Name() string {
	return ModuleName
}

func (m *Module) Config() interface{} {
	return &m.config
}

// Configure sets up the provider clients. Clients set before (e.g. in tests) are kept.
func (m *Module) Configure(config core.ServerConfig) error {
	template, err := mustache.ParseString(m.config.DisplayTextTemplate)
	if err != nil {
		return fmt.Errorf("invalid display text template: %w", err)
	}
	m.displayText = template
	if config.Strictmode && (m.config.RelyingParty.Name == "" || m.config.RelyingParty.UUID == "") {
		log.Logger().Warn("No default relying party configured, Mobile-ID and Smart-ID only work for containers created on behalf of a service")
	}
	if m.mobileID == nil {
		m.mobileID = mobileid.NewRESTClient(m.config.MobileID, config.Strictmode)
	}
	if m.smartID == nil {
		m.smartID = smartid.NewRESTClient(m.config.SmartID, config.Strictmode)
	}
	m.store = session.NewStore(m.storage.GetSessionStore(session.StoreKeys...))
	return m.metrics.register()
}

func (m *Module) Start() error {
	return nil
}

func (m *Module) Shutdown() error {
	m.metrics.unregister()
	return nil
}

// Store returns the container session store.
func (m *Module) Store() session.Store {
	return m.store
}

// relyingParty returns the relying party for provider sessions of the container.
func (m *Module) relyingParty(container *session.ContainerSession) session.RelyingParty {
	if container.ServiceName != "" && container.ServiceUUID != "" {
		return session.RelyingParty{Name: container.ServiceName, UUID: container.ServiceUUID}
	}
	return session.RelyingParty{Name: m.config.RelyingParty.Name, UUID: m.config.RelyingParty.UUID}
}

func (m *Module) renderDisplayText(container *session.ContainerSession, message string) (string, error) {
	text, err := m.displayText.Render(map[string]interface{}{
		"message":       message,
		"serviceName":   container.ServiceName,
		"containerName": container.ContainerName,
		"dataFileCount": len(container.DataFiles),
	})
	if err != nil {
		return "", fmt.Errorf("unable to render display text: %w", err)
	}
	return text, nil
}

// loadContainer returns the container session, which must hold at least one data file when it's going to be signed.
func (m *Module) loadContainer(containerID string, requireDataFiles bool) (*session.ContainerSession, error) {
	container, err := m.store.Get(containerID)
	if err != nil {
		return nil, err
	}
	if requireDataFiles && len(container.DataFiles) == 0 {
		return nil, session.InvalidSessionData("Unable to sign container with no data files")
	}
	return container, nil
}

// signatureSession returns the signature sub-session, which must be of the given signing type.
func signatureSession(container *session.ContainerSession, signatureID string, signingType session.SigningType) (*session.SignatureSession, error) {
	signatureSession := container.SignatureSession(signatureID)
	if signatureSession == nil {
		return nil, session.InvalidSessionData("Unable to find signature session with id '%s'", signatureID)
	}
	if signatureSession.SigningType != signingType {
		return nil, session.InvalidSessionData("Signature session '%s' is not of type %s", signatureID, signingType)
	}
	return signatureSession, nil
}

func signatureParameters(options SignatureOptions, certificate []byte, digestAlgorithm string) session.SignatureParameters {
	params := session.SignatureParameters{
		SigningCertificate: certificate,
		Roles:              options.Roles,
		DigestAlgorithm:    digestAlgorithm,
	}
	if place := options.SignatureProductionPlace; place != nil {
		params.City = place.City
		params.StateOrProvince = place.StateOrProvince
		params.PostalCode = place.PostalCode
		params.CountryName = place.CountryName
	}
	return params
}

// finalize turns the signature value into a signature and adds it to the container.
// The sub-session is only changed when it succeeds.
func (m *Module) finalize(ctx context.Context, container *session.ContainerSession, signatureID string, signatureSession *session.SignatureSession, signatureValue []byte) error {
	if signatureSession.IsFinalized() {
		return session.InvalidSessionData("Signature session '%s' is already finalized", signatureID)
	}
	signature, err := m.signatureEngine.Finalize(ctx, signatureSession.DataToSign, signatureValue, m.eventHook(ctx, container.ID, signatureID))
	if err != nil {
		return err
	}
	signature.ID = signatureID
	container.AddSignature(*signature)
	signatureSession.DataToSign = nil
	signatureSession.Status.SetResult(session.StatusSignature, nowFunc())
	m.metrics.finished.WithLabelValues(string(signatureSession.SigningType), session.StatusSignature).Inc()
	audit.Log(ctx, m.logger(container, signatureID), audit.SigningFinishedEvent).
		WithField(core.LogFieldSigningType, signatureSession.SigningType).
		Info("Signature added to container")
	return nil
}

// eventHook turns the checks of the signature engine into audit log entries and metrics.
func (m *Module) eventHook(ctx context.Context, containerID string, signatureID string) xades.EventHook {
	return func(event xades.Event) {
		outcome := "success"
		if !event.Succeeded() {
			outcome = "failure"
		}
		m.metrics.checks.WithLabelValues(string(event.Type), outcome).Inc()
		eventName := audit.CertificateValidationEvent
		if event.Type == xades.SignatureVerificationEvent {
			eventName = audit.SignatureVerificationEvent
		}
		entry := audit.Log(ctx, log.Logger().
			WithField(core.LogFieldContainerID, containerID).
			WithField(core.LogFieldSignatureID, signatureID), eventName).
			WithField("subject", event.Subject)
		if event.Err != nil {
			entry.WithError(event.Err).Warnf("%s failed", event.Type)
			return
		}
		entry.Infof("%s succeeded", event.Type)
	}
}

// observe records the duration of a provider request.
func (m *Module) observe(signingType session.SigningType, operation string, start time.Time) {
	m.metrics.providers.WithLabelValues(string(signingType), operation).Observe(time.Since(start).Seconds())
}

func (m *Module) logger(container *session.ContainerSession, signatureID string) *logrus.Entry {
	return log.Logger().
		WithField(core.LogFieldContainerID, container.ID).
		WithField(core.LogFieldSignatureID, signatureID)
}

// withAuditInfo makes sure the context carries audit information, using the system as actor for internal callers.
func withAuditInfo(ctx context.Context, operation string) context.Context {
	if audit.InfoFromContext(ctx) != nil {
		return ctx
	}
	return audit.Context(ctx, "system", ModuleName, operation)
}
