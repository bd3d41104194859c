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

package container

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nuts-foundation/nuts-siga/asic"
	"github.com/nuts-foundation/nuts-siga/audit"
	"github.com/nuts-foundation/nuts-siga/container/log"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/nuts-foundation/nuts-siga/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var _ Service = (*Module)(nil)
var _ core.Named = (*Module)(nil)
var _ core.Configurable = (*Module)(nil)
var _ core.Runnable = (*Module)(nil)

// Module manages the lifecycle of container sessions. Signing them is done by the signing module.
type Module struct {
	storage    storage.Engine
	store      session.Store
	containers *prometheus.CounterVec
}

// New creates a new container module.
func New(storageEngine storage.Engine) *Module {
	return &Module{
		storage: storageEngine,
		containers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: core.MetricsNamespace,
			Subsystem: "container",
			Name:      "sessions_total",
			Help:      "Number of container sessions, by container type and operation.",
		}, []string{"type", "operation"}),
	}
}

func (m *Module) Name() string {
	return ModuleName
}

func (m *Module) Configure(_ core.ServerConfig) error {
	m.store = session.NewStore(m.storage.GetSessionStore(session.StoreKeys...))
	return core.RegisterCollector(m.containers)
}

func (m *Module) Start() error {
	return nil
}

func (m *Module) Shutdown() error {
	prometheus.Unregister(m.containers)
	return nil
}

func (m *Module) CreateHashcodeContainer(ctx context.Context, owner Owner, dataFiles []asic.DataFile) (string, error) {
	if err := asic.ValidateDataFiles(dataFiles); err != nil {
		return "", err
	}
	return m.create(ctx, owner, &session.ContainerSession{
		Type:      session.Hashcode,
		DataFiles: dataFiles,
	}, "create")
}

func (m *Module) UploadHashcodeContainer(ctx context.Context, owner Owner, data []byte) (string, error) {
	container, err := asic.DecodeHashcode(data)
	if err != nil {
		return "", err
	}
	return m.create(ctx, owner, &session.ContainerSession{
		Type:       session.Hashcode,
		DataFiles:  container.DataFiles,
		Signatures: container.Signatures,
	}, "upload")
}

func (m *Module) UploadASiCContainer(ctx context.Context, owner Owner, name string, data []byte) (string, error) {
	container, err := asic.ReadASiC(data)
	if err != nil {
		return "", err
	}
	return m.create(ctx, owner, &session.ContainerSession{
		Type:          session.ASiC,
		ContainerName: name,
		Container:     data,
		DataFiles:     container.DataFiles,
		Signatures:    container.Signatures,
	}, "upload")
}

func (m *Module) create(ctx context.Context, owner Owner, container *session.ContainerSession, operation string) (string, error) {
	container.ID = uuid.NewString()
	container.ClientName = owner.ClientName
	container.ServiceName = owner.ServiceName
	container.ServiceUUID = owner.ServiceUUID
	if err := m.store.Put(container); err != nil {
		return "", err
	}
	m.containers.WithLabelValues(string(container.Type), operation).Inc()
	audit.Log(ctx, logger(container), audit.ContainerCreatedEvent).
		WithField(core.LogFieldServiceName, container.ServiceName).
		WithField(core.LogFieldServiceUUID, container.ServiceUUID).
		Infof("Container session created with %d data file(s) and %d signature(s)", len(container.DataFiles), len(container.Signatures))
	return container.ID, nil
}

func (m *Module) GetContainer(_ context.Context, containerType session.ContainerType, containerID string) (*Container, error) {
	container, err := m.load(containerType, containerID)
	if err != nil {
		return nil, err
	}
	var data []byte
	switch container.Type {
	case session.ASiC:
		data, err = asic.AppendSignatures(container.Container, container.Signatures)
	default:
		if len(container.DataFiles) == 0 {
			return nil, session.InvalidSessionData("Unable to create container with no data files")
		}
		data, err = asic.EncodeHashcode(container.DataFiles, container.Signatures)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to write container %s: %w", containerID, err)
	}
	return &Container{
		Name: container.ContainerName,
		Type: container.Type,
		Data: data,
	}, nil
}

func (m *Module) DeleteContainer(ctx context.Context, containerType session.ContainerType, containerID string) error {
	container, err := m.load(containerType, containerID)
	if err != nil {
		return err
	}
	if err = m.store.Remove(containerID); err != nil {
		return err
	}
	m.containers.WithLabelValues(string(container.Type), "delete").Inc()
	audit.Log(ctx, logger(container), audit.ContainerDeletedEvent).Info("Container session closed")
	return nil
}

func (m *Module) GetDataFiles(_ context.Context, containerType session.ContainerType, containerID string) ([]asic.DataFile, error) {
	container, err := m.load(containerType, containerID)
	if err != nil {
		return nil, err
	}
	return container.DataFiles, nil
}

func (m *Module) AddDataFiles(_ context.Context, containerType session.ContainerType, containerID string, dataFiles []asic.DataFile) error {
	container, err := m.loadUnsigned(containerType, containerID)
	if err != nil {
		return err
	}
	if len(dataFiles) == 0 {
		return session.InvalidSessionData("No data files to add")
	}
	combined := append(append([]asic.DataFile{}, container.DataFiles...), dataFiles...)
	if err = asic.ValidateDataFiles(combined); err != nil {
		return err
	}
	container.DataFiles = combined
	if err = m.store.Put(container); err != nil {
		return err
	}
	logger(container).Debugf("Added %d data file(s)", len(dataFiles))
	return nil
}

func (m *Module) DeleteDataFile(_ context.Context, containerType session.ContainerType, containerID string, name string) error {
	container, err := m.loadUnsigned(containerType, containerID)
	if err != nil {
		return err
	}
	for i, dataFile := range container.DataFiles {
		if dataFile.Name == name {
			container.DataFiles = append(container.DataFiles[:i], container.DataFiles[i+1:]...)
			return m.store.Put(container)
		}
	}
	return fmt.Errorf("%w: %s", ErrDataFileNotFound, name)
}

func (m *Module) GetSignatures(_ context.Context, containerType session.ContainerType, containerID string) ([]asic.Signature, error) {
	container, err := m.load(containerType, containerID)
	if err != nil {
		return nil, err
	}
	return container.Signatures, nil
}

func (m *Module) GetSignature(_ context.Context, containerType session.ContainerType, containerID string, signatureID string) (*asic.Signature, error) {
	container, err := m.load(containerType, containerID)
	if err != nil {
		return nil, err
	}
	signature, ok := container.FindSignature(signatureID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSignatureNotFound, signatureID)
	}
	return signature, nil
}

// load returns the container session, which must be of the given type.
func (m *Module) load(containerType session.ContainerType, containerID string) (*session.ContainerSession, error) {
	container, err := m.store.Get(containerID)
	if err != nil {
		return nil, err
	}
	if container.Type != containerType {
		return nil, fmt.Errorf("%w: %s is not a %s container", session.ErrSessionNotFound, containerID, containerType)
	}
	return container, nil
}

// loadUnsigned returns a HASHCODE container session that has no signatures and no signature in progress,
// so its data files can still change. Data files of ASIC containers are part of the uploaded container and never change.
func (m *Module) loadUnsigned(containerType session.ContainerType, containerID string) (*session.ContainerSession, error) {
	container, err := m.load(containerType, containerID)
	if err != nil {
		return nil, err
	}
	if container.Type != session.Hashcode {
		return nil, session.InvalidSessionData("Data files of %s containers can't be changed", container.Type)
	}
	if len(container.Signatures) > 0 {
		return nil, session.InvalidSessionData("Unable to change data files of a container with signatures")
	}
	for _, signatureSession := range container.SignatureSessions {
		if !signatureSession.IsFinalized() {
			return nil, session.InvalidSessionData("Unable to change data files of a container with a signature in progress")
		}
	}
	return container, nil
}

func logger(container *session.ContainerSession) *logrus.Entry {
	return log.Logger().
		WithField(core.LogFieldContainerID, container.ID).
		WithField(core.LogFieldContainerType, container.Type)
}
