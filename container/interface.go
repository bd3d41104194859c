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

	"github.com/nuts-foundation/nuts-siga/asic"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/session"
)

// ModuleName is the name of the container module.
const ModuleName = "Container"

// ErrDataFileNotFound is returned when a container has no data file with the requested name.
var ErrDataFileNotFound = core.NewCodedError(session.ResourceNotFoundCode, "data file not found")

// ErrSignatureNotFound is returned when a container has no signature with the requested ID.
var ErrSignatureNotFound = core.NewCodedError(session.ResourceNotFoundCode, "signature not found")

// Service manages container sessions.
// Operations on an existing container take the type the client addresses it as, a container of another type is not found.
type Service interface {
	// CreateHashcodeContainer creates a HASHCODE container session from data file descriptors and returns its ID.
	CreateHashcodeContainer(ctx context.Context, owner Owner, dataFiles []asic.DataFile) (string, error)
	// UploadHashcodeContainer creates a HASHCODE container session from an encoded hashcode container and returns its ID.
	UploadHashcodeContainer(ctx context.Context, owner Owner, data []byte) (string, error)
	// UploadASiCContainer creates an ASIC container session from a regular ASiC-E container and returns its ID.
	UploadASiCContainer(ctx context.Context, owner Owner, name string, data []byte) (string, error)
	// GetContainer returns the container including every signature finished so far.
	GetContainer(ctx context.Context, containerType session.ContainerType, containerID string) (*Container, error)
	// DeleteContainer closes the container session.
	DeleteContainer(ctx context.Context, containerType session.ContainerType, containerID string) error

	// GetDataFiles lists the data files of the container.
	GetDataFiles(ctx context.Context, containerType session.ContainerType, containerID string) ([]asic.DataFile, error)
	// AddDataFiles adds data files to an unsigned HASHCODE container.
	AddDataFiles(ctx context.Context, containerType session.ContainerType, containerID string, dataFiles []asic.DataFile) error
	// DeleteDataFile removes a data file from an unsigned HASHCODE container.
	DeleteDataFile(ctx context.Context, containerType session.ContainerType, containerID string, name string) error

	// GetSignatures lists the signatures of the container.
	GetSignatures(ctx context.Context, containerType session.ContainerType, containerID string) ([]asic.Signature, error)
	// GetSignature returns the signature with the given ID.
	GetSignature(ctx context.Context, containerType session.ContainerType, containerID string, signatureID string) (*asic.Signature, error)
}

// Owner identifies on whose behalf a container session is created.
// The service is the relying party of Mobile-ID and Smart-ID sessions started for the container.
type Owner struct {
	ClientName  string
	ServiceName string
	ServiceUUID string
}

// Container is an encoded container.
type Container struct {
	Name string
	Type session.ContainerType
	Data []byte
}
