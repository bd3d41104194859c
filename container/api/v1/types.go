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

package v1

import "github.com/nuts-foundation/nuts-siga/asic"

// DataFile is a data file of a container. Hashes are only set for hashcode containers.
type DataFile struct {
	FileName       string `json:"fileName"`
	FileHashSha256 string `json:"fileHashSha256,omitempty"`
	FileHashSha512 string `json:"fileHashSha512,omitempty"`
	FileSize       int64  `json:"fileSize"`
	MimeType       string `json:"mimeType,omitempty"`
}

// CreateHashcodeContainerRequest describes the data files of a new hashcode container.
type CreateHashcodeContainerRequest struct {
	DataFiles []DataFile `json:"dataFiles"`
}

// UploadHashcodeContainerRequest contains an encoded hashcode container.
type UploadHashcodeContainerRequest struct {
	Container []byte `json:"container"`
}

// UploadContainerRequest contains a regular ASiC-E container.
type UploadContainerRequest struct {
	ContainerName string `json:"containerName"`
	Container     []byte `json:"container"`
}

// CreateContainerResponse returns the ID of a new container session.
type CreateContainerResponse struct {
	ContainerID string `json:"containerId"`
}

// GetContainerResponse contains the container with all signatures finished so far.
type GetContainerResponse struct {
	ContainerName string `json:"containerName,omitempty"`
	Container     []byte `json:"container"`
}

// DataFilesRequest adds data files to a hashcode container.
type DataFilesRequest struct {
	DataFiles []DataFile `json:"dataFiles"`
}

// DataFilesResponse lists the data files of a container.
type DataFilesResponse struct {
	DataFiles []DataFile `json:"dataFiles"`
}

// Signature is a signature of a container.
type Signature struct {
	ID        string                   `json:"id"`
	DataFiles []asic.SignatureDataFile `json:"dataFiles,omitempty"`
	// Signature is the signature document. It's only returned when a single signature is requested.
	Signature []byte `json:"signature,omitempty"`
}

// SignaturesResponse lists the signatures of a container.
type SignaturesResponse struct {
	Signatures []Signature `json:"signatures"`
}

// ResultResponse is returned by operations that have no other result.
type ResultResponse struct {
	Result string `json:"result"`
}

func fromDataFile(dataFile asic.DataFile) DataFile {
	return DataFile{
		FileName:       dataFile.Name,
		FileHashSha256: dataFile.Sha256,
		FileHashSha512: dataFile.Sha512,
		FileSize:       dataFile.Size,
		MimeType:       dataFile.MimeType,
	}
}

func (d DataFile) toDataFile() asic.DataFile {
	return asic.DataFile{
		Name:     d.FileName,
		Sha256:   d.FileHashSha256,
		Sha512:   d.FileHashSha512,
		Size:     d.FileSize,
		MimeType: d.MimeType,
	}
}

func toDataFiles(dataFiles []DataFile) []asic.DataFile {
	result := make([]asic.DataFile, 0, len(dataFiles))
	for _, dataFile := range dataFiles {
		result = append(result, dataFile.toDataFile())
	}
	return result
}
