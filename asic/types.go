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

package asic

// MimeType is the mimetype of ASiC-E containers, stored in the mimetype entry and the manifest root entry.
const MimeType = "application/vnd.etsi.asic-e+zip"

// DefaultDataFileMimeType is the media type listed in the manifest for data files without a known mime type.
const DefaultDataFileMimeType = "application/octet-stream"

// MaxMetadataEntrySize is the maximum uncompressed size of a non data file entry (manifest, hashcodes, signatures).
const MaxMetadataEntrySize = 500000

const (
	mimetypeEntry       = "mimetype"
	metaInfDirectory    = "META-INF"
	manifestEntry       = "META-INF/manifest.xml"
	hashcodesPrefix     = "META-INF/hashcodes-"
	hashcodesSha256     = "META-INF/hashcodes-sha256.xml"
	hashcodesSha512     = "META-INF/hashcodes-sha512.xml"
	signaturesPrefix    = "META-INF/signatures"
	signaturesExtension = ".xml"
)

// DataFile describes a file in a container. Hashes are base64 encoded digests of the file content.
type DataFile struct {
	Name     string `json:"name"`
	Sha256   string `json:"sha256,omitempty"`
	Sha512   string `json:"sha512,omitempty"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType,omitempty"`
}

// Signature is a finished (XAdES) signature in a container.
type Signature struct {
	// ID is assigned when the signature is read or created, it is not part of the signature document.
	ID string `json:"id"`
	// Content is the signature document.
	Content []byte `json:"content"`
	// DataFiles lists the data files covered by the signature, in document order.
	DataFiles []SignatureDataFile `json:"dataFiles,omitempty"`
	// Entry is the name of the ZIP entry the signature was read from. It is empty for signatures that still have to be written.
	Entry string `json:"entry,omitempty"`
}

// SignatureDataFile is a data file reference in a signature.
type SignatureDataFile struct {
	Name          string `json:"name"`
	HashAlgorithm string `json:"hashAlgorithm"`
}

// Container is the result of reading a container.
type Container struct {
	DataFiles  []DataFile
	Signatures []Signature
}
