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

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"time"
)

// MaxDataFileSize is the maximum size of a single data file in an uploaded ASiC-E container.
const MaxDataFileSize = 100 * 1024 * 1024

// ReadASiC reads a regular ASiC-E container. Data file digests are calculated from the entry content.
func ReadASiC(data []byte) (*Container, error) {
	reader, err := openZip(data)
	if err != nil {
		return nil, err
	}
	result := &Container{}
	var mimeTypes map[string]string
	hasMimetype := false
	for _, file := range reader.File {
		name := file.Name
		switch {
		case name == mimetypeEntry:
			content, err := readEntry(file, MaxMetadataEntrySize)
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(string(content)) != MimeType {
				return nil, invalidContainer("unsupported container mimetype '%s'", content)
			}
			hasMimetype = true
		case name == manifestEntry:
			content, err := readEntry(file, MaxMetadataEntrySize)
			if err != nil {
				return nil, err
			}
			if mimeTypes, err = parseManifest(content); err != nil {
				return nil, err
			}
		case strings.HasPrefix(name, signaturesPrefix):
			content, err := readEntry(file, MaxMetadataEntrySize)
			if err != nil {
				return nil, err
			}
			signature, err := ParseSignature(content)
			if err != nil {
				return nil, err
			}
			signature.Entry = name
			result.Signatures = append(result.Signatures, *signature)
		case strings.HasPrefix(name, metaInfDirectory+"/") || strings.HasSuffix(name, "/"):
			// other metadata and directory entries
		default:
			content, err := readEntry(file, MaxDataFileSize)
			if err != nil {
				return nil, err
			}
			result.DataFiles = append(result.DataFiles, NewDataFile(name, content))
		}
	}
	if !hasMimetype {
		return nil, invalidContainer("container has no mimetype entry")
	}
	if len(result.DataFiles) == 0 {
		return nil, invalidContainer("container must have data files")
	}
	for i, dataFile := range result.DataFiles {
		result.DataFiles[i].MimeType = mimeTypes[dataFile.Name]
	}
	return result, nil
}

// AppendSignatures returns a copy of the container with the signatures that have no entry yet added to it.
// New entries are numbered after the highest existing signature entry.
func AppendSignatures(container []byte, signatures []Signature) ([]byte, error) {
	reader, err := openZip(container)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	writer := zip.NewWriter(buf)
	next := 0
	for _, file := range reader.File {
		var index int
		if _, err := fmt.Sscanf(strings.TrimPrefix(file.Name, signaturesPrefix), "%d.xml", &index); err == nil && strings.HasPrefix(file.Name, signaturesPrefix) && index >= next {
			next = index + 1
		}
		if err := writer.Copy(file); err != nil {
			return nil, fmt.Errorf("unable to copy container entry %s: %w", file.Name, err)
		}
	}
	now := time.Now()
	for _, signature := range signatures {
		if signature.Entry != "" {
			continue
		}
		if err := writeStored(writer, signatureEntryName(next), signature.Content, now); err != nil {
			return nil, err
		}
		next++
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("unable to finish container: %w", err)
	}
	return buf.Bytes(), nil
}
