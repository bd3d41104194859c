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

// EncodeHashcode writes a hashcode container: a container that lists the digests of its data files instead of their content.
// Entries are written in a fixed order: mimetype (stored), manifest, SHA-256 and SHA-512 hashcodes and the signatures.
func EncodeHashcode(dataFiles []DataFile, signatures []Signature) ([]byte, error) {
	if err := ValidateDataFiles(dataFiles); err != nil {
		return nil, err
	}
	now := time.Now()
	buf := new(bytes.Buffer)
	writer := zip.NewWriter(buf)
	if err := writeStored(writer, mimetypeEntry, []byte(MimeType), now); err != nil {
		return nil, err
	}
	if err := writeDeflated(writer, manifestEntry, marshalManifest(dataFiles), now); err != nil {
		return nil, err
	}
	for _, algorithm := range []hashAlgorithm{sha256Algorithm, sha512Algorithm} {
		if err := writeDeflated(writer, algorithm.entryName(), marshalHashcodes(dataFiles, algorithm), now); err != nil {
			return nil, err
		}
	}
	for i, signature := range signatures {
		if err := writeStored(writer, signatureEntryName(i), signature.Content, now); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("unable to finish container: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeHashcode reads a hashcode container. The data files are returned in the order of the first hashcodes document.
func DecodeHashcode(data []byte) (*Container, error) {
	reader, err := openZip(data)
	if err != nil {
		return nil, err
	}
	result := &Container{}
	var mimeTypes map[string]string
	dataFileIndex := map[string]int{}
	for _, file := range reader.File {
		name := file.Name
		switch {
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
		case strings.HasPrefix(name, hashcodesPrefix):
			content, err := readEntry(file, MaxMetadataEntrySize)
			if err != nil {
				return nil, err
			}
			algorithm := sha256Algorithm
			switch name {
			case hashcodesSha256:
			case hashcodesSha512:
				algorithm = sha512Algorithm
			default:
				return nil, invalidContainer("unsupported hashcodes file %s", name)
			}
			entries, err := parseHashcodes(content, algorithm)
			if err != nil {
				return nil, err
			}
			for _, entry := range entries {
				i, exists := dataFileIndex[entry.name]
				if !exists {
					i = len(result.DataFiles)
					dataFileIndex[entry.name] = i
					result.DataFiles = append(result.DataFiles, DataFile{Name: entry.name, Size: entry.size})
				} else if result.DataFiles[i].Size != entry.size {
					return nil, invalidContainer("hashcodes files have different sizes for data file %s", entry.name)
				}
				if algorithm == sha512Algorithm {
					result.DataFiles[i].Sha512 = entry.hash
				} else {
					result.DataFiles[i].Sha256 = entry.hash
				}
			}
		case name == mimetypeEntry || strings.HasPrefix(name, metaInfDirectory+"/"):
			if file.UncompressedSize64 > MaxMetadataEntrySize {
				return nil, invalidContainer("container entry %s is too large", name)
			}
		default:
			return nil, invalidContainer("invalid file or directory in root level, only mimetype file and META-INF directory allowed")
		}
	}
	if len(result.DataFiles) == 0 {
		return nil, invalidContainer("container must have data file hashes")
	}
	for _, dataFile := range result.DataFiles {
		if err := ValidateDataFile(dataFile); err != nil {
			return nil, err
		}
	}
	if len(mimeTypes) == 0 {
		return nil, invalidContainer("container must have manifest file")
	}
	for i, dataFile := range result.DataFiles {
		if mimeType := mimeTypes[dataFile.Name]; mimeType != "" && mimeType != DefaultDataFileMimeType {
			result.DataFiles[i].MimeType = mimeType
		}
	}
	return result, nil
}

func signatureEntryName(index int) string {
	return fmt.Sprintf("%s%d%s", signaturesPrefix, index, signaturesExtension)
}
