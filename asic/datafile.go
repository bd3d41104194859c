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
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"strings"
)

// NewDataFile creates a DataFile for the given file content.
func NewDataFile(name string, content []byte) DataFile {
	sha256Sum := sha256.Sum256(content)
	sha512Sum := sha512.Sum512(content)
	return DataFile{
		Name:   name,
		Sha256: base64.StdEncoding.EncodeToString(sha256Sum[:]),
		Sha512: base64.StdEncoding.EncodeToString(sha512Sum[:]),
		Size:   int64(len(content)),
	}
}

// ValidateDataFile checks the data file can be listed in a hashcode container.
func ValidateDataFile(dataFile DataFile) error {
	if !isValidFileName(dataFile.Name) {
		return invalidContainer("invalid data file name: '%s'", dataFile.Name)
	}
	if dataFile.Sha256 == "" {
		return invalidContainer("data file '%s' is missing SHA256 hash", dataFile.Name)
	}
	if dataFile.Sha512 == "" {
		return invalidContainer("data file '%s' is missing SHA512 hash", dataFile.Name)
	}
	if !isValidHash(dataFile.Sha256, sha256.Size) || !isValidHash(dataFile.Sha512, sha512.Size) {
		return invalidContainer("invalid hash of data file '%s'", dataFile.Name)
	}
	if dataFile.Size < 0 {
		return invalidContainer("invalid size of data file '%s'", dataFile.Name)
	}
	return nil
}

// ValidateDataFiles checks every data file and makes sure no name is listed twice.
func ValidateDataFiles(dataFiles []DataFile) error {
	if len(dataFiles) == 0 {
		return invalidContainer("container must have data files")
	}
	names := make(map[string]struct{}, len(dataFiles))
	for _, dataFile := range dataFiles {
		if err := ValidateDataFile(dataFile); err != nil {
			return err
		}
		if _, exists := names[dataFile.Name]; exists {
			return duplicateDataFile(dataFile.Name)
		}
		names[dataFile.Name] = struct{}{}
	}
	return nil
}

func isValidFileName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "/\\")
}

// isValidHash checks the value is base64 of a digest with the given size.
func isValidHash(value string, size int) bool {
	decoded, err := base64.StdEncoding.DecodeString(value)
	return err == nil && len(decoded) == size
}
