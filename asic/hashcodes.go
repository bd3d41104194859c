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
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/xml"
	"strconv"
)

// hashcodesDocument is the content of META-INF/hashcodes-sha256.xml and META-INF/hashcodes-sha512.xml.
type hashcodesDocument struct {
	XMLName xml.Name         `xml:"hashcodes"`
	Entries []hashcodesEntry `xml:"file-entry"`
}

type hashcodesEntry struct {
	FullPath string `xml:"full-path,attr"`
	Hash     string `xml:"hash,attr"`
	Size     string `xml:"size,attr"`
}

type hashAlgorithm int

const (
	sha256Algorithm hashAlgorithm = iota
	sha512Algorithm
)

func (h hashAlgorithm) entryName() string {
	if h == sha512Algorithm {
		return hashcodesSha512
	}
	return hashcodesSha256
}

func (h hashAlgorithm) digestSize() int {
	if h == sha512Algorithm {
		return sha512.Size
	}
	return sha256.Size
}

func (h hashAlgorithm) hashOf(dataFile DataFile) string {
	if h == sha512Algorithm {
		return dataFile.Sha512
	}
	return dataFile.Sha256
}

// marshalHashcodes writes a hashcodes document with self-closing file entries, the way DOM writers do.
func marshalHashcodes(dataFiles []DataFile, algorithm hashAlgorithm) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>`)
	buf.WriteString("<hashcodes>")
	for _, dataFile := range dataFiles {
		buf.WriteString(`<file-entry full-path="`)
		_ = xml.EscapeText(buf, []byte(dataFile.Name))
		buf.WriteString(`" hash="`)
		_ = xml.EscapeText(buf, []byte(algorithm.hashOf(dataFile)))
		buf.WriteString(`" size="`)
		buf.WriteString(strconv.FormatInt(dataFile.Size, 10))
		buf.WriteString(`"/>`)
	}
	buf.WriteString("</hashcodes>")
	return buf.Bytes()
}

type parsedHashcode struct {
	name string
	hash string
	size int64
}

// parseHashcodes parses a hashcodes document, keeping the order of the entries.
func parseHashcodes(data []byte, algorithm hashAlgorithm) ([]parsedHashcode, error) {
	var document hashcodesDocument
	if err := xml.Unmarshal(data, &document); err != nil {
		return nil, invalidContainer("unable to parse %s: %s", algorithm.entryName(), err)
	}
	result := make([]parsedHashcode, 0, len(document.Entries))
	seen := make(map[string]struct{}, len(document.Entries))
	for _, entry := range document.Entries {
		if entry.FullPath == "" || entry.Hash == "" || entry.Size == "" {
			return nil, invalidContainer("hashcodes data file is invalid")
		}
		size, err := strconv.ParseInt(entry.Size, 10, 64)
		if err != nil || size < 0 {
			return nil, invalidContainer("hashcodes data file has invalid file size")
		}
		if !isValidHash(entry.Hash, algorithm.digestSize()) {
			return nil, invalidContainer("invalid data file hash")
		}
		if _, exists := seen[entry.FullPath]; exists {
			return nil, duplicateDataFile(entry.FullPath)
		}
		seen[entry.FullPath] = struct{}{}
		result = append(result, parsedHashcode{name: entry.FullPath, hash: entry.Hash, size: size})
	}
	return result, nil
}
