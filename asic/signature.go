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
	"encoding/xml"
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// digestAlgorithmNames maps XML digest method URIs to algorithm names.
var digestAlgorithmNames = map[string]string{
	"http://www.w3.org/2000/09/xmldsig#sha1":        "SHA1",
	"http://www.w3.org/2001/04/xmldsig-more#sha224": "SHA224",
	"http://www.w3.org/2001/04/xmlenc#sha256":       "SHA256",
	"http://www.w3.org/2001/04/xmldsig-more#sha384": "SHA384",
	"http://www.w3.org/2001/04/xmlenc#sha512":       "SHA512",
}

// DigestAlgorithmName returns the algorithm name (e.g. SHA256) for the given XML digest method URI.
func DigestAlgorithmName(uri string) (string, bool) {
	name, ok := digestAlgorithmNames[uri]
	return name, ok
}

// ParseSignature reads the data file references of a signature document and assigns it a new ID.
// References to elements inside the signature itself (e.g. the signed properties) are skipped.
func ParseSignature(content []byte) (*Signature, error) {
	dataFiles, err := parseSignatureDataFiles(content)
	if err != nil {
		return nil, err
	}
	return &Signature{
		ID:        uuid.NewString(),
		Content:   content,
		DataFiles: dataFiles,
	}, nil
}

func parseSignatureDataFiles(content []byte) ([]SignatureDataFile, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))
	var result []SignatureDataFile
	seen := map[string]struct{}{}
	var current *SignatureDataFile
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, invalidContainer("unable to parse signature: %s", err)
		}
		switch element := token.(type) {
		case xml.StartElement:
			switch element.Name.Local {
			case "Reference":
				uri := attributeValue(element, "URI")
				if strings.HasPrefix(uri, "#") {
					continue
				}
				name, err := url.PathUnescape(uri)
				if err != nil {
					return nil, invalidContainer("invalid signature reference '%s'", uri)
				}
				if _, exists := seen[name]; exists {
					return nil, duplicateDataFile(name)
				}
				seen[name] = struct{}{}
				current = &SignatureDataFile{Name: name}
			case "DigestMethod":
				if current != nil {
					algorithm := attributeValue(element, "Algorithm")
					if name, ok := DigestAlgorithmName(algorithm); ok {
						current.HashAlgorithm = name
					} else {
						current.HashAlgorithm = algorithm
					}
				}
			}
		case xml.EndElement:
			if element.Name.Local == "Reference" && current != nil {
				result = append(result, *current)
				current = nil
			}
		}
	}
	if len(result) == 0 {
		return nil, invalidContainer("signature does not reference any data file")
	}
	return result, nil
}

func attributeValue(element xml.StartElement, name string) string {
	for _, attr := range element.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}
