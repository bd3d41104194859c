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
	"net/url"
	"strings"
	"testing"
)

// ZipEntry is a named entry for BuildZip.
type ZipEntry struct {
	Name    string
	Content string
}

// BuildZip creates a ZIP archive with the given entries, in order. It's intended for building (malformed) containers in tests.
func BuildZip(t testing.TB, entries ...ZipEntry) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	writer := zip.NewWriter(buf)
	for _, entry := range entries {
		w, err := writer.Create(entry.Name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err = w.Write([]byte(entry.Content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// TestSignatureXML returns a minimal XAdES signature document referencing the given data files with SHA-256.
func TestSignatureXML(fileNames ...string) []byte {
	buf := new(strings.Builder)
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString(`<asic:XAdESSignatures xmlns:asic="http://uri.etsi.org/02918/v1.2.1#" xmlns:ds="http://www.w3.org/2000/09/xmldsig#">`)
	buf.WriteString(`<ds:Signature Id="S0"><ds:SignedInfo>`)
	for i, name := range fileNames {
		_, _ = fmt.Fprintf(buf, `<ds:Reference Id="r-%d" URI="%s">`, i, url.PathEscape(name))
		buf.WriteString(`<ds:DigestMethod Algorithm="http://www.w3.org/2001/04/xmlenc#sha256"/><ds:DigestValue>AAAA</ds:DigestValue></ds:Reference>`)
	}
	buf.WriteString(`<ds:Reference Type="http://uri.etsi.org/01903#SignedProperties" URI="#xades-S0">`)
	buf.WriteString(`<ds:DigestMethod Algorithm="http://www.w3.org/2001/04/xmlenc#sha256"/><ds:DigestValue>AAAA</ds:DigestValue></ds:Reference>`)
	buf.WriteString(`</ds:SignedInfo></ds:Signature></asic:XAdESSignatures>`)
	return []byte(buf.String())
}

// BuildTestASiC creates a regular ASiC-E container holding the given data files, with a matching manifest.
func BuildTestASiC(t testing.TB, dataFiles ...ZipEntry) []byte {
	t.Helper()
	described := make([]DataFile, 0, len(dataFiles))
	for _, dataFile := range dataFiles {
		described = append(described, DataFile{Name: dataFile.Name})
	}
	entries := []ZipEntry{
		{Name: mimetypeEntry, Content: MimeType},
		{Name: manifestEntry, Content: string(marshalManifest(described))},
	}
	return BuildZip(t, append(entries, dataFiles...)...)
}
