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
)

const manifestNamespace = "urn:oasis:names:tc:opendocument:xmlns:manifest:1.0"

type manifestDocument struct {
	XMLName xml.Name            `xml:"urn:oasis:names:tc:opendocument:xmlns:manifest:1.0 manifest"`
	Entries []manifestFileEntry `xml:"urn:oasis:names:tc:opendocument:xmlns:manifest:1.0 file-entry"`
}

type manifestFileEntry struct {
	FullPath  string `xml:"urn:oasis:names:tc:opendocument:xmlns:manifest:1.0 full-path,attr"`
	MediaType string `xml:"urn:oasis:names:tc:opendocument:xmlns:manifest:1.0 media-type,attr"`
}

// marshalManifest writes the ODF manifest. encoding/xml can't write prefixed namespaces, so the document is written by hand.
func marshalManifest(dataFiles []DataFile) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="no" ?>` + "\n")
	buf.WriteString(`<manifest:manifest xmlns:manifest="` + manifestNamespace + `" manifest:version="1.2">` + "\n")
	writeManifestEntry(buf, "/", MimeType)
	for _, dataFile := range dataFiles {
		mimeType := dataFile.MimeType
		if mimeType == "" {
			mimeType = DefaultDataFileMimeType
		}
		writeManifestEntry(buf, dataFile.Name, mimeType)
	}
	buf.WriteString("</manifest:manifest>")
	return buf.Bytes()
}

func writeManifestEntry(buf *bytes.Buffer, fullPath string, mediaType string) {
	buf.WriteString(`<manifest:file-entry manifest:full-path="`)
	_ = xml.EscapeText(buf, []byte(fullPath))
	buf.WriteString(`" manifest:media-type="`)
	_ = xml.EscapeText(buf, []byte(mediaType))
	buf.WriteString("\"/>\n")
}

// parseManifest returns the media type per file, without the root entry.
func parseManifest(data []byte) (map[string]string, error) {
	var document manifestDocument
	if err := xml.Unmarshal(data, &document); err != nil {
		return nil, invalidContainer("unable to parse manifest: %s", err)
	}
	result := make(map[string]string, len(document.Entries))
	for _, entry := range document.Entries {
		if entry.FullPath == "/" {
			continue
		}
		result[entry.FullPath] = entry.MediaType
	}
	return result, nil
}
