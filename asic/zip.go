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
	"hash/crc32"
	"io"
	"time"
)

// writeStored writes an uncompressed entry with CRC and sizes in the local header, so it can be read without the central directory.
func writeStored(writer *zip.Writer, name string, data []byte, modified time.Time) error {
	header := &zip.FileHeader{
		Name:               name,
		Method:             zip.Store,
		Modified:           modified,
		CRC32:              crc32.ChecksumIEEE(data),
		CompressedSize64:   uint64(len(data)),
		UncompressedSize64: uint64(len(data)),
	}
	w, err := writer.CreateRaw(header)
	if err != nil {
		return fmt.Errorf("unable to write ZIP entry %s: %w", name, err)
	}
	_, err = w.Write(data)
	return err
}

func writeDeflated(writer *zip.Writer, name string, data []byte, modified time.Time) error {
	w, err := writer.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("unable to write ZIP entry %s: %w", name, err)
	}
	_, err = w.Write(data)
	return err
}

func openZip(data []byte) (*zip.Reader, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, invalidContainer("unable to open container: %s", err)
	}
	if len(reader.File) == 0 {
		return nil, invalidContainer("container has no entries")
	}
	return reader, nil
}

// readEntry reads at most maxSize bytes of the entry, failing if it is larger.
func readEntry(file *zip.File, maxSize int64) ([]byte, error) {
	if maxSize > 0 && file.UncompressedSize64 > uint64(maxSize) {
		return nil, invalidContainer("container entry %s is too large", file.Name)
	}
	rc, err := file.Open()
	if err != nil {
		return nil, invalidContainer("unable to read container entry %s: %s", file.Name, err)
	}
	defer rc.Close()
	var reader io.Reader = rc
	if maxSize > 0 {
		// the header could lie about the size
		reader = io.LimitReader(rc, maxSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, invalidContainer("unable to read container entry %s: %s", file.Name, err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, invalidContainer("container entry %s is too large", file.Name)
	}
	return data, nil
}
