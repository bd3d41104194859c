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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSignature(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		content := TestSignatureXML("test.txt", "file with spaces.pdf")

		signature, err := ParseSignature(content)

		require.NoError(t, err)
		assert.NotEmpty(t, signature.ID)
		assert.Equal(t, content, signature.Content)
		assert.Empty(t, signature.Entry)
		assert.Equal(t, []SignatureDataFile{
			{Name: "test.txt", HashAlgorithm: "SHA256"},
			{Name: "file with spaces.pdf", HashAlgorithm: "SHA256"},
		}, signature.DataFiles)
	})
	t.Run("each signature gets a new ID", func(t *testing.T) {
		first, _ := ParseSignature(TestSignatureXML("test.txt"))
		second, _ := ParseSignature(TestSignatureXML("test.txt"))

		assert.NotEqual(t, first.ID, second.ID)
	})
	t.Run("unknown digest method is kept as-is", func(t *testing.T) {
		content := `<Signature><SignedInfo><Reference URI="a.txt"><DigestMethod Algorithm="urn:custom"/></Reference></SignedInfo></Signature>`

		signature, err := ParseSignature([]byte(content))

		require.NoError(t, err)
		assert.Equal(t, "urn:custom", signature.DataFiles[0].HashAlgorithm)
	})
	t.Run("duplicate reference", func(t *testing.T) {
		_, err := ParseSignature(TestSignatureXML("test.txt", "test.txt"))

		assert.ErrorIs(t, err, ErrDuplicateDataFile)
	})
	t.Run("no data file references", func(t *testing.T) {
		_, err := ParseSignature(TestSignatureXML())

		assert.ErrorIs(t, err, ErrInvalidContainer)
	})
	t.Run("malformed XML", func(t *testing.T) {
		_, err := ParseSignature([]byte("<Signature><SignedInfo>"))

		assert.ErrorIs(t, err, ErrInvalidContainer)
	})
}

func TestDigestAlgorithmName(t *testing.T) {
	name, ok := DigestAlgorithmName("http://www.w3.org/2001/04/xmlenc#sha512")
	assert.True(t, ok)
	assert.Equal(t, "SHA512", name)

	_, ok = DigestAlgorithmName("urn:unknown")
	assert.False(t, ok)
}
