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

package xades

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"fmt"

	// register hash implementations
	_ "crypto/sha256"
	_ "crypto/sha512"
)

// Digest algorithm names.
const (
	SHA256 = "SHA256"
	SHA512 = "SHA512"
)

type digestAlgorithm struct {
	name     string
	hash     crypto.Hash
	uri      string
	ecdsaURI string
	rsaURI   string
}

var digestAlgorithms = map[string]digestAlgorithm{
	SHA256: {
		name:     SHA256,
		hash:     crypto.SHA256,
		uri:      "http://www.w3.org/2001/04/xmlenc#sha256",
		ecdsaURI: "http://www.w3.org/2001/04/xmldsig-more#ecdsa-sha256",
		rsaURI:   "http://www.w3.org/2001/04/xmldsig-more#rsa-sha256",
	},
	SHA512: {
		name:     SHA512,
		hash:     crypto.SHA512,
		uri:      "http://www.w3.org/2001/04/xmlenc#sha512",
		ecdsaURI: "http://www.w3.org/2001/04/xmldsig-more#ecdsa-sha512",
		rsaURI:   "http://www.w3.org/2001/04/xmldsig-more#rsa-sha512",
	},
}

func lookupDigestAlgorithm(name string) (digestAlgorithm, error) {
	algorithm, ok := digestAlgorithms[name]
	if !ok {
		return digestAlgorithm{}, fmt.Errorf("%w: '%s'", ErrUnsupportedDigestAlgorithm, name)
	}
	return algorithm, nil
}

func (d digestAlgorithm) digest(data []byte) []byte {
	h := d.hash.New()
	_, _ = h.Write(data)
	return h.Sum(nil)
}

func (d digestAlgorithm) signatureMethod(certificate *x509.Certificate) (string, error) {
	switch certificate.PublicKey.(type) {
	case *ecdsa.PublicKey:
		return d.ecdsaURI, nil
	case *rsa.PublicKey:
		return d.rsaURI, nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedKey, certificate.PublicKey)
	}
}

// Digest returns the digest of the data to sign, which is what providers like Mobile-ID and Smart-ID sign.
func Digest(algorithm string, data []byte) ([]byte, error) {
	d, err := lookupDigestAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	return d.digest(data), nil
}
