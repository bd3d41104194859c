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
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// verifySignature verifies the signature value over data. ECDSA signatures may be raw (r||s) or ASN.1 encoded.
// It returns the signature value in the form used in XML signatures: raw for ECDSA.
func verifySignature(certificate *x509.Certificate, algorithm digestAlgorithm, data []byte, signatureValue []byte) ([]byte, error) {
	digest := algorithm.digest(data)
	switch key := certificate.PublicKey.(type) {
	case *ecdsa.PublicKey:
		raw, der, err := normalizeECDSASignature(key, signatureValue)
		if err != nil {
			return nil, err
		}
		if !ecdsa.VerifyASN1(key, digest, der) {
			return nil, ErrInvalidSignature
		}
		return raw, nil
	case *rsa.PublicKey:
		if err := rsa.VerifyPKCS1v15(key, algorithm.hash, digest, signatureValue); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSignature, err)
		}
		return signatureValue, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKey, certificate.PublicKey)
	}
}

// normalizeECDSASignature returns both the raw (r||s) and the ASN.1 form of an ECDSA signature.
func normalizeECDSASignature(key *ecdsa.PublicKey, signature []byte) ([]byte, []byte, error) {
	size := (key.Curve.Params().BitSize + 7) / 8
	r, s := new(big.Int), new(big.Int)
	if len(signature) == 2*size {
		r.SetBytes(signature[:size])
		s.SetBytes(signature[size:])
	} else {
		input := cryptobyte.String(signature)
		var inner cryptobyte.String
		if !input.ReadASN1(&inner, asn1.SEQUENCE) || !input.Empty() ||
			!inner.ReadASN1Integer(r) || !inner.ReadASN1Integer(s) || !inner.Empty() {
			return nil, nil, fmt.Errorf("%w: malformed ECDSA signature", ErrInvalidSignature)
		}
		if r.Sign() <= 0 || s.Sign() <= 0 || r.BitLen() > size*8 || s.BitLen() > size*8 {
			return nil, nil, fmt.Errorf("%w: ECDSA signature out of range", ErrInvalidSignature)
		}
	}
	raw := make([]byte, 2*size)
	r.FillBytes(raw[:size])
	s.FillBytes(raw[size:])

	var builder cryptobyte.Builder
	builder.AddASN1(asn1.SEQUENCE, func(child *cryptobyte.Builder) {
		child.AddASN1BigInt(r)
		child.AddASN1BigInt(s)
	})
	der, err := builder.Bytes()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}
	return raw, der, nil
}

// validateCertificate checks the certificate is valid at the given time and, if roots are given, chains to one of them.
func validateCertificate(certificate *x509.Certificate, roots *x509.CertPool, at time.Time) error {
	if at.Before(certificate.NotBefore) || at.After(certificate.NotAfter) {
		return fmt.Errorf("%w: not valid at %s", ErrInvalidCertificate, at.Format(time.RFC3339))
	}
	if roots == nil {
		return nil
	}
	_, err := certificate.Verify(x509.VerifyOptions{
		Roots:       roots,
		CurrentTime: at,
		KeyUsages:   []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	})
	if err != nil {
		var unknownAuthority x509.UnknownAuthorityError
		if errors.As(err, &unknownAuthority) {
			return fmt.Errorf("%w: issuer is not trusted", ErrInvalidCertificate)
		}
		return fmt.Errorf("%w: %s", ErrInvalidCertificate, err)
	}
	return nil
}
