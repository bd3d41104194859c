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

import "errors"

// ErrUnsupportedDigestAlgorithm is returned for digest algorithms other than SHA256 and SHA512.
var ErrUnsupportedDigestAlgorithm = errors.New("unsupported digest algorithm")

// ErrUnsupportedKey is returned when the signer certificate holds neither an ECDSA nor an RSA key.
var ErrUnsupportedKey = errors.New("unsupported signer key type")

// ErrInvalidCertificate is returned when the signer certificate can't be parsed, is expired or isn't trusted.
var ErrInvalidCertificate = errors.New("invalid signer certificate")

// ErrInvalidSignature is returned when the signature value doesn't verify against the data to sign.
var ErrInvalidSignature = errors.New("invalid signature value")
