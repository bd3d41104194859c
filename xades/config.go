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

// DefaultConfig returns the default configuration of the signature engine.
func DefaultConfig() Config {
	return Config{
		DigestAlgorithm: SHA256,
	}
}

// Config specifies the configuration of the signature engine.
type Config struct {
	// TrustStoreFile is a PEM file with the CA certificates signer certificates must chain to.
	// When empty, signer certificates are only checked for their validity period.
	TrustStoreFile string `koanf:"truststorefile"`
	// DigestAlgorithm is the default digest algorithm (SHA256 or SHA512) for data to sign.
	DigestAlgorithm string `koanf:"digestalgorithm"`
}
