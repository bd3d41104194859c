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

package cmd

import (
	"github.com/nuts-foundation/nuts-siga/xades"
	"github.com/spf13/pflag"
)

// FlagSet contains flags relevant for the engine
func FlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("xades", pflag.ContinueOnError)
	defs := xades.DefaultConfig()
	flagSet.String("xades.truststorefile", defs.TrustStoreFile, "PEM file containing the CA certificates signer certificates must chain to. If not set, only the validity period of signer certificates is checked.")
	flagSet.String("xades.digestalgorithm", defs.DigestAlgorithm, "Default digest algorithm of signatures (SHA256 or SHA512).")
	return flagSet
}
