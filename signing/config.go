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

package signing

import (
	"github.com/nuts-foundation/nuts-siga/mobileid"
	"github.com/nuts-foundation/nuts-siga/smartid"
)

// DefaultDisplayTextTemplate shows the message of the signing request as is.
const DefaultDisplayTextTemplate = "{{{message}}}"

// DefaultConfig returns the default configuration of the signing module.
func DefaultConfig() Config {
	return Config{
		DisplayTextTemplate: DefaultDisplayTextTemplate,
		MobileID:            mobileid.DefaultConfig(),
		SmartID:             smartid.DefaultConfig(),
	}
}

// Config specifies the signing module.
type Config struct {
	// RelyingParty is used for provider sessions of containers that weren't created on behalf of a service.
	RelyingParty RelyingPartyConfig `koanf:"relyingparty"`
	// DisplayTextTemplate is the mustache template of the text shown on the signer's device.
	// It can use message, serviceName, containerName and dataFileCount.
	DisplayTextTemplate string          `koanf:"displaytexttemplate"`
	MobileID            mobileid.Config `koanf:"mobileid"`
	SmartID             smartid.Config  `koanf:"smartid"`
}

// RelyingPartyConfig identifies the default relying party towards Mobile-ID and Smart-ID.
type RelyingPartyConfig struct {
	Name string `koanf:"name"`
	UUID string `koanf:"uuid"`
}
