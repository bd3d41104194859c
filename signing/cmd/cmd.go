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
	"github.com/nuts-foundation/nuts-siga/signing"
	"github.com/spf13/pflag"
)

// FlagSet contains flags relevant for the module.
func FlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("signing", pflag.ContinueOnError)
	defs := signing.DefaultConfig()
	flagSet.String("signing.relyingparty.name", defs.RelyingParty.Name, "Relying party name towards Mobile-ID and Smart-ID, for containers that weren't created on behalf of a service.")
	flagSet.String("signing.relyingparty.uuid", defs.RelyingParty.UUID, "Relying party UUID towards Mobile-ID and Smart-ID, for containers that weren't created on behalf of a service.")
	flagSet.String("signing.displaytexttemplate", defs.DisplayTextTemplate, "Mustache template of the text shown on the signer's device. "+
		"It can use message, serviceName, containerName and dataFileCount.")

	flagSet.String("signing.mobileid.url", defs.MobileID.URL, "Base URL of the Mobile-ID REST API.")
	flagSet.Duration("signing.mobileid.timeout", defs.MobileID.Timeout, "Timeout of requests to the Mobile-ID REST API, formatted as Golang duration (e.g. 10s).")
	flagSet.Int("signing.mobileid.retries", defs.MobileID.Retries, "Number of attempts of status and certificate requests to Mobile-ID that fail on a network error.")
	flagSet.Duration("signing.mobileid.statustimeout", defs.MobileID.StatusTimeout, "Time the Mobile-ID service may wait for a status change before answering a status request.")

	flagSet.String("signing.smartid.url", defs.SmartID.URL, "Base URL of the Smart-ID relying party API (v2).")
	flagSet.Duration("signing.smartid.timeout", defs.SmartID.Timeout, "Timeout of requests to the Smart-ID API, formatted as Golang duration (e.g. 10s).")
	flagSet.Int("signing.smartid.retries", defs.SmartID.Retries, "Number of attempts of status requests to Smart-ID that fail on a network error.")
	flagSet.Duration("signing.smartid.statustimeout", defs.SmartID.StatusTimeout, "Time the Smart-ID service may wait for a status change before answering a status request.")
	flagSet.String("signing.smartid.interactiontype", defs.SmartID.InteractionType, "Interaction of Smart-ID signing: DISPLAY_TEXT_AND_PIN or VERIFICATION_CODE_CHOICE.")
	return flagSet
}
