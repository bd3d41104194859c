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

package smartid

import "time"

const (
	// DisplayTextAndPIN asks the person to confirm the display text by entering their PIN.
	DisplayTextAndPIN = "DISPLAY_TEXT_AND_PIN"
	// VerificationCodeChoice asks the person to pick the verification code from a list before entering their PIN.
	VerificationCodeChoice = "VERIFICATION_CODE_CHOICE"
)

// DefaultConfig returns the default configuration of the Smart-ID client.
func DefaultConfig() Config {
	return Config{
		URL:             "https://sid.demo.sk.ee/smart-id-rp/v2",
		Timeout:         10 * time.Second,
		Retries:         3,
		StatusTimeout:   time.Second,
		InteractionType: DisplayTextAndPIN,
	}
}

// Config specifies the connection to the Smart-ID relying party API.
type Config struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
	// Retries is the number of attempts for idempotent requests failing on transport errors.
	Retries       int           `koanf:"retries"`
	StatusTimeout time.Duration `koanf:"statustimeout"`
	// InteractionType is either DISPLAY_TEXT_AND_PIN or VERIFICATION_CODE_CHOICE.
	InteractionType string `koanf:"interactiontype"`
}
