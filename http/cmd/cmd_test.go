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
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func TestFlagSet(t *testing.T) {
	flags := FlagSet()
	var keys []string
	flags.VisitAll(func(flag *pflag.Flag) {
		keys = append(keys, flag.Name)
	})

	assert.Len(t, keys, 8)
	assert.Contains(t, keys, "http.cors.origin")
	assert.Equal(t, ":8080", flags.Lookup("http.address").DefValue)
	assert.Equal(t, "metadata", flags.Lookup("http.log").DefValue)
	assert.Equal(t, "disabled", flags.Lookup("http.tls").DefValue)
	assert.Equal(t, "10", flags.Lookup("http.ratelimit.burst").DefValue)
}
