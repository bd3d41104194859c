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

package core

import (
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Run("scalar value", func(t *testing.T) {
		t.Setenv("SIGA_REPROCESSING_WORKERS", "4")
		configMap := koanf.New(defaultDelimiter)

		require.NoError(t, loadFromEnv(configMap))

		assert.Equal(t, "4", configMap.String("reprocessing.workers"))
	})
	t.Run("list value", func(t *testing.T) {
		t.Setenv("SIGA_HTTP_CORS_ORIGIN", "a.example.com, b.example.com")
		configMap := koanf.New(defaultDelimiter)

		require.NoError(t, loadFromEnv(configMap))

		assert.Equal(t, []string{"a.example.com", "b.example.com"}, configMap.Strings("http.cors.origin"))
	})
	t.Run("other prefix is ignored", func(t *testing.T) {
		t.Setenv("OTHER_VERBOSITY", "debug")
		configMap := koanf.New(defaultDelimiter)

		require.NoError(t, loadFromEnv(configMap))

		assert.False(t, configMap.Exists("verbosity"))
	})
}

func TestLoadConfigMap(t *testing.T) {
	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("SIGA_VERBOSITY", "debug")
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--verbosity=warn"}))
		configMap := koanf.New(defaultDelimiter)

		require.NoError(t, loadConfigMap(configMap, flags))

		assert.Equal(t, "warn", configMap.String("verbosity"))
	})
	t.Run("missing config file is ignored", func(t *testing.T) {
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String(configFileFlag, "does-not-exist.yaml", "")
		configMap := koanf.New(defaultDelimiter)

		assert.NoError(t, loadConfigMap(configMap, flags))
	})
}

func TestLoadEngineDefaults(t *testing.T) {
	engine := &TestEngine{TestConfig: testDefaultConfig()}
	configMap := koanf.New(defaultDelimiter)

	require.NoError(t, loadEngineDefaults(configMap, engine))

	assert.Equal(t, []string{"default", "default"}, configMap.Strings("testengine.list"))
	assert.Equal(t, "1m0s", configMap.String("testengine.interval"))
}
