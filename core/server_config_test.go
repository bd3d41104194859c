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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfig_Load(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)
	defer logrus.SetFormatter(&logrus.TextFormatter{})

	t.Run("defaults", func(t *testing.T) {
		config := NewServerConfig()

		require.NoError(t, config.Load(FlagSet()))

		assert.Equal(t, "info", config.Verbosity)
		assert.Equal(t, "text", config.LoggerFormat)
		assert.True(t, config.Strictmode)
	})
	t.Run("config file, overridden by env and flags", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "siga.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("verbosity: warn\nloggerformat: json\nstrictmode: false\n"), 0600))
		t.Setenv("SIGA_CONFIGFILE", configFile)
		t.Setenv("SIGA_LOGGERFORMAT", "text")
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--verbosity=debug"}))
		config := NewServerConfig()

		require.NoError(t, config.Load(flags))

		assert.Equal(t, "debug", config.Verbosity)
		assert.Equal(t, "text", config.LoggerFormat)
		assert.False(t, config.Strictmode)
		assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	})
	t.Run("invalid logger format", func(t *testing.T) {
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--loggerformat=xml"}))

		err := NewServerConfig().Load(flags)

		assert.EqualError(t, err, "invalid formatter: 'xml'")
	})
}

func TestServerConfig_InjectIntoEngine(t *testing.T) {
	flags := testFlagSet()
	require.NoError(t, flags.Parse([]string{"--testengine.interval=5s", "--testengine.key=value"}))
	config := NewServerConfig()
	require.NoError(t, config.Load(flags))
	engine := &TestEngine{}

	require.NoError(t, config.InjectIntoEngine(engine))

	assert.Equal(t, 5*time.Second, engine.TestConfig.Interval)
	assert.Equal(t, "value", engine.TestConfig.Key)
}

func TestServerConfig_PrintConfig(t *testing.T) {
	config := NewServerConfig()
	require.NoError(t, config.Load(FlagSet()))

	actual, err := config.PrintConfig()

	require.NoError(t, err)
	assert.Contains(t, actual, "verbosity: info")
}

func TestTLSConfig_Load(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		actual, err := TLSConfig{}.Load()

		assert.NoError(t, err)
		assert.Nil(t, actual)
	})
	t.Run("incomplete", func(t *testing.T) {
		_, err := TLSConfig{CertFile: "cert.pem"}.Load()

		assert.EqualError(t, err, "tls.certfile, tls.certkeyfile and tls.truststorefile must be configured when TLS is enabled")
	})
}
