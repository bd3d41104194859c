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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

const testEngineName = "testengine"

// TestEngineConfig defines the configuration for the test engine
type TestEngineConfig struct {
	Key      string              `koanf:"key"`
	Interval time.Duration       `koanf:"interval"`
	Sub      TestEngineSubConfig `koanf:"sub"`
	List     []string            `koanf:"list"`
}

// TestEngineSubConfig defines the `sub` configuration for the test engine
type TestEngineSubConfig struct {
	Test string `koanf:"test"`
}

// TestEngine is a configurable, runnable engine for testing the System.
type TestEngine struct {
	TestConfig    TestEngineConfig
	Started       bool
	ShutdownError error
}

func testDefaultConfig() TestEngineConfig {
	return TestEngineConfig{List: []string{"default", "default"}, Interval: time.Minute}
}

// Start marks the engine as started
func (i *TestEngine) Start() error {
	i.Started = true
	return nil
}

// Shutdown returns the configured ShutdownError
func (i *TestEngine) Shutdown() error {
	i.Started = false
	return i.ShutdownError
}

func (i *TestEngine) Config() interface{} {
	return &i.TestConfig
}

func (i *TestEngine) Name() string {
	return testEngineName
}

func testFlagSet() *pflag.FlagSet {
	flags := FlagSet()
	defs := testDefaultConfig()
	flags.StringSlice(testEngineName+".list", defs.List, "sets the values of list")
	flags.String(testEngineName+".key", defs.Key, "another flag")
	flags.Duration(testEngineName+".interval", defs.Interval, "an interval")
	return flags
}

// TestCertificate creates a self-signed ECDSA certificate and its key, for use in tests.
func TestCertificate(t testing.TB, commonName string) (*x509.Certificate, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	template := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      pkix.Name{CommonName: commonName, Country: []string{"EE"}},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageContentCommitment,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, key.Public(), key)
	if err != nil {
		t.Fatal(err)
	}
	certificate, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatal(err)
	}
	return certificate, key
}

// CertificateToPEM encodes the certificate as PEM.
func CertificateToPEM(certificate *x509.Certificate) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certificate.Raw})
}
