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

package container

import (
	"testing"

	"github.com/nuts-foundation/nuts-siga/asic"
	"github.com/nuts-foundation/nuts-siga/audit"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/nuts-foundation/nuts-siga/storage"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var owner = Owner{ClientName: "client", ServiceName: "service", ServiceUUID: "a7fd7728-a3ea-4975-bfab-f240a67e894f"}

func newTestModule(t *testing.T) *Module {
	module := New(storage.NewTestStorageEngine(t))
	require.NoError(t, module.Configure(*core.NewServerConfig()))
	t.Cleanup(func() {
		_ = module.Shutdown()
	})
	return module
}

func dataFiles() []asic.DataFile {
	return []asic.DataFile{
		asic.NewDataFile("a.txt", []byte("hello")),
		asic.NewDataFile("b.pdf", []byte("world")),
	}
}

func TestModule_CreateHashcodeContainer(t *testing.T) {
	ctx := audit.TestContext()
	t.Run("ok", func(t *testing.T) {
		module := newTestModule(t)
		capturedLogs := audit.CaptureLogs(t)

		containerID, err := module.CreateHashcodeContainer(ctx, owner, dataFiles())

		require.NoError(t, err)
		stored, err := module.store.Get(containerID)
		require.NoError(t, err)
		assert.Equal(t, session.Hashcode, stored.Type)
		assert.Equal(t, dataFiles(), stored.DataFiles)
		assert.Equal(t, "client", stored.ClientName)
		assert.Equal(t, "service", stored.ServiceName)
		assert.Equal(t, owner.ServiceUUID, stored.ServiceUUID)
		assert.Equal(t, 1.0, testutil.ToFloat64(module.containers.WithLabelValues("HASHCODE", "create")))
		capturedLogs.AssertContains(t, ModuleName, audit.ContainerCreatedEvent, audit.TestActor, "Container session created with 2 data file(s) and 0 signature(s)")
	})
	t.Run("no data files", func(t *testing.T) {
		_, err := newTestModule(t).CreateHashcodeContainer(ctx, owner, nil)

		assert.ErrorIs(t, err, asic.ErrInvalidContainer)
	})
	t.Run("duplicate data file", func(t *testing.T) {
		files := append(dataFiles(), asic.NewDataFile("a.txt", []byte("again")))

		_, err := newTestModule(t).CreateHashcodeContainer(ctx, owner, files)

		assert.ErrorIs(t, err, asic.ErrDuplicateDataFile)
	})
	t.Run("missing hash", func(t *testing.T) {
		files := dataFiles()
		files[1].Sha512 = ""

		_, err := newTestModule(t).CreateHashcodeContainer(ctx, owner, files)

		assert.EqualError(t, err, "invalid container: data file 'b.pdf' is missing SHA512 hash")
	})
}

func TestModule_UploadHashcodeContainer(t *testing.T) {
	ctx := audit.TestContext()
	t.Run("ok", func(t *testing.T) {
		module := newTestModule(t)
		signature, err := asic.ParseSignature(asic.TestSignatureXML("a.txt", "b.pdf"))
		require.NoError(t, err)
		encoded, err := asic.EncodeHashcode(dataFiles(), []asic.Signature{*signature})
		require.NoError(t, err)

		containerID, err := module.UploadHashcodeContainer(ctx, owner, encoded)

		require.NoError(t, err)
		stored, err := module.store.Get(containerID)
		require.NoError(t, err)
		assert.Equal(t, session.Hashcode, stored.Type)
		assert.Len(t, stored.DataFiles, 2)
		require.Len(t, stored.Signatures, 1)
		assert.NotEmpty(t, stored.Signatures[0].ID)
		assert.Equal(t, 1.0, testutil.ToFloat64(module.containers.WithLabelValues("HASHCODE", "upload")))
	})
	t.Run("invalid container", func(t *testing.T) {
		module := newTestModule(t)

		_, err := module.UploadHashcodeContainer(ctx, owner, []byte("not a zip"))

		assert.ErrorIs(t, err, asic.ErrInvalidContainer)
		assert.Equal(t, 0.0, testutil.ToFloat64(module.containers.WithLabelValues("HASHCODE", "upload")))
	})
}

func TestModule_UploadASiCContainer(t *testing.T) {
	ctx := audit.TestContext()
	t.Run("ok", func(t *testing.T) {
		module := newTestModule(t)
		data := asic.BuildTestASiC(t, asic.ZipEntry{Name: "a.txt", Content: "hello"})

		containerID, err := module.UploadASiCContainer(ctx, owner, "test.asice", data)

		require.NoError(t, err)
		stored, err := module.store.Get(containerID)
		require.NoError(t, err)
		assert.Equal(t, session.ASiC, stored.Type)
		assert.Equal(t, "test.asice", stored.ContainerName)
		assert.Equal(t, data, stored.Container)
		require.Len(t, stored.DataFiles, 1)
		assert.Equal(t, asic.NewDataFile("a.txt", []byte("hello")).Sha256, stored.DataFiles[0].Sha256)
	})
	t.Run("invalid container", func(t *testing.T) {
		data := asic.BuildZip(t, asic.ZipEntry{Name: "a.txt", Content: "hello"})

		_, err := newTestModule(t).UploadASiCContainer(ctx, owner, "test.asice", data)

		assert.ErrorIs(t, err, asic.ErrInvalidContainer)
	})
}

func TestModule_GetContainer(t *testing.T) {
	ctx := audit.TestContext()
	t.Run("hashcode container includes finished signatures", func(t *testing.T) {
		module := newTestModule(t)
		containerID, err := module.CreateHashcodeContainer(ctx, owner, dataFiles())
		require.NoError(t, err)
		addSignature(t, module, containerID)

		container, err := module.GetContainer(ctx, session.Hashcode, containerID)

		require.NoError(t, err)
		assert.Equal(t, session.Hashcode, container.Type)
		decoded, err := asic.DecodeHashcode(container.Data)
		require.NoError(t, err)
		assert.Equal(t, dataFiles(), decoded.DataFiles)
		assert.Len(t, decoded.Signatures, 1)
	})
	t.Run("ASiC container includes finished signatures", func(t *testing.T) {
		module := newTestModule(t)
		data := asic.BuildTestASiC(t, asic.ZipEntry{Name: "a.txt", Content: "hello"})
		containerID, err := module.UploadASiCContainer(ctx, owner, "test.asice", data)
		require.NoError(t, err)
		addSignature(t, module, containerID)

		container, err := module.GetContainer(ctx, session.ASiC, containerID)

		require.NoError(t, err)
		assert.Equal(t, "test.asice", container.Name)
		read, err := asic.ReadASiC(container.Data)
		require.NoError(t, err)
		require.Len(t, read.Signatures, 1)
		assert.Equal(t, "META-INF/signatures0.xml", read.Signatures[0].Entry)
	})
	t.Run("addressed as other type", func(t *testing.T) {
		module := newTestModule(t)
		containerID, err := module.CreateHashcodeContainer(ctx, owner, dataFiles())
		require.NoError(t, err)

		_, err = module.GetContainer(ctx, session.ASiC, containerID)

		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})
	t.Run("unknown", func(t *testing.T) {
		_, err := newTestModule(t).GetContainer(ctx, session.Hashcode, "unknown")

		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})
	t.Run("all data files deleted", func(t *testing.T) {
		module := newTestModule(t)
		containerID, err := module.CreateHashcodeContainer(ctx, owner, dataFiles()[:1])
		require.NoError(t, err)
		require.NoError(t, module.DeleteDataFile(ctx, session.Hashcode, containerID, "a.txt"))

		_, err = module.GetContainer(ctx, session.Hashcode, containerID)

		assert.ErrorIs(t, err, session.ErrInvalidSessionData)
	})
}

func TestModule_DeleteContainer(t *testing.T) {
	ctx := audit.TestContext()
	t.Run("ok", func(t *testing.T) {
		module := newTestModule(t)
		containerID, err := module.CreateHashcodeContainer(ctx, owner, dataFiles())
		require.NoError(t, err)
		capturedLogs := audit.CaptureLogs(t)

		err = module.DeleteContainer(ctx, session.Hashcode, containerID)

		require.NoError(t, err)
		_, err = module.store.Get(containerID)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
		capturedLogs.AssertContains(t, ModuleName, audit.ContainerDeletedEvent, audit.TestActor, "Container session closed")
	})
	t.Run("unknown", func(t *testing.T) {
		err := newTestModule(t).DeleteContainer(ctx, session.Hashcode, "unknown")

		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})
}

func TestModule_DataFiles(t *testing.T) {
	ctx := audit.TestContext()
	t.Run("add", func(t *testing.T) {
		module := newTestModule(t)
		containerID, err := module.CreateHashcodeContainer(ctx, owner, dataFiles())
		require.NoError(t, err)
		added := asic.NewDataFile("c.txt", []byte("!"))

		err = module.AddDataFiles(ctx, session.Hashcode, containerID, []asic.DataFile{added})

		require.NoError(t, err)
		files, err := module.GetDataFiles(ctx, session.Hashcode, containerID)
		require.NoError(t, err)
		assert.Equal(t, append(dataFiles(), added), files)
	})
	t.Run("add duplicate", func(t *testing.T) {
		module := newTestModule(t)
		containerID, err := module.CreateHashcodeContainer(ctx, owner, dataFiles())
		require.NoError(t, err)

		err = module.AddDataFiles(ctx, session.Hashcode, containerID, dataFiles()[:1])

		assert.ErrorIs(t, err, asic.ErrDuplicateDataFile)
	})
	t.Run("add nothing", func(t *testing.T) {
		module := newTestModule(t)
		containerID, err := module.CreateHashcodeContainer(ctx, owner, dataFiles())
		require.NoError(t, err)

		err = module.AddDataFiles(ctx, session.Hashcode, containerID, nil)

		assert.ErrorIs(t, err, session.ErrInvalidSessionData)
	})
	t.Run("delete", func(t *testing.T) {
		module := newTestModule(t)
		containerID, err := module.CreateHashcodeContainer(ctx, owner, dataFiles())
		require.NoError(t, err)

		err = module.DeleteDataFile(ctx, session.Hashcode, containerID, "a.txt")

		require.NoError(t, err)
		files, err := module.GetDataFiles(ctx, session.Hashcode, containerID)
		require.NoError(t, err)
		assert.Equal(t, dataFiles()[1:], files)
	})
	t.Run("delete unknown", func(t *testing.T) {
		module := newTestModule(t)
		containerID, err := module.CreateHashcodeContainer(ctx, owner, dataFiles())
		require.NoError(t, err)

		err = module.DeleteDataFile(ctx, session.Hashcode, containerID, "c.txt")

		assert.ErrorIs(t, err, ErrDataFileNotFound)
		assert.Equal(t, session.ResourceNotFoundCode, core.ErrorCodeOf(err))
	})
	t.Run("container has signatures", func(t *testing.T) {
		module := newTestModule(t)
		containerID, err := module.CreateHashcodeContainer(ctx, owner, dataFiles())
		require.NoError(t, err)
		addSignature(t, module, containerID)

		err = module.DeleteDataFile(ctx, session.Hashcode, containerID, "a.txt")

		assert.EqualError(t, err, "invalid session data: Unable to change data files of a container with signatures")
	})
	t.Run("signature in progress", func(t *testing.T) {
		module := newTestModule(t)
		containerID, err := module.CreateHashcodeContainer(ctx, owner, dataFiles())
		require.NoError(t, err)
		startSignature(t, module, containerID, "signature-1")

		err = module.AddDataFiles(ctx, session.Hashcode, containerID, []asic.DataFile{asic.NewDataFile("c.txt", []byte("!"))})
		assert.EqualError(t, err, "invalid session data: Unable to change data files of a container with a signature in progress")
		err = module.DeleteDataFile(ctx, session.Hashcode, containerID, "a.txt")
		assert.EqualError(t, err, "invalid session data: Unable to change data files of a container with a signature in progress")

		container, err := module.store.Get(containerID)
		require.NoError(t, err)
		assert.Len(t, container.DataFiles, 2)
	})
	t.Run("finished signature session", func(t *testing.T) {
		module := newTestModule(t)
		containerID, err := module.CreateHashcodeContainer(ctx, owner, dataFiles())
		require.NoError(t, err)
		startSignature(t, module, containerID, "signature-1")
		container, err := module.store.Get(containerID)
		require.NoError(t, err)
		container.SignatureSession("signature-1").DataToSign = nil
		require.NoError(t, module.store.Put(container))

		err = module.AddDataFiles(ctx, session.Hashcode, containerID, []asic.DataFile{asic.NewDataFile("c.txt", []byte("!"))})

		assert.NoError(t, err)
	})
	t.Run("ASiC container", func(t *testing.T) {
		module := newTestModule(t)
		data := asic.BuildTestASiC(t, asic.ZipEntry{Name: "a.txt", Content: "hello"})
		containerID, err := module.UploadASiCContainer(ctx, owner, "test.asice", data)
		require.NoError(t, err)

		err = module.AddDataFiles(ctx, session.ASiC, containerID, dataFiles()[1:])

		assert.EqualError(t, err, "invalid session data: Data files of ASIC containers can't be changed")
	})
}

func TestModule_Signatures(t *testing.T) {
	ctx := audit.TestContext()
	module := newTestModule(t)
	containerID, err := module.CreateHashcodeContainer(ctx, owner, dataFiles())
	require.NoError(t, err)
	signatureID := addSignature(t, module, containerID)

	t.Run("list", func(t *testing.T) {
		signatures, err := module.GetSignatures(ctx, session.Hashcode, containerID)

		require.NoError(t, err)
		require.Len(t, signatures, 1)
		assert.Equal(t, signatureID, signatures[0].ID)
	})
	t.Run("by ID", func(t *testing.T) {
		signature, err := module.GetSignature(ctx, session.Hashcode, containerID, signatureID)

		require.NoError(t, err)
		assert.Equal(t, []asic.SignatureDataFile{{Name: "a.txt", HashAlgorithm: "SHA256"}, {Name: "b.pdf", HashAlgorithm: "SHA256"}}, signature.DataFiles)
	})
	t.Run("unknown", func(t *testing.T) {
		_, err := module.GetSignature(ctx, session.Hashcode, containerID, "unknown")

		assert.ErrorIs(t, err, ErrSignatureNotFound)
	})
}

// addSignature adds a finished signature to the container, like the signing module does.
func addSignature(t *testing.T, module *Module, containerID string) string {
	t.Helper()
	container, err := module.store.Get(containerID)
	require.NoError(t, err)
	signature, err := asic.ParseSignature(asic.TestSignatureXML("a.txt", "b.pdf"))
	require.NoError(t, err)
	container.AddSignature(*signature)
	require.NoError(t, module.store.Put(container))
	return signature.ID
}

func startSignature(t *testing.T, module *Module, containerID string, signatureID string) {
	t.Helper()
	container, err := module.store.Get(containerID)
	require.NoError(t, err)
	container.AddSignatureSession(signatureID, &session.SignatureSession{
		SigningType: session.Remote,
		DataToSign:  &session.DataToSign{SignatureID: signatureID, Data: []byte("data"), DigestAlgorithm: "SHA256"},
	})
	require.NoError(t, module.store.Put(container))
}
