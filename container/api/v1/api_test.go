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

package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/nuts-siga/asic"
	"github.com/nuts-foundation/nuts-siga/audit"
	"github.com/nuts-foundation/nuts-siga/container"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type mockContext struct {
	service *container.MockService
	echo    *echo.Echo
}

func newMockContext(t *testing.T) mockContext {
	ctrl := gomock.NewController(t)
	service := container.NewMockService(ctrl)
	e := echo.New()
	e.HTTPErrorHandler = core.CreateHTTPErrorHandler()
	(&Wrapper{Service: service}).Routes(e)
	return mockContext{service: service, echo: e}
}

func (m mockContext) do(method string, path string, body string, headers ...string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		request.Header.Set(headers[i], headers[i+1])
	}
	recorder := httptest.NewRecorder()
	m.echo.ServeHTTP(recorder, request)
	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), target))
}

func problemCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var problem map[string]interface{}
	decode(t, recorder, &problem)
	return fmt.Sprintf("%s", problem["code"])
}

var dataFile = asic.NewDataFile("a.txt", []byte("hello"))

func TestWrapper_ResolveStatusCode(t *testing.T) {
	wrapper := &Wrapper{}
	testCases := []struct {
		err      error
		expected int
	}{
		{asic.ErrInvalidContainer, http.StatusBadRequest},
		{asic.ErrDuplicateDataFile, http.StatusBadRequest},
		{session.InvalidSessionData("signed"), http.StatusBadRequest},
		{session.ErrSessionNotFound, http.StatusNotFound},
		{container.ErrDataFileNotFound, http.StatusNotFound},
		{container.ErrSignatureNotFound, http.StatusNotFound},
		{errors.New("other"), 0},
	}
	for _, testCase := range testCases {
		t.Run(testCase.err.Error(), func(t *testing.T) {
			assert.Equal(t, testCase.expected, wrapper.ResolveStatusCode(testCase.err))
		})
	}
}

func TestWrapper_CreateHashcodeContainer(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctx := newMockContext(t)
		expectedOwner := container.Owner{ClientName: "192.0.2.1", ServiceName: "service", ServiceUUID: "uuid"}
		ctx.service.EXPECT().CreateHashcodeContainer(audit.ContextWithAuditInfo(), expectedOwner, []asic.DataFile{dataFile}).Return("container-1", nil)
		body, _ := json.Marshal(CreateHashcodeContainerRequest{DataFiles: []DataFile{fromDataFile(dataFile)}})

		recorder := ctx.do(http.MethodPost, "/hashcodecontainers", string(body), ServiceNameHeader, "service", ServiceUUIDHeader, "uuid")

		require.Equal(t, http.StatusOK, recorder.Code)
		var response CreateContainerResponse
		decode(t, recorder, &response)
		assert.Equal(t, "container-1", response.ContainerID)
	})
	t.Run("invalid data files", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().CreateHashcodeContainer(gomock.Any(), gomock.Any(), gomock.Any()).Return("", asic.ErrDuplicateDataFile)

		recorder := ctx.do(http.MethodPost, "/hashcodecontainers", `{"dataFiles":[]}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "DUPLICATE_DATA_FILE", problemCode(t, recorder))
	})
	t.Run("invalid body", func(t *testing.T) {
		recorder := newMockContext(t).do(http.MethodPost, "/hashcodecontainers", `{"dataFiles":`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestWrapper_UploadHashcodeContainer(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().UploadHashcodeContainer(audit.ContextWithAuditInfo(), gomock.Any(), []byte("zip")).Return("container-1", nil)

		recorder := ctx.do(http.MethodPost, "/hashcodecontainers/upload", `{"container":"emlw"}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		var response CreateContainerResponse
		decode(t, recorder, &response)
		assert.Equal(t, "container-1", response.ContainerID)
	})
	t.Run("invalid container", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().UploadHashcodeContainer(gomock.Any(), gomock.Any(), gomock.Any()).Return("", fmt.Errorf("%w: no mimetype", asic.ErrInvalidContainer))

		recorder := ctx.do(http.MethodPost, "/hashcodecontainers/upload", `{"container":"emlw"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "INVALID_CONTAINER", problemCode(t, recorder))
	})
	t.Run("missing container", func(t *testing.T) {
		recorder := newMockContext(t).do(http.MethodPost, "/hashcodecontainers/upload", `{}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestWrapper_UploadContainer(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().UploadASiCContainer(audit.ContextWithAuditInfo(), gomock.Any(), "test.asice", []byte("zip")).Return("container-1", nil)

		recorder := ctx.do(http.MethodPost, "/containers/upload", `{"containerName":"test.asice","container":"emlw"}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("missing name", func(t *testing.T) {
		recorder := newMockContext(t).do(http.MethodPost, "/containers/upload", `{"container":"emlw"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestWrapper_GetContainer(t *testing.T) {
	t.Run("hashcode", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().GetContainer(audit.ContextWithAuditInfo(), session.Hashcode, "container-1").Return(&container.Container{Type: session.Hashcode, Data: []byte("zip")}, nil)

		recorder := ctx.do(http.MethodGet, "/hashcodecontainers/container-1", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		var response GetContainerResponse
		decode(t, recorder, &response)
		assert.Equal(t, GetContainerResponse{Container: []byte("zip")}, response)
	})
	t.Run("ASiC", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().GetContainer(gomock.Any(), session.ASiC, "container-1").Return(&container.Container{Name: "test.asice", Type: session.ASiC, Data: []byte("zip")}, nil)

		recorder := ctx.do(http.MethodGet, "/containers/container-1", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		var response GetContainerResponse
		decode(t, recorder, &response)
		assert.Equal(t, "test.asice", response.ContainerName)
	})
	t.Run("not found", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().GetContainer(gomock.Any(), session.Hashcode, "container-1").Return(nil, session.ErrSessionNotFound)

		recorder := ctx.do(http.MethodGet, "/hashcodecontainers/container-1", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "RESOURCE_NOT_FOUND", problemCode(t, recorder))
	})
}

func TestWrapper_DeleteContainer(t *testing.T) {
	ctx := newMockContext(t)
	ctx.service.EXPECT().DeleteContainer(audit.ContextWithAuditInfo(), session.ASiC, "container-1").Return(nil)

	recorder := ctx.do(http.MethodDelete, "/containers/container-1", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	var response ResultResponse
	decode(t, recorder, &response)
	assert.Equal(t, "OK", response.Result)
}

func TestWrapper_DataFiles(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().GetDataFiles(gomock.Any(), session.Hashcode, "container-1").Return([]asic.DataFile{dataFile}, nil)

		recorder := ctx.do(http.MethodGet, "/hashcodecontainers/container-1/datafiles", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		var response DataFilesResponse
		decode(t, recorder, &response)
		require.Len(t, response.DataFiles, 1)
		assert.Equal(t, DataFile{FileName: "a.txt", FileHashSha256: dataFile.Sha256, FileHashSha512: dataFile.Sha512, FileSize: 5}, response.DataFiles[0])
	})
	t.Run("add", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().AddDataFiles(audit.ContextWithAuditInfo(), session.Hashcode, "container-1", []asic.DataFile{dataFile}).Return(nil)
		body, _ := json.Marshal(DataFilesRequest{DataFiles: []DataFile{fromDataFile(dataFile)}})

		recorder := ctx.do(http.MethodPost, "/hashcodecontainers/container-1/datafiles", string(body))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("delete", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().DeleteDataFile(gomock.Any(), session.Hashcode, "container-1", "my file.txt").Return(nil)

		recorder := ctx.do(http.MethodDelete, "/hashcodecontainers/container-1/datafiles/my%20file.txt", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("delete unknown", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().DeleteDataFile(gomock.Any(), session.Hashcode, "container-1", "b.txt").Return(fmt.Errorf("%w: b.txt", container.ErrDataFileNotFound))

		recorder := ctx.do(http.MethodDelete, "/hashcodecontainers/container-1/datafiles/b.txt", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
	t.Run("container is signed", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().AddDataFiles(gomock.Any(), session.Hashcode, "container-1", gomock.Any()).Return(session.InvalidSessionData("signed"))

		recorder := ctx.do(http.MethodPost, "/hashcodecontainers/container-1/datafiles", `{"dataFiles":[]}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "INVALID_SESSION_DATA", problemCode(t, recorder))
	})
}

func TestWrapper_Signatures(t *testing.T) {
	signature := asic.Signature{
		ID:        "signature-1",
		Content:   []byte("<signature/>"),
		DataFiles: []asic.SignatureDataFile{{Name: "a.txt", HashAlgorithm: "SHA256"}},
	}
	t.Run("list", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().GetSignatures(gomock.Any(), session.ASiC, "container-1").Return([]asic.Signature{signature}, nil)

		recorder := ctx.do(http.MethodGet, "/containers/container-1/signatures", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		var response SignaturesResponse
		decode(t, recorder, &response)
		assert.Equal(t, []Signature{{ID: "signature-1", DataFiles: signature.DataFiles}}, response.Signatures)
	})
	t.Run("by ID", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().GetSignature(gomock.Any(), session.Hashcode, "container-1", "signature-1").Return(&signature, nil)

		recorder := ctx.do(http.MethodGet, "/hashcodecontainers/container-1/signatures/signature-1", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		var response Signature
		decode(t, recorder, &response)
		assert.Equal(t, []byte("<signature/>"), response.Signature)
	})
	t.Run("unknown", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().GetSignature(gomock.Any(), session.Hashcode, "container-1", "signature-2").Return(nil, container.ErrSignatureNotFound)

		recorder := ctx.do(http.MethodGet, "/hashcodecontainers/container-1/signatures/signature-2", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
