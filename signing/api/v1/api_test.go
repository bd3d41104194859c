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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/nuts-siga/audit"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/mobileid"
	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/nuts-foundation/nuts-siga/signing"
	"github.com/nuts-foundation/nuts-siga/smartid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type mockContext struct {
	service *signing.MockService
	wrapper *Wrapper
	echo    *echo.Echo
}

func newMockContext(t *testing.T) mockContext {
	ctrl := gomock.NewController(t)
	service := signing.NewMockService(ctrl)
	wrapper := &Wrapper{Service: service}
	e := echo.New()
	e.HTTPErrorHandler = core.CreateHTTPErrorHandler()
	wrapper.Routes(e)
	return mockContext{service: service, wrapper: wrapper, echo: e}
}

func (m mockContext) do(method string, path string, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	recorder := httptest.NewRecorder()
	m.echo.ServeHTTP(recorder, request)
	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), target))
}

func TestWrapper_ResolveStatusCode(t *testing.T) {
	wrapper := &Wrapper{}
	testCases := []struct {
		err      error
		expected int
	}{
		{session.InvalidSessionData("already finalized"), http.StatusBadRequest},
		{session.ErrSessionNotFound, http.StatusNotFound},
		{mobileid.ErrInvalidLanguage, http.StatusBadRequest},
		{mobileid.ErrCertificateNotFound, http.StatusBadRequest},
		{smartid.ErrUserAccountNotFound, http.StatusBadRequest},
		{mobileid.ErrClient, http.StatusBadGateway},
		{smartid.ErrClient, http.StatusBadGateway},
		{errors.New("other"), 0},
	}
	for _, testCase := range testCases {
		t.Run(testCase.err.Error(), func(t *testing.T) {
			assert.Equal(t, testCase.expected, wrapper.ResolveStatusCode(testCase.err))
		})
	}
}

func TestWrapper_CreateRemoteSigning(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().CreateDataToSign(audit.ContextWithAuditInfo(), "container-1", signing.RemoteSigningRequest{
			SignatureOptions:   signing.SignatureOptions{Roles: []string{"Manager"}},
			SigningCertificate: []byte("certificate"),
		}).Return(&signing.DataToSignResponse{
			SignatureID:     "signature-1",
			DataToSign:      []byte("data"),
			DigestAlgorithm: "SHA256",
		}, nil)

		recorder := ctx.do(http.MethodPost, "/hashcodecontainers/container-1/remotesigning", `{"signingCertificate":"Y2VydGlmaWNhdGU=","roles":["Manager"]}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		var response RemoteSigningResponse
		decode(t, recorder, &response)
		assert.Equal(t, RemoteSigningResponse{GeneratedSignatureID: "signature-1", DataToSign: []byte("data"), DigestAlgorithm: "SHA256"}, response)
	})
	t.Run("ASiC container path", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().CreateDataToSign(gomock.Any(), "container-1", gomock.Any()).Return(&signing.DataToSignResponse{}, nil)

		recorder := ctx.do(http.MethodPost, "/containers/container-1/remotesigning", `{"signingCertificate":"Y2VydGlmaWNhdGU="}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("invalid body", func(t *testing.T) {
		ctx := newMockContext(t)

		recorder := ctx.do(http.MethodPost, "/hashcodecontainers/container-1/remotesigning", `{"signingCertificate":`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
	t.Run("unknown container is a problem with error code", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().CreateDataToSign(gomock.Any(), "container-1", gomock.Any()).Return(nil, session.ErrSessionNotFound)

		recorder := ctx.do(http.MethodPost, "/hashcodecontainers/container-1/remotesigning", `{}`)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		var problem map[string]interface{}
		decode(t, recorder, &problem)
		assert.Equal(t, string(session.ResourceNotFoundCode), problem["code"])
		assert.Equal(t, "CreateRemoteSigning failed", problem["title"])
	})
}

func TestWrapper_FinalizeRemoteSigning(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().FinalizeSigning(audit.ContextWithAuditInfo(), "container-1", "signature-1", []byte("value")).Return(nil)

		recorder := ctx.do(http.MethodPut, "/hashcodecontainers/container-1/remotesigning/signature-1", `{"signatureValue":"dmFsdWU="}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		var response ResultResponse
		decode(t, recorder, &response)
		assert.Equal(t, "OK", response.Result)
	})
	t.Run("missing signature value", func(t *testing.T) {
		ctx := newMockContext(t)

		recorder := ctx.do(http.MethodPut, "/hashcodecontainers/container-1/remotesigning/signature-1", `{}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
	t.Run("already finalized", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().FinalizeSigning(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(session.InvalidSessionData("Signature session 'signature-1' is already finalized"))

		recorder := ctx.do(http.MethodPut, "/hashcodecontainers/container-1/remotesigning/signature-1", `{"signatureValue":"dmFsdWU="}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var problem map[string]interface{}
		decode(t, recorder, &problem)
		assert.Equal(t, string(session.InvalidSessionDataCode), problem["code"])
	})
}

func TestWrapper_MobileIDSigning(t *testing.T) {
	t.Run("start", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().StartMobileIDSigning(audit.ContextWithAuditInfo(), "container-1", signing.MobileIDSigningRequest{
			PhoneNumber:      "+37200000766",
			PersonIdentifier: "60001019906",
			Language:         "EST",
			MessageToDisplay: "Sign",
		}).Return(&signing.SigningChallenge{SignatureID: "signature-1", ChallengeID: "1234"}, nil)

		recorder := ctx.do(http.MethodPost, "/hashcodecontainers/container-1/mobileidsigning",
			`{"phoneNo":"+37200000766","personIdentifier":"60001019906","language":"EST","messageToDisplay":"Sign"}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		var response SigningChallengeResponse
		decode(t, recorder, &response)
		assert.Equal(t, SigningChallengeResponse{GeneratedSignatureID: "signature-1", ChallengeID: "1234"}, response)
	})
	t.Run("start without phone number", func(t *testing.T) {
		ctx := newMockContext(t)

		recorder := ctx.do(http.MethodPost, "/hashcodecontainers/container-1/mobileidsigning", `{"personIdentifier":"60001019906"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
	t.Run("status", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().GetMobileIDSigningStatus(audit.ContextWithAuditInfo(), "container-1", "signature-1").
			Return(&session.SessionStatus{Status: session.StatusOutstandingTransaction}, nil)

		recorder := ctx.do(http.MethodGet, "/hashcodecontainers/container-1/mobileidsigning/signature-1/status", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"midStatus":"OUTSTANDING_TRANSACTION"}`, recorder.Body.String())
	})
	t.Run("status of failed signing", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().GetMobileIDSigningStatus(gomock.Any(), "container-1", "signature-1").
			Return(&session.SessionStatus{
				Status: session.StatusUserCancel,
				Error:  &session.StatusError{Code: session.StatusUserCancel, Message: "MOBILE_ID signing failed: USER_CANCEL"},
			}, nil)

		recorder := ctx.do(http.MethodGet, "/hashcodecontainers/container-1/mobileidsigning/signature-1/status", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		var response MobileIDSigningStatusResponse
		decode(t, recorder, &response)
		assert.Equal(t, session.StatusUserCancel, response.MidStatus)
		assert.Equal(t, session.StatusUserCancel, response.Error.Code)
	})
}

func TestWrapper_SmartIDSigning(t *testing.T) {
	t.Run("certificate choice", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().StartSmartIDCertificateChoice(audit.ContextWithAuditInfo(), "container-1", signing.SmartIDCertificateRequest{
			Country:          "EE",
			PersonIdentifier: "30303039914",
		}).Return("certificate-1", nil)

		recorder := ctx.do(http.MethodPost, "/hashcodecontainers/container-1/smartidsigning/certificatechoice", `{"country":"EE","personIdentifier":"30303039914"}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"generatedCertificateId":"certificate-1"}`, recorder.Body.String())
	})
	t.Run("certificate choice status", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().GetSmartIDCertificateStatus(gomock.Any(), "container-1", "certificate-1").Return(&signing.CertificateStatus{
			Status:         session.SessionStatus{Status: session.StatusCertificate},
			DocumentNumber: "PNOEE-30303039914-MOCK-Q",
		}, nil)

		recorder := ctx.do(http.MethodGet, "/hashcodecontainers/container-1/smartidsigning/certificatechoice/certificate-1/status", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"sidStatus":"CERTIFICATE","documentNumber":"PNOEE-30303039914-MOCK-Q"}`, recorder.Body.String())
	})
	t.Run("start", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().StartSmartIDSigning(audit.ContextWithAuditInfo(), "container-1", signing.SmartIDSigningRequest{
			DocumentNumber:   "PNOEE-30303039914-MOCK-Q",
			MessageToDisplay: "Sign",
		}).Return(&signing.SigningChallenge{SignatureID: "signature-1", ChallengeID: "4331"}, nil)

		recorder := ctx.do(http.MethodPost, "/containers/container-1/smartidsigning", `{"documentNumber":"PNOEE-30303039914-MOCK-Q","messageToDisplay":"Sign"}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"generatedSignatureId":"signature-1","challengeId":"4331"}`, recorder.Body.String())
	})
	t.Run("start without document number", func(t *testing.T) {
		ctx := newMockContext(t)

		recorder := ctx.do(http.MethodPost, "/containers/container-1/smartidsigning", `{}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
	t.Run("status", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().GetSmartIDSigningStatus(gomock.Any(), "container-1", "signature-1").
			Return(&session.SessionStatus{Status: session.StatusSignature}, nil)

		recorder := ctx.do(http.MethodGet, "/hashcodecontainers/container-1/smartidsigning/signature-1/status", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"sidStatus":"SIGNATURE"}`, recorder.Body.String())
	})
	t.Run("provider failure", func(t *testing.T) {
		ctx := newMockContext(t)
		ctx.service.EXPECT().StartSmartIDCertificateChoice(gomock.Any(), gomock.Any(), gomock.Any()).Return("", smartid.ErrClient)

		recorder := ctx.do(http.MethodPost, "/hashcodecontainers/container-1/smartidsigning/certificatechoice", `{"country":"EE","personIdentifier":"1"}`)

		assert.Equal(t, http.StatusBadGateway, recorder.Code)
	})
}
