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

package mobileid

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRelyingParty = session.RelyingParty{Name: "DEMO", UUID: "00000000-0000-0000-0000-000000000000"}

type testServer struct {
	statusCode int
	response   interface{}
	requests   []*http.Request
	bodies     []map[string]interface{}
}

func (s *testServer) start(t *testing.T) *RESTClient {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		s.requests = append(s.requests, request)
		body := map[string]interface{}{}
		_ = json.NewDecoder(request.Body).Decode(&body)
		s.bodies = append(s.bodies, body)
		writer.Header().Set("Content-Type", "application/json")
		statusCode := s.statusCode
		if statusCode == 0 {
			statusCode = http.StatusOK
		}
		writer.WriteHeader(statusCode)
		_ = json.NewEncoder(writer).Encode(s.response)
	}))
	t.Cleanup(server.Close)
	config := DefaultConfig()
	config.URL = server.URL + "/"
	config.Timeout = time.Second
	return NewRESTClient(config, false)
}

func TestRESTClient_GetCertificate(t *testing.T) {
	ctx := context.Background()
	certificate, _ := core.TestCertificate(t, "MID")
	request := CertificateRequest{PhoneNumber: "+37200000766", NationalIdentityNumber: "60001019906"}

	t.Run("ok", func(t *testing.T) {
		server := &testServer{response: certificateResponse{Result: "OK", Cert: base64.StdEncoding.EncodeToString(certificate.Raw)}}
		client := server.start(t)

		actual, err := client.GetCertificate(ctx, testRelyingParty, request)

		require.NoError(t, err)
		assert.Equal(t, certificate.Raw, actual.Raw)
		require.Len(t, server.requests, 1)
		assert.Equal(t, "/certificate", server.requests[0].URL.Path)
		assert.Equal(t, "+37200000766", server.bodies[0]["phoneNumber"])
		assert.Equal(t, "60001019906", server.bodies[0]["nationalIdentityNumber"])
		assert.Equal(t, "DEMO", server.bodies[0]["relyingPartyName"])
		assert.Equal(t, testRelyingParty.UUID, server.bodies[0]["relyingPartyUUID"])
	})
	t.Run("not found", func(t *testing.T) {
		client := (&testServer{response: certificateResponse{Result: "NOT_FOUND"}}).start(t)

		_, err := client.GetCertificate(ctx, testRelyingParty, request)

		assert.ErrorIs(t, err, ErrCertificateNotFound)
		assert.Equal(t, CertificateNotFoundCode, core.ErrorCodeOf(err))
	})
	t.Run("invalid parameters", func(t *testing.T) {
		client := (&testServer{statusCode: http.StatusBadRequest}).start(t)

		_, err := client.GetCertificate(ctx, testRelyingParty, request)

		assert.ErrorIs(t, err, ErrCertificateNotFound)
	})
	t.Run("not active", func(t *testing.T) {
		client := (&testServer{response: certificateResponse{Result: "NOT_ACTIVE"}}).start(t)

		_, err := client.GetCertificate(ctx, testRelyingParty, request)

		assert.ErrorIs(t, err, ErrUnexpectedCertificateStatus)
	})
	t.Run("service error is not retried", func(t *testing.T) {
		server := &testServer{statusCode: http.StatusInternalServerError}
		client := server.start(t)

		_, err := client.GetCertificate(ctx, testRelyingParty, request)

		assert.ErrorIs(t, err, ErrClient)
		assert.Equal(t, ClientExceptionCode, core.ErrorCodeOf(err))
		assert.Len(t, server.requests, 1)
	})
	t.Run("invalid certificate", func(t *testing.T) {
		client := (&testServer{response: certificateResponse{Result: "OK", Cert: "AAAA"}}).start(t)

		_, err := client.GetCertificate(ctx, testRelyingParty, request)

		assert.ErrorIs(t, err, ErrClient)
	})
	t.Run("connection refused is retried", func(t *testing.T) {
		config := DefaultConfig()
		config.URL = "http://localhost:1"
		config.Retries = 2
		client := NewRESTClient(config, false)
		client.retryDelay = time.Millisecond

		_, err := client.GetCertificate(ctx, testRelyingParty, request)

		assert.ErrorIs(t, err, ErrClient)
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestRESTClient_InitSignHash(t *testing.T) {
	ctx := context.Background()
	hash := []byte{0x04, 0x02, 0x03, 0x01}
	request := SignatureRequest{
		PhoneNumber:            "+37200000766",
		NationalIdentityNumber: "60001019906",
		Hash:                   hash,
		HashType:               "SHA256",
		DisplayText:            "Sign document",
	}

	t.Run("ok", func(t *testing.T) {
		server := &testServer{response: signatureResponse{SessionID: "session-1"}}
		client := server.start(t)

		response, err := client.InitSignHash(ctx, testRelyingParty, request)

		require.NoError(t, err)
		assert.Equal(t, "session-1", response.SessionID)
		assert.Equal(t, "0129", response.ChallengeID)
		assert.Equal(t, "/signature", server.requests[0].URL.Path)
		body := server.bodies[0]
		assert.Equal(t, base64.StdEncoding.EncodeToString(hash), body["hash"])
		assert.Equal(t, "SHA256", body["hashType"])
		assert.Equal(t, "EST", body["language"])
		assert.Equal(t, "Sign document", body["displayText"])
		assert.Equal(t, "GSM-7", body["displayTextFormat"])
	})
	t.Run("invalid language", func(t *testing.T) {
		server := &testServer{}
		client := server.start(t)
		invalid := request
		invalid.Language = "XYZ"

		_, err := client.InitSignHash(ctx, testRelyingParty, invalid)

		assert.ErrorIs(t, err, ErrInvalidLanguage)
		assert.Empty(t, server.requests)
	})
	t.Run("invalid hash type", func(t *testing.T) {
		invalid := request
		invalid.HashType = "MD5"

		_, err := (&testServer{}).start(t).InitSignHash(ctx, testRelyingParty, invalid)

		assert.ErrorContains(t, err, "invalid Mobile-ID hash type")
	})
	t.Run("service error", func(t *testing.T) {
		server := &testServer{statusCode: http.StatusBadGateway}

		_, err := server.start(t).InitSignHash(ctx, testRelyingParty, request)

		assert.ErrorIs(t, err, ErrClient)
	})
	t.Run("no session ID", func(t *testing.T) {
		_, err := (&testServer{response: signatureResponse{}}).start(t).InitSignHash(ctx, testRelyingParty, request)

		assert.ErrorIs(t, err, ErrClient)
	})
}

func TestRESTClient_GetSignHashStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("running", func(t *testing.T) {
		server := &testServer{response: map[string]interface{}{"state": "RUNNING"}}
		client := server.start(t)

		response, err := client.GetSignHashStatus(ctx, "session-1")

		require.NoError(t, err)
		assert.Equal(t, session.StatusOutstandingTransaction, response.Status)
		assert.Equal(t, "/signature/session/session-1", server.requests[0].URL.Path)
		assert.Equal(t, "1000", server.requests[0].URL.Query().Get("timeoutMs"))
	})
	t.Run("signature", func(t *testing.T) {
		server := &testServer{response: map[string]interface{}{
			"state":     "COMPLETE",
			"result":    "OK",
			"signature": map[string]string{"value": base64.StdEncoding.EncodeToString([]byte("signature")), "algorithm": "SHA256WithECEncryption"},
		}}

		response, err := server.start(t).GetSignHashStatus(ctx, "session-1")

		require.NoError(t, err)
		assert.Equal(t, session.StatusSignature, response.Status)
		assert.Equal(t, []byte("signature"), response.Signature)
	})
	t.Run("signature missing", func(t *testing.T) {
		server := &testServer{response: map[string]interface{}{"state": "COMPLETE", "result": "OK"}}

		_, err := server.start(t).GetSignHashStatus(ctx, "session-1")

		assert.ErrorIs(t, err, ErrClient)
	})
	t.Run("user cancelled", func(t *testing.T) {
		server := &testServer{response: map[string]interface{}{"state": "COMPLETE", "result": "USER_CANCELLED"}}

		response, err := server.start(t).GetSignHashStatus(ctx, "session-1")

		require.NoError(t, err)
		assert.Equal(t, session.StatusUserCancel, response.Status)
		assert.Nil(t, response.Signature)
	})
	t.Run("service error", func(t *testing.T) {
		server := &testServer{statusCode: http.StatusInternalServerError}

		response, err := server.start(t).GetSignHashStatus(ctx, "session-1")

		require.NoError(t, err)
		assert.Equal(t, session.StatusInternalError, response.Status)
	})
	t.Run("unexpected result", func(t *testing.T) {
		server := &testServer{response: map[string]interface{}{"state": "COMPLETE", "result": "UNKNOWN"}}

		_, err := server.start(t).GetSignHashStatus(ctx, "session-1")

		assert.ErrorIs(t, err, ErrClient)
	})
	t.Run("unknown session", func(t *testing.T) {
		server := &testServer{statusCode: http.StatusNotFound}

		_, err := server.start(t).GetSignHashStatus(ctx, "session-1")

		var httpErr core.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	})
}
