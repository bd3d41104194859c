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
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/mobileid/log"
	"github.com/nuts-foundation/nuts-siga/session"
)

type certificateRequest struct {
	RelyingPartyUUID       string `json:"relyingPartyUUID"`
	RelyingPartyName       string `json:"relyingPartyName"`
	PhoneNumber            string `json:"phoneNumber"`
	NationalIdentityNumber string `json:"nationalIdentityNumber"`
}

type certificateResponse struct {
	Result string `json:"result"`
	Cert   string `json:"cert"`
}

type signatureRequest struct {
	RelyingPartyUUID       string `json:"relyingPartyUUID"`
	RelyingPartyName       string `json:"relyingPartyName"`
	PhoneNumber            string `json:"phoneNumber"`
	NationalIdentityNumber string `json:"nationalIdentityNumber"`
	Hash                   string `json:"hash"`
	HashType               string `json:"hashType"`
	Language               string `json:"language"`
	DisplayText            string `json:"displayText,omitempty"`
	DisplayTextFormat      string `json:"displayTextFormat,omitempty"`
}

type signatureResponse struct {
	SessionID string `json:"sessionID"`
}

type sessionStatusResponse struct {
	State     string `json:"state"`
	Result    string `json:"result"`
	Signature *struct {
		Value     string `json:"value"`
		Algorithm string `json:"algorithm"`
	} `json:"signature,omitempty"`
}

var _ Client = (*RESTClient)(nil)

// RESTClient is a Client for the Mobile-ID REST API.
type RESTClient struct {
	baseURL       string
	httpClient    core.HTTPRequestDoer
	attempts      uint
	retryDelay    time.Duration
	statusTimeout time.Duration
}

// NewRESTClient creates a Client for the Mobile-ID REST API. In strict mode only HTTPS URLs are allowed.
func NewRESTClient(config Config, strictMode bool) *RESTClient {
	attempts := uint(1)
	if config.Retries > 1 {
		attempts = uint(config.Retries)
	}
	return &RESTClient{
		baseURL:       strings.TrimSuffix(config.URL, "/"),
		httpClient:    core.NewStrictHTTPClient(strictMode, config.Timeout, nil),
		attempts:      attempts,
		retryDelay:    100 * time.Millisecond,
		statusTimeout: config.StatusTimeout,
	}
}

func (c *RESTClient) GetCertificate(ctx context.Context, relyingParty session.RelyingParty, request CertificateRequest) (*x509.Certificate, error) {
	body := certificateRequest{
		RelyingPartyUUID:       relyingParty.UUID,
		RelyingPartyName:       relyingParty.Name,
		PhoneNumber:            request.PhoneNumber,
		NationalIdentityNumber: request.NationalIdentityNumber,
	}
	var response certificateResponse
	err := c.withRetry(ctx, func() error {
		return core.DoJSONRequest(ctx, c.httpClient, http.MethodPost, c.baseURL+"/certificate", body, http.StatusOK, &response, log.Logger())
	})
	var httpErr core.HttpError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusBadRequest {
		return nil, ErrCertificateNotFound
	}
	if err != nil {
		return nil, core.WrapError(ErrClient, err)
	}
	switch response.Result {
	case "OK":
	case "NOT_FOUND":
		return nil, ErrCertificateNotFound
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedCertificateStatus, response.Result)
	}
	der, err := base64.StdEncoding.DecodeString(response.Cert)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid certificate encoding", ErrClient)
	}
	certificate, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, core.WrapError(ErrClient, err)
	}
	return certificate, nil
}

func (c *RESTClient) InitSignHash(ctx context.Context, relyingParty session.RelyingParty, request SignatureRequest) (*SignatureResponse, error) {
	language, err := ResolveLanguage(request.Language)
	if err != nil {
		return nil, err
	}
	if !hashTypes[request.HashType] {
		return nil, fmt.Errorf("invalid Mobile-ID hash type: '%s'", request.HashType)
	}
	body := signatureRequest{
		RelyingPartyUUID:       relyingParty.UUID,
		RelyingPartyName:       relyingParty.Name,
		PhoneNumber:            request.PhoneNumber,
		NationalIdentityNumber: request.NationalIdentityNumber,
		Hash:                   base64.StdEncoding.EncodeToString(request.Hash),
		HashType:               request.HashType,
		Language:               language,
		DisplayText:            request.DisplayText,
	}
	if body.DisplayText != "" {
		body.DisplayTextFormat = "GSM-7"
	}
	var response signatureResponse
	// starting a session is not idempotent, so it's never retried
	if err = core.DoJSONRequest(ctx, c.httpClient, http.MethodPost, c.baseURL+"/signature", body, http.StatusOK, &response, log.Logger()); err != nil {
		return nil, core.WrapError(ErrClient, err)
	}
	if response.SessionID == "" {
		return nil, fmt.Errorf("%w: no session ID in response", ErrClient)
	}
	return &SignatureResponse{
		SessionID:   response.SessionID,
		ChallengeID: ChallengeCode(request.Hash),
	}, nil
}

func (c *RESTClient) GetSignHashStatus(ctx context.Context, sessionID string) (*StatusResponse, error) {
	requestURL := fmt.Sprintf("%s/signature/session/%s?timeoutMs=%d", c.baseURL, url.PathEscape(sessionID), c.statusTimeout.Milliseconds())
	var response sessionStatusResponse
	err := c.withRetry(ctx, func() error {
		return core.DoJSONRequest(ctx, c.httpClient, http.MethodGet, requestURL, nil, http.StatusOK, &response, log.Logger())
	})
	if core.IsServerError(err) {
		return &StatusResponse{Status: session.StatusInternalError}, nil
	}
	if err != nil {
		return nil, err
	}
	status, err := MapStatus(response.State, response.Result)
	if err != nil {
		return nil, err
	}
	result := &StatusResponse{Status: status}
	if status == session.StatusSignature {
		if response.Signature == nil {
			return nil, fmt.Errorf("%w: no signature in response", ErrClient)
		}
		if result.Signature, err = base64.StdEncoding.DecodeString(response.Signature.Value); err != nil {
			return nil, fmt.Errorf("%w: invalid signature encoding", ErrClient)
		}
	}
	return result, nil
}

// withRetry retries fn on transport errors. HTTP error responses are returned immediately.
func (c *RESTClient) withRetry(ctx context.Context, fn func() error) error {
	return retry.Do(fn,
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var httpErr core.HttpError
			return !errors.As(err, &httpErr)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Logger().WithError(err).Debugf("Mobile-ID request failed, retrying (attempt %d)", n+1)
		}),
	)
}
