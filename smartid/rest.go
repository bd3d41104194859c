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
	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/nuts-foundation/nuts-siga/smartid/log"
)

const (
	// signingCertificateLevel is required for signatures, certificate choice accepts QSCD and up.
	signingCertificateLevel = "QUALIFIED"
	choiceCertificateLevel  = "QSCD"
	semanticsIdentifierType = "PNO"
	maxDisplayTextLength    = 60

	statusNoSuitableAccount = 471
	statusViewPortal        = 472
)

type certificateChoiceRequest struct {
	RelyingPartyUUID string `json:"relyingPartyUUID"`
	RelyingPartyName string `json:"relyingPartyName"`
	CertificateLevel string `json:"certificateLevel"`
}

type interaction struct {
	Type          string `json:"type"`
	DisplayText60 string `json:"displayText60,omitempty"`
}

type signatureRequest struct {
	RelyingPartyUUID         string        `json:"relyingPartyUUID"`
	RelyingPartyName         string        `json:"relyingPartyName"`
	CertificateLevel         string        `json:"certificateLevel"`
	Hash                     string        `json:"hash"`
	HashType                 string        `json:"hashType"`
	AllowedInteractionsOrder []interaction `json:"allowedInteractionsOrder"`
}

type sessionResponse struct {
	SessionID string `json:"sessionID"`
}

type sessionStatusResponse struct {
	State  string `json:"state"`
	Result struct {
		EndResult      string `json:"endResult"`
		DocumentNumber string `json:"documentNumber"`
	} `json:"result"`
	Signature *struct {
		Value     string `json:"value"`
		Algorithm string `json:"algorithm"`
	} `json:"signature,omitempty"`
	Cert *struct {
		Value            string `json:"value"`
		CertificateLevel string `json:"certificateLevel"`
	} `json:"cert,omitempty"`
}

var _ Client = (*RESTClient)(nil)

// RESTClient is a Client for the Smart-ID relying party REST API (v2).
type RESTClient struct {
	baseURL         string
	httpClient      core.HTTPRequestDoer
	attempts        uint
	retryDelay      time.Duration
	statusTimeout   time.Duration
	interactionType string
}

// NewRESTClient creates a Client for the Smart-ID relying party API. In strict mode only HTTPS URLs are allowed.
func NewRESTClient(config Config, strictMode bool) *RESTClient {
	attempts := uint(1)
	if config.Retries > 1 {
		attempts = uint(config.Retries)
	}
	interactionType := config.InteractionType
	if interactionType == "" {
		interactionType = DisplayTextAndPIN
	}
	return &RESTClient{
		baseURL:         strings.TrimSuffix(config.URL, "/"),
		httpClient:      core.NewStrictHTTPClient(strictMode, config.Timeout+config.StatusTimeout, nil),
		attempts:        attempts,
		retryDelay:      100 * time.Millisecond,
		statusTimeout:   config.StatusTimeout,
		interactionType: interactionType,
	}
}

func (c *RESTClient) InitCertificateChoice(ctx context.Context, relyingParty session.RelyingParty, request CertificateChoiceRequest) (string, error) {
	var requestURL string
	if request.DocumentNumber != "" {
		requestURL = c.baseURL + "/certificatechoice/document/" + url.PathEscape(request.DocumentNumber)
	} else {
		if request.Country == "" || request.PersonIdentifier == "" {
			return "", errors.New("either document number or country and person identifier are required")
		}
		identifier := fmt.Sprintf("%s%s-%s", semanticsIdentifierType, strings.ToUpper(request.Country), request.PersonIdentifier)
		requestURL = c.baseURL + "/certificatechoice/etsi/" + url.PathEscape(identifier)
	}
	body := certificateChoiceRequest{
		RelyingPartyUUID: relyingParty.UUID,
		RelyingPartyName: relyingParty.Name,
		CertificateLevel: choiceCertificateLevel,
	}
	var response sessionResponse
	// starting a session is not idempotent, so it's never retried
	if err := core.DoJSONRequest(ctx, c.httpClient, http.MethodPost, requestURL, body, http.StatusOK, &response, log.Logger()); err != nil {
		return "", mapInitError(err)
	}
	if response.SessionID == "" {
		return "", fmt.Errorf("%w: no session ID in response", ErrClient)
	}
	return response.SessionID, nil
}

func (c *RESTClient) InitSignature(ctx context.Context, relyingParty session.RelyingParty, request SignatureRequest) (*SignatureResponse, error) {
	if request.DocumentNumber == "" {
		return nil, errors.New("document number is required")
	}
	hashType := request.HashType
	if hashType == "" {
		hashType = "SHA512"
	}
	body := signatureRequest{
		RelyingPartyUUID: relyingParty.UUID,
		RelyingPartyName: relyingParty.Name,
		CertificateLevel: signingCertificateLevel,
		Hash:             base64.StdEncoding.EncodeToString(request.Hash),
		HashType:         hashType,
		AllowedInteractionsOrder: []interaction{{
			Type:          interactionName(c.interactionType),
			DisplayText60: truncate(request.DisplayText, maxDisplayTextLength),
		}},
	}
	requestURL := c.baseURL + "/signature/document/" + url.PathEscape(request.DocumentNumber)
	var response sessionResponse
	if err := core.DoJSONRequest(ctx, c.httpClient, http.MethodPost, requestURL, body, http.StatusOK, &response, log.Logger()); err != nil {
		return nil, mapInitError(err)
	}
	if response.SessionID == "" {
		return nil, fmt.Errorf("%w: no session ID in response", ErrClient)
	}
	return &SignatureResponse{
		SessionID:   response.SessionID,
		ChallengeID: VerificationCode(request.Hash),
	}, nil
}

func (c *RESTClient) GetSessionStatus(ctx context.Context, sessionID string, sessionType SessionType) (*StatusResponse, error) {
	requestURL := fmt.Sprintf("%s/session/%s?timeoutMs=%d", c.baseURL, url.PathEscape(sessionID), c.statusTimeout.Milliseconds())
	var response sessionStatusResponse
	err := c.withRetry(ctx, func() error {
		return core.DoJSONRequest(ctx, c.httpClient, http.MethodGet, requestURL, nil, http.StatusOK, &response, log.Logger())
	})
	if core.IsServerError(err) {
		return &StatusResponse{Status: session.StatusInternalError}, nil
	}
	var httpErr core.HttpError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusNotFound:
			return nil, ErrSessionNotFound
		case statusNoSuitableAccount, statusViewPortal:
			return nil, mapInitError(err)
		}
	}
	if err != nil {
		return nil, err
	}
	status, err := MapStatus(response.State, response.Result.EndResult, sessionType)
	if err != nil {
		return nil, err
	}
	result := &StatusResponse{Status: status}
	if status != session.StatusSignature && status != session.StatusCertificate {
		return result, nil
	}
	result.DocumentNumber = response.Result.DocumentNumber
	if response.Cert != nil {
		der, err := base64.StdEncoding.DecodeString(response.Cert.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid certificate encoding", ErrClient)
		}
		if result.Certificate, err = x509.ParseCertificate(der); err != nil {
			return nil, core.WrapError(ErrClient, err)
		}
	}
	if sessionType == SigningSession {
		if response.Signature == nil {
			return nil, fmt.Errorf("%w: no signature in response", ErrClient)
		}
		if result.Signature, err = base64.StdEncoding.DecodeString(response.Signature.Value); err != nil {
			return nil, fmt.Errorf("%w: invalid signature encoding", ErrClient)
		}
	} else if result.Certificate == nil {
		return nil, fmt.Errorf("%w: no certificate in response", ErrClient)
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
			log.Logger().WithError(err).Debugf("Smart-ID request failed, retrying (attempt %d)", n+1)
		}),
	)
}

func mapInitError(err error) error {
	var httpErr core.HttpError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusNotFound:
			return ErrUserAccountNotFound
		case statusNoSuitableAccount:
			return fmt.Errorf("%w: no suitable account of requested type found, but user has some other accounts", ErrClient)
		case statusViewPortal:
			return fmt.Errorf("%w: person should view app or self-service portal now", ErrClient)
		}
	}
	return core.WrapError(ErrClient, err)
}

func interactionName(interactionType string) string {
	if interactionType == VerificationCodeChoice {
		return "verificationCodeChoice"
	}
	return "displayTextAndPIN"
}

func truncate(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length])
}
