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
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// maxResponseSize is the maximum size of a response body read by DoJSONRequest.
const maxResponseSize = 1024 * 1024

// TracingHTTPTransport wraps the transport of outbound HTTP clients when tracing is enabled.
// It's set by the tracing engine, since core can't import it.
var TracingHTTPTransport func(transport http.RoundTripper) http.RoundTripper

// HttpError describes an error returned when invoking a remote server.
type HttpError struct {
	error
	StatusCode   int
	ResponseBody []byte
}

// TestResponseCode checks whether the returned HTTP status response code matches the expected code.
// If it doesn't match it returns an error, containing the received and expected status code, and the response body.
func TestResponseCode(expectedStatusCode int, response *http.Response) error {
	return TestResponseCodeWithLog(expectedStatusCode, response, nil)
}

// TestResponseCodeWithLog acts like TestResponseCode, but logs the response body if the status code is not as expected.
// It logs using the given logger, unless nil is passed.
func TestResponseCodeWithLog(expectedStatusCode int, response *http.Response, log *logrus.Entry) error {
	if response.StatusCode == expectedStatusCode {
		return nil
	}
	responseData, _ := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if log != nil {
		// Cut off the response body to 100 characters max to prevent logging of large responses
		responseBodyString := string(responseData)
		if len(responseBodyString) > 100 {
			responseBodyString = responseBodyString[:100] + "...(clipped)"
		}
		log.WithField("http_request_path", response.Request.URL.Path).
			Infof("Unexpected HTTP response (len=%d): %s", len(responseData), responseBodyString)
	}
	return HttpError{
		error:        fmt.Errorf("server returned HTTP %d (expected: %d)", response.StatusCode, expectedStatusCode),
		StatusCode:   response.StatusCode,
		ResponseBody: responseData,
	}
}

// IsServerError returns true if err is an HttpError with a 5xx status code.
func IsServerError(err error) bool {
	var httpErr HttpError
	return errors.As(err, &httpErr) && httpErr.StatusCode >= http.StatusInternalServerError
}

// UserAgent returns the HTTP User-Agent of the signing gateway.
func UserAgent() string {
	return "nuts-siga/" + Version()
}

// HTTPRequestDoer defines the Do method of the http.Client interface.
type HTTPRequestDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// DoJSONRequest sends request (if not nil) as JSON and unmarshals the response into response (if not nil).
// Responses with another status code than expectedStatusCode are returned as HttpError.
func DoJSONRequest(ctx context.Context, client HTTPRequestDoer, method string, url string, request interface{}, expectedStatusCode int, response interface{}, log *logrus.Entry) error {
	var body io.Reader
	if request != nil {
		data, err := json.Marshal(request)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	httpRequest.Header.Set("Accept", "application/json")
	if body != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}
	httpResponse, err := client.Do(httpRequest)
	if err != nil {
		return err
	}
	defer httpResponse.Body.Close()
	if err = TestResponseCodeWithLog(expectedStatusCode, httpResponse, log); err != nil {
		return err
	}
	if response == nil {
		return nil
	}
	data, err := io.ReadAll(io.LimitReader(httpResponse.Body, maxResponseSize))
	if err != nil {
		return err
	}
	if err = json.Unmarshal(data, response); err != nil {
		return fmt.Errorf("invalid response from %s: %w", url, err)
	}
	return nil
}

// NewStrictHTTPClient creates a HTTPRequestDoer that only allows HTTPS calls when strictmode is enabled.
// It sets the User-Agent header on every request.
func NewStrictHTTPClient(strictmode bool, timeout time.Duration, tlsConfig *tls.Config) *StrictHTTPClient {
	if tlsConfig == nil {
		tlsConfig = &tls.Config{
			MinVersion: MinTLSVersion,
		}
	}

	transport := http.DefaultTransport
	// Might not be http.Transport in testing
	if httpTransport, ok := transport.(*http.Transport); ok {
		// cloning the transport might reduce performance.
		httpTransport = httpTransport.Clone()
		httpTransport.TLSClientConfig = tlsConfig
		transport = httpTransport
	}
	if TracingHTTPTransport != nil {
		transport = TracingHTTPTransport(transport)
	}

	return &StrictHTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		strictMode: strictmode,
	}
}

// StrictHTTPClient is a HTTPRequestDoer that refuses plain HTTP calls in strict mode.
type StrictHTTPClient struct {
	client     *http.Client
	strictMode bool
}

func (s *StrictHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if s.strictMode && req.URL.Scheme != "https" {
		return nil, errors.New("strictmode is enabled, but request is not over HTTPS")
	}
	req.Header.Set("User-Agent", UserAgent())
	return s.client.Do(req)
}
