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

package http

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/http/log"
	"github.com/nuts-foundation/nuts-siga/tracing"
)

const moduleName = "HTTP"

// ClientNameHeader is the request header a client identifies itself with. It's used as actor in the audit log.
const ClientNameHeader = "X-Client-Name"

// unloggedPaths are not logged, since they're polled by infrastructure.
var unloggedPaths = []string{"/metrics", "/status", "/health"}

// New returns a new HTTP engine. The callback is called when the HTTP server shuts down unexpectedly.
func New(serverShutdownCb func()) *Engine {
	return &Engine{
		serverShutdownCb: serverShutdownCb,
		config:           DefaultConfig(),
	}
}

// Engine is the HTTP engine.
type Engine struct {
	server           *echo.Echo
	startFn          func() error
	serverShutdownCb func()
	config           Config
}

// Router returns the router of the HTTP engine, which can be used by other engines to register HTTP handlers.
func (h Engine) Router() core.EchoRouter {
	return h.server
}

// Name returns the name of the engine.
func (h *Engine) Name() string {
	return moduleName
}

// Config returns the configuration of the HTTP engine.
func (h *Engine) Config() interface{} {
	return &h.config
}

// Configure creates the echo server and its middleware.
func (h *Engine) Configure(serverConfig core.ServerConfig) error {
	if err := h.createEchoServer(serverConfig); err != nil {
		return err
	}
	log.Logger().Infof("Binding HTTP interface to %s", h.config.Address)
	return h.applyMiddleware(serverConfig)
}

func (h *Engine) createEchoServer(serverConfig core.ServerConfig) error {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true

	echoServer.HTTPErrorHandler = core.CreateHTTPErrorHandler()

	// Reverse proxies must set the X-Forwarded-For header to the original client IP.
	echoServer.IPExtractor = echo.ExtractIPFromXFFHeader()

	switch h.config.TLSMode {
	case TLSServerCertMode, TLServerClientCertMode:
		tlsConfig, err := serverConfig.TLS.Load()
		if err != nil {
			return err
		}
		if tlsConfig == nil {
			return errors.New("TLS must be configured (tls.certfile, tls.certkeyfile) to enable it on the HTTP interface")
		}
		if h.config.TLSMode == TLServerClientCertMode {
			log.Logger().Infof("Enabling TLS (with client certificate requirement) for HTTP interface: %s", h.config.Address)
			tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
		} else {
			log.Logger().Infof("Enabling TLS for HTTP interface: %s", h.config.Address)
		}
		echoServer.TLSServer.TLSConfig = tlsConfig
		echoServer.TLSServer.Addr = h.config.Address
		h.startFn = func() error {
			return echoServer.StartServer(echoServer.TLSServer)
		}
	case "", TLSDisabledMode:
		h.startFn = func() error {
			return echoServer.Start(h.config.Address)
		}
	default:
		return fmt.Errorf("invalid TLS mode: %s", h.config.TLSMode)
	}
	h.server = echoServer
	return nil
}

func (h *Engine) applyMiddleware(serverConfig core.ServerConfig) error {
	if tracing.Enabled() {
		h.server.Use(tracing.Middleware())
	}

	// Logging
	loggerSkipper := func(c echo.Context) bool {
		for _, path := range unloggedPaths {
			if matchesPath(c.Request().URL.Path, path) {
				return true
			}
		}
		return false
	}
	switch h.config.Log {
	case LogMetadataAndBodyLevel:
		h.server.Use(requestLoggerMiddleware(loggerSkipper, log.Logger()))
		h.server.Use(bodyLoggerMiddleware(loggerSkipper, log.Logger()))
	case LogMetadataLevel:
		h.server.Use(requestLoggerMiddleware(loggerSkipper, log.Logger()))
	case LogNothingLevel:
	default:
		return fmt.Errorf("invalid HTTP log level: %s", h.config.Log)
	}

	h.server.Use(identifyClient)

	if h.config.BodyLimit != "" {
		h.server.Use(middleware.BodyLimit(h.config.BodyLimit))
	}

	// CORS
	if h.config.CORS.Enabled() {
		log.Logger().Infof("Enabling CORS for HTTP interface: %s", h.config.Address)
		if serverConfig.Strictmode {
			for _, origin := range h.config.CORS.Origin {
				if strings.TrimSpace(origin) == "*" {
					return errors.New("wildcard CORS origin is not allowed in strict mode")
				}
			}
		}
		h.server.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: h.config.CORS.Origin}))
	}

	if h.config.RateLimit.Enabled() {
		if h.config.RateLimit.Burst < 1 {
			return errors.New("http.ratelimit.burst must be at least 1")
		}
		h.server.Use(newClientRateLimiter(http.MethodPost, signingStartPaths, h.config.RateLimit))
	}
	return nil
}

// Start starts the HTTP engine.
func (h *Engine) Start() error {
	go func(startFn func() error, cancel func()) {
		if err := startFn(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				log.Logger().
					WithError(err).
					Error("HTTP server stopped due to error")
			}
		}
		if cancel != nil {
			cancel()
		}
	}(h.startFn, h.serverShutdownCb)
	return nil
}

// Shutdown shuts down the HTTP engine, waiting for in-flight requests to complete.
func (h *Engine) Shutdown() error {
	if h.server == nil {
		return nil
	}
	ctx := context.Background()
	if h.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.ShutdownTimeout)
		defer cancel()
	}
	return h.server.Shutdown(ctx)
}

// identifyClient is echo middleware that stores the name of the client in the context.
func identifyClient(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if clientName := strings.TrimSpace(c.Request().Header.Get(ClientNameHeader)); clientName != "" {
			c.Set(core.UserContextKey, clientName)
		}
		return next(c)
	}
}

// matchesPath checks whether the request URI path hierarchically matches the given path.
// Examples:
// / matches /
// /foo matches /
// /foo/ matches /
// /foo/bla matches /
// /foo/bla does not match /bla
func matchesPath(requestURI string, path string) bool {
	if path == "/" {
		return true
	}
	if !strings.HasSuffix(requestURI, "/") {
		requestURI += "/"
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return requestURI == path || strings.HasPrefix(requestURI, path)
}
