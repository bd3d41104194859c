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

package audit

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/tracing"
	"github.com/sirupsen/logrus"
)

func init() {
	tracing.RegisterAuditLogHook(func(hook logrus.Hook) {
		auditLogger().AddHook(hook)
	})
}

const (
	// ContainerCreatedEvent occurs when a container session is created or uploaded.
	ContainerCreatedEvent = "ContainerCreated"
	// ContainerDeletedEvent occurs when a container session is closed.
	ContainerDeletedEvent = "ContainerDeleted"
	// SigningStartedEvent occurs when a signature sub-session is created.
	SigningStartedEvent = "SigningStarted"
	// SigningFinishedEvent occurs when a signature was added to a container.
	SigningFinishedEvent = "SigningFinished"
	// SigningFailedEvent occurs when a provider reported a terminal failure or finalizing a signature failed.
	SigningFailedEvent = "SigningFailed"
	// CertificateChoiceStartedEvent occurs when a Smart-ID certificate choice is started.
	CertificateChoiceStartedEvent = "CertificateChoiceStarted"
	// CertificateResolvedEvent occurs when a Smart-ID certificate choice resolved a signing certificate.
	CertificateResolvedEvent = "CertificateResolved"
	// CertificateValidationEvent reports the validation of a signer certificate.
	CertificateValidationEvent = "CertificateValidation"
	// SignatureVerificationEvent reports the verification of a signature value.
	SignatureVerificationEvent = "SignatureVerification"
)

const auditLogLevel = "audit"

var auditLoggerInstance *logrus.Logger
var initAuditLoggerOnce = &sync.Once{}

type auditContextKey struct{}

// Info contains the audit information of an operation.
type Info struct {
	// Actor is the party that invoked the operation, e.g. a client application, or the system itself.
	Actor string
	// Operation is the module and operation that was invoked, formatted as <module>.<operation>.
	Operation string
}

// Context returns a child context with the given audit information.
func Context(ctx context.Context, actor, module, operation string) context.Context {
	return context.WithValue(ctx, auditContextKey{}, Info{
		Actor:     actor,
		Operation: module + "." + operation,
	})
}

// InfoFromContext returns the audit information of the context, or nil if there's none.
func InfoFromContext(ctx context.Context) *Info {
	info, ok := ctx.Value(auditContextKey{}).(Info)
	if !ok {
		return nil
	}
	return &info
}

// Log returns a log entry for an audit event. It copies the fields of the given logger.
// It panics when the context doesn't contain audit information or no event name is given,
// since that's a programming error.
func Log(ctx context.Context, logger *logrus.Entry, eventName string) *logrus.Entry {
	info := InfoFromContext(ctx)
	if info == nil || info.Actor == "" {
		panic("audit: no actor in context")
	}
	if eventName == "" {
		panic("audit: no event name")
	}
	return auditLogger().WithFields(logger.Data).
		WithField("log", "audit").
		WithField(core.LogFieldAuditActor, info.Actor).
		WithField("operation", info.Operation).
		WithField(core.LogFieldAuditEvent, eventName)
}

func auditLogger() *logrus.Logger {
	initAuditLoggerOnce.Do(func() {
		auditLoggerInstance = logrus.New()
		auditLoggerInstance.SetOutput(logrus.StandardLogger().Out)
		auditLoggerInstance.SetLevel(logrus.InfoLevel)
		auditLoggerInstance.SetFormatter(&auditFormatter{formatter: logrus.StandardLogger().Formatter})
	})
	return auditLoggerInstance
}

// auditFormatter logs entries on the "audit" level, which logrus doesn't know.
type auditFormatter struct {
	formatter logrus.Formatter
}

func (f *auditFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	data, err := f.formatter.Format(entry)
	if err != nil {
		return nil, err
	}
	return replaceLevel(data, entry.Level.String()), nil
}

func replaceLevel(data []byte, level string) []byte {
	for _, format := range []string{"level=%s", `"level":"%s"`} {
		original := []byte(fmt.Sprintf(format, level))
		if bytes.Contains(data, original) {
			return bytes.Replace(data, original, []byte(fmt.Sprintf(format, auditLogLevel)), 1)
		}
	}
	// colored text output prints the level as 4 capitals
	return bytes.Replace(data, []byte(strings.ToUpper(level[:4])), []byte(strings.ToUpper(auditLogLevel)), 1)
}
