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
	"context"
	"strings"
	"testing"

	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// TestActor is the client name of TestContext.
const TestActor = "test-client"

// TestContext returns a context carrying audit information of an API call by TestActor.
func TestContext() context.Context {
	return Context(context.Background(), TestActor, "TestModule", "TestOperation")
}

// ContextWithAuditInfo matches contexts that carry audit information.
func ContextWithAuditInfo() gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		ctx, ok := x.(context.Context)
		return ok && InfoFromContext(ctx) != nil
	})
}

// CapturedLog holds the audit entries logged since CaptureLogs was called.
type CapturedLog struct {
	hook *test.Hook
}

// Contains returns true if an entry for the event was logged.
func (c *CapturedLog) Contains(t *testing.T, eventName string) bool {
	t.Helper()
	return len(c.entries(func(entry logrus.Entry) bool {
		return entry.Data[core.LogFieldAuditEvent] == eventName
	})) > 0
}

// AssertContains asserts an entry for the event was logged by the module on behalf of the actor, on the audit level.
func (c *CapturedLog) AssertContains(t *testing.T, module string, event string, actor string, message string) {
	t.Helper()
	matches := c.entries(func(entry logrus.Entry) bool {
		return entry.Data[core.LogFieldModule] == module &&
			entry.Data[core.LogFieldAuditEvent] == event &&
			entry.Data[core.LogFieldAuditActor] == actor &&
			entry.Message == message
	})
	if len(matches) == 0 {
		var logged []string
		for _, entry := range c.hook.AllEntries() {
			line, _ := (&logrus.TextFormatter{DisableTimestamp: true}).Format(entry)
			logged = append(logged, strings.TrimSpace(string(line)))
		}
		t.Errorf("no audit entry (module=%s, event=%s, actor=%s, message=%q) in:\n%s",
			module, event, actor, message, strings.Join(logged, "\n"))
		return
	}
	formatted, err := matches[0].Logger.Formatter.Format(&matches[0])
	require.NoError(t, err)
	if !strings.Contains(string(formatted), "level="+auditLogLevel) && !strings.Contains(string(formatted), `"level":"`+auditLogLevel+`"`) {
		t.Errorf("audit entry is not logged on the %s level: %s", auditLogLevel, formatted)
	}
}

func (c *CapturedLog) entries(predicate func(entry logrus.Entry) bool) []logrus.Entry {
	var result []logrus.Entry
	for _, entry := range c.hook.AllEntries() {
		if predicate(*entry) {
			result = append(result, *entry)
		}
	}
	return result
}

// CaptureLogs captures audit entries until the test ends.
func CaptureLogs(t *testing.T) *CapturedLog {
	previous := auditLogger().Hooks
	t.Cleanup(func() {
		auditLogger().ReplaceHooks(previous)
	})
	hook := &test.Hook{}
	auditLogger().AddHook(hook)
	return &CapturedLog{hook: hook}
}
