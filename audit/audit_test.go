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
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	t.Run("it adds the audit fields to the logger", func(t *testing.T) {
		ctx := TestContext()

		actual := Log(ctx, logrus.NewEntry(logrus.StandardLogger()).WithField("module", "Signing"), "test")

		assert.Equal(t, "test", actual.Data["event"])
		assert.Equal(t, TestActor, actual.Data["actor"])
		assert.Equal(t, "TestModule.TestOperation", actual.Data["operation"])
		assert.Equal(t, "Signing", actual.Data["module"])
		assert.Equal(t, "audit", actual.Data["log"])
	})
	t.Run("it panics when no actor is set", func(t *testing.T) {
		assert.Panics(t, func() {
			Log(context.Background(), logrus.NewEntry(logrus.StandardLogger()), "test")
		})
	})
	t.Run("it panics when no event name is set", func(t *testing.T) {
		assert.Panics(t, func() {
			Log(TestContext(), logrus.NewEntry(logrus.StandardLogger()), "")
		})
	})
	t.Run("it logs on audit level", func(t *testing.T) {
		capturedLogs := CaptureLogs(t)

		Log(TestContext(), logrus.NewEntry(logrus.StandardLogger()).WithField("module", "Signing"), "test").Info("hello")

		capturedLogs.AssertContains(t, "Signing", "test", TestActor, "hello")
	})
}

func TestReplaceLevel(t *testing.T) {
	assert.Equal(t, "time=x level=audit msg=y", string(replaceLevel([]byte("time=x level=info msg=y"), "info")))
	assert.Equal(t, `{"level":"audit","msg":"y"}`, string(replaceLevel([]byte(`{"level":"info","msg":"y"}`), "info")))
	assert.Equal(t, "AUDIT[0000] y", string(replaceLevel([]byte("INFO[0000] y"), "info")))
}
