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
	"fmt"
	"runtime"
	"strings"
)

// Build information, set with -ldflags at build time.
var (
	// GitCommit holds the git commit hash the binary is built from.
	GitCommit string
	// GitVersion holds the tag of the git commit, if any.
	GitVersion string
	// GitBranch holds the branch the binary is built from.
	GitBranch = "development"
)

// Version returns the git tag of the build, or the branch if it isn't tagged.
func Version() string {
	if GitVersion != "" && GitVersion != "undefined" {
		return GitVersion
	}
	return GitBranch
}

// OSArch returns the OS and architecture the binary is built for.
func OSArch() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}

// BuildInfo returns the version, commit and platform of the binary, one per line.
func BuildInfo() string {
	b := strings.Builder{}
	_, _ = fmt.Fprintf(&b, "Git version: %s\n", Version())
	_, _ = fmt.Fprintf(&b, "Git commit: %s\n", GitCommit)
	_, _ = fmt.Fprintf(&b, "OS/Arch: %s\n", OSArch())
	return b.String()
}
