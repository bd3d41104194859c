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

import "fmt"

// DiagnosticResult is the outcome of a single check of an engine, shown on the diagnostics endpoint.
type DiagnosticResult interface {
	// Name returns a simple and understandable name of the check
	Name() string
	// Result returns the outcome of the check, which must be serializable to JSON.
	Result() interface{}
	// String returns the outcome of the check formatted as string
	String() string
}

// Diagnosable is implemented by engines that report diagnostics.
type Diagnosable interface {
	Named
	Diagnostics() []DiagnosticResult
}

// GenericDiagnosticResult is a DiagnosticResult with a fixed outcome.
type GenericDiagnosticResult struct {
	Title   string
	Outcome interface{}
}

func (r GenericDiagnosticResult) Name() string {
	return r.Title
}

func (r GenericDiagnosticResult) Result() interface{} {
	return r.Outcome
}

func (r GenericDiagnosticResult) String() string {
	return fmt.Sprintf("%v", r.Outcome)
}
