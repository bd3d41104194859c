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

	"github.com/go-errors/errors"
)

// ErrorCode is a stable, machine-readable identifier for a class of errors. It is returned to API clients.
type ErrorCode string

// InternalServerErrorCode is the code for errors that have no code of their own.
const InternalServerErrorCode ErrorCode = "INTERNAL_SERVER_ERROR"

// CodedError is an error with a stable error code.
type CodedError struct {
	Code    ErrorCode
	Message string
}

// NewCodedError creates a new CodedError.
func NewCodedError(code ErrorCode, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

func (c *CodedError) Error() string {
	return c.Message
}

// ErrorCodeOf returns the code of the first CodedError in the chain of err, or InternalServerErrorCode if there's none.
func ErrorCodeOf(err error) ErrorCode {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return InternalServerErrorCode
}

type wrappedError struct {
	err   error
	cause error
}

func (w wrappedError) Error() string {
	// Use Sprintf to avoid nil dereferences, when someone accidentally passes a nil err or cause.
	return fmt.Sprintf("%s", w.err) + ": " + fmt.Sprintf("%s", w.cause)
}

func (w wrappedError) Is(other error) bool {
	return errors.Is(w.err, other)
}

func (w wrappedError) As(target interface{}) bool {
	return errors.As(w.err, target)
}

func (w wrappedError) Unwrap() error {
	return w.cause
}

// WrapError returns an error that wraps a cause. In contrary to fmt.Errorf, errors.Is can be used on both the outer error and cause.
func WrapError(err error, cause error) error {
	return wrappedError{
		err:   err,
		cause: cause,
	}
}
