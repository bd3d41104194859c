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

package asic

import (
	"fmt"

	"github.com/nuts-foundation/nuts-siga/core"
)

const (
	// InvalidContainerCode is the error code for containers that can't be read.
	InvalidContainerCode core.ErrorCode = "INVALID_CONTAINER"
	// DuplicateDataFileCode is the error code for containers that list the same data file twice.
	DuplicateDataFileCode core.ErrorCode = "DUPLICATE_DATA_FILE"
)

// ErrInvalidContainer is returned when a container is malformed.
var ErrInvalidContainer = core.NewCodedError(InvalidContainerCode, "invalid container")

// ErrDuplicateDataFile is returned when a hashcodes document or signature lists the same file twice.
var ErrDuplicateDataFile = core.NewCodedError(DuplicateDataFileCode, "duplicate data file")

func invalidContainer(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidContainer, fmt.Sprintf(format, args...))
}

func duplicateDataFile(name string) error {
	return fmt.Errorf("%w: %s", ErrDuplicateDataFile, name)
}
