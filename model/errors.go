// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
	"fmt"
)

var (
	ErrResourceNameRequired  = errors.New("name is required")
	ErrResourceTypeRequired  = errors.New("resource-type must be provided")
	ErrUnknownResourceType   = errors.New("unsupported resource-type")
	ErrUnsupportedOperation  = errors.New("unsupported operation")
	ErrInvalidInput          = errors.New("invalid input JSON")
	ErrInvalidDocument       = errors.New("invalid document payload")
	ErrDuplicateResource     = errors.New("resource already registered")
	ErrResourceNotManageable = errors.New("resource is not manageable on this system")
)

// ExitError is returned by a resource when a failure must terminate the
// process with a specific exit code, for example export with a filter
// naming a package unknown to the repository metadata
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("resource terminated with exit %d", e.Code)
	}

	return e.Message
}
