// Package common defines sentinel errors shared by the repository, service
// and transport layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors.
	ErrorValidation = errors.New("validation error")

	// Uniqueness errors detected before a write.
	ErrorEmailConflict    = errors.New("email already exists")
	ErrorUsernameConflict = errors.New("username already exists")
)
