package dbmanager

import (
	"errors"

	"github.com/xraph/dbmanager/condition"
)

var (
	// ErrInvalidConfig is returned by Compose when the configuration cannot
	// describe a usable manager.
	ErrInvalidConfig = errors.New("dbmanager: invalid config")

	// ErrNotConfigured is returned when an operation needs a backend that
	// was not part of the composed configuration.
	ErrNotConfigured = errors.New("dbmanager: backend not configured")

	// ErrUnauthorized is returned when a condition graph mutation targets a
	// record of another tenant or a record that does not exist.
	ErrUnauthorized = condition.ErrUnauthorized

	// ErrMalformedInput is returned before any I/O for structurally
	// invalid requests.
	ErrMalformedInput = condition.ErrMalformedInput

	// ErrConditionExists is returned when a condition is saved under an id
	// that is already taken.
	ErrConditionExists = condition.ErrConditionExists
)
