package domain

import "errors"

var (
	ErrDriverNotFound = errors.New("driver not found")
	ErrRunNotFound    = errors.New("run not found")
	ErrActionDisabled = errors.New("action not available in current run status")
	ErrNoOpenForm     = errors.New("no open loading form")
	ErrUnknownField   = errors.New("unknown supply field")
)
