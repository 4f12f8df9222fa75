package model

import "errors"

// Structural errors raised during block construction or solver setup.
var (
	// ErrConfiguration indicates an invalid or incomplete block configuration.
	ErrConfiguration = errors.New("model: invalid configuration")

	// ErrDegreesOfFreedom indicates the free variable count does not match
	// the active equation count.
	ErrDegreesOfFreedom = errors.New("model: unknown count does not match equation count")

	// ErrDuplicateName indicates a component name reused within one block.
	ErrDuplicateName = errors.New("model: duplicate component name")
)
