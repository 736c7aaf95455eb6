package backend

import (
	"errors"
	"fmt"
)

// ErrUnsupported is wrapped by capability accessors a backend lacks.
var ErrUnsupported = errors.ErrUnsupported

// Unsupported returns an error for a capability the named backend lacks.
func Unsupported(backend, capability string) error {
	return fmt.Errorf("%s: %s: %w", backend, capability, ErrUnsupported)
}
