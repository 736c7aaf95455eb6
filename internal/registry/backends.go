// Package registry links the platform backends into a binary.
package registry

import (
	_ "github.com/Alia5/pinput/backend/dummy" // Register in-memory backend
)
