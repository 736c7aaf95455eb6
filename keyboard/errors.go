package keyboard

import (
	"errors"
	"fmt"

	"github.com/Alia5/pinput/internal/listener"
)

var (
	// ErrInvalidValue reports a malformed argument, such as a string key
	// that is not exactly one character or a malformed hotkey.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNoVirtualCode reports a named key whose layout payload has no
	// virtual key code. This is a backend configuration error.
	ErrNoVirtualCode = errors.New("key has no virtual code")

	// ErrStopListener may be returned from a listener callback to stop the
	// listener without reporting an error.
	ErrStopListener = listener.ErrStop

	// ErrSuppressUnsupported is returned when suppression is requested
	// from a source that cannot suppress events.
	ErrSuppressUnsupported = listener.ErrSuppressUnsupported

	// ErrListenerRunning is returned when starting a listener twice.
	ErrListenerRunning = listener.ErrRunning
)

// InvalidKeyError is returned by Controller.Press and Controller.Release
// when the key cannot be resolved.
type InvalidKeyError struct {
	Key any
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key: %v", e.Key)
}

// InvalidCharacterError is returned by Controller.Type when a character
// cannot be typed.
type InvalidCharacterError struct {
	Index int
	Char  rune
	Err   error
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character %q at index %d: %v", e.Char, e.Index, e.Err)
}

func (e *InvalidCharacterError) Unwrap() error { return e.Err }

// InvalidDeadKeyError is returned by FromDead when the character has no
// combining form.
type InvalidDeadKeyError struct {
	Char rune
}

func (e *InvalidDeadKeyError) Error() string {
	return fmt.Sprintf("no combining character for dead key %q", e.Char)
}

// InvalidCompositionError is returned by KeyCode.Join when the dead key
// cannot be applied to Key.
type InvalidCompositionError struct {
	Key KeyCode
}

func (e *InvalidCompositionError) Error() string {
	return fmt.Sprintf("cannot compose dead key with %v", e.Key)
}
