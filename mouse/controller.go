// Package mouse provides mouse input synthesis and observation on top of a
// platform backend.
package mouse

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
)

var (
	// ErrInvalidValue reports an argument out of range, such as a
	// coordinate outside the signed 16-bit range.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnsupportedButton is returned by backends for buttons they
	// cannot emit.
	ErrUnsupportedButton = errors.New("button not supported by backend")
)

// Injector is implemented by backends able to synthesize mouse events.
type Injector interface {
	Position() (x, y int, err error)
	SetPosition(x, y int) error
	Press(b Button) error
	Release(b Button) error
	// Scroll scrolls dx steps horizontally and dy steps vertically.
	// Positive values scroll right and up.
	Scroll(dx, dy int) error
}

// Controller sends virtual mouse events to the system.
type Controller struct {
	inj    Injector
	logger *slog.Logger
}

// NewController returns a controller injecting through inj. A nil logger
// discards log output.
func NewController(inj Injector, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{inj: inj, logger: logger}
}

// Position returns the pointer position in screen coordinates.
func (c *Controller) Position() (x, y int, err error) {
	return c.inj.Position()
}

// SetPosition moves the pointer to x, y.
func (c *Controller) SetPosition(x, y int) error {
	if err := CheckBounds(x, y); err != nil {
		return err
	}
	c.logger.Debug("set pointer position", "x", x, "y", y)
	return c.inj.SetPosition(x, y)
}

// Move moves the pointer relative to its current position.
func (c *Controller) Move(dx, dy int) error {
	x, y, err := c.inj.Position()
	if err != nil {
		return fmt.Errorf("get position: %w", err)
	}
	return c.SetPosition(x+dx, y+dy)
}

// Press presses a button.
func (c *Controller) Press(b Button) error {
	c.logger.Debug("press button", "button", b)
	return c.inj.Press(b)
}

// Release releases a button.
func (c *Controller) Release(b Button) error {
	c.logger.Debug("release button", "button", b)
	return c.inj.Release(b)
}

// Click presses and releases a button count times.
func (c *Controller) Click(b Button, count int) error {
	for range count {
		if err := c.Press(b); err != nil {
			return err
		}
		if err := c.Release(b); err != nil {
			return err
		}
	}
	return nil
}

// Scroll sends scroll events. Positive dy scrolls up, positive dx right.
func (c *Controller) Scroll(dx, dy int) error {
	if err := CheckBounds(dx, dy); err != nil {
		return err
	}
	c.logger.Debug("scroll", "dx", dx, "dy", dy)
	return c.inj.Scroll(dx, dy)
}

// Pressed presses buttons in order, runs fn and releases them in reverse
// order on every exit path.
func (c *Controller) Pressed(fn func() error, buttons ...Button) (err error) {
	held := make([]Button, 0, len(buttons))
	defer func() {
		for _, b := range slices.Backward(held) {
			if rerr := c.Release(b); rerr != nil {
				err = errors.Join(err, rerr)
			}
		}
	}()

	for _, b := range buttons {
		if err := c.Press(b); err != nil {
			return err
		}
		held = append(held, b)
	}
	if fn == nil {
		return nil
	}
	return fn()
}

// CheckBounds verifies that every value fits a signed 16-bit integer.
func CheckBounds(values ...int) error {
	for _, v := range values {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return fmt.Errorf("%w: %v out of range", ErrInvalidValue, values)
		}
	}
	return nil
}

// ClickFunc clicks a button count times.
type ClickFunc func(b Button, count int) error

// ScrollClicks expresses scrolling as repeated clicks of the scroll
// buttons, for platforms where the wheel is a set of buttons.
func ScrollClicks(click ClickFunc, dx, dy int) error {
	if err := CheckBounds(dx, dy); err != nil {
		return err
	}
	if dy != 0 {
		b := ButtonScrollDown
		if dy > 0 {
			b = ButtonScrollUp
		}
		if err := click(b, abs(dy)); err != nil {
			return err
		}
	}
	if dx != 0 {
		b := ButtonScrollLeft
		if dx > 0 {
			b = ButtonScrollRight
		}
		if err := click(b, abs(dx)); err != nil {
			return err
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
