package cmd

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/pinput/backend"
	"github.com/Alia5/pinput/mouse"
)

// Mouse groups pointer commands.
type Mouse struct {
	Position MousePosition `cmd:"" help:"Print the pointer position"`
	Move     MouseMove     `cmd:"" help:"Move the pointer to X Y"`
	MoveBy   MouseMoveBy   `cmd:"" help:"Move the pointer by DX DY"`
	Click    MouseClick    `cmd:"" help:"Click a button"`
	Scroll   MouseScroll   `cmd:"" help:"Scroll DX steps right and DY steps up"`
}

// MousePosition prints the pointer position.
type MousePosition struct{}

// Run is called by Kong when the mouse position command is executed.
func (c *MousePosition) Run(logger *slog.Logger, b *Backend) error {
	return withMouse(logger, b, func(ctrl *mouse.Controller) error {
		x, y, err := ctrl.Position()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "%d %d\n", x, y)
		return err
	})
}

// MouseMove moves the pointer to an absolute position.
type MouseMove struct {
	X int `arg:""`
	Y int `arg:""`
}

// Run is called by Kong when the mouse move command is executed.
func (c *MouseMove) Run(logger *slog.Logger, b *Backend) error {
	return withMouse(logger, b, func(ctrl *mouse.Controller) error {
		return ctrl.SetPosition(c.X, c.Y)
	})
}

// MouseMoveBy moves the pointer relative to its position.
type MouseMoveBy struct {
	DX int `arg:"" name:"dx"`
	DY int `arg:"" name:"dy"`
}

// Run is called by Kong when the mouse move-by command is executed.
func (c *MouseMoveBy) Run(logger *slog.Logger, b *Backend) error {
	return withMouse(logger, b, func(ctrl *mouse.Controller) error {
		return ctrl.Move(c.DX, c.DY)
	})
}

// MouseClick clicks a button.
type MouseClick struct {
	Button string `help:"Button name: left, middle, right, scroll_up, ..., button8-button30" default:"left"`
	Count  int    `help:"Number of clicks" default:"1"`
}

// Run is called by Kong when the mouse click command is executed.
func (c *MouseClick) Run(logger *slog.Logger, b *Backend) error {
	btn, ok := mouse.ButtonByName(c.Button)
	if !ok {
		return fmt.Errorf("%w: unknown button %q", mouse.ErrInvalidValue, c.Button)
	}
	return withMouse(logger, b, func(ctrl *mouse.Controller) error {
		return ctrl.Click(btn, c.Count)
	})
}

// MouseScroll scrolls.
type MouseScroll struct {
	DX int `arg:"" name:"dx"`
	DY int `arg:"" name:"dy"`
}

// Run is called by Kong when the mouse scroll command is executed.
func (c *MouseScroll) Run(logger *slog.Logger, b *Backend) error {
	return withMouse(logger, b, func(ctrl *mouse.Controller) error {
		return ctrl.Scroll(c.DX, c.DY)
	})
}

func withMouse(logger *slog.Logger, b *Backend, fn func(*mouse.Controller) error) error {
	be, err := b.Open(backend.CanInject, logger)
	if err != nil {
		return err
	}
	defer be.Close()

	inj, err := be.MouseInjector()
	if err != nil {
		return err
	}
	return fn(mouse.NewController(inj, logger))
}
