package cmd

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/pinput/backend"
	"github.com/Alia5/pinput/keyboard"
)

// Type types text.
type Type struct {
	Text string `arg:"" help:"Text to type; newlines and tabs become Enter and Tab"`
}

// Run is called by Kong when the type command is executed.
func (c *Type) Run(logger *slog.Logger, b *Backend) error {
	return withKeyboard(logger, b, func(ctrl *keyboard.Controller) error {
		return ctrl.Type(c.Text)
	})
}

// Tap presses a key combination and releases it in reverse order.
type Tap struct {
	Combo string `arg:"" help:"Keys joined by +, named keys in angle brackets"`
}

// Run is called by Kong when the tap command is executed.
func (c *Tap) Run(logger *slog.Logger, b *Backend) error {
	return withKeyboard(logger, b, func(ctrl *keyboard.Controller) error {
		keys, err := keyboard.ParseHotKey(c.Combo, ctrl.Layout())
		if err != nil {
			return err
		}
		held := make([]any, len(keys))
		for i, k := range keys {
			held[i] = k
		}
		return ctrl.Pressed(nil, held...)
	})
}

// Key groups single key commands.
type Key struct {
	Press   KeyPress   `cmd:"" help:"Press a key"`
	Release KeyRelease `cmd:"" help:"Release a key"`
}

// KeyPress presses one key.
type KeyPress struct {
	Key string `arg:"" help:"A character or a key name in angle brackets, e.g. <shift>"`
}

// Run is called by Kong when the key press command is executed.
func (c *KeyPress) Run(logger *slog.Logger, b *Backend) error {
	return touchKey(logger, b, c.Key, true)
}

// KeyRelease releases one key.
type KeyRelease struct {
	Key string `arg:"" help:"A character or a key name in angle brackets, e.g. <shift>"`
}

// Run is called by Kong when the key release command is executed.
func (c *KeyRelease) Run(logger *slog.Logger, b *Backend) error {
	return touchKey(logger, b, c.Key, false)
}

func touchKey(logger *slog.Logger, b *Backend, combo string, press bool) error {
	return withKeyboard(logger, b, func(ctrl *keyboard.Controller) error {
		keys, err := keyboard.ParseHotKey(combo, ctrl.Layout())
		if err != nil {
			return err
		}
		if len(keys) != 1 {
			return fmt.Errorf("%w: expected a single key, got %q", keyboard.ErrInvalidValue, combo)
		}
		return ctrl.Touch(keys[0], press)
	})
}

func withKeyboard(logger *slog.Logger, b *Backend, fn func(*keyboard.Controller) error) error {
	be, err := b.Open(backend.CanInject, logger)
	if err != nil {
		return err
	}
	defer be.Close()

	inj, err := be.KeyboardInjector()
	if err != nil {
		return err
	}
	return fn(keyboard.NewController(inj, logger))
}
