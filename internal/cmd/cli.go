package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/pinput/backend"
	"github.com/Alia5/pinput/internal/log"
)

// stdout receives command output.
var stdout io.Writer = os.Stdout

// CLI is the pinput command line.
type CLI struct {
	Globals `embed:""`

	Type     Type          `cmd:"" help:"Type text"`
	Tap      Tap           `cmd:"" help:"Press a key combination and release it, e.g. <ctrl>+<shift>+t"`
	Key      Key           `cmd:"" help:"Press or release a single key"`
	Mouse    Mouse         `cmd:"" help:"Control the mouse pointer"`
	Listen   Listen        `cmd:"" help:"Print keyboard and mouse events"`
	Hotkeys  Hotkeys       `cmd:"" help:"Run commands when hotkeys are pressed"`
	Backends Backends      `cmd:"" help:"List available backends"`
	Config   ConfigCommand `cmd:"" help:"Configuration helpers"`
	Install  Install       `cmd:"" help:"Install uinput permissions and the hotkey service (Linux)"`
}

// Globals are the flags shared by every command.
type Globals struct {
	Config  string     `help:"Configuration file" type:"path" env:"PINPUT_CONFIG"`
	Log     log.Config `embed:"" prefix:"log."`
	Backend Backend    `embed:""`
}

// Backend selects the backend commands run against.
type Backend struct {
	Name           string `name:"backend" help:"Backend to use; empty picks the best available one" env:"PINPUT_BACKEND"`
	KeyboardDevice string `help:"Keyboard device read by listening backends" env:"PINPUT_KEYBOARD_DEVICE"`
	MouseDevice    string `help:"Mouse device read by listening backends" env:"PINPUT_MOUSE_DEVICE"`

	open func(name string, caps backend.Capability, o backend.Options) (backend.Backend, error)
}

// Open opens the selected backend, or the best one offering caps.
func (b *Backend) Open(caps backend.Capability, logger *slog.Logger) (backend.Backend, error) {
	open := b.open
	if open == nil {
		open = backend.Open
	}
	be, err := open(b.Name, caps, backend.Options{
		KeyboardDevice: b.KeyboardDevice,
		MouseDevice:    b.MouseDevice,
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("opened backend", "backend", be.Name())
	return be, nil
}
