package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Alia5/pinput/backend"
	"github.com/Alia5/pinput/keyboard"
)

// Hotkeys runs shell commands when key combinations are pressed.
type Hotkeys struct {
	Hotkey   map[string]string `help:"Hotkey and the command it runs, as COMBO=COMMAND" short:"k" mapsep:"none"`
	Suppress bool              `help:"Keep key events from reaching other applications" env:"PINPUT_HOTKEYS_SUPPRESS"`

	run func(ctx context.Context, command string) error
}

// Run is called by Kong when the hotkeys command is executed.
func (c *Hotkeys) Run(logger *slog.Logger, b *Backend) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.serve(ctx, logger, b)
}

func (c *Hotkeys) serve(ctx context.Context, logger *slog.Logger, b *Backend) error {
	if len(c.Hotkey) == 0 {
		return errors.New("no hotkeys configured; pass --hotkey COMBO=COMMAND")
	}
	run := c.run
	if run == nil {
		run = runShell
	}

	be, err := b.Open(backend.CanListen, logger)
	if err != nil {
		return err
	}
	defer be.Close()
	src, err := be.KeyboardSource()
	if err != nil {
		return err
	}

	callbacks := make(map[string]func(), len(c.Hotkey))
	for combo, command := range c.Hotkey {
		callbacks[combo] = func() {
			logger.Info("hotkey activated", "hotkey", combo, "command", command)
			go func() {
				if err := run(ctx, command); err != nil {
					logger.Error("hotkey command failed", "hotkey", combo, "error", err)
				}
			}()
		}
	}

	g, err := keyboard.NewGlobalHotKeys(src, callbacks, keyboard.Options{Suppress: c.Suppress, Logger: logger})
	if err != nil {
		return err
	}
	logger.Info("watching hotkeys", "count", len(callbacks), "backend", be.Name())
	return g.Run(ctx)
}

func runShell(ctx context.Context, command string) error {
	shell, flag := "/bin/sh", "-c"
	if runtime.GOOS == "windows" {
		shell, flag = "cmd", "/C"
	}
	cmd := exec.CommandContext(ctx, shell, flag, command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
