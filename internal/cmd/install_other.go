//go:build !linux

package cmd

import (
	"log/slog"

	"github.com/Alia5/pinput/backend"
)

func install(*slog.Logger, string) error {
	return backend.Unsupported("install", "udev and systemd setup")
}

func uninstall(*slog.Logger) error {
	return backend.Unsupported("install", "udev and systemd setup")
}
