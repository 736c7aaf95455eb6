package cmd

import "log/slog"

// Install sets up access to /dev/uinput for a group and a systemd unit
// running the hotkeys command.
type Install struct {
	Uninstall bool   `help:"Remove the files install created"`
	Group     string `help:"Group granted write access to /dev/uinput" default:"input"`
}

// Run is called by Kong when the install command is executed.
func (c *Install) Run(logger *slog.Logger) error {
	if c.Uninstall {
		return uninstall(logger)
	}
	return install(logger, c.Group)
}
