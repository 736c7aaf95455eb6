//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	udevRulePath = "/etc/udev/rules.d/70-pinput-uinput.rules"
	serviceName  = "pinput-hotkeys.service"
	servicePath  = "/etc/systemd/system/" + serviceName
)

func install(logger *slog.Logger, group string) error {
	exePath, err := currentExecutable()
	if err != nil {
		return err
	}

	if err := os.WriteFile(udevRulePath, []byte(udevRuleContent(group)), 0o644); err != nil {
		return err
	}
	for _, args := range [][]string{
		{"control", "--reload-rules"},
		{"trigger", "--sysname-match=uinput"},
	} {
		if err := runTool("udevadm", args...); err != nil {
			return err
		}
	}
	logger.Info("uinput access granted", "group", group, "rule", udevRulePath)

	if err := os.WriteFile(servicePath, []byte(systemdUnitContent(exePath)), 0o644); err != nil {
		return err
	}
	if err := runTool("systemctl", "daemon-reload"); err != nil {
		return err
	}
	logger.Info("hotkey service installed", "path", servicePath, "exe", exePath)
	logger.Info("configure hotkeys in /etc/pinput/hotkeys.yaml, then run: systemctl enable --now " + serviceName)
	return nil
}

func uninstall(logger *slog.Logger) error {
	var errs []error

	if err := runTool("systemctl", "disable", "--now", serviceName); err != nil {
		errs = append(errs, err)
	}
	for _, p := range []string{servicePath, udevRulePath} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	if err := runTool("systemctl", "daemon-reload"); err != nil {
		errs = append(errs, err)
	}
	if err := runTool("udevadm", "control", "--reload-rules"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	logger.Info("pinput service and udev rule removed")
	return nil
}

func udevRuleContent(group string) string {
	return fmt.Sprintf("KERNEL==\"uinput\", GROUP=%q, MODE=\"0660\", OPTIONS+=\"static_node=uinput\"\n", group)
}

func systemdUnitContent(exePath string) string {
	return fmt.Sprintf(`[Unit]
Description=pinput hotkeys
After=systemd-udev-settle.service

[Service]
Type=simple
ExecStart=%q --backend=evdev hotkeys
WorkingDirectory=%s
Restart=on-failure

[Install]
WantedBy=multi-user.target
`, exePath, filepath.Dir(exePath))
}

func currentExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return filepath.EvalSymlinks(exe)
}

func runTool(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s failed: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}
