package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", LevelTrace},
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestSetupConsoleSplit(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, raw, closers, err := Setup(Config{Level: "info"}, Outputs{Stdout: &stdout, Stderr: &stderr})
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Debug("hidden")
	logger.Info("hello", "n", 1)
	logger.Error("broken")
	raw.Log("keyboard", "press", false, "key", "a")

	assert.Contains(t, stdout.String(), "msg=hello n=1")
	assert.NotContains(t, stdout.String(), "hidden")
	assert.NotContains(t, stdout.String(), "broken")
	assert.Contains(t, stderr.String(), "msg=broken")
	assert.NotContains(t, stderr.String(), "hello")
	assert.NotContains(t, stdout.String(), "keyboard press", "raw events only at trace level")
}

func TestSetupTrace(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, raw, _, err := Setup(Config{Level: "trace"}, Outputs{Stdout: &stdout, Stderr: &stderr})
	require.NoError(t, err)

	logger.Log(t.Context(), LevelTrace, "deep")
	raw.Log("mouse", "move", true, "x", 1, "y", 2)

	assert.Contains(t, stdout.String(), "level=TRACE msg=deep")
	assert.Contains(t, stdout.String(), "mouse move x=1 y=2 injected=true\n")
}

func TestSetupFiles(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "pinput.log")
	rawFile := filepath.Join(dir, "raw.log")

	var stdout, stderr bytes.Buffer
	logger, raw, closers, err := Setup(
		Config{Level: "debug", File: logFile, RawFile: rawFile},
		Outputs{Stdout: &stdout, Stderr: &stderr},
	)
	require.NoError(t, err)
	require.Len(t, closers, 2)

	logger.Debug("to file")
	raw.Log("keyboard", "release", false, "key", "<enter>")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "msg=\"to file\"")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=\"to file\"")

	data, err = os.ReadFile(rawFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "keyboard release key=<enter> injected=false\n")
}

func TestSetupBadLogFile(t *testing.T) {
	_, _, _, err := Setup(Config{File: filepath.Join(t.TempDir(), "missing", "x.log")}, Outputs{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	assert.ErrorContains(t, err, "open log file")
}

func TestRawLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	r := &rawLogger{w: &buf, now: func() time.Time {
		return time.Date(2026, 1, 2, 15, 4, 5, 123456000, time.UTC)
	}}

	r.Log("keyboard", "press", true, "key", "'a'")
	r.Log("mouse", "scroll", false, "dx", 0, "dy", -1, "dangling")

	assert.Equal(t,
		"2026/01/02 15:04:05.123456 keyboard press key='a' injected=true\n"+
			"2026/01/02 15:04:05.123456 mouse scroll dx=0 dy=-1 dangling injected=false\n",
		buf.String())

	assert.NotPanics(t, func() { NewRaw(nil).Log("keyboard", "press", false) })
}
