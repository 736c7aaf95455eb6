package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/pinput/backend"
	"github.com/Alia5/pinput/backend/dummy"
	"github.com/Alia5/pinput/internal/log"
	"github.com/Alia5/pinput/keyboard"
	"github.com/Alia5/pinput/mouse"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func dummyBackend(be *dummy.Backend) *Backend {
	return &Backend{open: func(string, backend.Capability, backend.Options) (backend.Backend, error) {
		return be, nil
	}}
}

func testLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestTypeCommand(t *testing.T) {
	be := dummy.New()
	require.NoError(t, (&Type{Text: "ok"}).Run(testLogger(), dummyBackend(be)))
	assert.Equal(t, []dummy.KeyEvent{
		{Code: keyboard.FromChar('o'), Press: true},
		{Code: keyboard.FromChar('o'), Press: false},
		{Code: keyboard.FromChar('k'), Press: true},
		{Code: keyboard.FromChar('k'), Press: false},
	}, be.Keys())
}

func TestTapCommand(t *testing.T) {
	be := dummy.New()
	require.NoError(t, (&Tap{Combo: "<ctrl>+<shift>+t"}).Run(testLogger(), dummyBackend(be)))

	layout := dummy.Layout()
	ctrl, _ := layout.Code(keyboard.KeyCtrl)
	shift, _ := layout.Code(keyboard.KeyShift)
	assert.Equal(t, []dummy.KeyEvent{
		{Code: ctrl, Press: true},
		{Code: shift, Press: true},
		{Code: keyboard.FromChar('T'), Press: true},
		{Code: keyboard.FromChar('T'), Press: false},
		{Code: shift, Press: false},
		{Code: ctrl, Press: false},
	}, be.Keys())

	err := (&Tap{Combo: "<ctrl>+"}).Run(testLogger(), dummyBackend(dummy.New()))
	assert.ErrorIs(t, err, keyboard.ErrInvalidValue)
}

func TestKeyCommands(t *testing.T) {
	be := dummy.New()
	b := dummyBackend(be)
	require.NoError(t, (&KeyPress{Key: "x"}).Run(testLogger(), b))
	require.NoError(t, (&KeyRelease{Key: "x"}).Run(testLogger(), b))
	assert.Equal(t, []dummy.KeyEvent{
		{Code: keyboard.FromChar('x'), Press: true},
		{Code: keyboard.FromChar('x'), Press: false},
	}, be.Keys())

	err := (&KeyPress{Key: "<ctrl>+x"}).Run(testLogger(), b)
	assert.ErrorIs(t, err, keyboard.ErrInvalidValue)
}

func TestOpenError(t *testing.T) {
	boom := errors.New("no display")
	b := &Backend{open: func(string, backend.Capability, backend.Options) (backend.Backend, error) {
		return nil, boom
	}}
	assert.ErrorIs(t, (&Type{Text: "a"}).Run(testLogger(), b), boom)
	assert.ErrorIs(t, (&MousePosition{}).Run(testLogger(), b), boom)
}

func TestBackendOptions(t *testing.T) {
	var got backend.Options
	var gotName string
	var gotCaps backend.Capability
	b := &Backend{
		Name:           "evdev",
		KeyboardDevice: "/dev/input/event3",
		MouseDevice:    "/dev/input/event5",
		open: func(name string, caps backend.Capability, o backend.Options) (backend.Backend, error) {
			gotName, gotCaps, got = name, caps, o
			return dummy.New(), nil
		},
	}
	be, err := b.Open(backend.CanListen, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "dummy", be.Name())
	assert.Equal(t, "evdev", gotName)
	assert.Equal(t, backend.CanListen, gotCaps)
	assert.Equal(t, "/dev/input/event3", got.KeyboardDevice)
	assert.Equal(t, "/dev/input/event5", got.MouseDevice)
	assert.NotNil(t, got.Logger)
}

func TestMouseCommands(t *testing.T) {
	out := captureStdout(t)
	be := dummy.New()
	b := dummyBackend(be)

	require.NoError(t, (&MouseMove{X: 10, Y: 20}).Run(testLogger(), b))
	require.NoError(t, (&MouseMoveBy{DX: 5, DY: -5}).Run(testLogger(), b))
	require.NoError(t, (&MousePosition{}).Run(testLogger(), b))
	assert.Equal(t, "15 15\n", out.String())

	require.NoError(t, (&MouseClick{Button: "right", Count: 2}).Run(testLogger(), b))
	assert.Len(t, be.Clicks(), 4)
	assert.Equal(t, mouse.ButtonRight, be.Clicks()[0].Button)

	err := (&MouseClick{Button: "thumb", Count: 1}).Run(testLogger(), b)
	assert.ErrorIs(t, err, mouse.ErrInvalidValue)

	require.NoError(t, (&MouseScroll{DX: 0, DY: 3}).Run(testLogger(), b))
	assert.Equal(t, [][2]int{{0, 3}}, be.Scrolls())
	assert.ErrorIs(t, (&MouseMove{X: 40000}).Run(testLogger(), b), mouse.ErrInvalidValue)
}

func TestListenJSON(t *testing.T) {
	out := captureStdout(t)
	be := dummy.New()
	be.PressKey(keyboard.FromChar('a'))
	be.ReleaseKey(keyboard.FromChar('a'))
	be.PressKey(keyboard.FromChar('b'))

	var rawBuf bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c := &Listen{Keyboard: true, Format: "json", Count: 2}
	require.NoError(t, c.listen(ctx, testLogger(), log.NewRaw(&rawBuf), dummyBackend(be)))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var first eventRecord
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, eventRecord{Time: 1, Source: "keyboard", Action: "press", Key: "'a'"}, first)
	assert.Contains(t, lines[1], `"action":"release"`)

	assert.Contains(t, rawBuf.String(), "keyboard press key='a' injected=false")
	assert.Equal(t, 2, strings.Count(rawBuf.String(), "\n"))
}

func TestListenText(t *testing.T) {
	out := captureStdout(t)
	be := dummy.New()
	be.MovePointer(3, 4)
	be.ClickButton(mouse.ButtonScrollUp, true)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c := &Listen{Mouse: true, Format: "text", Count: 2}
	require.NoError(t, c.listen(ctx, testLogger(), log.NewRaw(nil), dummyBackend(be)))

	assert.Equal(t,
		"mouse    move    position=3,4\n"+
			"mouse    scroll  position=3,4 delta=0,1\n",
		out.String())
}

func TestListenYAML(t *testing.T) {
	out := captureStdout(t)
	be := dummy.New()
	be.ClickButton(mouse.ButtonLeft, true)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c := &Listen{Mouse: true, Format: "yaml", Count: 1}
	require.NoError(t, c.listen(ctx, testLogger(), log.NewRaw(nil), dummyBackend(be)))

	var rec eventRecord
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "press", rec.Action)
	assert.Equal(t, "left", rec.Button)
	assert.Equal(t, []int{0, 0}, rec.Position)
}

func TestListenCancelled(t *testing.T) {
	captureStdout(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &Listen{Format: "json"}
	assert.NoError(t, c.listen(ctx, testLogger(), log.NewRaw(nil), dummyBackend(dummy.New())))
}

func TestHotkeysServe(t *testing.T) {
	be := dummy.New()

	var mu sync.Mutex
	var ran []string
	c := &Hotkeys{
		Hotkey: map[string]string{"<ctrl>+e": "echo hi"},
		run: func(ctx context.Context, command string) error {
			mu.Lock()
			ran = append(ran, command)
			mu.Unlock()
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- c.serve(ctx, testLogger(), dummyBackend(be)) }()

	be.PressKey(keyboard.KeyCtrlL)
	be.PressKey(keyboard.FromChar('e'))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(ran) == 1 && ran[0] == "echo hi"
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("hotkeys did not stop")
	}
}

func TestHotkeysErrors(t *testing.T) {
	err := (&Hotkeys{}).serve(context.Background(), testLogger(), dummyBackend(dummy.New()))
	assert.ErrorContains(t, err, "no hotkeys configured")

	c := &Hotkeys{Hotkey: map[string]string{"<nope>": "true"}}
	err = c.serve(context.Background(), testLogger(), dummyBackend(dummy.New()))
	assert.ErrorIs(t, err, keyboard.ErrInvalidValue)
}

func TestBackendsCommand(t *testing.T) {
	out := captureStdout(t)
	require.NoError(t, (&Backends{}).Run())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)
	assert.Regexp(t, `^NAME\s+PRIORITY\s+CAPABILITIES\s+DEFAULT$`, lines[0])
	assert.Regexp(t, `(?m)^dummy\s+0\s+inject,listen`, out.String())
}

func TestConfigKey(t *testing.T) {
	tests := []struct {
		typ   reflect.Type
		field string
		want  string
	}{
		{reflect.TypeFor[log.Config](), "Level", "level"},
		{reflect.TypeFor[log.Config](), "RawFile", "raw_file"},
		{reflect.TypeFor[Backend](), "KeyboardDevice", "keyboard_device"},
		{reflect.TypeFor[Backend](), "Name", "backend"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f, ok := tt.typ.FieldByName(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.want, configKey(f))
		})
	}
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		command string
		format  string
		check   func(t *testing.T, data []byte)
	}{
		{
			name:    "global json",
			command: "global",
			format:  "json",
			check: func(t *testing.T, data []byte) {
				var m map[string]any
				require.NoError(t, json.Unmarshal(data, &m))
				assert.NotContains(t, m, "config")
				assert.Equal(t, "", m["backend"])
				assert.Contains(t, m, "keyboard_device")
				logCfg, ok := m["log"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "info", logCfg["level"])
				assert.Contains(t, logCfg, "raw_file")
			},
		},
		{
			name:    "listen yaml",
			command: "listen",
			format:  "yaml",
			check: func(t *testing.T, data []byte) {
				var m map[string]any
				require.NoError(t, yaml.Unmarshal(data, &m))
				assert.Equal(t, false, m["suppress"])
				assert.Equal(t, 0, m["count"])
				assert.Contains(t, m, "format")
			},
		},
		{
			name:    "hotkeys toml",
			command: "hotkeys",
			format:  "toml",
			check: func(t *testing.T, data []byte) {
				assert.Contains(t, string(data), "suppress = false")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureStdout(t)
			dest := filepath.Join(dir, tt.command+"."+tt.format)
			c := &ConfigInit{Command: tt.command, Format: tt.format, Output: dest}
			require.NoError(t, c.Run())
			assert.Equal(t, dest+"\n", out.String())

			data, err := os.ReadFile(dest)
			require.NoError(t, err)
			tt.check(t, data)

			assert.ErrorContains(t, c.Run(), "destination exists")
			c.Force = true
			assert.NoError(t, c.Run())
		})
	}
}
