package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"golang.org/x/term"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/pinput/backend"
	"github.com/Alia5/pinput/internal/log"
	"github.com/Alia5/pinput/keyboard"
	"github.com/Alia5/pinput/mouse"
)

// Listen prints observed input events.
type Listen struct {
	Keyboard bool   `help:"Listen to the keyboard" env:"PINPUT_LISTEN_KEYBOARD"`
	Mouse    bool   `help:"Listen to the mouse" env:"PINPUT_LISTEN_MOUSE"`
	Suppress bool   `help:"Keep events from reaching other applications" env:"PINPUT_LISTEN_SUPPRESS"`
	Format   string `help:"Output format; defaults to text on a terminal and json otherwise" enum:",text,json,yaml" default:""`
	Count    int    `help:"Stop after this many events; 0 runs until interrupted" default:"0"`
}

// eventRecord is the serialized form of an observed event.
type eventRecord struct {
	Time     int64  `json:"time" yaml:"time"`
	Source   string `json:"source" yaml:"source"`
	Action   string `json:"action" yaml:"action"`
	Key      string `json:"key,omitempty" yaml:"key,omitempty"`
	Button   string `json:"button,omitempty" yaml:"button,omitempty"`
	Position []int  `json:"position,omitempty" yaml:"position,omitempty,flow"`
	Delta    []int  `json:"delta,omitempty" yaml:"delta,omitempty,flow"`
	Injected bool   `json:"injected" yaml:"injected"`
}

func keyboardRecord(ev keyboard.Event) eventRecord {
	switch ev := ev.(type) {
	case keyboard.PressEvent:
		return eventRecord{Time: ev.Timestamp, Source: "keyboard", Action: "press", Key: ev.Key.String(), Injected: ev.Injected}
	case keyboard.ReleaseEvent:
		return eventRecord{Time: ev.Timestamp, Source: "keyboard", Action: "release", Key: ev.Key.String(), Injected: ev.Injected}
	}
	return eventRecord{Source: "keyboard"}
}

func mouseRecord(ev mouse.Event) eventRecord {
	switch ev := ev.(type) {
	case mouse.MoveEvent:
		return eventRecord{Time: ev.Timestamp, Source: "mouse", Action: "move", Position: []int{ev.X, ev.Y}, Injected: ev.Injected}
	case mouse.ClickEvent:
		action := "release"
		if ev.Pressed {
			action = "press"
		}
		return eventRecord{Time: ev.Timestamp, Source: "mouse", Action: action, Button: ev.Button.String(), Position: []int{ev.X, ev.Y}, Injected: ev.Injected}
	case mouse.ScrollEvent:
		return eventRecord{Time: ev.Timestamp, Source: "mouse", Action: "scroll", Position: []int{ev.X, ev.Y}, Delta: []int{ev.DX, ev.DY}, Injected: ev.Injected}
	}
	return eventRecord{Source: "mouse"}
}

func (r eventRecord) fields() []any {
	var f []any
	if r.Key != "" {
		f = append(f, "key", r.Key)
	}
	if r.Button != "" {
		f = append(f, "button", r.Button)
	}
	if r.Position != nil {
		f = append(f, "position", fmt.Sprintf("%d,%d", r.Position[0], r.Position[1]))
	}
	if r.Delta != nil {
		f = append(f, "delta", fmt.Sprintf("%d,%d", r.Delta[0], r.Delta[1]))
	}
	return f
}

// printer writes records in one format. It is safe for concurrent use.
type printer struct {
	mu   sync.Mutex
	w    io.Writer
	json *json.Encoder
	yaml *yaml.Encoder
}

func newPrinter(w io.Writer, format string) *printer {
	p := &printer{w: w}
	switch format {
	case "json":
		p.json = json.NewEncoder(w)
	case "yaml":
		p.yaml = yaml.NewEncoder(w)
	}
	return p
}

func (p *printer) print(r eventRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.json != nil:
		return p.json.Encode(r)
	case p.yaml != nil:
		return p.yaml.Encode(r)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %-7s", r.Source, r.Action)
	f := r.fields()
	for i := 0; i+1 < len(f); i += 2 {
		fmt.Fprintf(&b, " %v=%v", f[i], f[i+1])
	}
	if r.Injected {
		b.WriteString(" (injected)")
	}
	b.WriteByte('\n')
	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *printer) close() error {
	if p.yaml != nil {
		return p.yaml.Close()
	}
	return nil
}

func defaultFormat(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "text"
	}
	return "json"
}

// Run is called by Kong when the listen command is executed.
func (c *Listen) Run(logger *slog.Logger, raw log.RawLogger, b *Backend) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.listen(ctx, logger, raw, b)
}

func (c *Listen) listen(ctx context.Context, logger *slog.Logger, raw log.RawLogger, b *Backend) error {
	wantKeyboard, wantMouse := c.Keyboard, c.Mouse
	if !wantKeyboard && !wantMouse {
		wantKeyboard, wantMouse = true, true
	}

	be, err := b.Open(backend.CanListen, logger)
	if err != nil {
		return err
	}
	defer be.Close()

	format := c.Format
	if format == "" {
		format = defaultFormat(stdout)
	}
	out := newPrinter(stdout, format)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu   sync.Mutex
		seen int
		errs []error
		wg   sync.WaitGroup
	)
	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}
	emit := func(r eventRecord) bool {
		mu.Lock()
		if c.Count > 0 && seen >= c.Count {
			mu.Unlock()
			return false
		}
		seen++
		done := c.Count > 0 && seen >= c.Count
		mu.Unlock()

		raw.Log(r.Source, r.Action, r.Injected, r.fields()...)
		if err := out.print(r); err != nil {
			fail(err)
			cancel()
			return false
		}
		if done {
			cancel()
		}
		return !done
	}

	if wantKeyboard {
		src, err := be.KeyboardSource()
		if err != nil {
			return err
		}
		events := keyboard.NewEvents(src, keyboard.Options{Suppress: c.Suppress, Logger: logger.With("listener", "keyboard")})
		if err := events.Start(ctx); err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ev := range events.All(ctx) {
				if !emit(keyboardRecord(ev)) {
					break
				}
			}
			if err := events.Close(); err != nil {
				fail(fmt.Errorf("keyboard listener: %w", err))
			}
			cancel()
		}()
	}

	if wantMouse {
		src, err := be.MouseSource()
		if err != nil {
			cancel()
			wg.Wait()
			return err
		}
		events := mouse.NewEvents(src, mouse.Options{Suppress: c.Suppress, Logger: logger.With("listener", "mouse")})
		if err := events.Start(ctx); err != nil {
			cancel()
			wg.Wait()
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ev := range events.All(ctx) {
				if !emit(mouseRecord(ev)) {
					break
				}
			}
			if err := events.Close(); err != nil {
				fail(fmt.Errorf("mouse listener: %w", err))
			}
			cancel()
		}()
	}

	logger.Info("listening", "keyboard", wantKeyboard, "mouse", wantMouse, "format", format)
	wg.Wait()
	return errors.Join(append(errs, out.close())...)
}
