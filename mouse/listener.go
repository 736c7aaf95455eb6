package mouse

import (
	"context"
	"log/slog"

	"github.com/Alia5/pinput/internal/listener"
)

var (
	// ErrStopListener may be returned from a callback to stop the listener
	// without reporting an error.
	ErrStopListener = listener.ErrStop

	// ErrSuppressUnsupported is returned when suppression is requested
	// from a source that cannot suppress events.
	ErrSuppressUnsupported = listener.ErrSuppressUnsupported

	// ErrListenerRunning is returned when starting a listener twice.
	ErrListenerRunning = listener.ErrRunning
)

// Meta carries the metadata every listener event has.
type Meta struct {
	// Timestamp in platform native units; monotonic per source.
	Timestamp int64
	// Injected is true when the event was synthesized by software.
	Injected bool
}

// Handler receives mouse events from a Source.
type Handler interface {
	Move(x, y int, m Meta) error
	Click(x, y int, b Button, pressed bool, m Meta) error
	Scroll(x, y, dx, dy int, m Meta) error
}

// Source is implemented by backends able to observe mouse events.
type Source interface {
	// Listen delivers events to h until ctx is done or h returns an error.
	Listen(ctx context.Context, h Handler) error
}

// Suppressor is implemented by sources able to prevent observed events from
// reaching other applications.
type Suppressor = listener.Suppressor

// Callbacks are invoked by a Listener for each event; nil ones are skipped.
type Callbacks struct {
	OnMove   func(x, y int, m Meta) error
	OnClick  func(x, y int, b Button, pressed bool, m Meta) error
	OnScroll func(x, y, dx, dy int, m Meta) error
}

// Options configure a Listener.
type Options struct {
	Suppress bool
	Logger   *slog.Logger
}

// Listener runs a source in the background and forwards its events to
// callbacks.
type Listener struct {
	src  Source
	cb   Callbacks
	opts Options
	run  *listener.Runner
}

// NewListener returns a listener for src. It does not start listening.
func NewListener(src Source, cb Callbacks, opts Options) *Listener {
	return &Listener{src: src, cb: cb, opts: opts, run: listener.New("mouse", opts.Logger)}
}

// Run listens until ctx is done, Stop is called or a callback stops the
// listener.
func (l *Listener) Run(ctx context.Context) error {
	if err := l.Start(ctx); err != nil {
		return err
	}
	return l.Wait()
}

// Start begins listening in a new goroutine.
func (l *Listener) Start(ctx context.Context) error {
	var sup Suppressor
	if l.opts.Suppress {
		s, ok := l.src.(Suppressor)
		if !ok {
			return ErrSuppressUnsupported
		}
		sup = s
	}
	return l.run.Start(ctx, sup, func(ctx context.Context) error {
		return l.src.Listen(ctx, l)
	})
}

// Move implements Handler.
func (l *Listener) Move(x, y int, m Meta) error {
	if l.cb.OnMove == nil {
		return nil
	}
	return l.cb.OnMove(x, y, m)
}

// Click implements Handler.
func (l *Listener) Click(x, y int, b Button, pressed bool, m Meta) error {
	if l.cb.OnClick == nil {
		return nil
	}
	return l.cb.OnClick(x, y, b, pressed, m)
}

// Scroll implements Handler.
func (l *Listener) Scroll(x, y, dx, dy int, m Meta) error {
	if l.cb.OnScroll == nil {
		return nil
	}
	return l.cb.OnScroll(x, y, dx, dy, m)
}

// Stop asks the listener to stop without waiting.
func (l *Listener) Stop() { l.run.Stop() }

// Wait blocks until the listener has stopped and returns the error that
// stopped it, if any.
func (l *Listener) Wait() error { return l.run.Wait() }

// Running reports whether the listener is active.
func (l *Listener) Running() bool { return l.run.Running() }

// HandleButton reports a raw button transition, turning presses of scroll
// buttons into scroll events and dropping their releases.
func HandleButton(h Handler, x, y int, b Button, pressed bool, m Meta) error {
	if dx, dy, ok := ScrollDelta(b); ok {
		if !pressed {
			return nil
		}
		return h.Scroll(x, y, dx, dy, m)
	}
	return h.Click(x, y, b, pressed, m)
}
