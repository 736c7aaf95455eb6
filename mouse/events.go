package mouse

import (
	"context"
	"iter"

	"github.com/Alia5/pinput/internal/eventqueue"
)

// ErrClosed is returned by Events.Next after Close once all queued events
// have been delivered.
var ErrClosed = eventqueue.ErrClosed

// Event is a MoveEvent, ClickEvent or ScrollEvent.
type Event interface {
	event()
}

// MoveEvent records pointer motion.
type MoveEvent struct {
	X, Y int
	Meta
}

// ClickEvent records a button press or release.
type ClickEvent struct {
	X, Y    int
	Button  Button
	Pressed bool
	Meta
}

// ScrollEvent records scrolling by DX horizontal and DY vertical steps.
type ScrollEvent struct {
	X, Y   int
	DX, DY int
	Meta
}

func (MoveEvent) event()   {}
func (ClickEvent) event()  {}
func (ScrollEvent) event() {}

// Events is a mouse listener that queues events for synchronous
// consumption in delivery order.
type Events struct {
	*Listener
	queue *eventqueue.Queue[Event]
}

// NewEvents returns an Events for src. Call Start to begin listening. An
// Events covers a single listening session: once the listener stops, the
// queue is closed and Start returns ErrClosed.
func NewEvents(src Source, opts Options) *Events {
	e := &Events{queue: eventqueue.New[Event]()}
	e.Listener = NewListener(src, Callbacks{
		OnMove: func(x, y int, m Meta) error {
			e.queue.Push(MoveEvent{X: x, Y: y, Meta: m})
			return nil
		},
		OnClick: func(x, y int, b Button, pressed bool, m Meta) error {
			e.queue.Push(ClickEvent{X: x, Y: y, Button: b, Pressed: pressed, Meta: m})
			return nil
		},
		OnScroll: func(x, y, dx, dy int, m Meta) error {
			e.queue.Push(ScrollEvent{X: x, Y: y, DX: dx, DY: dy, Meta: m})
			return nil
		},
	}, opts)
	e.Listener.run.AfterStop = e.queue.Close
	return e
}

// Start begins listening in a new goroutine. It returns ErrClosed once the
// events have been closed.
func (e *Events) Start(ctx context.Context) error {
	if e.queue.Closed() {
		return ErrClosed
	}
	return e.Listener.Start(ctx)
}

// Run listens until ctx is done, Stop is called or the events are closed.
func (e *Events) Run(ctx context.Context) error {
	if err := e.Start(ctx); err != nil {
		return err
	}
	return e.Listener.Wait()
}

// Next blocks until the next event, ctx is done or the events are closed.
func (e *Events) Next(ctx context.Context) (Event, error) {
	return e.queue.Pop(ctx)
}

// All iterates over events until ctx is done or the events are closed.
func (e *Events) All(ctx context.Context) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for {
			ev, err := e.Next(ctx)
			if err != nil || !yield(ev) {
				return
			}
		}
	}
}

// Close stops the listener and unblocks pending Next calls.
func (e *Events) Close() error {
	e.Listener.Stop()
	err := e.Listener.Wait()
	e.queue.Close()
	return err
}
