package keyboard

import (
	"context"
	"iter"

	"github.com/Alia5/pinput/internal/eventqueue"
)

// ErrClosed is returned by Events.Next after Close once all queued events
// have been delivered.
var ErrClosed = eventqueue.ErrClosed

// Event is a PressEvent or a ReleaseEvent.
type Event interface {
	event()
}

// PressEvent records a key press.
type PressEvent struct {
	Key Input
	Meta
}

// ReleaseEvent records a key release.
type ReleaseEvent struct {
	Key Input
	Meta
}

func (PressEvent) event()   {}
func (ReleaseEvent) event() {}

// Events is a keyboard listener that queues events for synchronous
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
		OnPress: func(key Input, m Meta) error {
			e.queue.Push(PressEvent{Key: key, Meta: m})
			return nil
		},
		OnRelease: func(key Input, m Meta) error {
			e.queue.Push(ReleaseEvent{Key: key, Meta: m})
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

// Close stops the listener and unblocks pending Next calls. It returns the
// error that stopped the listener, if any.
func (e *Events) Close() error {
	e.Listener.Stop()
	err := e.Listener.Wait()
	e.queue.Close()
	return err
}
