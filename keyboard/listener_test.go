package keyboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/pinput/backend/dummy"
	"github.com/Alia5/pinput/keyboard"
)

// plainSource is a source that cannot suppress events.
type plainSource struct{}

func (plainSource) Layout() *keyboard.Layout { return dummy.Layout() }

func (plainSource) Listen(ctx context.Context, h keyboard.Handler) error {
	<-ctx.Done()
	return nil
}

func keyboardSource(t *testing.T) (keyboard.Source, *dummy.Backend) {
	t.Helper()
	be := dummy.New()
	src, err := be.KeyboardSource()
	require.NoError(t, err)
	return src, be
}

func nextEvent(t *testing.T, e *keyboard.Events) keyboard.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ev, err := e.Next(ctx)
	require.NoError(t, err)
	return ev
}

func TestEventsOrder(t *testing.T) {
	src, be := keyboardSource(t)
	events := keyboard.NewEvents(src, keyboard.Options{})
	require.NoError(t, events.Start(context.Background()))

	be.PressKey(keyboard.KeyShiftL)
	be.PressKey(keyboard.FromChar('A'))
	be.ReleaseKey(keyboard.FromChar('A'))
	be.ReleaseKey(keyboard.KeyShiftL)

	want := []keyboard.Event{
		keyboard.PressEvent{Key: keyboard.KeyShiftL, Meta: keyboard.Meta{Timestamp: 1}},
		keyboard.PressEvent{Key: keyboard.FromChar('A'), Meta: keyboard.Meta{Timestamp: 2}},
		keyboard.ReleaseEvent{Key: keyboard.FromChar('A'), Meta: keyboard.Meta{Timestamp: 3}},
		keyboard.ReleaseEvent{Key: keyboard.KeyShiftL, Meta: keyboard.Meta{Timestamp: 4}},
	}
	for _, w := range want {
		assert.Equal(t, w, nextEvent(t, events))
	}

	require.NoError(t, events.Close())
	_, err := events.Next(context.Background())
	assert.ErrorIs(t, err, keyboard.ErrClosed)
}

func TestEventsAll(t *testing.T) {
	src, be := keyboardSource(t)
	events := keyboard.NewEvents(src, keyboard.Options{})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, events.Start(ctx))

	for _, r := range "abc" {
		be.PressKey(keyboard.FromChar(r))
	}

	var got []keyboard.Input
	for ev := range events.All(ctx) {
		got = append(got, ev.(keyboard.PressEvent).Key)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []keyboard.Input{keyboard.FromChar('a'), keyboard.FromChar('b'), keyboard.FromChar('c')}, got)
	assert.NoError(t, events.Close())
}

func TestEventsSingleSession(t *testing.T) {
	tests := []struct {
		name string
		stop func(*testing.T, *keyboard.Events, context.CancelFunc)
	}{
		{
			name: "closed",
			stop: func(t *testing.T, e *keyboard.Events, _ context.CancelFunc) { require.NoError(t, e.Close()) },
		},
		{
			name: "context cancelled",
			stop: func(t *testing.T, e *keyboard.Events, cancel context.CancelFunc) {
				cancel()
				require.NoError(t, e.Wait())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, _ := keyboardSource(t)
			events := keyboard.NewEvents(src, keyboard.Options{})
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			require.NoError(t, events.Start(ctx))

			tt.stop(t, events, cancel)

			assert.ErrorIs(t, events.Start(context.Background()), keyboard.ErrClosed)
			assert.ErrorIs(t, events.Run(context.Background()), keyboard.ErrClosed)
			assert.False(t, events.Running())
			_, err := events.Next(context.Background())
			assert.ErrorIs(t, err, keyboard.ErrClosed)
		})
	}
}

func TestEventsInjected(t *testing.T) {
	src, be := keyboardSource(t)
	events := keyboard.NewEvents(src, keyboard.Options{})
	require.NoError(t, events.Start(context.Background()))
	defer events.Close()
	require.Eventually(t, func() bool {
		k, _ := be.Listeners()
		return k == 1
	}, 2*time.Second, 5*time.Millisecond)

	inj, err := be.KeyboardInjector()
	require.NoError(t, err)
	ctrl := keyboard.NewController(inj, nil)
	require.NoError(t, ctrl.Press(keyboard.KeyEnter))

	ev := nextEvent(t, events)
	press, ok := ev.(keyboard.PressEvent)
	require.True(t, ok)
	assert.Equal(t, keyboard.KeyEnter, press.Key)
	assert.True(t, press.Injected)
}

func TestListenerCallbacks(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		onPress func(keyboard.Input, keyboard.Meta) error
		wantErr error
	}{
		{
			name:    "stop listener",
			onPress: func(keyboard.Input, keyboard.Meta) error { return keyboard.ErrStopListener },
		},
		{
			name:    "callback error",
			onPress: func(keyboard.Input, keyboard.Meta) error { return boom },
			wantErr: boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, be := keyboardSource(t)
			l := keyboard.NewListener(src, keyboard.Callbacks{OnPress: tt.onPress}, keyboard.Options{})
			require.NoError(t, l.Start(context.Background()))

			be.ReleaseKey(keyboard.FromChar('x'))
			be.PressKey(keyboard.FromChar('x'))

			err := l.Wait()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.False(t, l.Running())
		})
	}
}

func TestListenerStartTwice(t *testing.T) {
	src, _ := keyboardSource(t)
	l := keyboard.NewListener(src, keyboard.Callbacks{}, keyboard.Options{})
	require.NoError(t, l.Start(context.Background()))
	assert.ErrorIs(t, l.Start(context.Background()), keyboard.ErrListenerRunning)
	l.Stop()
	assert.NoError(t, l.Wait())

	// A stopped listener may be started again.
	require.NoError(t, l.Start(context.Background()))
	l.Stop()
	assert.NoError(t, l.Wait())
}

func TestListenerSuppress(t *testing.T) {
	src, be := keyboardSource(t)
	l := keyboard.NewListener(src, keyboard.Callbacks{}, keyboard.Options{Suppress: true})
	require.NoError(t, l.Start(context.Background()))
	require.Eventually(t, be.Suppressing, 2*time.Second, 5*time.Millisecond)

	l.Stop()
	require.NoError(t, l.Wait())
	assert.False(t, be.Suppressing())

	l = keyboard.NewListener(plainSource{}, keyboard.Callbacks{}, keyboard.Options{Suppress: true})
	assert.ErrorIs(t, l.Start(context.Background()), keyboard.ErrSuppressUnsupported)
}

func TestListenerCanonical(t *testing.T) {
	src, _ := keyboardSource(t)
	l := keyboard.NewListener(src, keyboard.Callbacks{}, keyboard.Options{})
	assert.Equal(t, keyboard.KeyShift, l.Canonical(keyboard.KeyShiftR))
	assert.Equal(t, keyboard.FromChar('q'), l.Canonical(keyboard.FromChar('Q')))
}

func TestWaitWithoutStart(t *testing.T) {
	src, _ := keyboardSource(t)
	l := keyboard.NewListener(src, keyboard.Callbacks{}, keyboard.Options{})
	assert.NoError(t, l.Wait())
	assert.False(t, l.Running())
}
