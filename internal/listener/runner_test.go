package listener_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/pinput/internal/listener"
)

type fakeSuppressor struct {
	active   atomic.Bool
	startErr error
	stopErr  error
}

func (s *fakeSuppressor) SuppressStart() error {
	if s.startErr != nil {
		return s.startErr
	}
	s.active.Store(true)
	return nil
}

func (s *fakeSuppressor) SuppressStop() error {
	s.active.Store(false)
	return s.stopErr
}

func blockUntilDone(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRunnerResult(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		listen  func(context.Context) error
		wantErr error
	}{
		{
			name:   "returns nil",
			listen: func(context.Context) error { return nil },
		},
		{
			name:   "stop sentinel",
			listen: func(context.Context) error { return listener.ErrStop },
		},
		{
			name:   "wrapped stop sentinel",
			listen: func(context.Context) error { return errors.Join(listener.ErrStop) },
		},
		{
			name:    "listen error",
			listen:  func(context.Context) error { return boom },
			wantErr: boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := listener.New("test", nil)
			require.NoError(t, r.Start(context.Background(), nil, tt.listen))

			err := r.Wait()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.False(t, r.Running())
		})
	}
}

func TestRunnerStartStop(t *testing.T) {
	r := listener.New("test", nil)
	assert.NoError(t, r.Wait())
	r.Stop()

	var stops atomic.Int32
	r.AfterStop = func() { stops.Add(1) }

	require.NoError(t, r.Start(context.Background(), nil, blockUntilDone))
	assert.True(t, r.Running())
	assert.ErrorIs(t, r.Start(context.Background(), nil, blockUntilDone), listener.ErrRunning)

	r.Stop()
	assert.NoError(t, r.Wait())
	assert.False(t, r.Running())
	assert.Equal(t, int32(1), stops.Load())

	// Restart after a stop.
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, r.Start(ctx, nil, blockUntilDone))
	cancel()
	assert.NoError(t, r.Wait())
	assert.Equal(t, int32(2), stops.Load())
}

func TestRunnerSuppression(t *testing.T) {
	boom := errors.New("boom")

	t.Run("active while listening", func(t *testing.T) {
		sup := &fakeSuppressor{}
		r := listener.New("test", nil)
		var during bool
		require.NoError(t, r.Start(context.Background(), sup, func(context.Context) error {
			during = sup.active.Load()
			return nil
		}))
		require.NoError(t, r.Wait())
		assert.True(t, during)
		assert.False(t, sup.active.Load())
	})

	t.Run("start failure", func(t *testing.T) {
		sup := &fakeSuppressor{startErr: boom}
		r := listener.New("test", nil)
		var called bool
		require.NoError(t, r.Start(context.Background(), sup, func(context.Context) error {
			called = true
			return nil
		}))
		assert.ErrorIs(t, r.Wait(), boom)
		assert.False(t, called)
	})

	t.Run("stop failure", func(t *testing.T) {
		sup := &fakeSuppressor{stopErr: boom}
		r := listener.New("test", nil)
		require.NoError(t, r.Start(context.Background(), sup, func(context.Context) error { return nil }))
		assert.ErrorIs(t, r.Wait(), boom)
	})
}
