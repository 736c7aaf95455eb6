package backend_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/pinput/backend"
	"github.com/Alia5/pinput/backend/dummy"
)

type fakeRegistration struct {
	priority int
	caps     backend.Capability
	err      error
}

func (f fakeRegistration) Open(o backend.Options) (backend.Backend, error) {
	if f.err != nil {
		return nil, f.err
	}
	return dummy.New(), nil
}

func (f fakeRegistration) Priority() int                    { return f.priority }
func (f fakeRegistration) Capabilities() backend.Capability { return f.caps }

func init() {
	backend.Register("Test-Inject", fakeRegistration{priority: 1000, caps: backend.CanInject})
	backend.Register("test-listen", fakeRegistration{priority: 900, caps: backend.CanListen})
	backend.Register("test-broken", fakeRegistration{priority: -1, caps: backend.CanInject, err: errors.New("no display")})
}

func TestRegistry(t *testing.T) {
	assert.NotNil(t, backend.Get("test-inject"), "names are case-insensitive")
	assert.NotNil(t, backend.Get("dummy"))
	assert.Nil(t, backend.Get("nope"))

	names := backend.List()
	require.GreaterOrEqual(t, len(names), 4)
	assert.Equal(t, []string{"test-inject", "test-listen"}, names[:2])
	assert.Equal(t, "test-broken", names[len(names)-1])
}

func TestDefault(t *testing.T) {
	tests := []struct {
		name string
		caps backend.Capability
		want string
	}{
		{name: "inject", caps: backend.CanInject, want: "test-inject"},
		{name: "listen", caps: backend.CanListen, want: "test-listen"},
		{name: "both", caps: backend.CanInject | backend.CanListen, want: "dummy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, backend.Default(tt.caps))
		})
	}
}

func TestOpen(t *testing.T) {
	b, err := backend.Open("", backend.CanInject|backend.CanListen, backend.Options{})
	require.NoError(t, err)
	assert.Equal(t, "dummy", b.Name())
	assert.NoError(t, b.Close())

	_, err = backend.Open("nope", backend.CanInject, backend.Options{})
	assert.ErrorContains(t, err, `unknown backend "nope"`)

	_, err = backend.Open("test-broken", backend.CanInject, backend.Options{})
	assert.ErrorContains(t, err, "open backend test-broken: no display")
}

func TestUnsupported(t *testing.T) {
	err := backend.Unsupported("xorg", "keyboard source")
	assert.ErrorIs(t, err, backend.ErrUnsupported)
	assert.EqualError(t, err, "xorg: keyboard source: unsupported operation")
}
