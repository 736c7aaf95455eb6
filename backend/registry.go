// Package backend selects the platform implementation behind the keyboard
// and mouse packages.
//
// Backends register themselves from init functions; importing
// internal/registry links every backend available for the target OS.
package backend

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/Alia5/pinput/keyboard"
	"github.com/Alia5/pinput/mouse"
)

// Options are passed to a backend when it is opened.
type Options struct {
	// KeyboardDevice and MouseDevice name the input devices a listening
	// backend observes. Backends that need them document their meaning.
	KeyboardDevice string
	MouseDevice    string
	Logger         *slog.Logger
}

// Backend is an opened platform implementation. Each accessor returns an
// error wrapping ErrUnsupported when the capability is missing.
type Backend interface {
	Name() string
	KeyboardInjector() (keyboard.Injector, error)
	MouseInjector() (mouse.Injector, error)
	KeyboardSource() (keyboard.Source, error)
	MouseSource() (mouse.Source, error)
	Close() error
}

// Capability is a set of features a backend offers.
type Capability uint8

const (
	// CanInject backends provide keyboard and mouse injectors.
	CanInject Capability = 1 << iota
	// CanListen backends provide keyboard and mouse sources.
	CanListen
)

// Registration describes a backend type.
type Registration interface {
	// Open connects to the platform and returns a ready backend.
	Open(o Options) (Backend, error)
	// Priority orders backends for Default; higher wins.
	Priority() int
	// Capabilities reports what an opened backend supports.
	Capabilities() Capability
}

var (
	registry   = make(map[string]Registration)
	registryMu sync.RWMutex
)

// Register registers a backend. This should be called from backend package
// init functions. The name is case-insensitive.
func Register(name string, reg Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = reg
}

// Get returns a registered backend by name, or nil.
func Get(name string) Registration {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[strings.ToLower(name)]
}

// List returns the names of all registered backends, highest priority
// first.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := registry[names[i]].Priority(), registry[names[j]].Priority()
		if pi != pj {
			return pi > pj
		}
		return names[i] < names[j]
	})
	return names
}

// Default returns the name of the highest priority backend offering caps.
func Default(caps Capability) string {
	for _, name := range List() {
		if Get(name).Capabilities()&caps == caps {
			return name
		}
	}
	return ""
}

// Open opens the named backend, or the default one offering caps if name
// is empty.
func Open(name string, caps Capability, o Options) (Backend, error) {
	if name == "" {
		name = Default(caps)
	}
	reg := Get(name)
	if reg == nil {
		return nil, fmt.Errorf("unknown backend %q (available: %s)", name, strings.Join(List(), ", "))
	}
	b, err := reg.Open(o)
	if err != nil {
		return nil, fmt.Errorf("open backend %s: %w", name, err)
	}
	return b, nil
}
