package keyboard

import "fmt"

// GlobalHotKeys is a listener activating a set of hotkeys.
type GlobalHotKeys struct {
	*Listener
	hotkeys []*HotKey
}

// NewGlobalHotKeys parses every combination in hotkeys (see ParseHotKey)
// against the layout of src and returns a listener firing the mapped
// callbacks. Combinations are canonicalised like observed keys, so
// `<ctrl_l>` matches either control key. Callbacks run on the listener
// goroutine.
func NewGlobalHotKeys(src Source, hotkeys map[string]func(), opts Options) (*GlobalHotKeys, error) {
	g := &GlobalHotKeys{}
	layout := src.Layout()
	for combo, fn := range hotkeys {
		keys, err := ParseHotKey(combo, layout)
		if err != nil {
			return nil, fmt.Errorf("parse hotkey %q: %w", combo, err)
		}
		for i, k := range keys {
			keys[i] = layout.Canonical(k)
		}
		g.hotkeys = append(g.hotkeys, NewHotKey(keys, fn))
	}
	g.Listener = NewListener(src, Callbacks{
		OnPress:   g.onPress,
		OnRelease: g.onRelease,
	}, opts)
	return g, nil
}

func (g *GlobalHotKeys) onPress(key Input, _ Meta) error {
	key = g.Canonical(key)
	for _, h := range g.hotkeys {
		h.Press(key)
	}
	return nil
}

func (g *GlobalHotKeys) onRelease(key Input, _ Meta) error {
	key = g.Canonical(key)
	for _, h := range g.hotkeys {
		h.Release(key)
	}
	return nil
}
