package evcodes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/pinput/backend/internal/evcodes"
	"github.com/Alia5/pinput/keyboard"
	"github.com/Alia5/pinput/mouse"
)

func TestCharCode(t *testing.T) {
	tests := []struct {
		char  rune
		code  int
		shift bool
		ok    bool
	}{
		{char: 'a', code: evcodes.KeyA},
		{char: 'A', code: evcodes.KeyA, shift: true},
		{char: '1', code: evcodes.Key1},
		{char: '!', code: evcodes.Key1, shift: true},
		{char: '\n', code: evcodes.KeyEnter},
		{char: '?', code: evcodes.KeySlash, shift: true},
		{char: 'é'},
	}
	for _, tt := range tests {
		t.Run(string(tt.char), func(t *testing.T) {
			code, shift, ok := evcodes.CharCode(tt.char)
			if tt.code == 0 {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.shift, shift)
		})
	}
}

func TestKeyCodeChar(t *testing.T) {
	r, ok := evcodes.KeyCodeChar(evcodes.KeyA, false)
	assert.True(t, ok)
	assert.Equal(t, 'a', r)

	r, ok = evcodes.KeyCodeChar(evcodes.KeyA, true)
	assert.True(t, ok)
	assert.Equal(t, 'A', r)

	r, ok = evcodes.KeyCodeChar(evcodes.KeySemicolon, true)
	assert.True(t, ok)
	assert.Equal(t, ':', r)

	_, ok = evcodes.KeyCodeChar(evcodes.KeyEnter, false)
	assert.False(t, ok, "enter is a named key")
	_, ok = evcodes.KeyCodeChar(evcodes.KeyLeftShift, false)
	assert.False(t, ok)
}

func TestLayout(t *testing.T) {
	l := evcodes.Layout()
	c, ok := l.Code(keyboard.KeyShiftR)
	assert.True(t, ok)
	assert.Equal(t, keyboard.FromVK(evcodes.KeyRightShift), c)

	mod, ok := l.AsModifier(keyboard.FromVK(evcodes.KeyRightAlt))
	assert.True(t, ok)
	assert.Equal(t, keyboard.KeyAltGr, mod)

	for _, k := range keyboard.AllKeys() {
		_, ok := l.Code(k)
		assert.True(t, ok, "%v has no event code", k)
	}
}

func TestButtonMap(t *testing.T) {
	m := evcodes.ButtonMap()
	c, ok := m.Code(mouse.ButtonLeft)
	assert.True(t, ok)
	assert.Equal(t, evcodes.BtnLeft, c)
	assert.Equal(t, mouse.ButtonMiddle, m.Button(evcodes.BtnMiddle))
	_, ok = m.Code(mouse.ButtonScrollUp)
	assert.False(t, ok)
}
