//go:build linux

package uinput

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/pinput/backend/internal/evcodes"
	"github.com/Alia5/pinput/keyboard"
)

func TestKeyEventsShift(t *testing.T) {
	upperA := []inputEvent{
		keyEvent(evcodes.KeyLeftShift, true),
		keyEvent(evcodes.KeyA, true),
		keyEvent(evcodes.KeyLeftShift, false),
	}
	bareA := []inputEvent{keyEvent(evcodes.KeyA, true)}

	tests := []struct {
		name string
		held []int
		want []inputEvent
	}{
		{name: "no shift held", want: upperA},
		{name: "left shift held", held: []int{evcodes.KeyLeftShift}, want: bareA},
		{name: "right shift held", held: []int{evcodes.KeyRightShift}, want: bareA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Backend{}
			for _, vk := range tt.held {
				b.trackShift(keyboard.FromVK(vk), true)
			}
			got, err := b.keyEvents(keyboard.FromChar('A'), true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyEventsShiftReleased(t *testing.T) {
	b := &Backend{}
	b.trackShift(keyboard.FromVK(evcodes.KeyLeftShift), true)
	b.trackShift(keyboard.FromChar('A'), true)
	b.trackShift(keyboard.FromVK(evcodes.KeyLeftShift), false)

	got, err := b.keyEvents(keyboard.FromChar('A'), true)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = b.keyEvents(keyboard.FromChar('A'), false)
	require.NoError(t, err)
	assert.Equal(t, []inputEvent{keyEvent(evcodes.KeyA, false)}, got)
}

func TestKeyEventsInvalid(t *testing.T) {
	b := &Backend{}
	tests := []struct {
		name string
		code keyboard.KeyCode
	}{
		{name: "virtual code out of range", code: keyboard.FromVK(evcodes.KeyMax + 1)},
		{name: "unmapped character", code: keyboard.FromChar('€')},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.keyEvents(tt.code, true)
			var invalid *keyboard.InvalidKeyError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}
