//go:build linux

package xorg

import (
	"sync"

	"github.com/Alia5/pinput/keyboard"
)

// X11 keysyms (X11/keysymdef.h, X11/XF86keysym.h)
const (
	xkBackSpace   = 0xff08
	xkTab         = 0xff09
	xkReturn      = 0xff0d
	xkPause       = 0xff13
	xkScrollLock  = 0xff14
	xkEscape      = 0xff1b
	xkHome        = 0xff50
	xkLeft        = 0xff51
	xkUp          = 0xff52
	xkRight       = 0xff53
	xkDown        = 0xff54
	xkPrior       = 0xff55
	xkNext        = 0xff56
	xkEnd         = 0xff57
	xkPrint       = 0xff61
	xkInsert      = 0xff63
	xkMenu        = 0xff67
	xkModeSwitch  = 0xff7e
	xkNumLock     = 0xff7f
	xkF1          = 0xffbe // F1-F35 are contiguous
	xkShiftL      = 0xffe1
	xkShiftR      = 0xffe2
	xkControlL    = 0xffe3
	xkControlR    = 0xffe4
	xkCapsLock    = 0xffe5
	xkAltL        = 0xffe9
	xkAltR        = 0xffea
	xkSuperL      = 0xffeb
	xkSuperR      = 0xffec
	xkDelete      = 0xffff
	xkSpace       = 0x0020
	xkDeadGrave   = 0xfe50
	xkDeadAcute   = 0xfe51
	xkDeadCircum  = 0xfe52
	xkDeadTilde   = 0xfe53
	xkDeadDiaer   = 0xfe57
	xkAudioLower  = 0x1008ff11
	xkAudioMute   = 0x1008ff12
	xkAudioRaise  = 0x1008ff13
	xkAudioPlay   = 0x1008ff14
	xkAudioPrev   = 0x1008ff16
	xkAudioNext   = 0x1008ff17
	unicodeOffset = 0x01000000
)

var deadKeysyms = map[rune]uint32{
	'`':      xkDeadGrave,
	'´': xkDeadAcute,
	'^':      xkDeadCircum,
	'~':      xkDeadTilde,
	'¨': xkDeadDiaer,
}

// Layout returns the X11 key layout; virtual key codes are keysyms.
var Layout = sync.OnceValue(func() *keyboard.Layout {
	syms := map[keyboard.Key]int{
		keyboard.KeyAlt:             xkAltL,
		keyboard.KeyAltL:            xkAltL,
		keyboard.KeyAltR:            xkAltR,
		keyboard.KeyAltGr:           xkModeSwitch,
		keyboard.KeyBackspace:       xkBackSpace,
		keyboard.KeyCapsLock:        xkCapsLock,
		keyboard.KeyCmd:             xkSuperL,
		keyboard.KeyCmdL:            xkSuperL,
		keyboard.KeyCmdR:            xkSuperR,
		keyboard.KeyCtrl:            xkControlL,
		keyboard.KeyCtrlL:           xkControlL,
		keyboard.KeyCtrlR:           xkControlR,
		keyboard.KeyDelete:          xkDelete,
		keyboard.KeyDown:            xkDown,
		keyboard.KeyEnd:             xkEnd,
		keyboard.KeyEnter:           xkReturn,
		keyboard.KeyEsc:             xkEscape,
		keyboard.KeyHome:            xkHome,
		keyboard.KeyLeft:            xkLeft,
		keyboard.KeyPageDown:        xkNext,
		keyboard.KeyPageUp:          xkPrior,
		keyboard.KeyRight:           xkRight,
		keyboard.KeyShift:           xkShiftL,
		keyboard.KeyShiftL:          xkShiftL,
		keyboard.KeyShiftR:          xkShiftR,
		keyboard.KeySpace:           xkSpace,
		keyboard.KeyTab:             xkTab,
		keyboard.KeyUp:              xkUp,
		keyboard.KeyMediaPlayPause:  xkAudioPlay,
		keyboard.KeyMediaVolumeMute: xkAudioMute,
		keyboard.KeyMediaVolumeDown: xkAudioLower,
		keyboard.KeyMediaVolumeUp:   xkAudioRaise,
		keyboard.KeyMediaPrevious:   xkAudioPrev,
		keyboard.KeyMediaNext:       xkAudioNext,
		keyboard.KeyInsert:          xkInsert,
		keyboard.KeyMenu:            xkMenu,
		keyboard.KeyNumLock:         xkNumLock,
		keyboard.KeyPause:           xkPause,
		keyboard.KeyPrintScreen:     xkPrint,
		keyboard.KeyScrollLock:      xkScrollLock,
	}
	for i := 0; i < 20; i++ {
		syms[keyboard.KeyF1+keyboard.Key(i)] = xkF1 + i
	}

	m := make(map[keyboard.Key]keyboard.KeyCode, len(syms))
	for k, s := range syms {
		m[k] = keyboard.FromVK(s)
	}
	return keyboard.NewLayout(m)
})

// charKeysym returns the keysym typing r. Latin-1 characters are their own
// keysym; everything else lives in the Unicode keysym range.
func charKeysym(r rune) uint32 {
	if (r >= 0x20 && r <= 0x7e) || (r >= 0xa0 && r <= 0xff) {
		return uint32(r)
	}
	return unicodeOffset | uint32(r)
}

// keysymOf returns the keysym for a key code.
func keysymOf(code keyboard.KeyCode) (uint32, bool) {
	if vk, ok := code.VK(); ok {
		return uint32(vk), true
	}
	r, ok := code.Char()
	if !ok {
		return 0, false
	}
	if code.IsDead() {
		if sym, ok := deadKeysyms[r]; ok {
			return sym, true
		}
	}
	return charKeysym(r), true
}
