package mouse

import "fmt"

// Button identifies a mouse button. The integer code of each button is
// platform specific and supplied by the backend through a ButtonMap.
type Button int

const (
	ButtonUnknown Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonScrollUp
	ButtonScrollDown
	ButtonScrollLeft
	ButtonScrollRight
	Button8
	Button9
	Button10
	Button11
	Button12
	Button13
	Button14
	Button15
	Button16
	Button17
	Button18
	Button19
	Button20
	Button21
	Button22
	Button23
	Button24
	Button25
	Button26
	Button27
	Button28
	Button29
	Button30
)

var buttonNames = map[Button]string{
	ButtonUnknown:     "unknown",
	ButtonLeft:        "left",
	ButtonMiddle:      "middle",
	ButtonRight:       "right",
	ButtonScrollUp:    "scroll_up",
	ButtonScrollDown:  "scroll_down",
	ButtonScrollLeft:  "scroll_left",
	ButtonScrollRight: "scroll_right",
}

func (b Button) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	if b >= Button8 && b <= Button30 {
		return fmt.Sprintf("button%d", int(b))
	}
	return "unknown"
}

// ButtonByName looks up a button by name, e.g. "left" or "button9".
func ButtonByName(name string) (Button, bool) {
	for b, n := range buttonNames {
		if n == name && b != ButtonUnknown {
			return b, true
		}
	}
	for b := Button8; b <= Button30; b++ {
		if b.String() == name {
			return b, true
		}
	}
	return ButtonUnknown, false
}

// ButtonMap maps buttons to backend button codes.
type ButtonMap struct {
	codes   map[Button]int
	buttons map[int]Button
}

// NewButtonMap builds a map from a button table.
func NewButtonMap(codes map[Button]int) ButtonMap {
	m := ButtonMap{
		codes:   make(map[Button]int, len(codes)),
		buttons: make(map[int]Button, len(codes)),
	}
	for b, c := range codes {
		m.codes[b] = c
		m.buttons[c] = b
	}
	return m
}

// DefaultButtonMap numbers buttons the X11 way: left is 1, scroll up is 4
// and button8 to button30 keep their number.
func DefaultButtonMap() ButtonMap {
	codes := make(map[Button]int)
	for b := ButtonLeft; b <= Button30; b++ {
		codes[b] = int(b)
	}
	return NewButtonMap(codes)
}

// Code returns the backend code of b.
func (m ButtonMap) Code(b Button) (int, bool) {
	c, ok := m.codes[b]
	return c, ok
}

// Button returns the button for a backend code, or ButtonUnknown.
func (m ButtonMap) Button(code int) Button {
	if b, ok := m.buttons[code]; ok {
		return b
	}
	return ButtonUnknown
}

// ScrollDelta returns the scroll step a scroll button stands for.
func ScrollDelta(b Button) (dx, dy int, ok bool) {
	switch b {
	case ButtonScrollUp:
		return 0, 1, true
	case ButtonScrollDown:
		return 0, -1, true
	case ButtonScrollRight:
		return 1, 0, true
	case ButtonScrollLeft:
		return -1, 0, true
	default:
		return 0, 0, false
	}
}
