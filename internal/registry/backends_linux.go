package registry

import (
	_ "github.com/Alia5/pinput/backend/evdev"  // Register evdev listener backend
	_ "github.com/Alia5/pinput/backend/uinput" // Register uinput injector backend
	_ "github.com/Alia5/pinput/backend/xorg"   // Register X11 injector backend
)
