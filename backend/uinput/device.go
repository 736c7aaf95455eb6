//go:build linux

package uinput

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/Alia5/pinput/backend/internal/evcodes"
)

// ioctl requests from linux/uinput.h
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetRelBit  = 0x40045566
)

const (
	busVirtual = 0x06
	absCnt     = 64
	nameSize   = 80
)

// userDev mirrors struct uinput_user_dev.
type userDev struct {
	Name       [nameSize]byte
	Bustype    uint16
	Vendor     uint16
	Product    uint16
	Version    uint16
	EffectsMax uint32
	Absmax     [absCnt]int32
	Absmin     [absCnt]int32
	Absfuzz    [absCnt]int32
	Absflat    [absCnt]int32
}

// inputEvent mirrors struct input_event on 64-bit platforms.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// device is a virtual uinput device advertising every key, the mouse
// buttons and the relative axes.
type device struct {
	f *os.File
}

func createDevice(path string) (*device, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d := &device{f: f}
	if err := d.setup(); err != nil {
		f.Close()
		return nil, err
	}
	return d, nil
}

func (d *device) ioctl(req uint, value int) error {
	if err := unix.IoctlSetInt(int(d.f.Fd()), req, value); err != nil {
		return fmt.Errorf("ioctl %#x: %w", req, err)
	}
	return nil
}

func (d *device) setup() error {
	for _, ev := range []int{evcodes.EvSyn, evcodes.EvKey, evcodes.EvRel} {
		if err := d.ioctl(uiSetEvBit, ev); err != nil {
			return err
		}
	}
	for code := 1; code <= evcodes.KeyMax; code++ {
		if err := d.ioctl(uiSetKeyBit, code); err != nil {
			return err
		}
	}
	for _, rel := range []int{evcodes.RelX, evcodes.RelY, evcodes.RelWheel, evcodes.RelHWheel} {
		if err := d.ioctl(uiSetRelBit, rel); err != nil {
			return err
		}
	}

	dev := userDev{Bustype: busVirtual, Vendor: 0x1209, Product: 0x0001, Version: 1}
	copy(dev.Name[:], evcodes.VirtualDeviceName)
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.NativeEndian, &dev); err != nil {
		return err
	}
	if _, err := d.f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write device description: %w", err)
	}
	return d.ioctl(uiDevCreate, 0)
}

// emit writes the events followed by a SYN_REPORT.
func (d *device) emit(events ...inputEvent) error {
	now := time.Now()
	events = append(events, inputEvent{Type: evcodes.EvSyn, Code: evcodes.SynReport})
	var buf bytes.Buffer
	for _, ev := range events {
		ev.Sec = now.Unix()
		ev.Usec = int64(now.Nanosecond() / 1000)
		if err := binary.Write(&buf, binary.NativeEndian, &ev); err != nil {
			return err
		}
	}
	if _, err := d.f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write events: %w", err)
	}
	return nil
}

func (d *device) close() error {
	err := d.ioctl(uiDevDestroy, 0)
	if cerr := d.f.Close(); err == nil {
		err = cerr
	}
	return err
}

func keyEvent(code int, press bool) inputEvent {
	v := int32(0)
	if press {
		v = 1
	}
	return inputEvent{Type: evcodes.EvKey, Code: uint16(code), Value: v}
}

func relEvent(axis int, v int) inputEvent {
	return inputEvent{Type: evcodes.EvRel, Code: uint16(axis), Value: int32(v)}
}
