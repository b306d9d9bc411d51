//go:build windows

package screen

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	smCxScreen = 0
	smCyScreen = 1
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetWindowRect    = user32.NewProc("GetWindowRect")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
)

type winRect struct {
	Left, Top, Right, Bottom int32
}

type systemInspector struct{}

// NewSystemInspector returns an inspector backed by user32.
func NewSystemInspector() Inspector {
	return systemInspector{}
}

func (systemInspector) ActiveWindowBounds() (Rect, bool, error) {
	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return Rect{}, false, nil
	}

	var r winRect
	ret, _, err := procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return Rect{}, false, fmt.Errorf("GetWindowRect: %w", err)
	}

	return Rect{
		X:      int(r.Left),
		Y:      int(r.Top),
		Width:  int(r.Right - r.Left),
		Height: int(r.Bottom - r.Top),
	}, true, nil
}

func (systemInspector) ScreenBounds() (Rect, error) {
	if err := procGetSystemMetrics.Find(); err != nil {
		return Rect{}, fmt.Errorf("GetSystemMetrics: %w", err)
	}
	w, _, _ := procGetSystemMetrics.Call(smCxScreen)
	h, _, _ := procGetSystemMetrics.Call(smCyScreen)
	if w == 0 || h == 0 {
		return Rect{}, fmt.Errorf("GetSystemMetrics returned an empty screen")
	}
	return Rect{Width: int(w), Height: int(h)}, nil
}
