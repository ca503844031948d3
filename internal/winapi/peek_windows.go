//go:build windows

package winapi

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var procShowWindow = user32.NewProc("ShowWindow")

const (
	classMainTaskbar = "Shell_TrayWnd"
	classTrayNotify  = "TrayNotifyWnd"
	classPeekButton  = "TrayShowDesktopButtonWClass"

	swHide       = 0
	swShowNormal = 1
)

// SetPeekButtonVisible shows or hides the show-desktop button at the
// end of the main taskbar. A missing button (shell variants without
// one) makes this a no-op.
func (d *Desktop) SetPeekButtonVisible(show bool) {
	button := d.findPeekButton()
	if button == 0 {
		return
	}
	cmd := uintptr(swHide)
	if show {
		cmd = swShowNormal
	}
	procShowWindow.Call(button, cmd)
}

func (d *Desktop) findPeekButton() uintptr {
	taskbar := d.FindWindow(classMainTaskbar)
	if taskbar == 0 {
		return 0
	}
	notify := findChildWindow(uintptr(taskbar), classTrayNotify)
	if notify == 0 {
		return 0
	}
	return findChildWindow(notify, classPeekButton)
}

func findChildWindow(parent uintptr, class string) uintptr {
	className, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return 0
	}
	hwnd, _, _ := procFindWindowExW.Call(parent, 0, uintptr(unsafe.Pointer(className)), 0)
	return hwnd
}
