//go:build windows

package winapi

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	// instanceMutexName identifies a running instance system-wide.
	instanceMutexName = "344635E9-9AE4-4E60-B128-D53E25AB70A7"

	bridgeWindowClass  = "TranslucentTB_Bridge"
	newInstanceMsgName = "TranslucentTB_NewInstance"
)

// IsSingleInstance reports whether this process holds the instance
// mutex. The handle is deliberately kept for the process lifetime.
func IsSingleInstance() bool {
	name, err := windows.UTF16PtrFromString(instanceMutexName)
	if err != nil {
		return true
	}
	_, err = windows.CreateMutex(nil, false, name)
	return err != windows.ERROR_ALREADY_EXISTS
}

// NotifyExistingInstance asks an already-running instance to exit so
// this one can take over. Returns false when none was found.
func NotifyExistingInstance() bool {
	className, err := windows.UTF16PtrFromString(bridgeWindowClass)
	if err != nil {
		return false
	}
	hwnd, _, _ := procFindWindowW.Call(uintptr(unsafe.Pointer(className)), 0)
	if hwnd == 0 {
		return false
	}
	ret, _, _ := procSendNotifyMessageW.Call(hwnd, registerNewInstanceMessage(), 0, 0)
	return ret != 0
}

func registerNewInstanceMessage() uintptr {
	name, err := windows.UTF16PtrFromString(newInstanceMsgName)
	if err != nil {
		return 0
	}
	message, _, _ := procRegisterWindowMessageW.Call(uintptr(unsafe.Pointer(name)))
	return message
}
