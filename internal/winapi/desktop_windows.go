//go:build windows

package winapi

import (
	"path/filepath"
	"sync"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"github.com/AbhinandAK350/TranslucentTB/internal/platform"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	dwmapi = windows.NewLazySystemDLL("dwmapi.dll")

	procEnumWindows           = user32.NewProc("EnumWindows")
	procFindWindowW           = user32.NewProc("FindWindowW")
	procFindWindowExW         = user32.NewProc("FindWindowExW")
	procGetForegroundWindow   = user32.NewProc("GetForegroundWindow")
	procIsWindowVisible       = user32.NewProc("IsWindowVisible")
	procIsZoomed              = user32.NewProc("IsZoomed")
	procGetClassNameW         = user32.NewProc("GetClassNameW")
	procGetWindowTextW        = user32.NewProc("GetWindowTextW")
	procMonitorFromWindow     = user32.NewProc("MonitorFromWindow")
	procSendNotifyMessageW    = user32.NewProc("SendNotifyMessageW")
	procDwmGetWindowAttribute = dwmapi.NewProc("DwmGetWindowAttribute")
)

const (
	monitorDefaultToNearest = 2
	dwmwaCloaked            = 14
)

// Desktop is the Win32 implementation of platform.Desktop.
type Desktop struct {
	vdm *virtualDesktopManager
}

// NewDesktop connects to the window manager. The virtual desktop
// query degrades to "always on current desktop" when the COM manager
// is unavailable (pre-1703 hosts).
func NewDesktop() *Desktop {
	return &Desktop{vdm: newVirtualDesktopManager()}
}

// Close releases the COM resources.
func (d *Desktop) Close() {
	if d.vdm != nil {
		d.vdm.release()
		d.vdm = nil
	}
}

// NewCallback allocations are process-permanent, so the enumeration
// callback is created once and the visitor is handed over through a
// package variable. EnumWindows is synchronous and the callers are
// serialized by enumMu.
var (
	enumMu       sync.Mutex
	enumVisitor  func(platform.WindowID) bool
	enumCallback = syscall.NewCallback(func(hwnd, _ uintptr) uintptr {
		if enumVisitor(platform.WindowID(hwnd)) {
			return 1
		}
		return 0
	})
)

func (d *Desktop) EnumTopLevelWindows(fn func(platform.WindowID) bool) error {
	enumMu.Lock()
	defer enumMu.Unlock()
	enumVisitor = fn
	defer func() { enumVisitor = nil }()

	ret, _, err := procEnumWindows.Call(enumCallback, 0)
	if ret == 0 {
		return err
	}
	return nil
}

func (d *Desktop) FindWindow(class string) platform.WindowID {
	className, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return platform.NullWindow
	}
	hwnd, _, _ := procFindWindowW.Call(uintptr(unsafe.Pointer(className)), 0)
	return platform.WindowID(hwnd)
}

func (d *Desktop) FindWindows(class string) []platform.WindowID {
	className, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return nil
	}
	var found []platform.WindowID
	var prev uintptr
	for {
		hwnd, _, _ := procFindWindowExW.Call(0, prev, uintptr(unsafe.Pointer(className)), 0)
		if hwnd == 0 {
			return found
		}
		found = append(found, platform.WindowID(hwnd))
		prev = hwnd
	}
}

func (d *Desktop) ForegroundWindow() platform.WindowID {
	hwnd, _, _ := procGetForegroundWindow.Call()
	return platform.WindowID(hwnd)
}

func (d *Desktop) MonitorFor(w platform.WindowID) platform.MonitorID {
	monitor, _, _ := procMonitorFromWindow.Call(uintptr(w), monitorDefaultToNearest)
	return platform.MonitorID(monitor)
}

func (d *Desktop) Visible(w platform.WindowID) bool {
	ret, _, _ := procIsWindowVisible.Call(uintptr(w))
	return ret != 0
}

func (d *Desktop) Maximized(w platform.WindowID) bool {
	ret, _, _ := procIsZoomed.Call(uintptr(w))
	return ret != 0
}

func (d *Desktop) Cloaked(w platform.WindowID) bool {
	var cloaked uint32
	ret, _, _ := procDwmGetWindowAttribute.Call(
		uintptr(w),
		dwmwaCloaked,
		uintptr(unsafe.Pointer(&cloaked)),
		unsafe.Sizeof(cloaked),
	)
	return ret == 0 && cloaked != 0
}

func (d *Desktop) OnCurrentDesktop(w platform.WindowID) bool {
	if d.vdm == nil {
		return true
	}
	return d.vdm.isOnCurrentDesktop(uintptr(w))
}

func (d *Desktop) ClassName(w platform.WindowID) string {
	var buf [256]uint16
	n, _, _ := procGetClassNameW.Call(uintptr(w), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

func (d *Desktop) Title(w platform.WindowID) string {
	var buf [512]uint16
	n, _, _ := procGetWindowTextW.Call(uintptr(w), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

func (d *Desktop) ExecutableName(w platform.WindowID) string {
	var pid uint32
	windows.GetWindowThreadProcessId(windows.HWND(w), &pid)
	if pid == 0 {
		return ""
	}

	proc, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(proc)

	var buf [windows.MAX_PATH]uint16
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(proc, 0, &buf[0], &size); err != nil {
		return ""
	}
	return filepath.Base(windows.UTF16ToString(buf[:size]))
}

func (d *Desktop) IsAtLeastBuild(build uint32) bool {
	major, _, hostBuild := windows.RtlGetNtVersionNumbers()
	return major > 10 || (major == 10 && hostBuild&0x0FFFFFFF >= build)
}

// virtualDesktopManager wraps the shell's IVirtualDesktopManager.
type virtualDesktopManager struct {
	unknown *ole.IUnknown
	vtbl    *virtualDesktopManagerVtbl
}

type virtualDesktopManagerVtbl struct {
	ole.IUnknownVtbl
	IsWindowOnCurrentVirtualDesktop uintptr
	GetWindowDesktopId              uintptr
	MoveWindowToDesktop             uintptr
}

var (
	clsidVirtualDesktopManager = ole.NewGUID("{AA509086-5CA9-4C25-8F95-589D3C07B48A}")
	iidVirtualDesktopManager   = ole.NewGUID("{A5CD92FF-29BE-454C-8D04-D82879FB3F1B}")
)

func newVirtualDesktopManager() *virtualDesktopManager {
	unknown, err := ole.CreateInstance(clsidVirtualDesktopManager, iidVirtualDesktopManager)
	if err != nil {
		return nil
	}
	return &virtualDesktopManager{
		unknown: unknown,
		vtbl:    (*virtualDesktopManagerVtbl)(unsafe.Pointer(unknown.RawVTable)),
	}
}

func (v *virtualDesktopManager) isOnCurrentDesktop(hwnd uintptr) bool {
	var onCurrent int32
	hr, _, _ := syscall.SyscallN(
		v.vtbl.IsWindowOnCurrentVirtualDesktop,
		uintptr(unsafe.Pointer(v.unknown)),
		hwnd,
		uintptr(unsafe.Pointer(&onCurrent)),
	)
	if hr != 0 {
		// Matches the cloak check's behaviour on failure: do not
		// disqualify the window.
		return true
	}
	return onCurrent != 0
}

func (v *virtualDesktopManager) release() {
	v.unknown.Release()
}
