//go:build windows

package winapi

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"github.com/AbhinandAK350/TranslucentTB/internal/engine"
)

var (
	procSetWinEventHook        = user32.NewProc("SetWinEventHook")
	procUnhookWinEvent         = user32.NewProc("UnhookWinEvent")
	procRegisterClassExW       = user32.NewProc("RegisterClassExW")
	procCreateWindowExW        = user32.NewProc("CreateWindowExW")
	procDestroyWindow          = user32.NewProc("DestroyWindow")
	procDefWindowProcW         = user32.NewProc("DefWindowProcW")
	procGetMessageW            = user32.NewProc("GetMessageW")
	procTranslateMessage       = user32.NewProc("TranslateMessage")
	procDispatchMessageW       = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW     = user32.NewProc("PostThreadMessageW")
	procRegisterWindowMessageW = user32.NewProc("RegisterWindowMessageW")
)

const (
	// Undocumented system events raised when the desktop preview
	// (peek) starts and stops.
	eventSystemPeekStart = 0x21
	eventSystemPeekEnd   = 0x22

	eventObjectCreate  = 0x8000
	eventObjectDestroy = 0x8001

	winEventOutOfContext = 0

	wmClose           = 0x0010
	wmQuit            = 0x0012
	wmQueryEndSession = 0x0011
	wmDisplayChange   = 0x007E
)

type wndClassEx struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       uintptr
	Cursor     uintptr
	Background uintptr
	MenuName   *uint16
	ClassName  *uint16
	IconSm     uintptr
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// Bridge subscribes to the OS notifications the engine consumes and
// forwards them as queued events. All callbacks run on the bridge's
// own OS thread; they never touch engine state directly.
type Bridge struct {
	post func(engine.Event)

	// OnNewInstance runs when another instance asks this one to quit.
	OnNewInstance func()

	threadID          uint32
	hwnd              uintptr
	peekHook          uintptr
	creationHook      uintptr
	taskbarCreatedMsg uintptr
	newInstanceMsg    uintptr
	appVisibility     *appVisibility

	started chan error
	done    chan struct{}
}

// activeBridge backs the process-wide Win32 callbacks. Only one
// bridge runs per process.
var activeBridge atomic.Pointer[Bridge]

// NewBridge creates a bridge posting into the engine's event queue.
func NewBridge(post func(engine.Event)) *Bridge {
	return &Bridge{
		post:    post,
		started: make(chan error, 1),
		done:    make(chan struct{}),
	}
}

// Start installs the hooks and runs the message loop on a dedicated
// locked OS thread. It returns once the subscriptions are in place.
func (b *Bridge) Start() error {
	if !activeBridge.CompareAndSwap(nil, b) {
		return fmt.Errorf("event bridge already running")
	}
	go b.run()
	return <-b.started
}

// Stop tears the subscriptions down and waits for the message loop to
// exit.
func (b *Bridge) Stop() {
	if b.threadID != 0 {
		procPostThreadMessageW.Call(uintptr(b.threadID), wmQuit, 0, 0)
	}
	<-b.done
	activeBridge.CompareAndSwap(b, nil)
}

func (b *Bridge) run() {
	// Out-of-context win-event hooks deliver through this thread's
	// message queue, so the loop must stay on one OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(b.done)

	b.threadID = windows.GetCurrentThreadId()

	// The app visibility service is created on this thread.
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err == nil {
		defer ole.CoUninitialize()
	}

	if err := b.install(); err != nil {
		activeBridge.CompareAndSwap(b, nil)
		b.started <- err
		return
	}
	b.started <- nil

	var m msg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if ret == 0 || int32(ret) == -1 {
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}

	b.uninstall()
}

func (b *Bridge) install() error {
	name, _ := windows.UTF16PtrFromString("TaskbarCreated")
	b.taskbarCreatedMsg, _, _ = procRegisterWindowMessageW.Call(uintptr(unsafe.Pointer(name)))
	b.newInstanceMsg = registerNewInstanceMessage()

	// Display-change and taskbar-created broadcasts only reach real
	// top-level windows, so the bridge owns a hidden one.
	hwnd, err := createMessageWindow()
	if err != nil {
		return err
	}
	b.hwnd = hwnd

	b.peekHook, _, _ = procSetWinEventHook.Call(
		eventSystemPeekStart, eventSystemPeekEnd,
		0, peekEventCallback, 0, 0, winEventOutOfContext,
	)
	b.creationHook, _, _ = procSetWinEventHook.Call(
		eventObjectCreate, eventObjectDestroy,
		0, creationEventCallback, 0, 0, winEventOutOfContext,
	)

	// Best-effort: absent on hosts without the shell app visibility
	// service; the start-menu layer then never triggers.
	b.appVisibility = newAppVisibility(func(opened bool) {
		if opened {
			b.post(engine.Event{Kind: engine.EventStartOpened})
		} else {
			b.post(engine.Event{Kind: engine.EventStartClosed})
		}
	})

	return nil
}

func (b *Bridge) uninstall() {
	if b.appVisibility != nil {
		b.appVisibility.close()
	}
	if b.peekHook != 0 {
		procUnhookWinEvent.Call(b.peekHook)
	}
	if b.creationHook != 0 {
		procUnhookWinEvent.Call(b.creationHook)
	}
	if b.hwnd != 0 {
		procDestroyWindow.Call(b.hwnd)
	}
}

var wndProcCallback = syscall.NewCallback(func(hwnd, message, wparam, lparam uintptr) uintptr {
	b := activeBridge.Load()
	if b != nil {
		switch message {
		case wmDisplayChange:
			b.post(engine.Event{Kind: engine.EventDisplayChanged})
			return 0
		case b.taskbarCreatedMsg:
			b.post(engine.Event{Kind: engine.EventTaskbarCreated})
			return 0
		case b.newInstanceMsg:
			if b.OnNewInstance != nil {
				b.OnNewInstance()
			}
			return 0
		case wmQueryEndSession:
			// Continuation query: the session may end.
			return 1
		}
	}
	ret, _, _ := procDefWindowProcW.Call(hwnd, message, wparam, lparam)
	return ret
})

var peekEventCallback = syscall.NewCallback(func(hook, event, hwnd, idObject, idChild, thread, eventTime uintptr) uintptr {
	if b := activeBridge.Load(); b != nil {
		if event == eventSystemPeekStart {
			b.post(engine.Event{Kind: engine.EventPeekStarted})
		} else {
			b.post(engine.Event{Kind: engine.EventPeekStopped})
		}
	}
	return 0
})

var creationEventCallback = syscall.NewCallback(func(hook, event, hwnd, idObject, idChild, thread, eventTime uintptr) uintptr {
	const objidWindow = 0
	b := activeBridge.Load()
	if b == nil || hwnd == 0 || int32(idObject) != objidWindow {
		return 0
	}

	var buf [256]uint16
	n, _, _ := procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return 0
	}
	class := windows.UTF16ToString(buf[:n])

	kind := engine.EventWindowCreated
	if event == eventObjectDestroy {
		kind = engine.EventWindowDestroyed
	}
	b.post(engine.Event{Kind: kind, Class: class})
	return 0
})

func createMessageWindow() (uintptr, error) {
	var instance windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &instance); err != nil {
		return 0, fmt.Errorf("GetModuleHandle failed: %w", err)
	}

	className, _ := windows.UTF16PtrFromString(bridgeWindowClass)
	wc := wndClassEx{
		Size:      uint32(unsafe.Sizeof(wndClassEx{})),
		WndProc:   wndProcCallback,
		Instance:  instance,
		ClassName: className,
	}
	if atom, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); atom == 0 {
		return 0, fmt.Errorf("RegisterClassEx failed: %w", err)
	}

	hwnd, _, err := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(className)),
		0, // no WS_VISIBLE
		0, 0, 0, 0,
		0, 0,
		uintptr(instance),
		0,
	)
	if hwnd == 0 {
		return 0, fmt.Errorf("CreateWindowEx failed: %w", err)
	}
	return hwnd, nil
}

// appVisibility registers a sink on the shell's IAppVisibility
// service to track start-menu visibility.
type appVisibility struct {
	unknown *ole.IUnknown
	vtbl    *appVisibilityVtbl
	sink    *appVisibilitySink
	cookie  uint32
}

type appVisibilityVtbl struct {
	ole.IUnknownVtbl
	GetAppVisibilityOnMonitor uintptr
	IsLauncherVisible         uintptr
	Advise                    uintptr
	Unadvise                  uintptr
}

var (
	clsidAppVisibility     = ole.NewGUID("{7E5FE3D9-985F-4908-91F9-EE19F9FD1514}")
	iidAppVisibility       = ole.NewGUID("{2246EA2D-CAEA-4444-A3C4-6DE827E44313}")
	iidAppVisibilityEvents = ole.NewGUID("{6584CE6B-7D82-49C2-89C9-C6BC02BA8C38}")
)

func newAppVisibility(onLauncher func(opened bool)) *appVisibility {
	unknown, err := ole.CreateInstance(clsidAppVisibility, iidAppVisibility)
	if err != nil {
		return nil
	}
	av := &appVisibility{
		unknown: unknown,
		vtbl:    (*appVisibilityVtbl)(unsafe.Pointer(unknown.RawVTable)),
		sink:    newAppVisibilitySink(onLauncher),
	}

	hr, _, _ := syscall.SyscallN(
		av.vtbl.Advise,
		uintptr(unsafe.Pointer(unknown)),
		uintptr(unsafe.Pointer(av.sink)),
		uintptr(unsafe.Pointer(&av.cookie)),
	)
	if hr != 0 {
		unknown.Release()
		return nil
	}
	return av
}

func (av *appVisibility) close() {
	if av.cookie != 0 {
		syscall.SyscallN(av.vtbl.Unadvise, uintptr(unsafe.Pointer(av.unknown)), uintptr(av.cookie))
	}
	av.unknown.Release()
}

// appVisibilitySink implements IAppVisibilityEvents.
type appVisibilitySink struct {
	vtbl       *appVisibilityEventsVtbl
	ref        int32
	onLauncher func(opened bool)
}

type appVisibilityEventsVtbl struct {
	QueryInterface                uintptr
	AddRef                        uintptr
	Release                       uintptr
	AppVisibilityOnMonitorChanged uintptr
	LauncherVisibilityChange      uintptr
}

var sinkVtbl = appVisibilityEventsVtbl{
	QueryInterface: syscall.NewCallback(func(this, riid, ppv uintptr) uintptr {
		const eNoInterface = 0x80004002
		iid := (*ole.GUID)(unsafe.Pointer(riid))
		if ole.IsEqualGUID(iid, ole.IID_IUnknown) || ole.IsEqualGUID(iid, iidAppVisibilityEvents) {
			*(*uintptr)(unsafe.Pointer(ppv)) = this
			sink := (*appVisibilitySink)(unsafe.Pointer(this))
			atomic.AddInt32(&sink.ref, 1)
			return 0
		}
		*(*uintptr)(unsafe.Pointer(ppv)) = 0
		return eNoInterface
	}),
	AddRef: syscall.NewCallback(func(this uintptr) uintptr {
		sink := (*appVisibilitySink)(unsafe.Pointer(this))
		return uintptr(atomic.AddInt32(&sink.ref, 1))
	}),
	Release: syscall.NewCallback(func(this uintptr) uintptr {
		sink := (*appVisibilitySink)(unsafe.Pointer(this))
		// The sink's lifetime is tied to the bridge, not the refcount.
		n := atomic.AddInt32(&sink.ref, -1)
		if n < 0 {
			n = 0
		}
		return uintptr(n)
	}),
	AppVisibilityOnMonitorChanged: syscall.NewCallback(func(this, hmonitor, previous, current uintptr) uintptr {
		return 0
	}),
	LauncherVisibilityChange: syscall.NewCallback(func(this, visible uintptr) uintptr {
		sink := (*appVisibilitySink)(unsafe.Pointer(this))
		sink.onLauncher(visible != 0)
		return 0
	}),
}

func newAppVisibilitySink(onLauncher func(opened bool)) *appVisibilitySink {
	return &appVisibilitySink{
		vtbl:       &sinkVtbl,
		ref:        1,
		onLauncher: onLauncher,
	}
}
