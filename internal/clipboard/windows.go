//go:build windows

package clipboard

import (
	"fmt"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/openclip/openclip/internal/common"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procOpenClipboard              = user32.NewProc("OpenClipboard")
	procCloseClipboard             = user32.NewProc("CloseClipboard")
	procEmptyClipboard             = user32.NewProc("EmptyClipboard")
	procEnumClipboardFormats       = user32.NewProc("EnumClipboardFormats")
	procGetClipboardData           = user32.NewProc("GetClipboardData")
	procSetClipboardData           = user32.NewProc("SetClipboardData")
	procGetClipboardFormatNameW    = user32.NewProc("GetClipboardFormatNameW")
	procGetClipboardOwner          = user32.NewProc("GetClipboardOwner")
	procGetClipboardSequenceNumber = user32.NewProc("GetClipboardSequenceNumber")
	procGetForegroundWindow        = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW             = user32.NewProc("GetWindowTextW")
	procGetWindowThreadProcessId   = user32.NewProc("GetWindowThreadProcessId")

	procGlobalAlloc               = kernel32.NewProc("GlobalAlloc")
	procGlobalLock                = kernel32.NewProc("GlobalLock")
	procGlobalUnlock              = kernel32.NewProc("GlobalUnlock")
	procGlobalSize                = kernel32.NewProc("GlobalSize")
	procK32GetModuleBaseNameW     = kernel32.NewProc("K32GetModuleBaseNameW")
	procK32GetModuleFileNameExW   = kernel32.NewProc("K32GetModuleFileNameExW")
)

const gmemMoveable = 0x0002

// WindowsPort talks to the Win32 clipboard. Change detection polls the
// clipboard sequence number instead of running a message-only window, which
// keeps the adapter free of a message pump.
type WindowsPort struct {
	pollInterval time.Duration
}

// NewSystemPort returns the platform clipboard port.
func NewSystemPort() (Port, error) {
	return &WindowsPort{pollInterval: 250 * time.Millisecond}, nil
}

func (p *WindowsPort) OpenExclusive() (Session, error) {
	// NULL hwnd: the clipboard is bound to the current task.
	r, _, err := procOpenClipboard.Call(0)
	if r == 0 {
		return nil, fmt.Errorf("%w: OpenClipboard: %v", common.ErrPortUnavailable, err)
	}
	return &windowsSession{}, nil
}

func (p *WindowsPort) OwnerProcessName() string {
	hwnd, _, _ := procGetClipboardOwner.Call()
	if hwnd == 0 {
		return "Unknown"
	}
	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return "Unknown Process"
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ, false, pid)
	if err != nil {
		return "Unknown Process"
	}
	defer windows.CloseHandle(h)

	var buf [260]uint16
	n, _, _ := procK32GetModuleBaseNameW.Call(uintptr(h), 0,
		uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return "Unknown Process"
	}
	return windows.UTF16ToString(buf[:n])
}

// OwnerProcessPath resolves the full executable path of the clipboard owner,
// best effort.
func (p *WindowsPort) OwnerProcessPath() string {
	hwnd, _, _ := procGetClipboardOwner.Call()
	if hwnd == 0 {
		return ""
	}
	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return ""
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)

	var buf [windows.MAX_PATH]uint16
	n, _, _ := procK32GetModuleFileNameExW.Call(uintptr(h), 0,
		uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

func (p *WindowsPort) ForegroundWindowTitle() string {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return ""
	}
	var buf [512]uint16
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf[:n])
}

// Changes polls GetClipboardSequenceNumber and fires once per observed
// change. Coalesced: a slow consumer sees one notification, not a backlog.
func (p *WindowsPort) Changes(buf int) (<-chan struct{}, func()) {
	ch := make(chan struct{}, buf)
	done := make(chan struct{})

	go func() {
		last, _, _ := procGetClipboardSequenceNumber.Call()
		t := time.NewTicker(p.pollInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				seq, _, _ := procGetClipboardSequenceNumber.Call()
				if seq == last {
					continue
				}
				last = seq
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()

	var once sync.Once
	return ch, func() { once.Do(func() { close(done) }) }
}

type windowsSession struct{}

func (s *windowsSession) Formats() []uint32 {
	var ids []uint32
	format, _, _ := procEnumClipboardFormats.Call(0)
	for format != 0 {
		ids = append(ids, uint32(format))
		format, _, _ = procEnumClipboardFormats.Call(format)
	}
	return ids
}

func (s *windowsSession) Read(id uint32) ([]byte, error) {
	handle, _, err := procGetClipboardData.Call(uintptr(id))
	if handle == 0 {
		return nil, fmt.Errorf("GetClipboardData(%d): %v", id, err)
	}
	size, _, _ := procGlobalSize.Call(handle)
	if size == 0 {
		return nil, fmt.Errorf("empty global block for format %d", id)
	}
	ptr, _, err := procGlobalLock.Call(handle)
	if ptr == 0 {
		return nil, fmt.Errorf("GlobalLock: %v", err)
	}
	defer procGlobalUnlock.Call(handle)

	data := make([]byte, size)
	copy(data, unsafe.Slice((*byte)(unsafe.Pointer(ptr)), size))
	return data, nil
}

func (s *windowsSession) Write(id uint32, data []byte) error {
	handle, _, err := procGlobalAlloc.Call(gmemMoveable, uintptr(len(data)))
	if handle == 0 {
		return fmt.Errorf("GlobalAlloc(%d bytes): %v", len(data), err)
	}
	ptr, _, err := procGlobalLock.Call(handle)
	if ptr == 0 {
		return fmt.Errorf("GlobalLock: %v", err)
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), len(data)), data)
	procGlobalUnlock.Call(handle)

	// On success the system owns the handle.
	r, _, err := procSetClipboardData.Call(uintptr(id), handle)
	if r == 0 {
		return fmt.Errorf("SetClipboardData(%d): %v", id, err)
	}
	return nil
}

func (s *windowsSession) Clear() error {
	r, _, err := procEmptyClipboard.Call()
	if r == 0 {
		return fmt.Errorf("EmptyClipboard: %v", err)
	}
	return nil
}

func (s *windowsSession) FormatName(id uint32) string {
	var buf [256]uint16
	n, _, _ := procGetClipboardFormatNameW.Call(uintptr(id),
		uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

func (s *windowsSession) Close() error {
	r, _, err := procCloseClipboard.Call()
	if r == 0 {
		return fmt.Errorf("CloseClipboard: %v", err)
	}
	return nil
}
