//go:build windows

package winapi

import (
	"errors"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/joshuapare/regkit/internal/logger"
	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/types"
)

var (
	advapi32 = windows.NewLazySystemDLL("advapi32.dll")

	procRegCreateKeyExW     = advapi32.NewProc("RegCreateKeyExW")
	procRegConnectRegistryW = advapi32.NewProc("RegConnectRegistryW")
	procRegSetValueExW      = advapi32.NewProc("RegSetValueExW")
	procRegEnumValueW       = advapi32.NewProc("RegEnumValueW")
	procRegDeleteTreeW      = advapi32.NewProc("RegDeleteTreeW")
	procRegCopyTreeW        = advapi32.NewProc("RegCopyTreeW")
	procRegRenameKey        = advapi32.NewProc("RegRenameKey")
	procRegFlushKey         = advapi32.NewProc("RegFlushKey")
)

const (
	maxKeyNameLen   = types.WindowsMaxKeyNameLen + 1
	maxValueNameLen = types.WindowsMaxValueNameLen + 1

	regCreatedNewKey = 1
	maximumAllowed   = windows.MAXIMUM_ALLOWED
)

// API is the Windows registry. The zero value is ready to use.
type API struct{}

var _ native.API = API{}

// New returns the Windows registry API.
func New() API { return API{} }

func status(err error) types.Status {
	if err == nil {
		return types.StatusSuccess
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return types.Status(errno)
	}
	logger.Debug("winapi: unexpected error", "err", err)
	return types.StatusInvalidParameter
}

// ptr converts a name to a NUL-terminated UTF-16 pointer. Empty optional
// names become nil.
func ptr(s string, optional bool) (*uint16, types.Status) {
	if s == "" && optional {
		return nil, types.StatusSuccess
	}
	p, err := windows.UTF16PtrFromString(s)
	if err != nil {
		return nil, types.StatusInvalidParameter
	}
	return p, types.StatusSuccess
}

func access(a types.Access) uint32 {
	if a == types.DefaultAccess {
		return maximumAllowed
	}
	return uint32(a)
}

func (API) OpenKey(parent native.Handle, path string, a types.Access) (native.Handle, types.Status) {
	p, st := ptr(path, false)
	if !st.OK() {
		return native.InvalidHandle, st
	}
	var h windows.Handle
	if st := status(windows.RegOpenKeyEx(windows.Handle(parent), p, 0, access(a), &h)); !st.OK() {
		return native.InvalidHandle, st
	}
	return native.Handle(h), types.StatusSuccess
}

func (API) CreateKey(parent native.Handle, path string, a types.Access) (native.Handle, bool, types.Status) {
	p, st := ptr(path, false)
	if !st.OK() {
		return native.InvalidHandle, false, st
	}
	var (
		h           windows.Handle
		disposition uint32
	)
	r, _, _ := procRegCreateKeyExW.Call(
		uintptr(parent), uintptr(unsafe.Pointer(p)), 0, 0, 0,
		uintptr(access(a)), 0,
		uintptr(unsafe.Pointer(&h)), uintptr(unsafe.Pointer(&disposition)))
	if st := types.Status(r); !st.OK() {
		return native.InvalidHandle, false, st
	}
	return native.Handle(h), disposition == regCreatedNewKey, types.StatusSuccess
}

func (API) ConnectRegistry(host string, root native.Handle) (native.Handle, types.Status) {
	if host != "" && !root.Remotable() {
		return native.InvalidHandle, types.StatusInvalidHandle
	}
	machine, st := ptr(host, true)
	if !st.OK() {
		return native.InvalidHandle, st
	}
	var h windows.Handle
	r, _, _ := procRegConnectRegistryW.Call(uintptr(unsafe.Pointer(machine)), uintptr(root), uintptr(unsafe.Pointer(&h)))
	if st := types.Status(r); !st.OK() {
		return native.InvalidHandle, st
	}
	return native.Handle(h), types.StatusSuccess
}

func (API) CloseKey(h native.Handle) types.Status {
	if h.IsPredefined() {
		return types.StatusSuccess
	}
	if h == native.InvalidHandle {
		return types.StatusInvalidHandle
	}
	return status(windows.RegCloseKey(windows.Handle(h)))
}

// dataPtr returns the buffer pointer for a two-phase call. A non-nil empty
// buffer still needs a non-nil pointer, or the call would report success
// without copying anything.
func dataPtr(buf []byte, scratch *byte) *byte {
	switch {
	case buf == nil:
		return nil
	case len(buf) == 0:
		return scratch
	}
	return &buf[0]
}

func (API) QueryValue(h native.Handle, name string, buf []byte) (types.RegType, int, types.Status) {
	p, st := ptr(name, true)
	if !st.OK() {
		return types.REG_NONE, 0, st
	}
	var (
		typ     uint32
		scratch byte
		n       = uint32(len(buf))
	)
	err := windows.RegQueryValueEx(windows.Handle(h), p, nil, &typ, dataPtr(buf, &scratch), &n)
	return types.RegType(typ), int(n), status(err)
}

func (API) SetValue(h native.Handle, name string, typ types.RegType, data []byte) types.Status {
	p, st := ptr(name, true)
	if !st.OK() {
		return st
	}
	var d *byte
	if len(data) > 0 {
		d = &data[0]
	}
	r, _, _ := procRegSetValueExW.Call(
		uintptr(h), uintptr(unsafe.Pointer(p)), 0, uintptr(typ),
		uintptr(unsafe.Pointer(d)), uintptr(len(data)))
	return types.Status(r)
}

func (API) DeleteValue(h native.Handle, name string) types.Status {
	return status(registry.Key(h).DeleteValue(name))
}

func (API) EnumKey(h native.Handle, index int) (string, types.Status) {
	if index < 0 {
		return "", types.StatusInvalidParameter
	}
	buf := make([]uint16, maxKeyNameLen)
	n := uint32(len(buf))
	err := windows.RegEnumKeyEx(windows.Handle(h), uint32(index), &buf[0], &n, nil, nil, nil, nil)
	if st := status(err); !st.OK() {
		return "", st
	}
	return windows.UTF16ToString(buf[:n]), types.StatusSuccess
}

func (API) EnumValue(h native.Handle, index int, buf []byte) (string, types.RegType, int, types.Status) {
	if index < 0 {
		return "", types.REG_NONE, 0, types.StatusInvalidParameter
	}
	var (
		nameBuf = make([]uint16, maxValueNameLen)
		nameLen = uint32(len(nameBuf))
		typ     uint32
		scratch byte
		n       = uint32(len(buf))
	)
	r, _, _ := procRegEnumValueW.Call(
		uintptr(h), uintptr(index),
		uintptr(unsafe.Pointer(&nameBuf[0])), uintptr(unsafe.Pointer(&nameLen)), 0,
		uintptr(unsafe.Pointer(&typ)),
		uintptr(unsafe.Pointer(dataPtr(buf, &scratch))), uintptr(unsafe.Pointer(&n)))
	st := types.Status(r)
	if !st.OK() && st != types.StatusMoreData {
		return "", types.REG_NONE, 0, st
	}
	return windows.UTF16ToString(nameBuf[:nameLen]), types.RegType(typ), int(n), st
}

func (API) QueryInfoKey(h native.Handle) (native.KeyInfo, types.Status) {
	var (
		subkeys, maxSubkeyLen, values, maxValueNameLen, maxValueLen uint32
		lastWrite                                                   windows.Filetime
	)
	err := windows.RegQueryInfoKey(windows.Handle(h), nil, nil, nil,
		&subkeys, &maxSubkeyLen, nil, &values, &maxValueNameLen, &maxValueLen, nil, &lastWrite)
	if st := status(err); !st.OK() {
		return native.KeyInfo{}, st
	}
	return native.KeyInfo{
		SubKeys:         int(subkeys),
		MaxSubKeyLen:    int(maxSubkeyLen),
		Values:          int(values),
		MaxValueNameLen: int(maxValueNameLen),
		MaxValueLen:     int(maxValueLen),
		LastWrite:       time.Unix(0, lastWrite.Nanoseconds()).UTC(),
	}, types.StatusSuccess
}

func (API) DeleteTree(h native.Handle, subkey string) types.Status {
	p, st := ptr(subkey, true)
	if !st.OK() {
		return st
	}
	r, _, _ := procRegDeleteTreeW.Call(uintptr(h), uintptr(unsafe.Pointer(p)))
	return types.Status(r)
}

func (API) DeleteKey(h native.Handle, subkey string) types.Status {
	return status(registry.DeleteKey(registry.Key(h), subkey))
}

func (API) CopyTree(src native.Handle, subkey string, dst native.Handle) types.Status {
	p, st := ptr(subkey, true)
	if !st.OK() {
		return st
	}
	r, _, _ := procRegCopyTreeW.Call(uintptr(src), uintptr(unsafe.Pointer(p)), uintptr(dst))
	return types.Status(r)
}

func (API) RenameKey(h native.Handle, subkey, newName string) types.Status {
	p, st := ptr(subkey, true)
	if !st.OK() {
		return st
	}
	np, st := ptr(newName, false)
	if !st.OK() {
		return st
	}
	r, _, _ := procRegRenameKey.Call(uintptr(h), uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(np)))
	return types.Status(r)
}

func (API) FlushKey(h native.Handle) types.Status {
	r, _, _ := procRegFlushKey.Call(uintptr(h))
	return types.Status(r)
}
