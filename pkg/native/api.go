package native

import (
	"time"

	"github.com/joshuapare/regkit/pkg/types"
)

// Handle is an opaque reference to an open key inside a store.
type Handle uintptr

// InvalidHandle is the "not open" sentinel.
const InvalidHandle Handle = 0

// Predefined root handles. They are always open and closing them is a no-op.
const (
	HKEY_CLASSES_ROOT        Handle = 0x80000000
	HKEY_CURRENT_USER        Handle = 0x80000001
	HKEY_LOCAL_MACHINE       Handle = 0x80000002
	HKEY_USERS               Handle = 0x80000003
	HKEY_PERFORMANCE_DATA    Handle = 0x80000004
	HKEY_CURRENT_CONFIG      Handle = 0x80000005
	HKEY_PERFORMANCE_TEXT    Handle = 0x80000050
	HKEY_PERFORMANCE_NLSTEXT Handle = 0x80000060
)

// Predefined lists every root handle in display order.
var Predefined = []Handle{
	HKEY_CLASSES_ROOT,
	HKEY_CURRENT_USER,
	HKEY_LOCAL_MACHINE,
	HKEY_USERS,
	HKEY_CURRENT_CONFIG,
	HKEY_PERFORMANCE_DATA,
	HKEY_PERFORMANCE_TEXT,
	HKEY_PERFORMANCE_NLSTEXT,
}

var rootNames = map[Handle]string{
	HKEY_CLASSES_ROOT:        "HKEY_CLASSES_ROOT",
	HKEY_CURRENT_USER:        "HKEY_CURRENT_USER",
	HKEY_LOCAL_MACHINE:       "HKEY_LOCAL_MACHINE",
	HKEY_USERS:               "HKEY_USERS",
	HKEY_PERFORMANCE_DATA:    "HKEY_PERFORMANCE_DATA",
	HKEY_CURRENT_CONFIG:      "HKEY_CURRENT_CONFIG",
	HKEY_PERFORMANCE_TEXT:    "HKEY_PERFORMANCE_TEXT",
	HKEY_PERFORMANCE_NLSTEXT: "HKEY_PERFORMANCE_NLSTEXT",
}

// IsPredefined reports whether h is one of the root handles.
func (h Handle) IsPredefined() bool {
	_, ok := rootNames[h]
	return ok
}

// RootName returns the long name of a predefined handle, or "" for others.
func (h Handle) RootName() string { return rootNames[h] }

// Remotable reports whether a root can be opened on another host. Only the
// machine-wide roots are reachable remotely.
func (h Handle) Remotable() bool {
	switch h {
	case HKEY_LOCAL_MACHINE, HKEY_USERS, HKEY_PERFORMANCE_DATA,
		HKEY_PERFORMANCE_TEXT, HKEY_PERFORMANCE_NLSTEXT:
		return true
	}
	return false
}

// KeyInfo is the metadata returned by QueryInfoKey. Lengths are in
// characters and exclude the terminating NUL; MaxValueLen is in bytes.
type KeyInfo struct {
	SubKeys         int
	MaxSubKeyLen    int
	Values          int
	MaxValueNameLen int
	MaxValueLen     int
	LastWrite       time.Time
}

// API is the narrow set of raw store calls the key layer is built on. Every
// call returns a status instead of an error; types.StatusSuccess means the
// call succeeded. Paths use `\` as the separator and are relative to parent.
//
// String payloads are UTF-16LE at this boundary; names are Go strings.
type API interface {
	// OpenKey opens an existing key. Access 0 requests the store default.
	OpenKey(parent Handle, path string, access types.Access) (Handle, types.Status)
	// CreateKey opens or creates a key and any missing intermediate keys.
	// created reports whether the final key did not exist before.
	CreateKey(parent Handle, path string, access types.Access) (h Handle, created bool, st types.Status)
	// ConnectRegistry returns root on host. An empty host is the local store.
	ConnectRegistry(host string, root Handle) (Handle, types.Status)
	CloseKey(h Handle) types.Status

	// QueryValue reports the type and size of a value and, when buf is
	// non-nil, copies the data into it. A buf shorter than the data yields
	// StatusMoreData with the required size.
	QueryValue(h Handle, name string, buf []byte) (typ types.RegType, size int, st types.Status)
	SetValue(h Handle, name string, typ types.RegType, data []byte) types.Status
	DeleteValue(h Handle, name string) types.Status

	// EnumKey returns the name of the index-th subkey, StatusNoMoreItems
	// past the end.
	EnumKey(h Handle, index int) (string, types.Status)
	// EnumValue returns the index-th value. buf follows QueryValue rules.
	EnumValue(h Handle, index int, buf []byte) (name string, typ types.RegType, size int, st types.Status)
	QueryInfoKey(h Handle) (KeyInfo, types.Status)

	// DeleteTree removes subkey and everything beneath it. An empty subkey
	// removes every value and subkey of h but leaves h itself.
	DeleteTree(h Handle, subkey string) types.Status
	// DeleteKey removes an empty subkey, or h itself when subkey is empty.
	DeleteKey(h Handle, subkey string) types.Status
	// CopyTree copies every value and subkey of src\subkey into dst,
	// overwriting values that already exist.
	CopyTree(src Handle, subkey string, dst Handle) types.Status
	// RenameKey renames subkey of h, or h itself when subkey is empty.
	RenameKey(h Handle, subkey, newName string) types.Status
	FlushKey(h Handle) types.Status
}
