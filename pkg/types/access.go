package types

import (
	"fmt"
	"strings"
)

// Access is a key access mask. The bit values match the Windows KEY_* rights.
type Access uint32

const (
	KEY_QUERY_VALUE        Access = 0x0001
	KEY_SET_VALUE          Access = 0x0002
	KEY_CREATE_SUB_KEY     Access = 0x0004
	KEY_ENUMERATE_SUB_KEYS Access = 0x0008
	KEY_NOTIFY             Access = 0x0010
	KEY_CREATE_LINK        Access = 0x0020
	KEY_WOW64_64KEY        Access = 0x0100
	KEY_WOW64_32KEY        Access = 0x0200
	KEY_WOW64_RES          Access = 0x0300

	STANDARD_RIGHTS_READ Access = 0x00020000
	STANDARD_RIGHTS_ALL  Access = 0x001F0000

	KEY_READ       Access = 0x00020019
	KEY_WRITE      Access = 0x00020006
	KEY_EXECUTE    Access = 0x00020019
	KEY_ALL_ACCESS Access = 0x000F003F
)

// DefaultAccess asks the store for its default rights (KEY_ALL_ACCESS, or
// KEY_READ on read-only stores).
const DefaultAccess Access = 0

var accessNames = map[string]Access{
	"KEY_QUERY_VALUE":        KEY_QUERY_VALUE,
	"KEY_SET_VALUE":          KEY_SET_VALUE,
	"KEY_CREATE_SUB_KEY":     KEY_CREATE_SUB_KEY,
	"KEY_ENUMERATE_SUB_KEYS": KEY_ENUMERATE_SUB_KEYS,
	"KEY_NOTIFY":             KEY_NOTIFY,
	"KEY_CREATE_LINK":        KEY_CREATE_LINK,
	"KEY_WOW64_64KEY":        KEY_WOW64_64KEY,
	"KEY_WOW64_32KEY":        KEY_WOW64_32KEY,
	"KEY_WOW64_RES":          KEY_WOW64_RES,
	"KEY_READ":               KEY_READ,
	"KEY_WRITE":              KEY_WRITE,
	"KEY_EXECUTE":            KEY_EXECUTE,
	"KEY_ALL_ACCESS":         KEY_ALL_ACCESS,
}

// AccessFlags ORs masks together.
func AccessFlags(flags ...Access) Access {
	var a Access
	for _, f := range flags {
		a |= f
	}
	return a
}

// ParseAccess ORs a list of right names. Names are case-insensitive and the
// KEY_ prefix is optional ("read", "KEY_WRITE", "wow64_64key").
func ParseAccess(names []string) (Access, error) {
	var a Access
	for _, n := range names {
		key := strings.ToUpper(strings.TrimSpace(n))
		if key == "" {
			continue
		}
		if !strings.HasPrefix(key, "KEY_") {
			key = "KEY_" + key
		}
		f, ok := accessNames[key]
		if !ok {
			return 0, InvalidArgument(fmt.Sprintf("unknown access right %q", n))
		}
		a |= f
	}
	return a, nil
}

// Has reports whether every bit of want is granted by a.
func (a Access) Has(want Access) bool { return a&want == want }

// Writes reports whether a requests any value or subkey mutation right.
func (a Access) Writes() bool {
	return a&(KEY_SET_VALUE|KEY_CREATE_SUB_KEY|KEY_CREATE_LINK) != 0
}

// View returns only the WOW64 view bits of a.
func (a Access) View() Access { return a & KEY_WOW64_RES }
