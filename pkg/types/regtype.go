package types

import (
	"fmt"
	"strings"
)

// RegType enumerates registry value types. The numbers align with the Windows
// definitions and are stored verbatim, so tags outside the known set survive a
// read/write round trip.
type RegType uint32

const (
	REG_NONE                       RegType = 0
	REG_SZ                         RegType = 1
	REG_EXPAND_SZ                  RegType = 2
	REG_BINARY                     RegType = 3
	REG_DWORD                      RegType = 4
	REG_DWORD_LE                   RegType = 4 // alias for clarity
	REG_DWORD_BE                   RegType = 5
	REG_LINK                       RegType = 6
	REG_MULTI_SZ                   RegType = 7
	REG_RESOURCE_LIST              RegType = 8
	REG_FULL_RESOURCE_DESCRIPTOR   RegType = 9
	REG_RESOURCE_REQUIREMENTS_LIST RegType = 10
	REG_QWORD                      RegType = 11
	REG_QWORD_LE                   RegType = 11 // alias for clarity
)

var regTypeNames = map[RegType]string{
	REG_NONE:                       "REG_NONE",
	REG_SZ:                         "REG_SZ",
	REG_EXPAND_SZ:                  "REG_EXPAND_SZ",
	REG_BINARY:                     "REG_BINARY",
	REG_DWORD:                      "REG_DWORD",
	REG_DWORD_BE:                   "REG_DWORD_BIG_ENDIAN",
	REG_LINK:                       "REG_LINK",
	REG_MULTI_SZ:                   "REG_MULTI_SZ",
	REG_RESOURCE_LIST:              "REG_RESOURCE_LIST",
	REG_FULL_RESOURCE_DESCRIPTOR:   "REG_FULL_RESOURCE_DESCRIPTOR",
	REG_RESOURCE_REQUIREMENTS_LIST: "REG_RESOURCE_REQUIREMENTS_LIST",
	REG_QWORD:                      "REG_QWORD",
}

// regTypeAliases maps every accepted spelling (upper case, with and without the
// REG_ prefix) to its tag.
var regTypeAliases = func() map[string]RegType {
	m := make(map[string]RegType, len(regTypeNames)*2+8)
	for t, name := range regTypeNames {
		m[name] = t
		m[strings.TrimPrefix(name, "REG_")] = t
	}
	for alias, t := range map[string]RegType{
		"REG_DWORD_LITTLE_ENDIAN": REG_DWORD,
		"REG_DWORD_BE":            REG_DWORD_BE,
		"REG_QWORD_LITTLE_ENDIAN": REG_QWORD,
		"REG_QWORD_LE":            REG_QWORD,
		"REG_DWORD_LE":            REG_DWORD,
	} {
		m[alias] = t
		m[strings.TrimPrefix(alias, "REG_")] = t
	}
	return m
}()

// String implements the Stringer interface for RegType.
func (t RegType) String() string {
	if name, ok := regTypeNames[t]; ok {
		return name
	}
	// Format as signed int32 to match hivex (shows negative values for invalid types)
	return fmt.Sprintf("UNKNOWN_TYPE_%d", int32(t))
}

// Known reports whether t is one of the documented registry value types.
func (t RegType) Known() bool {
	_, ok := regTypeNames[t]
	return ok
}

// IsString reports whether values of this type decode as a single string.
func (t RegType) IsString() bool {
	return t == REG_SZ || t == REG_EXPAND_SZ || t == REG_LINK
}

// ParseRegType resolves a value type name such as "REG_SZ", "reg_dword_big_endian"
// or "qword". Lookups are case-insensitive and the REG_ prefix is optional.
func ParseRegType(name string) (RegType, bool) {
	t, ok := regTypeAliases[strings.ToUpper(strings.TrimSpace(name))]
	return t, ok
}

// ParseRegTypeOr resolves name like ParseRegType and returns fallback for
// unrecognized names. Generic writes use REG_BINARY as their fallback.
func ParseRegTypeOr(name string, fallback RegType) RegType {
	if t, ok := ParseRegType(name); ok {
		return t
	}
	return fallback
}
