package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegType_String(t *testing.T) {
	tests := []struct {
		name     string
		regType  RegType
		expected string
	}{
		{"REG_NONE", REG_NONE, "REG_NONE"},
		{"REG_SZ", REG_SZ, "REG_SZ"},
		{"REG_EXPAND_SZ", REG_EXPAND_SZ, "REG_EXPAND_SZ"},
		{"REG_BINARY", REG_BINARY, "REG_BINARY"},
		{"REG_DWORD", REG_DWORD, "REG_DWORD"},
		{"REG_DWORD_BE", REG_DWORD_BE, "REG_DWORD_BIG_ENDIAN"},
		{"REG_LINK", REG_LINK, "REG_LINK"},
		{"REG_MULTI_SZ", REG_MULTI_SZ, "REG_MULTI_SZ"},
		{"REG_RESOURCE_LIST", RegType(8), "REG_RESOURCE_LIST"},
		{"REG_FULL_RESOURCE_DESCRIPTOR", RegType(9), "REG_FULL_RESOURCE_DESCRIPTOR"},
		{"REG_RESOURCE_REQUIREMENTS_LIST", RegType(10), "REG_RESOURCE_REQUIREMENTS_LIST"},
		{"REG_QWORD", REG_QWORD, "REG_QWORD"},
		// Unknown tags render as signed int32 so corrupt high values stay readable.
		{"Unknown type 12", RegType(12), "UNKNOWN_TYPE_12"},
		{"Unknown type 255", RegType(255), "UNKNOWN_TYPE_255"},
		{"Invalid type -1 (0xFFFFFFFF)", RegType(0xFFFFFFFF), "UNKNOWN_TYPE_-1"},
		{"Invalid type -65511 (0xFFFF0019)", RegType(0xFFFF0019), "UNKNOWN_TYPE_-65511"},
		{"Very large unknown type", RegType(1 << 31), "UNKNOWN_TYPE_-2147483648"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.regType.String())
		})
	}
}

func TestParseRegType(t *testing.T) {
	tests := []struct {
		in   string
		want RegType
		ok   bool
	}{
		{"REG_SZ", REG_SZ, true},
		{"reg_sz", REG_SZ, true},
		{"  sz ", REG_SZ, true},
		{"REG_DWORD_LITTLE_ENDIAN", REG_DWORD, true},
		{"REG_DWORD_BIG_ENDIAN", REG_DWORD_BE, true},
		{"dword_be", REG_DWORD_BE, true},
		{"REG_QWORD_LITTLE_ENDIAN", REG_QWORD, true},
		{"multi_sz", REG_MULTI_SZ, true},
		{"REG_RESOURCE_REQUIREMENTS_LIST", REG_RESOURCE_REQUIREMENTS_LIST, true},
		{"REG_BOGUS", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRegType(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseRegTypeOr(t *testing.T) {
	assert.Equal(t, REG_BINARY, ParseRegTypeOr("nope", REG_BINARY))
	assert.Equal(t, REG_EXPAND_SZ, ParseRegTypeOr("expand_sz", REG_BINARY))
}

func TestRegType_Classification(t *testing.T) {
	assert.True(t, REG_SZ.IsString())
	assert.True(t, REG_EXPAND_SZ.IsString())
	assert.False(t, REG_MULTI_SZ.IsString())
	assert.True(t, REG_QWORD.Known())
	assert.False(t, RegType(12).Known())
}
