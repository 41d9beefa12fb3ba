package values

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/types"
)

func TestEncodeString(t *testing.T) {
	assert.Equal(t, []byte{'h', 0, 'i', 0, 0, 0}, EncodeString("hi"))
	assert.Equal(t, []byte{0, 0}, EncodeString(""))
}

func TestDecodeString(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"terminated", []byte{'h', 0, 'i', 0, 0, 0}, "hi"},
		{"unterminated", []byte{'h', 0, 'i', 0}, "hi"},
		{"stops at first NUL", []byte{'a', 0, 0, 0, 'b', 0, 0, 0}, "a"},
		{"odd length", []byte{'h', 0, 'i'}, "h"},
		{"empty", nil, ""},
		{"non-ASCII", EncodeString("日本語 ü"), "日本語 ü"},
		{"surrogate pair", EncodeString("🎉"), "🎉"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeString(tt.data))
		})
	}
}

func TestMultiString_RoundTrip(t *testing.T) {
	tests := [][]string{
		{},
		{"a"},
		{"a", "bb", ""},
		{"", "a"},
		{"Ünïcödé", "x"},
	}
	for _, list := range tests {
		enc := EncodeMultiString(list)
		units := 1
		for _, s := range list {
			units += len([]rune(s)) + 1
		}
		assert.Len(t, enc, units*2, "%q", list)
		assert.Equal(t, list, DecodeMultiString(enc), "%q", list)
	}
}

func TestDecodeMultiString_Unterminated(t *testing.T) {
	data := []byte{'a', 0, 0, 0, 'b', 0}
	assert.Equal(t, []string{"a", "b"}, DecodeMultiString(data))
	assert.Equal(t, []string{}, DecodeMultiString(nil))
}

func TestDWORD(t *testing.T) {
	v, err := DWORD(types.REG_DWORD, []byte{0x78, 0x56, 0x34, 0x12})
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)

	v, err = DWORD(types.REG_DWORD_BE, []byte{0x12, 0x34, 0x56, 0x78})
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)

	_, err = DWORD(types.REG_QWORD, make([]byte, 8))
	assert.ErrorIs(t, err, types.ErrTypeMismatch)
	assert.Equal(t, types.StatusDatatypeMismatch, types.StatusOf(err))

	_, err = DWORD(types.REG_DWORD, []byte{1, 2})
	assert.Equal(t, types.StatusInvalidData, types.StatusOf(err))

	assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, EncodeDWORD(0x12345678, types.REG_DWORD_BE))
}

func TestQWORD(t *testing.T) {
	v, err := QWORD(types.REG_QWORD, EncodeQWORD(1<<40+7))
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<40+7), v)

	_, err = QWORD(types.REG_DWORD, EncodeDWORD(1, types.REG_DWORD))
	assert.Equal(t, types.StatusDatatypeMismatch, types.StatusOf(err))
}

func TestString_TypeCheck(t *testing.T) {
	s, err := String(types.REG_EXPAND_SZ, EncodeString("%PATH%"))
	require.NoError(t, err)
	assert.Equal(t, "%PATH%", s)

	_, err = String(types.REG_BINARY, []byte{1})
	assert.ErrorIs(t, err, types.ErrTypeMismatch)

	_, err = MultiString(types.REG_SZ, EncodeString("x"))
	assert.ErrorIs(t, err, types.ErrTypeMismatch)
}

func TestNumber(t *testing.T) {
	f, err := Number(types.REG_DWORD, EncodeDWORD(42, types.REG_DWORD))
	require.NoError(t, err)
	assert.Equal(t, 42.0, f)

	f, err = Number(types.REG_SZ, EncodeString(" 3.5 "))
	require.NoError(t, err)
	assert.Equal(t, 3.5, f)

	f, err = Number(types.REG_SZ, EncodeString("abc"))
	assert.Error(t, err)
	assert.True(t, math.IsNaN(f))

	_, err = Number(types.REG_BINARY, nil)
	assert.ErrorIs(t, err, types.ErrTypeMismatch)
}

func TestEncodeNumber(t *testing.T) {
	tests := []struct {
		in   float64
		typ  types.RegType
		back float64
	}{
		{0, types.REG_DWORD, 0},
		{4294967295, types.REG_DWORD, 4294967295},
		{4294967296, types.REG_QWORD, 4294967296},
		{-1, types.REG_SZ, -1},
		{1.25, types.REG_SZ, 1.25},
	}
	for _, tt := range tests {
		typ, data := EncodeNumber(tt.in)
		assert.Equal(t, tt.typ, typ, "%v", tt.in)
		got, err := Number(typ, data)
		require.NoError(t, err)
		assert.Equal(t, tt.back, got)
	}
}

func TestParseAndFormat(t *testing.T) {
	data, err := Parse(types.REG_DWORD, []string{"0x10"})
	require.NoError(t, err)
	assert.Equal(t, "0x00000010 (16)", Format(types.REG_DWORD, data))

	data, err = Parse(types.REG_MULTI_SZ, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "a\nb", Format(types.REG_MULTI_SZ, data))
	assert.Equal(t, []string{"a", "b"}, Native(types.REG_MULTI_SZ, data))

	data, err = Parse(types.REG_BINARY, []string{"de,ad be ef"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, data)
	assert.Equal(t, "deadbeef", Format(types.REG_BINARY, data))

	_, err = Parse(types.REG_DWORD, []string{"nope"})
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
	_, err = Parse(types.REG_SZ, []string{"a", "b"})
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}
