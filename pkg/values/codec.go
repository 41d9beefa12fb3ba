package values

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/joshuapare/regkit/pkg/types"
)

func mismatch(want string, got types.RegType) error {
	return &types.Error{
		Kind:   types.ErrKindType,
		Msg:    fmt.Sprintf("want %s, value is %s", want, got),
		Status: types.StatusDatatypeMismatch,
	}
}

func badSize(t types.RegType, want, got int) error {
	return &types.Error{
		Kind:   types.ErrKindRace,
		Msg:    fmt.Sprintf("%s payload is %d bytes, want %d", t, got, want),
		Status: types.StatusInvalidData,
	}
}

// String decodes a REG_SZ or REG_EXPAND_SZ payload.
func String(t types.RegType, data []byte) (string, error) {
	if t != types.REG_SZ && t != types.REG_EXPAND_SZ {
		return "", mismatch("REG_SZ or REG_EXPAND_SZ", t)
	}
	return DecodeString(data), nil
}

// MultiString decodes a REG_MULTI_SZ payload.
func MultiString(t types.RegType, data []byte) ([]string, error) {
	if t != types.REG_MULTI_SZ {
		return nil, mismatch("REG_MULTI_SZ", t)
	}
	return DecodeMultiString(data), nil
}

// DWORD decodes a 4-byte REG_DWORD (little endian) or REG_DWORD_BIG_ENDIAN.
func DWORD(t types.RegType, data []byte) (uint32, error) {
	var order binary.ByteOrder
	switch t {
	case types.REG_DWORD:
		order = binary.LittleEndian
	case types.REG_DWORD_BE:
		order = binary.BigEndian
	default:
		return 0, mismatch("REG_DWORD", t)
	}
	if len(data) != 4 {
		return 0, badSize(t, 4, len(data))
	}
	return order.Uint32(data), nil
}

// QWORD decodes an 8-byte REG_QWORD.
func QWORD(t types.RegType, data []byte) (uint64, error) {
	if t != types.REG_QWORD {
		return 0, mismatch("REG_QWORD", t)
	}
	if len(data) != 8 {
		return 0, badSize(t, 8, len(data))
	}
	return binary.LittleEndian.Uint64(data), nil
}

// Number decodes any integer type, or a string type holding a decimal
// number, as a float64.
func Number(t types.RegType, data []byte) (float64, error) {
	switch t {
	case types.REG_DWORD, types.REG_DWORD_BE:
		v, err := DWORD(t, data)
		return float64(v), err
	case types.REG_QWORD:
		v, err := QWORD(t, data)
		return float64(v), err
	case types.REG_SZ, types.REG_EXPAND_SZ:
		s := strings.TrimSpace(DecodeString(data))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN(), &types.Error{
				Kind:   types.ErrKindType,
				Msg:    fmt.Sprintf("%q is not a number", s),
				Status: types.StatusDatatypeMismatch,
				Err:    err,
			}
		}
		return f, nil
	}
	return math.NaN(), mismatch("a numeric type", t)
}

// EncodeDWORD encodes v for REG_DWORD or REG_DWORD_BIG_ENDIAN. Any other
// tag gets little-endian bytes.
func EncodeDWORD(v uint32, t types.RegType) []byte {
	buf := make([]byte, 4)
	if t == types.REG_DWORD_BE {
		binary.BigEndian.PutUint32(buf, v)
	} else {
		binary.LittleEndian.PutUint32(buf, v)
	}
	return buf
}

// EncodeQWORD encodes v as 8 little-endian bytes.
func EncodeQWORD(v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return buf
}

// EncodeNumber picks a storage type for f: integral values that fit in 32
// bits become REG_DWORD, other non-negative integral values REG_QWORD, and
// everything else a REG_SZ holding the shortest decimal form.
func EncodeNumber(f float64) (types.RegType, []byte) {
	integral := !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
	switch {
	case integral && f >= 0 && f <= math.MaxUint32:
		return types.REG_DWORD, EncodeDWORD(uint32(f), types.REG_DWORD)
	case integral && f >= 0 && f < math.MaxUint64:
		return types.REG_QWORD, EncodeQWORD(uint64(f))
	}
	return types.REG_SZ, EncodeString(strconv.FormatFloat(f, 'g', -1, 64))
}
