package values

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/regkit/pkg/types"
)

// Format renders a value for display. Malformed integer payloads and unknown
// types fall back to hex.
func Format(t types.RegType, data []byte) string {
	switch t {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		return DecodeString(data)
	case types.REG_MULTI_SZ:
		return strings.Join(DecodeMultiString(data), "\n")
	case types.REG_DWORD, types.REG_DWORD_BE:
		if v, err := DWORD(t, data); err == nil {
			return fmt.Sprintf("0x%08x (%d)", v, v)
		}
	case types.REG_QWORD:
		if v, err := QWORD(t, data); err == nil {
			return fmt.Sprintf("0x%016x (%d)", v, v)
		}
	}
	return hex.EncodeToString(data)
}

// Native returns the natural Go representation of a value: string,
// []string, uint32, uint64 or []byte. Used for JSON output.
func Native(t types.RegType, data []byte) any {
	switch t {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		return DecodeString(data)
	case types.REG_MULTI_SZ:
		return DecodeMultiString(data)
	case types.REG_DWORD, types.REG_DWORD_BE:
		if v, err := DWORD(t, data); err == nil {
			return v
		}
	case types.REG_QWORD:
		if v, err := QWORD(t, data); err == nil {
			return v
		}
	}
	return data
}

// Parse converts command-line text into a payload of type t. Integers
// accept decimal or 0x-prefixed hex; REG_MULTI_SZ takes one argument per
// element; binary types take hex digits, optionally comma or space separated.
func Parse(t types.RegType, args []string) ([]byte, error) {
	if t == types.REG_MULTI_SZ {
		return EncodeMultiString(args), nil
	}
	if len(args) != 1 {
		return nil, types.InvalidArgument(fmt.Sprintf("%s takes exactly one value, got %d", t, len(args)))
	}
	s := args[0]
	switch t {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		return EncodeString(s), nil
	case types.REG_DWORD, types.REG_DWORD_BE:
		v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
		if err != nil {
			return nil, &types.Error{Kind: types.ErrKindInvalidArgument, Msg: "invalid dword " + strconv.Quote(s), Err: err}
		}
		return EncodeDWORD(uint32(v), t), nil
	case types.REG_QWORD:
		v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
		if err != nil {
			return nil, &types.Error{Kind: types.ErrKindInvalidArgument, Msg: "invalid qword " + strconv.Quote(s), Err: err}
		}
		return EncodeQWORD(v), nil
	}
	clean := strings.NewReplacer(",", "", " ", "", "\t", "").Replace(s)
	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindInvalidArgument, Msg: "invalid hex data", Err: err}
	}
	return b, nil
}
