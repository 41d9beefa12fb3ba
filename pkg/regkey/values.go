package regkey

import (
	"slices"
	"strings"

	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/pkg/values"
)

func typeOr(typ []types.RegType, def types.RegType) types.RegType {
	if len(typ) > 0 {
		return typ[0]
	}
	return def
}

// GetBinary returns the raw payload of any value type.
func (k *Key) GetBinary(name string) ([]byte, bool) {
	return query(k, name, raw)
}

// GetString returns a REG_SZ or REG_EXPAND_SZ value. Other types fail with
// StatusDatatypeMismatch.
func (k *Key) GetString(name string) (string, bool) {
	return query(k, name, values.String)
}

// GetDWORD returns a 4-byte REG_DWORD or REG_DWORD_BIG_ENDIAN value.
func (k *Key) GetDWORD(name string) (uint32, bool) {
	return query(k, name, values.DWORD)
}

// GetQWORD returns an 8-byte REG_QWORD value.
func (k *Key) GetQWORD(name string) (uint64, bool) {
	return query(k, name, values.QWORD)
}

// GetMultiString returns a REG_MULTI_SZ value as a list. Empty strings
// inside the list are preserved.
func (k *Key) GetMultiString(name string) ([]string, bool) {
	return query(k, name, values.MultiString)
}

// GetNumber returns an integer value, or a string value holding a number,
// as a float64.
func (k *Key) GetNumber(name string) (float64, bool) {
	return query(k, name, values.Number)
}

// GetValue returns the value with its type and raw payload.
func (k *Key) GetValue(name string) (Value, bool) {
	return query(k, name, func(t types.RegType, data []byte) (Value, error) {
		return Value{Name: name, Type: t, Data: data}, nil
	})
}

// GetValueType returns the type of a value, REG_NONE on failure.
func (k *Key) GetValueType(name string) types.RegType {
	if !k.ready() {
		return types.REG_NONE
	}
	t, _, st := k.api.QueryValue(k.h, name, nil)
	if !k.set(st) {
		return types.REG_NONE
	}
	return t
}

// GetValueSize returns the payload size in bytes, -1 on failure.
func (k *Key) GetValueSize(name string) int {
	if !k.ready() {
		return -1
	}
	_, n, st := k.api.QueryValue(k.h, name, nil)
	if !k.set(st) {
		return -1
	}
	return n
}

// HasValue reports whether the value exists.
func (k *Key) HasValue(name string) bool {
	return k.GetValueSize(name) >= 0
}

// SetValue writes a raw payload with an explicit type tag.
func (k *Key) SetValue(name string, typ types.RegType, data []byte) bool {
	if !k.ready() {
		return false
	}
	return k.set(k.api.SetValue(k.h, name, typ, data))
}

// SetBinary writes data as REG_BINARY unless another type is given.
func (k *Key) SetBinary(name string, data []byte, typ ...types.RegType) bool {
	return k.SetValue(name, typeOr(typ, types.REG_BINARY), data)
}

// SetString writes s as a NUL-terminated UTF-16 string, REG_SZ unless
// another type is given.
func (k *Key) SetString(name, s string, typ ...types.RegType) bool {
	return k.SetValue(name, typeOr(typ, types.REG_SZ), values.EncodeString(s))
}

// SetDWORD writes v as REG_DWORD, or big endian when typ is
// REG_DWORD_BIG_ENDIAN.
func (k *Key) SetDWORD(name string, v uint32, typ ...types.RegType) bool {
	t := typeOr(typ, types.REG_DWORD)
	return k.SetValue(name, t, values.EncodeDWORD(v, t))
}

// SetQWORD writes v as REG_QWORD unless another type is given.
func (k *Key) SetQWORD(name string, v uint64, typ ...types.RegType) bool {
	return k.SetValue(name, typeOr(typ, types.REG_QWORD), values.EncodeQWORD(v))
}

// SetMultiString writes list as REG_MULTI_SZ unless another type is given.
func (k *Key) SetMultiString(name string, list []string, typ ...types.RegType) bool {
	return k.SetValue(name, typeOr(typ, types.REG_MULTI_SZ), values.EncodeMultiString(list))
}

// SetNumber stores f as REG_DWORD, REG_QWORD or REG_SZ, whichever holds it
// exactly.
func (k *Key) SetNumber(name string, f float64) bool {
	t, data := values.EncodeNumber(f)
	return k.SetValue(name, t, data)
}

// DeleteValue removes a value.
func (k *Key) DeleteValue(name string) bool {
	if !k.ready() {
		return false
	}
	return k.set(k.api.DeleteValue(k.h, name))
}

// RenameValue moves a value to a new name. It refuses to overwrite an
// existing value, recording StatusAlreadyExists.
func (k *Key) RenameValue(oldName, newName string) bool {
	if oldName == newName {
		return k.ready() && k.HasValue(oldName)
	}
	caseOnly := strings.EqualFold(oldName, newName)
	if !caseOnly && k.HasValue(newName) {
		k.status = types.StatusAlreadyExists
		return false
	}
	v, ok := k.GetValue(oldName)
	if !ok {
		return false
	}
	if !k.SetValue(newName, v.Type, v.Data) {
		return false
	}
	if !caseOnly {
		return k.DeleteValue(oldName)
	}
	// Both names address the same slot. Stores that keep the first
	// spelling on overwrite need the slot recreated.
	if slices.Contains(k.GetValueNames(), newName) {
		return true
	}
	return k.DeleteValue(oldName) && k.SetValue(newName, v.Type, v.Data)
}
