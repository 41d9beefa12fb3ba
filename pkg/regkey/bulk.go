package regkey

import (
	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/pkg/values"
)

// GetValues reads every value of the key. Buffers are sized once from
// QueryInfoKey; a value that has outgrown them since is skipped and the
// call returns false with StatusMoreData, along with everything it could
// read. Any other failure stops the enumeration.
func (k *Key) GetValues() ([]Value, bool) {
	if !k.ready() {
		return nil, false
	}
	info, st := k.api.QueryInfoKey(k.h)
	if !k.set(st) {
		return nil, false
	}
	buf := make([]byte, info.MaxValueLen)
	out := make([]Value, 0, info.Values)
	complete := true
	for i := 0; ; i++ {
		name, typ, n, st := k.api.EnumValue(k.h, i, buf)
		switch {
		case st == types.StatusNoMoreItems:
			if complete {
				k.status = types.StatusSuccess
			} else {
				k.status = types.StatusMoreData
			}
			return out, complete
		case st == types.StatusMoreData:
			complete = false
			continue
		case !st.OK():
			k.status = st
			return out, false
		}
		out = append(out, Value{Name: name, Type: typ, Data: append([]byte{}, buf[:n]...)})
	}
}

// GetStringValues returns the REG_SZ and REG_EXPAND_SZ values by name.
func (k *Key) GetStringValues() map[string]string {
	vals, _ := k.GetValues()
	out := make(map[string]string)
	for _, v := range vals {
		if s, err := values.String(v.Type, v.Data); err == nil {
			out[v.Name] = s
		}
	}
	return out
}

// GetNumberValues returns the REG_DWORD, REG_DWORD_BIG_ENDIAN and REG_QWORD
// values by name.
func (k *Key) GetNumberValues() map[string]float64 {
	vals, _ := k.GetValues()
	out := make(map[string]float64)
	for _, v := range vals {
		switch v.Type {
		case types.REG_DWORD, types.REG_DWORD_BE, types.REG_QWORD:
			if f, err := values.Number(v.Type, v.Data); err == nil {
				out[v.Name] = f
			}
		}
	}
	return out
}

// PutValues writes each value in turn and returns how many succeeded. A
// failure does not stop the batch; LastStatus reflects the final write.
func (k *Key) PutValues(vals []Value) int {
	if !k.ready() {
		return 0
	}
	n := 0
	for _, v := range vals {
		if k.set(k.api.SetValue(k.h, v.Name, v.Type, v.Data)) {
			n++
		}
	}
	return n
}

// GetValueNames lists value names in store order.
func (k *Key) GetValueNames() []string {
	if !k.ready() {
		return nil
	}
	var names []string
	for i := 0; ; i++ {
		name, _, _, st := k.api.EnumValue(k.h, i, nil)
		if st == types.StatusNoMoreItems {
			k.status = types.StatusSuccess
			return names
		}
		if !k.set(st) {
			return names
		}
		names = append(names, name)
	}
}
