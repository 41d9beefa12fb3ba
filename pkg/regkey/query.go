package regkey

import "github.com/joshuapare/regkit/pkg/types"

// query reads value name in two phases and decodes it. The first call
// learns type and size; a zero size decodes an empty payload without a
// second call. A value that grows between the calls fails with
// StatusMoreData, one that shrinks or changes type with StatusInvalidData.
// Decode failures record the status carried by the decoder's error.
func query[T any](k *Key, name string, decode func(types.RegType, []byte) (T, error)) (T, bool) {
	var zero T
	if !k.ready() {
		return zero, false
	}
	typ, size, st := k.api.QueryValue(k.h, name, nil)
	if !k.set(st) {
		return zero, false
	}
	data := []byte{}
	if size > 0 {
		data = make([]byte, size)
		typ2, n, st := k.api.QueryValue(k.h, name, data)
		switch {
		case st == types.StatusMoreData:
			k.status = types.StatusMoreData
			return zero, false
		case !st.OK():
			k.status = st
			return zero, false
		case n != size || typ2 != typ:
			k.status = types.StatusInvalidData
			return zero, false
		}
	}
	v, err := decode(typ, data)
	if err != nil {
		k.status = types.StatusOf(err)
		if k.status.OK() {
			k.status = types.StatusInvalidData
		}
		return zero, false
	}
	return v, true
}

func raw(_ types.RegType, data []byte) ([]byte, error) { return data, nil }
