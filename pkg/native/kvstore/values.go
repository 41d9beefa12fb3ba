package kvstore

import (
	"github.com/dgraph-io/badger/v4"

	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/types"
)

// fill applies the two-phase buffer contract shared by QueryValue and
// EnumValue.
func fill(buf, data []byte) types.Status {
	if buf == nil {
		return types.StatusSuccess
	}
	if len(buf) < len(data) {
		return types.StatusMoreData
	}
	copy(buf, data)
	return types.StatusSuccess
}

func (s *Store) QueryValue(h native.Handle, name string, buf []byte) (types.RegType, int, types.Status) {
	t, n, st := s.queryValue(h, name, buf)
	return t, n, s.record("query_value", st)
}

func (s *Store) queryValue(h native.Handle, name string, buf []byte) (types.RegType, int, types.Status) {
	k, st := s.resolveWith(h, types.KEY_QUERY_VALUE)
	if !st.OK() {
		return types.REG_NONE, 0, st
	}
	var rec valueRecord
	st = k.db.view(func(txn *badger.Txn) error {
		if _, err := loadNode(txn, k.id); err != nil {
			return err
		}
		ok, err := getRecord(txn, valueKey(k.id, name), &rec)
		if err != nil {
			return err
		}
		if !ok {
			return statusErr(types.StatusFileNotFound)
		}
		return nil
	})
	if !st.OK() {
		return types.REG_NONE, 0, st
	}
	return types.RegType(rec.Type), len(rec.Data), fill(buf, rec.Data)
}

func (s *Store) SetValue(h native.Handle, name string, typ types.RegType, data []byte) types.Status {
	return s.record("set_value", s.setValue(h, name, typ, data))
}

func (s *Store) setValue(h native.Handle, name string, typ types.RegType, data []byte) types.Status {
	k, st := s.resolveWith(h, types.KEY_SET_VALUE)
	if !st.OK() {
		return st
	}
	if !typ.Known() || !s.limits.ValueNameOK(utf16Len(name)) || !s.limits.ValueSizeOK(len(data)) {
		return types.StatusInvalidParameter
	}
	rec := valueRecord{Name: name, Type: uint32(typ), Data: append([]byte{}, data...)}
	return k.db.update(func(txn *badger.Txn) error {
		if err := touch(txn, k.id); err != nil {
			return err
		}
		return putRecord(txn, valueKey(k.id, name), rec)
	})
}

func (s *Store) DeleteValue(h native.Handle, name string) types.Status {
	return s.record("delete_value", s.deleteValue(h, name))
}

func (s *Store) deleteValue(h native.Handle, name string) types.Status {
	k, st := s.resolveWith(h, types.KEY_SET_VALUE)
	if !st.OK() {
		return st
	}
	return k.db.update(func(txn *badger.Txn) error {
		if _, err := loadNode(txn, k.id); err != nil {
			return err
		}
		key := valueKey(k.id, name)
		if _, err := txn.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return statusErr(types.StatusFileNotFound)
			}
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return touch(txn, k.id)
	})
}

func (s *Store) EnumKey(h native.Handle, index int) (string, types.Status) {
	name, st := s.enumKey(h, index)
	return name, s.record("enum_key", st)
}

func (s *Store) enumKey(h native.Handle, index int) (string, types.Status) {
	k, st := s.resolveWith(h, types.KEY_ENUMERATE_SUB_KEYS)
	if !st.OK() {
		return "", st
	}
	if index < 0 {
		return "", types.StatusInvalidParameter
	}
	var c childRecord
	st = k.db.view(func(txn *badger.Txn) error {
		if _, err := loadNode(txn, k.id); err != nil {
			return err
		}
		ok, err := nth(txn, childPrefix(k.id), index, &c)
		if err != nil {
			return err
		}
		if !ok {
			return statusErr(types.StatusNoMoreItems)
		}
		return nil
	})
	return c.Name, st
}

func (s *Store) EnumValue(h native.Handle, index int, buf []byte) (string, types.RegType, int, types.Status) {
	name, t, n, st := s.enumValue(h, index, buf)
	return name, t, n, s.record("enum_value", st)
}

func (s *Store) enumValue(h native.Handle, index int, buf []byte) (string, types.RegType, int, types.Status) {
	k, st := s.resolveWith(h, types.KEY_QUERY_VALUE)
	if !st.OK() {
		return "", types.REG_NONE, 0, st
	}
	if index < 0 {
		return "", types.REG_NONE, 0, types.StatusInvalidParameter
	}
	var rec valueRecord
	st = k.db.view(func(txn *badger.Txn) error {
		if _, err := loadNode(txn, k.id); err != nil {
			return err
		}
		ok, err := nth(txn, valuePrefix(k.id), index, &rec)
		if err != nil {
			return err
		}
		if !ok {
			return statusErr(types.StatusNoMoreItems)
		}
		return nil
	})
	if !st.OK() {
		return "", types.REG_NONE, 0, st
	}
	return rec.Name, types.RegType(rec.Type), len(rec.Data), fill(buf, rec.Data)
}

func (s *Store) QueryInfoKey(h native.Handle) (native.KeyInfo, types.Status) {
	info, st := s.queryInfoKey(h)
	return info, s.record("query_info", st)
}

func (s *Store) queryInfoKey(h native.Handle) (native.KeyInfo, types.Status) {
	k, st := s.resolveWith(h, types.KEY_QUERY_VALUE)
	if !st.OK() {
		return native.KeyInfo{}, st
	}
	var info native.KeyInfo
	st = k.db.view(func(txn *badger.Txn) error {
		n, err := loadNode(txn, k.id)
		if err != nil {
			return err
		}
		info.LastWrite = n.lastWrite()
		kids, err := children(txn, k.id)
		if err != nil {
			return err
		}
		info.SubKeys = len(kids)
		for _, c := range kids {
			info.MaxSubKeyLen = max(info.MaxSubKeyLen, utf16Len(c.Name))
		}
		return iterate(txn, valuePrefix(k.id), func(_, val []byte) error {
			var rec valueRecord
			if err := decode(val, &rec); err != nil {
				return err
			}
			info.Values++
			info.MaxValueNameLen = max(info.MaxValueNameLen, utf16Len(rec.Name))
			info.MaxValueLen = max(info.MaxValueLen, len(rec.Data))
			return nil
		})
	})
	return info, st
}
