package kvstore

import (
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/joshuapare/regkit/internal/logger"
	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/types"
)

const deleteAccess = types.KEY_QUERY_VALUE | types.KEY_ENUMERATE_SUB_KEYS | types.KEY_SET_VALUE

func (s *Store) DeleteTree(h native.Handle, subkey string) types.Status {
	return s.record("delete_tree", s.deleteTree(h, subkey))
}

func (s *Store) deleteTree(h native.Handle, subkey string) types.Status {
	k, st := s.resolveWith(h, deleteAccess)
	if !st.OK() {
		return st
	}
	segments := splitPath(subkey)
	return k.db.update(func(txn *badger.Txn) error {
		target, err := walk(txn, k.id, segments)
		if err != nil {
			return err
		}
		if err := deleteContents(txn, target); err != nil {
			return err
		}
		if len(segments) == 0 {
			return touch(txn, target)
		}
		return unlink(txn, target)
	})
}

// unlink removes a node and its entry in the parent's child index.
func unlink(txn *badger.Txn, id uint64) error {
	n, err := loadNode(txn, id)
	if err != nil {
		return err
	}
	if err := txn.Delete(childKey(n.Parent, n.Name)); err != nil {
		return err
	}
	if err := txn.Delete(nodeKey(id)); err != nil {
		return err
	}
	return touch(txn, n.Parent)
}

func (s *Store) DeleteKey(h native.Handle, subkey string) types.Status {
	return s.record("delete_key", s.deleteKey(h, subkey))
}

func (s *Store) deleteKey(h native.Handle, subkey string) types.Status {
	k, st := s.resolveWith(h, deleteAccess)
	if !st.OK() {
		return st
	}
	return k.db.update(func(txn *badger.Txn) error {
		target, err := walk(txn, k.id, splitPath(subkey))
		if err != nil {
			return err
		}
		if isRootID(target) {
			return statusErr(types.StatusAccessDenied)
		}
		kids, err := children(txn, target)
		if err != nil {
			return err
		}
		if len(kids) > 0 {
			return statusErr(types.StatusAccessDenied)
		}
		if err := deleteContents(txn, target); err != nil {
			return err
		}
		return unlink(txn, target)
	})
}

// snapshot is an in-memory copy of a subtree, used to copy between
// databases and into a key's own descendants.
type snapshot struct {
	name     string
	values   []valueRecord
	children []*snapshot
}

func readSnapshot(txn *badger.Txn, id uint64, name string) (*snapshot, error) {
	snap := &snapshot{name: name}
	if err := iterate(txn, valuePrefix(id), func(_, val []byte) error {
		var rec valueRecord
		if err := decode(val, &rec); err != nil {
			return err
		}
		snap.values = append(snap.values, rec)
		return nil
	}); err != nil {
		return nil, err
	}
	kids, err := children(txn, id)
	if err != nil {
		return nil, err
	}
	for _, c := range kids {
		child, err := readSnapshot(txn, c.ID, c.Name)
		if err != nil {
			return nil, err
		}
		snap.children = append(snap.children, child)
	}
	return snap, nil
}

func (snap *snapshot) height() int {
	h := 0
	for _, c := range snap.children {
		h = max(h, c.height()+1)
	}
	return h
}

func (s *Store) writeSnapshot(txn *badger.Txn, d *database, id uint64, depth int, snap *snapshot) error {
	for _, rec := range snap.values {
		if err := putRecord(txn, valueKey(id, rec.Name), rec); err != nil {
			return err
		}
	}
	if err := touch(txn, id); err != nil {
		return err
	}
	for _, c := range snap.children {
		existing, ok, err := lookupChild(txn, id, c.name)
		if err != nil {
			return err
		}
		cid := existing.ID
		if !ok {
			if cid, err = d.nextID(); err != nil {
				return err
			}
			rec := nodeRecord{ID: cid, Parent: id, Name: c.name, Depth: depth + 1, LastWrite: time.Now().UnixNano()}
			if err := putRecord(txn, nodeKey(cid), rec); err != nil {
				return err
			}
			if err := putRecord(txn, childKey(id, c.name), childRecord{ID: cid, Name: c.name}); err != nil {
				return err
			}
		}
		if err := s.writeSnapshot(txn, d, cid, depth+1, c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) CopyTree(src native.Handle, subkey string, dst native.Handle) types.Status {
	return s.record("copy_tree", s.copyTree(src, subkey, dst))
}

func (s *Store) copyTree(src native.Handle, subkey string, dst native.Handle) types.Status {
	sk, st := s.resolveWith(src, types.KEY_QUERY_VALUE|types.KEY_ENUMERATE_SUB_KEYS)
	if !st.OK() {
		return st
	}
	dk, st := s.resolveWith(dst, types.KEY_SET_VALUE|types.KEY_CREATE_SUB_KEY)
	if !st.OK() {
		return st
	}

	var snap *snapshot
	st = sk.db.view(func(txn *badger.Txn) error {
		id, err := walk(txn, sk.id, splitPath(subkey))
		if err != nil {
			return err
		}
		snap, err = readSnapshot(txn, id, "")
		return err
	})
	if !st.OK() {
		return st
	}

	return dk.db.update(func(txn *badger.Txn) error {
		n, err := loadNode(txn, dk.id)
		if err != nil {
			return err
		}
		if !s.limits.DepthOK(n.Depth + snap.height()) {
			return statusErr(types.StatusInvalidParameter)
		}
		return s.writeSnapshot(txn, dk.db, dk.id, n.Depth, snap)
	})
}

func (s *Store) RenameKey(h native.Handle, subkey, newName string) types.Status {
	return s.record("rename_key", s.renameKey(h, subkey, newName))
}

func (s *Store) renameKey(h native.Handle, subkey, newName string) types.Status {
	k, st := s.resolveWith(h, types.KEY_SET_VALUE)
	if !st.OK() {
		return st
	}
	if !validName(newName) || !s.limits.KeyNameOK(utf16Len(newName)) {
		return types.StatusInvalidParameter
	}
	return k.db.update(func(txn *badger.Txn) error {
		target, err := walk(txn, k.id, splitPath(subkey))
		if err != nil {
			return err
		}
		if isRootID(target) {
			return statusErr(types.StatusAccessDenied)
		}
		n, err := loadNode(txn, target)
		if err != nil {
			return err
		}
		if sib, ok, err := lookupChild(txn, n.Parent, newName); err != nil {
			return err
		} else if ok && sib.ID != target {
			return statusErr(types.StatusAlreadyExists)
		}
		if err := txn.Delete(childKey(n.Parent, n.Name)); err != nil {
			return err
		}
		n.Name = newName
		n.LastWrite = time.Now().UnixNano()
		if err := putRecord(txn, nodeKey(target), n); err != nil {
			return err
		}
		return putRecord(txn, childKey(n.Parent, newName), childRecord{ID: target, Name: newName})
	})
}

func (s *Store) FlushKey(h native.Handle) types.Status {
	return s.record("flush", s.flushKey(h))
}

func (s *Store) flushKey(h native.Handle) types.Status {
	k, st := s.resolve(h)
	if !st.OK() {
		return st
	}
	if k.db.readOnly || s.opts.InMemory {
		return types.StatusSuccess
	}
	if err := k.db.db.Sync(); err != nil {
		logger.Warn("kvstore: sync failed", "host", k.db.host, "err", err)
		return types.StatusCantWrite
	}
	logger.Debug("kvstore: flush", "handle", h, "host", k.db.host)
	return types.StatusSuccess
}
