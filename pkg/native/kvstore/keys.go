package kvstore

import (
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/joshuapare/regkit/internal/logger"
	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/types"
)

func (s *Store) OpenKey(parent native.Handle, path string, access types.Access) (native.Handle, types.Status) {
	h, st := s.openKey(parent, path, access)
	return h, s.record("open", st)
}

func (s *Store) openKey(parent native.Handle, path string, access types.Access) (native.Handle, types.Status) {
	pk, st := s.resolve(parent)
	if !st.OK() {
		return native.InvalidHandle, st
	}
	granted, st := s.grant(pk.db, access)
	if !st.OK() {
		return native.InvalidHandle, st
	}
	var id uint64
	st = pk.db.view(func(txn *badger.Txn) error {
		var err error
		id, err = walk(txn, pk.id, splitPath(path))
		return err
	})
	if !st.OK() {
		return native.InvalidHandle, st
	}
	h := s.register(pk.db, id, granted)
	logger.Debug("kvstore: open", "parent", parent, "path", path, "handle", h)
	return h, types.StatusSuccess
}

func (s *Store) CreateKey(parent native.Handle, path string, access types.Access) (native.Handle, bool, types.Status) {
	h, created, st := s.createKey(parent, path, access)
	return h, created, s.record("create", st)
}

func (s *Store) createKey(parent native.Handle, path string, access types.Access) (native.Handle, bool, types.Status) {
	pk, st := s.resolve(parent)
	if !st.OK() {
		return native.InvalidHandle, false, st
	}
	granted, st := s.grant(pk.db, access)
	if !st.OK() {
		return native.InvalidHandle, false, st
	}
	segments := splitPath(path)
	for _, seg := range segments {
		if !s.limits.KeyNameOK(utf16Len(seg)) {
			return native.InvalidHandle, false, types.StatusInvalidParameter
		}
	}

	var (
		id      uint64
		created bool
	)
	create := func(txn *badger.Txn) error {
		created = false
		cur, err := loadNode(txn, pk.id)
		if err != nil {
			return err
		}
		id = pk.id
		depth := cur.Depth
		for _, seg := range segments {
			depth++
			c, ok, err := lookupChild(txn, id, seg)
			if err != nil {
				return err
			}
			if ok {
				id = c.ID
				created = false
				continue
			}
			if !pk.access.Has(types.KEY_CREATE_SUB_KEY) {
				return statusErr(types.StatusAccessDenied)
			}
			if !s.limits.DepthOK(depth) {
				return statusErr(types.StatusInvalidParameter)
			}
			nid, err := pk.db.nextID()
			if err != nil {
				return err
			}
			now := time.Now().UnixNano()
			if err := putRecord(txn, nodeKey(nid), nodeRecord{ID: nid, Parent: id, Name: seg, Depth: depth, LastWrite: now}); err != nil {
				return err
			}
			if err := putRecord(txn, childKey(id, seg), childRecord{ID: nid, Name: seg}); err != nil {
				return err
			}
			if err := touch(txn, id); err != nil {
				return err
			}
			id = nid
			created = true
		}
		return nil
	}

	// Existing paths open without a write transaction, so read-only stores
	// can still "create" keys that are already there.
	st = pk.db.view(func(txn *badger.Txn) error {
		var err error
		id, err = walk(txn, pk.id, segments)
		return err
	})
	if st == types.StatusFileNotFound {
		st = pk.db.update(create)
	}
	if !st.OK() {
		return native.InvalidHandle, false, st
	}
	h := s.register(pk.db, id, granted)
	logger.Debug("kvstore: create", "parent", parent, "path", path, "handle", h, "created", created)
	return h, created, types.StatusSuccess
}

func (s *Store) ConnectRegistry(host string, root native.Handle) (native.Handle, types.Status) {
	h, st := s.connect(host, root)
	return h, s.record("connect", st)
}

func (s *Store) connect(host string, root native.Handle) (native.Handle, types.Status) {
	id, ok := rootIDs[root]
	if !ok || (host != "" && !root.Remotable()) {
		return native.InvalidHandle, types.StatusInvalidHandle
	}
	d, st := s.host(host)
	if !st.OK() {
		return native.InvalidHandle, st
	}
	h := s.register(d, id, s.defaultAccess(d))
	logger.Debug("kvstore: connect", "host", host, "root", root.RootName(), "handle", h)
	return h, types.StatusSuccess
}

func (s *Store) CloseKey(h native.Handle) types.Status {
	return s.record("close", s.closeKey(h))
}

func (s *Store) closeKey(h native.Handle) types.Status {
	if h.IsPredefined() {
		return types.StatusSuccess
	}
	if _, ok := s.handles.LoadAndDelete(h); !ok {
		return types.StatusInvalidHandle
	}
	logger.Debug("kvstore: close", "handle", h)
	return types.StatusSuccess
}
