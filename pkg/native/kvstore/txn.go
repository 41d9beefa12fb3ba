package kvstore

import (
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/joshuapare/regkit/internal/logger"
	"github.com/joshuapare/regkit/pkg/types"
)

// statusErr carries a native status out of a badger transaction.
type statusErr types.Status

func (e statusErr) Error() string { return types.Status(e).Message() }

// toStatus converts a transaction error into a status. fallback is used for
// badger failures that have no registry equivalent.
func toStatus(err error, fallback types.Status) types.Status {
	if err == nil {
		return types.StatusSuccess
	}
	var se statusErr
	if errors.As(err, &se) {
		return types.Status(se)
	}
	switch {
	case errors.Is(err, badger.ErrReadOnlyTxn), errors.Is(err, badger.ErrBlockedWrites):
		return types.StatusAccessDenied
	case errors.Is(err, badger.ErrTxnTooBig):
		return types.StatusNotEnoughMemory
	}
	logger.Debug("kvstore: badger failure", "err", err)
	return fallback
}

func (d *database) view(fn func(txn *badger.Txn) error) types.Status {
	return toStatus(d.db.View(fn), types.StatusCantRead)
}

// update runs fn in a read-write transaction. Writers on one database run
// one at a time; fn must not start another update.
func (d *database) update(fn func(txn *badger.Txn) error) types.Status {
	if d.readOnly {
		return types.StatusAccessDenied
	}
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	return toStatus(d.db.Update(fn), types.StatusCantWrite)
}

func (d *database) nextID() (uint64, error) {
	if d.seq == nil {
		return 0, statusErr(types.StatusAccessDenied)
	}
	n, err := d.seq.Next()
	if err != nil {
		return 0, err
	}
	return n + firstDynamicID, nil
}

func getRecord(txn *badger.Txn, key []byte, v any) (bool, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := item.Value(func(val []byte) error { return decode(val, v) }); err != nil {
		return false, err
	}
	return true, nil
}

func putRecord(txn *badger.Txn, key []byte, v any) error {
	data, err := encode(v)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// loadNode fetches a node. Roots exist implicitly; any other missing node
// has been deleted.
func loadNode(txn *badger.Txn, id uint64) (nodeRecord, error) {
	var n nodeRecord
	ok, err := getRecord(txn, nodeKey(id), &n)
	if err != nil {
		return n, err
	}
	if !ok {
		if isRootID(id) {
			return nodeRecord{ID: id}, nil
		}
		return n, statusErr(types.StatusKeyDeleted)
	}
	return n, nil
}

func lookupChild(txn *badger.Txn, parent uint64, name string) (childRecord, bool, error) {
	var c childRecord
	ok, err := getRecord(txn, childKey(parent, name), &c)
	return c, ok, err
}

// walk follows segments from id. A missing segment yields StatusFileNotFound.
func walk(txn *badger.Txn, id uint64, segments []string) (uint64, error) {
	if _, err := loadNode(txn, id); err != nil {
		return 0, err
	}
	for _, seg := range segments {
		c, ok, err := lookupChild(txn, id, seg)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, statusErr(types.StatusFileNotFound)
		}
		id = c.ID
	}
	return id, nil
}

// touch stamps a node's last write time. Roots get a record on first write.
func touch(txn *badger.Txn, id uint64) error {
	n, err := loadNode(txn, id)
	if err != nil {
		return err
	}
	n.ID = id
	n.LastWrite = time.Now().UnixNano()
	return putRecord(txn, nodeKey(id), n)
}

// children lists the child index of id in case-folded order.
func children(txn *badger.Txn, id uint64) ([]childRecord, error) {
	var out []childRecord
	err := iterate(txn, childPrefix(id), func(_ []byte, val []byte) error {
		var c childRecord
		if err := decode(val, &c); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	return out, err
}

// iterate calls fn for every key under prefix in key order. fn must not
// retain val.
func iterate(txn *badger.Txn, prefix []byte, fn func(key, val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		if err := item.Value(func(val []byte) error { return fn(item.Key(), val) }); err != nil {
			return err
		}
	}
	return nil
}

// nth returns the value of the index-th key under prefix.
func nth(txn *badger.Txn, prefix []byte, index int, v any) (bool, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()
	i := 0
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if i == index {
			return true, it.Item().Value(func(val []byte) error { return decode(val, v) })
		}
		i++
	}
	return false, nil
}

// deleteContents removes every value and every descendant of id, leaving id
// itself in place.
func deleteContents(txn *badger.Txn, id uint64) error {
	var keys [][]byte
	if err := iterate(txn, valuePrefix(id), func(key, _ []byte) error {
		keys = append(keys, append([]byte(nil), key...))
		return nil
	}); err != nil {
		return err
	}
	kids, err := children(txn, id)
	if err != nil {
		return err
	}
	for _, c := range kids {
		if err := deleteContents(txn, c.ID); err != nil {
			return err
		}
		keys = append(keys, childKey(id, c.Name), nodeKey(c.ID))
	}
	for _, k := range keys {
		if err := txn.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
