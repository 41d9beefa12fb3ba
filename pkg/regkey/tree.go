package regkey

import (
	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/types"
)

// OpenSubkey opens an existing child as an independent key. The parent
// keeps its own handle and records the status.
func (k *Key) OpenSubkey(name string, access types.Access) (*Key, bool) {
	if !k.ready() {
		return nil, false
	}
	h, st := k.api.OpenKey(k.h, NormalizePath(name), access)
	if !k.set(st) {
		return nil, false
	}
	return FromHandle(k.api, h, joinPath(k.path, name)), true
}

// CreateSubkey opens or creates a child as an independent key.
func (k *Key) CreateSubkey(name string, access types.Access) (*Key, bool) {
	if !k.ready() {
		return nil, false
	}
	h, created, st := k.api.CreateKey(k.h, NormalizePath(name), access)
	if !k.set(st) {
		return nil, false
	}
	child := FromHandle(k.api, h, joinPath(k.path, name))
	child.created = created
	return child, true
}

// DeleteSubkey removes a child and everything beneath it.
func (k *Key) DeleteSubkey(name string) bool {
	if !k.ready() {
		return false
	}
	name = NormalizePath(name)
	if name == "" {
		k.status = types.StatusInvalidParameter
		return false
	}
	return k.set(k.api.DeleteTree(k.h, name))
}

// DeleteKey removes this key with its whole subtree. The handle stays
// owned and should be closed by the caller. Root keys are refused, also
// when reached through a handle of their own.
func (k *Key) DeleteKey() bool {
	if !k.ready() {
		return false
	}
	if k.h.IsPredefined() || isRootPath(k.path) {
		k.status = types.StatusAccessDenied
		return false
	}
	if !k.set(k.api.DeleteTree(k.h, "")) {
		return false
	}
	return k.set(k.api.DeleteKey(k.h, ""))
}

// HasSubkey probes for a child by opening and closing it.
func (k *Key) HasSubkey(name string) bool {
	return k.probe(name, types.KEY_QUERY_VALUE)
}

// IsSubkeyWritable probes whether a child can be opened with KEY_WRITE.
func (k *Key) IsSubkeyWritable(name string) bool {
	return k.probe(name, types.KEY_WRITE)
}

func (k *Key) probe(name string, access types.Access) bool {
	if !k.ready() {
		return false
	}
	h, st := k.api.OpenKey(k.h, NormalizePath(name), access)
	if !k.set(st) {
		return false
	}
	k.api.CloseKey(h)
	return true
}

// GetSubkeyNames lists child names in store order.
func (k *Key) GetSubkeyNames() []string {
	if !k.ready() {
		return nil
	}
	var names []string
	for i := 0; ; i++ {
		name, st := k.api.EnumKey(k.h, i)
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

// Info returns the key's metadata.
func (k *Key) Info() (native.KeyInfo, bool) {
	if !k.ready() {
		return native.KeyInfo{}, false
	}
	info, st := k.api.QueryInfoKey(k.h)
	return info, k.set(st)
}

func isRootPath(path string) bool {
	p, err := ParsePath(path)
	return err == nil && p.Subkey == ""
}
