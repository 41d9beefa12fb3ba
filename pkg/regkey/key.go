package regkey

import (
	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/types"
)

// noCopy makes go vet's copylocks check flag copies of Key.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Key is a handle to a single registry key. Use it through a pointer; a
// copied Key would share and double-close its native handle.
type Key struct {
	_ noCopy

	api     native.API
	h       native.Handle
	status  types.Status
	path    string
	created bool
}

// Value is one named, typed value of a key.
type Value struct {
	Name string
	Type types.RegType
	Data []byte
}

// New returns a key that is not open yet.
func New(api native.API) *Key {
	return &Key{api: api}
}

// FromHandle wraps an already open handle. The key takes ownership and
// will close it.
func FromHandle(api native.API, h native.Handle, path string) *Key {
	return &Key{api: api, h: h, path: path}
}

// set records st and reports whether it is a success.
func (k *Key) set(st types.Status) bool {
	k.status = st
	return st.OK()
}

// ready checks that the key is open, recording StatusInvalidHandle if not.
func (k *Key) ready() bool {
	if k.api == nil || k.h == native.InvalidHandle {
		k.status = types.StatusInvalidHandle
		return false
	}
	return true
}

// release closes the owned handle, if any, recording the close status.
func (k *Key) release() bool {
	if k.h == native.InvalidHandle {
		return false
	}
	ok := k.api == nil || k.set(k.api.CloseKey(k.h))
	k.h = native.InvalidHandle
	k.created = false
	return ok
}

// Open replaces the owned handle with parent\path opened for access. Access
// 0 requests the store default. It returns the new handle, or
// InvalidHandle on failure.
func (k *Key) Open(parent native.Handle, path string, access types.Access) native.Handle {
	if k.api == nil {
		k.status = types.StatusInvalidHandle
		return native.InvalidHandle
	}
	h, st := k.api.OpenKey(parent, NormalizePath(path), access)
	base := k.pathOf(parent)
	k.release()
	k.set(st)
	if !st.OK() {
		return native.InvalidHandle
	}
	k.h = h
	k.path = joinPath(base, path)
	return h
}

// Create is like Open but creates the key and any missing intermediate
// keys. Existing keys are opened unchanged; Created reports which happened.
func (k *Key) Create(parent native.Handle, path string, access types.Access) native.Handle {
	if k.api == nil {
		k.status = types.StatusInvalidHandle
		return native.InvalidHandle
	}
	h, created, st := k.api.CreateKey(parent, NormalizePath(path), access)
	base := k.pathOf(parent)
	k.release()
	k.set(st)
	if !st.OK() {
		return native.InvalidHandle
	}
	k.h = h
	k.created = created
	k.path = joinPath(base, path)
	return h
}

// pathOf names parent for display: this key's own path when parent is its
// handle, the root name for predefined handles, and "" otherwise.
func (k *Key) pathOf(parent native.Handle) string {
	if parent == k.h && k.h != native.InvalidHandle {
		return k.path
	}
	return parent.RootName()
}

// Created reports whether the last Create made a new key.
func (k *Key) Created() bool { return k.created }

// Connect replaces the owned handle with root on a remote host.
func (k *Key) Connect(root native.Handle, host string) native.Handle {
	if k.api == nil {
		k.status = types.StatusInvalidHandle
		return native.InvalidHandle
	}
	k.release()
	h, st := k.api.ConnectRegistry(host, root)
	if !k.set(st) {
		return native.InvalidHandle
	}
	k.h = h
	k.path = hostPrefix(host) + root.RootName()
	return h
}

// Attach takes ownership of h without closing the current handle, which is
// returned to the caller. Path is only known afterwards when h is a
// predefined root; use AttachPath to carry the path of any other handle.
func (k *Key) Attach(h native.Handle) native.Handle {
	return k.AttachPath(h, h.RootName())
}

// AttachPath is Attach for a handle whose full path is known.
func (k *Key) AttachPath(h native.Handle, path string) native.Handle {
	prev := k.h
	k.h = h
	k.created = false
	k.path = path
	return prev
}

// Detach gives up ownership of the handle and returns it.
func (k *Key) Detach() native.Handle { return k.Attach(native.InvalidHandle) }

// Close releases the owned handle. It returns false when the key was not
// open or the store refused the close. Calling it again is harmless.
func (k *Key) Close() bool { return k.release() }

// Reset closes the key, then opens root, on host when host is non-empty,
// and creates path below it when path is non-empty. Intermediate remote
// handles are always released.
func (k *Key) Reset(root native.Handle, path, host string, access types.Access) bool {
	k.release()
	k.status = types.StatusSuccess
	if k.api == nil {
		k.status = types.StatusInvalidHandle
		return false
	}
	base := root
	if host != "" {
		if k.Connect(root, host) == native.InvalidHandle {
			return false
		}
		base = k.Detach()
	}
	if NormalizePath(path) == "" {
		if base == root {
			k.Attach(root)
		} else {
			k.h = base
		}
		k.path = hostPrefix(host) + root.RootName()
		return true
	}

	h, created, st := k.api.CreateKey(base, NormalizePath(path), access)
	if base != root {
		k.api.CloseKey(base)
	}
	if !k.set(st) {
		return false
	}
	k.h = h
	k.created = created
	k.path = joinPath(hostPrefix(host)+root.RootName(), path)
	return true
}

// IsOpen reports whether the key owns a handle.
func (k *Key) IsOpen() bool { return k.h != native.InvalidHandle }

// Handle returns the owned handle without giving up ownership.
func (k *Key) Handle() native.Handle { return k.h }

// API returns the store the key talks to.
func (k *Key) API() native.API { return k.api }

// LastStatus returns the status of the most recent store call.
func (k *Key) LastStatus() types.Status { return k.status }

// LastError returns the most recent failure as a *types.Error, or nil.
func (k *Key) LastError() error { return types.StatusError(k.status) }

// Path returns the logical path the key was opened with.
func (k *Key) Path() string { return k.path }

func (k *Key) String() string { return k.path }

// CopyTree copies every subkey and value of src into this key, replacing
// values that already exist.
func (k *Key) CopyTree(src native.Handle) bool {
	if !k.ready() {
		return false
	}
	return k.set(k.api.CopyTree(src, "", k.h))
}

// Rename renames this key in place. It fails with StatusAlreadyExists when
// a sibling already uses newName.
func (k *Key) Rename(newName string) bool {
	if !k.ready() {
		return false
	}
	if !k.set(k.api.RenameKey(k.h, "", newName)) {
		return false
	}
	k.path = joinPath(parentPath(k.path), newName)
	return true
}

// Flush writes the key's pending changes to durable storage.
func (k *Key) Flush() bool {
	if !k.ready() {
		return false
	}
	return k.set(k.api.FlushKey(k.h))
}

// IsWritable probes whether the key can be reopened with KEY_WRITE.
func (k *Key) IsWritable() bool {
	if !k.ready() {
		return false
	}
	probe, st := k.api.OpenKey(k.h, "", types.KEY_WRITE)
	if !k.set(st) {
		return false
	}
	k.api.CloseKey(probe)
	return true
}
