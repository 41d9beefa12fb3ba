package regkey

import (
	"fmt"

	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/types"
)

// Root returns a key on a predefined root such as "HKLM". Closing it is a
// no-op in the store.
func Root(api native.API, name string) (*Key, error) {
	if api == nil {
		return nil, types.InvalidArgument("regkey: nil api")
	}
	h, ok := ParseRoot(name)
	if !ok {
		return nil, types.InvalidArgument(fmt.Sprintf("unknown root key %q", name))
	}
	return FromHandle(api, h, h.RootName()), nil
}

// OpenPath parses `[\\host\]ROOT[\sub\path]`, connects to host if given and
// creates the subpath, returning the open key. Nothing is leaked on
// failure; the returned error carries the failing status.
func OpenPath(api native.API, path string, access types.Access) (*Key, error) {
	if api == nil {
		return nil, types.InvalidArgument("regkey: nil api")
	}
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	k := New(api)
	if !k.Reset(p.Root, p.Subkey, p.Host, access) {
		st := k.LastStatus()
		k.Close()
		return nil, &types.Error{Kind: st.Kind(), Msg: fmt.Sprintf("open %s: %s", p, st.Message()), Status: st}
	}
	return k, nil
}

// OpenExisting is like OpenPath but never creates keys.
func OpenExisting(api native.API, path string, access types.Access) (*Key, error) {
	if api == nil {
		return nil, types.InvalidArgument("regkey: nil api")
	}
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	k := New(api)
	base := p.Root
	if p.Host != "" {
		if k.Connect(p.Root, p.Host) == native.InvalidHandle {
			st := k.LastStatus()
			return nil, &types.Error{Kind: st.Kind(), Msg: fmt.Sprintf("connect %s: %s", p.Host, st.Message()), Status: st}
		}
		base = k.Detach()
		defer api.CloseKey(base)
	}
	if k.Open(base, p.Subkey, access) == native.InvalidHandle {
		st := k.LastStatus()
		return nil, &types.Error{Kind: st.Kind(), Msg: fmt.Sprintf("open %s: %s", p, st.Message()), Status: st}
	}
	k.path = p.String()
	return k, nil
}
