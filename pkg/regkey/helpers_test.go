package regkey

import (
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/native/kvstore"
	"github.com/joshuapare/regkit/pkg/types"
)

func newStore(t *testing.T, opts ...func(*kvstore.Options)) *kvstore.Store {
	t.Helper()
	o := kvstore.Options{InMemory: true}
	for _, fn := range opts {
		fn(&o)
	}
	s, err := kvstore.Open(o)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// newTestKey creates HKCU\<t.Name()> and returns it open.
func newTestKey(t *testing.T, api native.API) *Key {
	t.Helper()
	k, err := OpenPath(api, `HKCU\regkit-tests\`+t.Name(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { k.Close() })
	return k
}

// racingAPI lets a test change the store between the two phases of a read.
type racingAPI struct {
	native.API
	// beforeFill runs once, just before the first QueryValue with a buffer.
	beforeFill func()
	// afterInfo runs once, right after the first QueryInfoKey.
	afterInfo func()
}

func (r *racingAPI) QueryValue(h native.Handle, name string, buf []byte) (types.RegType, int, types.Status) {
	if buf != nil && r.beforeFill != nil {
		fn := r.beforeFill
		r.beforeFill = nil
		fn()
	}
	return r.API.QueryValue(h, name, buf)
}

func (r *racingAPI) QueryInfoKey(h native.Handle) (native.KeyInfo, types.Status) {
	info, st := r.API.QueryInfoKey(h)
	if r.afterInfo != nil {
		fn := r.afterInfo
		r.afterInfo = nil
		fn()
	}
	return info, st
}

// countingAPI counts every call that reaches the store.
type countingAPI struct {
	native.API
	calls atomic.Int64
}

func (c *countingAPI) OpenKey(p native.Handle, path string, a types.Access) (native.Handle, types.Status) {
	c.calls.Add(1)
	return c.API.OpenKey(p, path, a)
}

func (c *countingAPI) CloseKey(h native.Handle) types.Status {
	c.calls.Add(1)
	return c.API.CloseKey(h)
}

func (c *countingAPI) QueryValue(h native.Handle, name string, buf []byte) (types.RegType, int, types.Status) {
	c.calls.Add(1)
	return c.API.QueryValue(h, name, buf)
}

func (c *countingAPI) SetValue(h native.Handle, name string, t types.RegType, data []byte) types.Status {
	c.calls.Add(1)
	return c.API.SetValue(h, name, t, data)
}

func (c *countingAPI) EnumKey(h native.Handle, i int) (string, types.Status) {
	c.calls.Add(1)
	return c.API.EnumKey(h, i)
}

func (c *countingAPI) DeleteTree(h native.Handle, sub string) types.Status {
	c.calls.Add(1)
	return c.API.DeleteTree(h, sub)
}

// stickyAPI keeps the first spelling of a value name when it is overwritten,
// the way the Windows registry does. Writes fail while refuseWrites is set.
type stickyAPI struct {
	native.API
	refuseWrites bool
}

func (s *stickyAPI) SetValue(h native.Handle, name string, t types.RegType, data []byte) types.Status {
	if s.refuseWrites {
		return types.StatusAccessDenied
	}
	for i := 0; ; i++ {
		n, _, _, st := s.API.EnumValue(h, i, nil)
		if !st.OK() {
			break
		}
		if strings.EqualFold(n, name) {
			name = n
			break
		}
	}
	return s.API.SetValue(h, name, t, data)
}
