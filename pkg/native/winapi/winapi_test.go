//go:build windows

package winapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/types"
)

func scratchKey(t *testing.T) native.Handle {
	t.Helper()
	api := New()
	h, _, st := api.CreateKey(native.HKEY_CURRENT_USER, `Software\regkit-test\`+t.Name(), 0)
	require.Equal(t, types.StatusSuccess, st, st.String())
	t.Cleanup(func() {
		api.DeleteTree(h, "")
		api.DeleteKey(h, "")
		api.CloseKey(h)
	})
	return h
}

func TestQueryValue_TwoPhase(t *testing.T) {
	api := New()
	h := scratchKey(t)

	require.Equal(t, types.StatusSuccess, api.SetValue(h, "bin", types.REG_BINARY, []byte{1, 2, 3}))
	typ, n, st := api.QueryValue(h, "bin", nil)
	require.Equal(t, types.StatusSuccess, st)
	assert.Equal(t, types.REG_BINARY, typ)
	assert.Equal(t, 3, n)

	_, n, st = api.QueryValue(h, "bin", []byte{})
	assert.Equal(t, types.StatusMoreData, st)
	assert.Equal(t, 3, n)

	buf := make([]byte, 3)
	_, _, st = api.QueryValue(h, "bin", buf)
	require.Equal(t, types.StatusSuccess, st)
	assert.Equal(t, []byte{1, 2, 3}, buf)

	_, _, st = api.QueryValue(h, "missing", nil)
	assert.Equal(t, types.StatusFileNotFound, st)
}

func TestCreateEnumRename(t *testing.T) {
	api := New()
	h := scratchKey(t)

	child, created, st := api.CreateKey(h, "Child", 0)
	require.Equal(t, types.StatusSuccess, st)
	assert.True(t, created)
	api.CloseKey(child)

	child, created, st = api.CreateKey(h, "Child", 0)
	require.Equal(t, types.StatusSuccess, st)
	assert.False(t, created)
	api.CloseKey(child)

	name, st := api.EnumKey(h, 0)
	require.Equal(t, types.StatusSuccess, st)
	assert.Equal(t, "Child", name)
	_, st = api.EnumKey(h, 1)
	assert.Equal(t, types.StatusNoMoreItems, st)

	require.Equal(t, types.StatusSuccess, api.RenameKey(h, "Child", "Renamed"))
	info, st := api.QueryInfoKey(h)
	require.Equal(t, types.StatusSuccess, st)
	assert.Equal(t, 1, info.SubKeys)
	assert.Equal(t, len("Renamed"), info.MaxSubKeyLen)
}
