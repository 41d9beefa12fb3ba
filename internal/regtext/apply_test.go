package regtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/pkg/values"
)

func TestApply_AbsolutePaths(t *testing.T) {
	s := newStore(t)
	base := openKey(t, s, `HKCU\Software`)

	ops := []Op{
		OpCreateKey{Path: `HKCU\Software\App\Empty`},
		OpSetValue{Path: `HKEY_CURRENT_USER\Software\App`, Name: "v", Type: types.REG_SZ, Data: values.EncodeString("1")},
		OpSetValue{Path: `HKCU\Software\App`, Name: "gone", Type: types.REG_DWORD, Data: []byte{1, 0, 0, 0}},
		OpDeleteValue{Path: `HKCU\Software\App`, Name: "gone"},
	}
	res := Apply(base, ops)
	require.NoError(t, res.Err())
	assert.Equal(t, 4, res.Applied)

	app, ok := base.OpenSubkey("App", 0)
	require.True(t, ok)
	defer app.Close()
	v, ok := app.GetString("v")
	require.True(t, ok)
	assert.Equal(t, "1", v)
	assert.False(t, app.HasValue("gone"))
	assert.True(t, app.HasSubkey("Empty"))

	res = Apply(base, []Op{OpDeleteKey{Path: `HKCU\Software\App`}})
	require.NoError(t, res.Err())
	assert.False(t, base.HasSubkey("App"))
}

func TestApply_RelativePaths(t *testing.T) {
	s := newStore(t)
	root := openKey(t, s, `HKLM\SOFTWARE\Target`)

	res := Apply(root, []Op{
		OpSetValue{Path: "", Name: "top", Type: types.REG_DWORD, Data: []byte{7, 0, 0, 0}},
		OpSetValue{Path: `Vendor/App`, Name: "x", Type: types.REG_BINARY, Data: []byte{1}},
		OpDeleteKey{Path: `Vendor`},
	})
	require.NoError(t, res.Err())
	assert.Equal(t, 3, res.Applied)

	n, ok := root.GetDWORD("top")
	require.True(t, ok)
	assert.Equal(t, uint32(7), n)
	assert.False(t, root.HasSubkey("Vendor"))
}

func TestApply_Failures(t *testing.T) {
	s := newStore(t)
	root := openKey(t, s, `HKCU\Target`)

	res := Apply(root, []Op{
		OpDeleteKey{Path: `Missing`},
		OpDeleteValue{Path: "", Name: "missing"},
		OpDeleteValue{Path: `Missing\Key`, Name: "v"},
		OpSetValue{Path: "", Name: "bad", Type: types.RegType(0x40), Data: []byte{1}},
		OpDeleteKey{Path: ""},
		OpDeleteKey{Path: "HKLM"},
		OpSetValue{Path: "", Name: "ok", Type: types.REG_BINARY, Data: []byte{1}},
	})
	assert.Equal(t, 4, res.Applied)
	assert.Equal(t, 3, res.Failed)
	require.Len(t, res.Errors, 3)
	assert.ErrorIs(t, res.Errors[0], types.ErrInvalidArgument)
	assert.ErrorIs(t, res.Errors[1], types.ErrAccessDenied)
	assert.ErrorIs(t, res.Errors[2], types.ErrAccessDenied)
	assert.True(t, root.HasValue("ok"))
}
