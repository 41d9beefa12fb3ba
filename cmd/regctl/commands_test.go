package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/types"
)

func TestSetAndGet(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		args     []string
		want     string
		wantJSON any
	}{
		{name: "string", typ: "REG_SZ", args: []string{"hello"}, want: "hello", wantJSON: "hello"},
		{name: "dword", typ: "dword", args: []string{"0x2a"}, want: "0x0000002a (42)", wantJSON: float64(42)},
		{name: "qword", typ: "REG_QWORD", args: []string{"5"}, want: "0x0000000000000005 (5)", wantJSON: float64(5)},
		{name: "multi", typ: "multi_sz", args: []string{"a", "b"}, want: "a\nb", wantJSON: []any{"a", "b"}},
		{name: "binary", typ: "binary", args: []string{"de,ad"}, want: "dead", wantJSON: "3q0="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useStore(t)
			setType = tt.typ
			mustRun(t, runSet, append([]string{`HKCU\Software\App`, "v"}, tt.args...)...)

			out := mustRun(t, runGet, `HKCU\Software\App`, "v")
			assert.Equal(t, tt.want+"\n", out)

			jsonOut = true
			var got valueJSON
			decodeJSON(t, mustRun(t, runGet, `HKCU\Software\App`, "v"), &got)
			assert.Equal(t, "v", got.Name)
			assert.Equal(t, tt.wantJSON, got.Data)
		})
	}
}

func TestGet_Errors(t *testing.T) {
	useStore(t)
	mustRun(t, runSet, `HKCU\Software\App`, "v", "x")

	_, err := captureOutput(t, func() error { return runGet([]string{`HKCU\Software\Missing`, "v"}) })
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = captureOutput(t, func() error { return runGet([]string{`HKCU\Software\App`, "missing"}) })
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = captureOutput(t, func() error { return runGet([]string{`HKXX\Software`, "v"}) })
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	setType = "REG_BOGUS"
	_, err = captureOutput(t, func() error { return runSet([]string{`HKCU\Software\App`, "v", "x"}) })
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestKeysAndValues(t *testing.T) {
	useStore(t)
	for _, p := range []string{`HKCU\Root\b`, `HKCU\Root\A\Deep`, `HKCU\Root\c`} {
		mustRun(t, runSet, p, "", "x")
	}

	assert.Equal(t, "A\nb\nc\n", mustRun(t, runKeys, `HKCU\Root`))

	keysRecursive = true
	assert.Equal(t, "A\nA\\Deep\nb\nc\n", mustRun(t, runKeys, `HKCU\Root`))

	jsonOut = true
	var names []string
	decodeJSON(t, mustRun(t, runKeys, `HKCU\Root\c`), &names)
	assert.Empty(t, names)

	jsonOut = false
	out := mustRun(t, runValues, `HKCU\Root\b`)
	assert.Contains(t, out, "(Default)")
	assert.Contains(t, out, "REG_SZ")

	jsonOut = true
	var vals []valueJSON
	decodeJSON(t, mustRun(t, runValues, `HKCU\Root\b`), &vals)
	require.Len(t, vals, 1)
	assert.Equal(t, "", vals[0].Name)
	assert.Equal(t, "REG_SZ", vals[0].Type)
	assert.Equal(t, 4, vals[0].Size)
}

func TestDelete(t *testing.T) {
	useStore(t)
	mustRun(t, runSet, `HKCU\App\Sub`, "a", "1")
	mustRun(t, runSet, `HKCU\App\Sub`, "b", "2")

	mustRun(t, runDeleteValue, `HKCU\App\Sub`, "a")
	_, err := captureOutput(t, func() error { return runGet([]string{`HKCU\App\Sub`, "a"}) })
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = captureOutput(t, func() error { return runDeleteValue([]string{`HKCU\App\Sub`, "a"}) })
	assert.ErrorIs(t, err, types.ErrNotFound)

	mustRun(t, runDeleteKey, `HKCU\App`)
	assert.Equal(t, "", mustRun(t, runKeys, `HKCU`))

	_, err = captureOutput(t, func() error { return runDeleteKey([]string{`HKCU`}) })
	assert.ErrorIs(t, err, types.ErrAccessDenied)
}

func TestCopyAndRename(t *testing.T) {
	useStore(t)
	mustRun(t, runSet, `HKCU\Src\Child`, "v", "deep")
	mustRun(t, runSet, `HKCU\Src`, "top", "1")

	mustRun(t, runCopy, `HKCU\Src`, `HKLM\Dst`)
	assert.Equal(t, "deep\n", mustRun(t, runGet, `HKLM\Dst\Child`, "v"))
	assert.Equal(t, "1\n", mustRun(t, runGet, `HKLM\Dst`, "top"))

	mustRun(t, runRename, `HKLM\Dst`, "Moved")
	assert.Equal(t, "1\n", mustRun(t, runGet, `HKLM\Moved`, "top"))

	_, err := captureOutput(t, func() error { return runRename([]string{`HKCU\Src\Child`, "Child"}) })
	assert.NoError(t, err)
	mustRun(t, runSet, `HKCU\Src\Other`, "", "x")
	_, err = captureOutput(t, func() error { return runRename([]string{`HKCU\Src\Other`, "child"}) })
	assert.ErrorIs(t, err, types.ErrExists)

	renameValue = "top"
	mustRun(t, runRename, `HKLM\Moved`, "renamed")
	assert.Equal(t, "1\n", mustRun(t, runGet, `HKLM\Moved`, "renamed"))
}

func TestExportImport(t *testing.T) {
	useStore(t)
	mustRun(t, runSet, `HKCU\Software\App\Sub`, "name", "value")
	setType = "dword"
	mustRun(t, runSet, `HKCU\Software\App`, "count", "7")

	file := filepath.Join(t.TempDir(), "app.reg")
	exportUTF16 = true
	mustRun(t, runExport, `HKCU\Software\App`, file)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFE}, data[:2])

	exportUTF16 = false
	out := mustRun(t, runExport, `HKCU\Software\App`)
	assert.True(t, strings.HasPrefix(out, "Windows Registry Editor Version 5.00\r\n"))
	assert.Contains(t, out, `"count"=dword:00000007`)

	importPrefix, importTarget = `HKEY_CURRENT_USER\Software\App`, `HKCU\Software\Clone`
	mustRun(t, runImport, file)
	assert.Equal(t, "value\n", mustRun(t, runGet, `HKCU\Software\Clone\Sub`, "name"))

	importDryRun, jsonOut = true, true
	var res importJSON
	decodeJSON(t, mustRun(t, runImport, file), &res)
	assert.Equal(t, 4, res.Operations)

	importTarget = ""
	_, err = captureOutput(t, func() error { return runImport([]string{file}) })
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestImport_Absolute(t *testing.T) {
	useStore(t)
	file := filepath.Join(t.TempDir(), "abs.reg")
	text := "Windows Registry Editor Version 5.00\r\n\r\n" +
		"[HKEY_LOCAL_MACHINE\\SOFTWARE\\Vendor]\r\n" +
		"\"ok\"=\"yes\"\r\n" +
		"\"bad\"=hex(40):00\r\n"
	require.NoError(t, os.WriteFile(file, []byte(text), 0o644))

	out, err := captureOutput(t, func() error { return runImport([]string{file}) })
	require.Error(t, err)
	assert.Contains(t, out, "Applied 2 of 3 operations")
	assert.Equal(t, "yes\n", mustRun(t, runGet, `HKLM\SOFTWARE\Vendor`, "ok"))
}

func TestStats(t *testing.T) {
	useStore(t)
	mustRun(t, runSet, `HKCU\S\A`, "a", "x")
	setType = "dword"
	mustRun(t, runSet, `HKCU\S\A\B`, "n", "1")
	mustRun(t, runSet, `HKCU\S\A\B`, "m", "2")

	jsonOut = true
	var st treeStats
	decodeJSON(t, mustRun(t, runStats, `HKCU\S`), &st)
	assert.Equal(t, 3, st.Keys)
	assert.Equal(t, 3, st.Values)
	assert.Equal(t, 4+4+4, st.Bytes)
	assert.Equal(t, 2, st.MaxDepth)
	assert.Equal(t, map[string]int{"REG_SZ": 1, "REG_DWORD": 2}, st.Types)

	jsonOut, statsMetrics = false, true
	out := mustRun(t, runStats, `HKCU\S`)
	assert.Contains(t, out, "Keys:      3")
	assert.Contains(t, out, `regkit_native_calls_total{op="enum_key"`)
}

func TestReadOnlyStore(t *testing.T) {
	useStore(t)
	mustRun(t, runSet, `HKCU\App`, "v", "x")

	viper.Set("read-only", true)
	assert.Equal(t, "x\n", mustRun(t, runGet, `HKCU\App`, "v"))
	_, err := captureOutput(t, func() error { return runSet([]string{`HKCU\App`, "v", "y"}) })
	assert.ErrorIs(t, err, types.ErrAccessDenied)
}

func TestLoadConfig(t *testing.T) {
	useStore(t)
	viper.Set("hosts", "server=, backup = /tmp/backup")
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, backendStore, cfg.Backend)
	assert.Equal(t, map[string]string{"server": "", "backup": "/tmp/backup"}, cfg.Hosts)

	viper.Set("hosts", "=dir")
	_, err = loadConfig()
	assert.Error(t, err)

	viper.Set("hosts", "")
	viper.Set("backend", "floppy")
	_, err = loadConfig()
	assert.Error(t, err)

	if runtime.GOOS != "windows" {
		viper.Set("backend", backendNative)
		_, err = captureOutput(t, func() error { return runGet([]string{"HKCU", "v"}) })
		assert.ErrorIs(t, err, errNoNative)
	}
}

func TestRemoteHost(t *testing.T) {
	useStore(t)
	viper.Set("hosts", "server=")
	_, err := captureOutput(t, func() error { return runKeys([]string{`\\server\HKLM`}) })
	assert.NoError(t, err)

	_, err = captureOutput(t, func() error { return runKeys([]string{`\\server\HKCU`}) })
	assert.Error(t, err)
	_, err = captureOutput(t, func() error { return runKeys([]string{`\\nowhere\HKLM`}) })
	assert.Error(t, err)
}

func TestInitConfig_Env(t *testing.T) {
	useStore(t)
	viper.Reset()
	dir, logs := t.TempDir(), filepath.Join(t.TempDir(), "logs")
	t.Setenv("REGKIT_BACKEND", backendStore)
	t.Setenv("REGKIT_STORE", dir)
	t.Setenv("REGKIT_LOG_DIR", logs)
	t.Setenv("REGKIT_LOG_LEVEL", "debug")

	require.NoError(t, initConfig(rootCmd, nil))
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Store)

	mustRun(t, runSet, `HKCU\Env`, "v", "x")
	entries, err := os.ReadDir(logs)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	t.Setenv("REGKIT_LOG_LEVEL", "chatty")
	assert.Error(t, initConfig(rootCmd, nil))
	t.Setenv("REGKIT_LOG_LEVEL", "")
	t.Setenv("REGKIT_LOG_DIR", "")
	require.NoError(t, initConfig(rootCmd, nil))
}
