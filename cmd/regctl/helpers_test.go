package main

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// useStore points the CLI at a fresh on-disk store and resets global flags.
func useStore(t *testing.T) string {
	t.Helper()
	viper.Reset()
	dir := t.TempDir()
	viper.Set("backend", backendStore)
	viper.Set("store", dir)
	t.Cleanup(viper.Reset)

	quiet, verbose, jsonOut = false, false, false
	getShowType = false
	setType = "REG_SZ"
	keysRecursive = false
	renameValue = ""
	exportUTF16 = false
	importPrefix, importTarget, importEncoding, importDryRun = "", "", "", false
	statsMetrics = false
	return dir
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return string(<-done), fnErr
}

// mustRun runs fn and fails the test on error.
func mustRun(t *testing.T, fn func([]string) error, args ...string) string {
	t.Helper()
	out, err := captureOutput(t, func() error { return fn(args) })
	require.NoError(t, err, out)
	return out
}

func decodeJSON(t *testing.T, output string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(output), v), output)
}
