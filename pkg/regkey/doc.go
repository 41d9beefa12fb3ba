// Package regkey provides Key, a resource-managed handle to one registry key,
// with typed access to its values and subkeys.
//
// A Key owns at most one native handle. Every store call records its raw
// status, readable through LastStatus and LastError; methods report plain
// success with a bool instead of returning an error. Operations on a key
// that is not open fail with StatusInvalidHandle and never reach the store.
//
// Variable-length values are read in two phases: the size is queried first,
// then a buffer of exactly that size is filled. If the value grows between
// the two calls the read fails with StatusMoreData; if it shrinks or changes
// type it fails with StatusInvalidData. Reads never return truncated or
// stale data and are not retried.
//
//	k, err := regkey.OpenPath(api, `HKCU\Software\Acme`, 0)
//	if err != nil {
//		return err
//	}
//	defer k.Close()
//	k.SetString("Greeting", "hello")
//	s, ok := k.GetString("Greeting")
//
// A Key is not safe for concurrent use.
package regkey
