// Package values converts between the raw (type, bytes) pairs a registry
// store holds and Go values.
//
// Strings are UTF-16LE with a NUL terminator in the store and plain UTF-8
// strings in Go. Integers are fixed-width: REG_DWORD is 4 little-endian
// bytes, REG_DWORD_BIG_ENDIAN 4 big-endian bytes, REG_QWORD 8 little-endian
// bytes. A REG_MULTI_SZ payload is a run of NUL-terminated strings followed by
// one extra NUL.
//
// Decoders report failures as *types.Error values whose Status is the code a
// native store would have returned (StatusDatatypeMismatch for a wrong type
// tag, StatusInvalidData for a malformed payload).
package values
