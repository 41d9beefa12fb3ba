// Package native defines the raw store interface regkit is layered on.
//
// An API implementation mirrors the Win32 Reg* functions: opaque handles,
// status codes instead of errors, two-phase buffer queries and index based
// enumeration. Two implementations ship: winapi (the Windows registry, on
// Windows builds) and kvstore (a badger-backed store for every platform).
package native
