// Package winapi implements native.API with the Windows registry.
//
// Status codes are the Win32 error codes returned by the Reg* functions,
// passed through unchanged. Access 0 opens keys with MAXIMUM_ALLOWED.
// The package only builds on Windows.
package winapi
