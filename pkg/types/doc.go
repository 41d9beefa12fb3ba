// Package types holds the vocabulary shared by every regkit layer: value type
// tags (RegType), native status codes (Status), key access masks (Access),
// store limits, and the typed *Error used at API boundaries.
//
// The numeric values of RegType, Status and Access match their Windows
// counterparts so they can be passed to and from the Win32 registry API
// without translation.
package types
