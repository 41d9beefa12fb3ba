package types

// Windows registry limits. Names are measured in characters, not bytes.
const (
	WindowsMaxKeyNameLen   = 255
	WindowsMaxValueNameLen = 16383
	WindowsMaxValueSize1MB = 1 << 20
	// Windows has no hard depth limit; 512 is the documented practical one.
	WindowsMaxTreeDepthPractical = 512
	WindowsMaxTreeDepthDeep      = 1024
	WindowsMaxValueSize10MB      = 10 << 20
	WindowsMaxValueSize64KB      = 64 << 10
	WindowsMaxKeyNameLenHalf     = 128
	WindowsMaxValueNameLenSmall  = 255
	WindowsMaxTreeDepthShallow   = 128
)

// Limits defines constraints a store enforces on writes. A zero field
// disables that check.
type Limits struct {
	// MaxKeyNameLen is the maximum length of a single key name segment.
	MaxKeyNameLen int

	// MaxValueNameLen is the maximum length of a value name.
	MaxValueNameLen int

	// MaxValueSize is the maximum size of a single value's data in bytes.
	MaxValueSize int

	// MaxTreeDepth is the maximum number of segments below a root.
	MaxTreeDepth int
}

// DefaultLimits returns the standard Windows registry limits.
func DefaultLimits() Limits {
	return Limits{
		MaxKeyNameLen:   WindowsMaxKeyNameLen,
		MaxValueNameLen: WindowsMaxValueNameLen,
		MaxValueSize:    WindowsMaxValueSize1MB,
		MaxTreeDepth:    WindowsMaxTreeDepthPractical,
	}
}

// RelaxedLimits returns more permissive limits for bulk imports of large
// binary data.
func RelaxedLimits() Limits {
	return Limits{
		MaxKeyNameLen:   WindowsMaxKeyNameLen,
		MaxValueNameLen: WindowsMaxValueNameLen,
		MaxValueSize:    WindowsMaxValueSize10MB,
		MaxTreeDepth:    WindowsMaxTreeDepthDeep,
	}
}

// StrictLimits returns conservative limits for constrained environments.
func StrictLimits() Limits {
	return Limits{
		MaxKeyNameLen:   WindowsMaxKeyNameLenHalf,
		MaxValueNameLen: WindowsMaxValueNameLenSmall,
		MaxValueSize:    WindowsMaxValueSize64KB,
		MaxTreeDepth:    WindowsMaxTreeDepthShallow,
	}
}

// KeyNameOK reports whether a key name segment of n characters is allowed.
func (l Limits) KeyNameOK(n int) bool { return l.MaxKeyNameLen == 0 || n <= l.MaxKeyNameLen }

// ValueNameOK reports whether a value name of n characters is allowed.
func (l Limits) ValueNameOK(n int) bool { return l.MaxValueNameLen == 0 || n <= l.MaxValueNameLen }

// ValueSizeOK reports whether a payload of n bytes is allowed.
func (l Limits) ValueSizeOK(n int) bool { return l.MaxValueSize == 0 || n <= l.MaxValueSize }

// DepthOK reports whether a key at depth d (root = 0) is allowed.
func (l Limits) DepthOK(d int) bool { return l.MaxTreeDepth == 0 || d <= l.MaxTreeDepth }
