package types

import "errors"

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindNone            ErrKind = iota // success; never carried by an *Error
	ErrKindInvalidArgument                // malformed input (unknown root, bad type name, nil api)
	ErrKindNotFound                       // missing key/value/host
	ErrKindAccessDenied                   // store refused the requested access
	ErrKindType                           // requested decode doesn't match value RegType
	ErrKindState                          // invalid operation for current state (closed or deleted key)
	ErrKindRace                           // value changed between size and data query
	ErrKindConflict                       // target name already taken
	ErrKindStore                          // any other store failure
)

var errKindNames = [...]string{
	ErrKindNone:            "none",
	ErrKindInvalidArgument: "invalid argument",
	ErrKindNotFound:        "not found",
	ErrKindAccessDenied:    "access denied",
	ErrKindType:            "type mismatch",
	ErrKindState:           "invalid state",
	ErrKindRace:            "concurrent modification",
	ErrKindConflict:        "conflict",
	ErrKindStore:           "store failure",
}

func (k ErrKind) String() string {
	if k >= 0 && int(k) < len(errKindNames) {
		return errKindNames[k]
	}
	return "unknown"
}

// Error is a typed error with an optional underlying cause. Status is set when
// the error originates from a native store call.
type Error struct {
	Kind   ErrKind
	Msg    string
	Status Status
	Err    error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels by kind so errors.Is(err, ErrNotFound) holds for any
// not-found error regardless of its message or status.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	for _, s := range sentinels {
		if t == s {
			return e.Kind == t.Kind
		}
	}
	return false
}

// Common sentinel errors.
var (
	// ErrInvalidArgument indicates malformed caller input.
	ErrInvalidArgument = &Error{Kind: ErrKindInvalidArgument, Msg: sentinelMsg[ErrKindInvalidArgument]}
	// ErrNotFound indicates a missing key/value/path.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: sentinelMsg[ErrKindNotFound]}
	// ErrAccessDenied indicates the store refused the requested access.
	ErrAccessDenied = &Error{Kind: ErrKindAccessDenied, Msg: sentinelMsg[ErrKindAccessDenied]}
	// ErrTypeMismatch indicates the requested decode doesn't match the value type.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: sentinelMsg[ErrKindType]}
	// ErrClosed indicates an operation on a key that is not open.
	ErrClosed = &Error{Kind: ErrKindState, Msg: sentinelMsg[ErrKindState]}
	// ErrRace indicates a value changed size or type while it was being read.
	ErrRace = &Error{Kind: ErrKindRace, Msg: sentinelMsg[ErrKindRace]}
	// ErrExists indicates the target name is already in use.
	ErrExists = &Error{Kind: ErrKindConflict, Msg: sentinelMsg[ErrKindConflict]}
	// ErrStore indicates any other store failure.
	ErrStore = &Error{Kind: ErrKindStore, Msg: sentinelMsg[ErrKindStore]}
)

var sentinels = []*Error{
	ErrInvalidArgument, ErrNotFound, ErrAccessDenied, ErrTypeMismatch,
	ErrClosed, ErrRace, ErrExists, ErrStore,
}

var sentinelMsg = map[ErrKind]string{
	ErrKindInvalidArgument: "invalid argument",
	ErrKindNotFound:        "not found",
	ErrKindAccessDenied:    "access denied",
	ErrKindType:            "registry value has different type",
	ErrKindState:           "key is not open",
	ErrKindRace:            "value changed while being read",
	ErrKindConflict:        "already exists",
	ErrKindStore:           "registry store failure",
}

// StatusError converts a native status into an *Error. It returns nil for
// StatusSuccess so the result can be returned directly as an error.
func StatusError(st Status) error {
	if st.OK() {
		return nil
	}
	return &Error{Kind: st.Kind(), Msg: st.Message(), Status: st}
}

// InvalidArgument builds an ErrKindInvalidArgument error.
func InvalidArgument(msg string) error {
	return &Error{Kind: ErrKindInvalidArgument, Msg: msg}
}

// StatusOf extracts the native status carried by err, or StatusSuccess when
// err is nil or carries none.
func StatusOf(err error) Status {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return StatusSuccess
}
