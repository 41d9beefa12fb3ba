package types

import "fmt"

// Status is the raw result code of a native store call. The values are the
// Win32 system error codes returned by the Reg* APIs; the portable store
// reports the same codes so callers can branch on them identically.
type Status uint32

const (
	StatusSuccess             Status = 0    // ERROR_SUCCESS
	StatusFileNotFound        Status = 2    // ERROR_FILE_NOT_FOUND
	StatusAccessDenied        Status = 5    // ERROR_ACCESS_DENIED
	StatusInvalidHandle       Status = 6    // ERROR_INVALID_HANDLE
	StatusNotEnoughMemory     Status = 8    // ERROR_NOT_ENOUGH_MEMORY
	StatusInvalidData         Status = 13   // ERROR_INVALID_DATA
	StatusWriteProtect        Status = 19   // ERROR_WRITE_PROTECT
	StatusBadNetPath          Status = 53   // ERROR_BAD_NETPATH
	StatusInvalidParameter    Status = 87   // ERROR_INVALID_PARAMETER
	StatusAlreadyExists       Status = 183  // ERROR_ALREADY_EXISTS
	StatusMoreData            Status = 234  // ERROR_MORE_DATA
	StatusNoMoreItems         Status = 259  // ERROR_NO_MORE_ITEMS
	StatusDatatypeMismatch    Status = 1629 // ERROR_DATATYPE_MISMATCH
	StatusBadDB               Status = 1009 // ERROR_BADDB
	StatusBadKey              Status = 1010 // ERROR_BADKEY
	StatusCantRead            Status = 1012 // ERROR_CANTREAD
	StatusCantWrite           Status = 1013 // ERROR_CANTWRITE
	StatusKeyDeleted          Status = 1018 // ERROR_KEY_DELETED
	StatusChildMustBeVolatile Status = 1021 // ERROR_CHILD_MUST_BE_VOLATILE
)

var statusMessages = map[Status]string{
	StatusSuccess:             "The operation completed successfully.",
	StatusFileNotFound:        "The system cannot find the file specified.",
	StatusAccessDenied:        "Access is denied.",
	StatusInvalidHandle:       "The handle is invalid.",
	StatusNotEnoughMemory:     "Not enough memory resources are available to process this command.",
	StatusInvalidData:         "The data is invalid.",
	StatusWriteProtect:        "The media is write protected.",
	StatusBadNetPath:          "The network path was not found.",
	StatusInvalidParameter:    "The parameter is incorrect.",
	StatusAlreadyExists:       "Cannot create a file when that file already exists.",
	StatusMoreData:            "More data is available.",
	StatusNoMoreItems:         "No more data is available.",
	StatusDatatypeMismatch:    "The data type of the value does not match the requested type.",
	StatusBadDB:               "The configuration registry database is corrupt.",
	StatusBadKey:              "The configuration registry key is invalid.",
	StatusCantRead:            "The configuration registry key could not be read.",
	StatusCantWrite:           "The configuration registry key could not be written.",
	StatusKeyDeleted:          "Illegal operation attempted on a registry key that has been marked for deletion.",
	StatusChildMustBeVolatile: "Cannot create a stable subkey under a volatile parent key.",
}

// OK reports whether s is the success sentinel.
func (s Status) OK() bool { return s == StatusSuccess }

// Message returns the human-readable text for s. Codes without a known text
// are rendered as "status N".
func (s Status) Message() string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return fmt.Sprintf("status %d", uint32(s))
}

func (s Status) String() string {
	return fmt.Sprintf("%d (%s)", uint32(s), s.Message())
}

// Kind classifies s for programmatic handling.
func (s Status) Kind() ErrKind {
	switch s {
	case StatusSuccess:
		return ErrKindNone
	case StatusFileNotFound, StatusBadNetPath, StatusNoMoreItems:
		return ErrKindNotFound
	case StatusAccessDenied, StatusWriteProtect:
		return ErrKindAccessDenied
	case StatusInvalidHandle, StatusKeyDeleted:
		return ErrKindState
	case StatusInvalidParameter:
		return ErrKindInvalidArgument
	case StatusDatatypeMismatch:
		return ErrKindType
	case StatusMoreData, StatusInvalidData:
		return ErrKindRace
	case StatusAlreadyExists:
		return ErrKindConflict
	default:
		return ErrKindStore
	}
}
