// Package exitcode provides standardized exit codes for xcproj
package exitcode

import "github.com/aidanlsb/xcproj/internal/errs"

// Exit codes for the xcproj CLI
const (
	Success           = 0
	GeneralError      = 1
	InvalidArgument   = 2
	NotFound          = 3
	OperationFailed   = 4
	PersistenceFailed = 5
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case InvalidArgument:
		return "Invalid argument"
	case NotFound:
		return "Not found"
	case OperationFailed:
		return "Operation failed"
	case PersistenceFailed:
		return "Persistence failed"
	default:
		return "Unknown error"
	}
}

// For maps an error onto its exit code. A nil error is Success.
func For(err error) int {
	if err == nil {
		return Success
	}
	switch errs.KindOf(err) {
	case errs.KindInvalidArgument:
		return InvalidArgument
	case errs.KindNotFound:
		return NotFound
	case errs.KindOperationFailed:
		return OperationFailed
	case errs.KindPersistenceFailed:
		return PersistenceFailed
	default:
		return GeneralError
	}
}
