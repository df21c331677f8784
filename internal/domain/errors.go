package domain

import "errors"

var (
	// ErrUnknownWorkoutCode is returned when the sensor code maps to no workout kind.
	ErrUnknownWorkoutCode = errors.New("unknown workout code")
	// ErrInvalidArity is returned when the number of sensor values does not match the workout kind.
	ErrInvalidArity = errors.New("invalid number of sensor values")
	// ErrDegenerateInput is returned for values the formulas cannot handle, such as a zero duration.
	ErrDegenerateInput = errors.New("degenerate workout input")
	// ErrSummaryNotFound is returned when a stored summary cannot be located.
	ErrSummaryNotFound = errors.New("summary not found")
)

// IsRejection reports whether err means the package itself is unusable.
// Such packages are skipped; retrying them cannot succeed.
func IsRejection(err error) bool {
	return errors.Is(err, ErrUnknownWorkoutCode) ||
		errors.Is(err, ErrInvalidArity) ||
		errors.Is(err, ErrDegenerateInput)
}

// RejectionReason returns a short label for a rejection error, or "" if err is not one.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrUnknownWorkoutCode):
		return "unknown_workout_code"
	case errors.Is(err, ErrInvalidArity):
		return "invalid_arity"
	case errors.Is(err, ErrDegenerateInput):
		return "degenerate_input"
	default:
		return ""
	}
}
