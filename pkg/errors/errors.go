package errors

import (
	"errors"
	"fmt"
)

// Sentinels for the gateway error taxonomy.
var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrProvider      = errors.New("provider error")
)

// kinded carries a user-facing message while unwrapping to a taxonomy sentinel,
// so callers can branch with errors.Is without parsing message strings.
type kinded struct {
	kind error
	msg  string
}

func (e *kinded) Error() string { return e.msg }

func (e *kinded) Unwrap() error { return e.kind }

// Validation builds a caller-input error. The message is returned to the caller verbatim.
func Validation(msg string) error {
	return &kinded{kind: ErrValidation, msg: msg}
}

// Configurationf builds an error naming a missing or invalid setting.
func Configurationf(format string, args ...any) error {
	return &kinded{kind: ErrConfiguration, msg: fmt.Sprintf(format, args...)}
}

// Provider wraps a telephony provider failure, keeping its message verbatim.
func Provider(msg string) error {
	return &kinded{kind: ErrProvider, msg: msg}
}

// Is reports whether err is one of the sentinels.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
