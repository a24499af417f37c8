package wire

import (
	"errors"
	"fmt"
	"strings"
)

// Decoding errors. Every failure returned by a Reader wraps one of these.
var (
	ErrPrematureEndOfInput = errors.New("premature end of input")
	ErrIllegalWireType     = errors.New("illegal wire type")
	ErrVarintOverflow      = errors.New("varint overflows 64 bits")
	ErrInvalidFieldNumber  = errors.New("invalid field number")
)

// FieldError represents a decoding error with a field path.
type FieldError struct {
	FieldPath []string // e.g., ["order", "customer", "address", "zip"]
	Err       error    // underlying error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if len(e.FieldPath) == 0 {
		return e.Err.Error()
	}

	return fmt.Sprintf("decoding error at proto path %s: %v", strings.Join(e.FieldPath, "."), e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// WrapFieldError prefixes the path of err with fieldName. Generated decoders
// call it when a nested message fails so the final error names the full path
// instead of repeating "failed to decode" at every level.
func WrapFieldError(err error, fieldName string) error {
	if err == nil {
		return nil
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		return &FieldError{
			FieldPath: append([]string{fieldName}, fe.FieldPath...),
			Err:       fe.Err,
		}
	}

	return &FieldError{
		FieldPath: []string{fieldName},
		Err:       err,
	}
}

func truncated(what string, need, have int) error {
	return fmt.Errorf("%w: %s needs %d bytes, have %d", ErrPrematureEndOfInput, what, need, have)
}
