package pattern

import (
	"errors"
	"fmt"
)

// Construction errors
var (
	ErrInvalidNumber   = errors.New("pattern number must be between 1 and 16")
	ErrInvalidStep     = errors.New("step must be between 1 and 16")
	ErrInvalidVoice    = errors.New("unknown voice")
	ErrEmptyChain      = errors.New("chain must contain at least one pattern")
	ErrEmptySequence   = errors.New("chain sequence cannot be empty")
	ErrMissingChainRef = errors.New("chain sequence references a missing pattern")
	ErrDuplicateSlot   = errors.New("two chained patterns share a pattern slot")
	ErrBlankName       = errors.New("name is required")
)

// ValidationError reports which field broke a construction invariant
type ValidationError struct {
	Field string
	Value int
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %d: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
