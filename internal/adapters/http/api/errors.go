package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrEmptyPatch  = errors.New("no editable fields in request")
	ErrMissingTeam = errors.New("missing team")
)

// WrapKind annotates a domain error with the handler operation.
func WrapKind(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// WrapKindErr annotates a sentinel kind with a cause, keeping the kind
// matchable via errors.Is.
func WrapKindErr(op string, kind, cause error) error {
	return fmt.Errorf("%s: %w: %v", op, kind, cause)
}
