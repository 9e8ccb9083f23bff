package mutate

import (
	"errors"
	"fmt"
)

// Sentinel kinds for mutation errors. Callers match with errors.Is.
var (
	ErrInvalidEnum         = errors.New("value outside allowed set")
	ErrUnknownTeam         = errors.New("unknown team")
	ErrDuplicateAppearance = errors.New("appearance already held for team")
	ErrCannotRemoveMain    = errors.New("cannot remove main appearance")
	ErrNotFound            = errors.New("not found")
)

// Error carries enough context for the caller to render a specific message:
// which player, which field, and the offending value.
type Error struct {
	Kind     error
	PlayerID string
	Field    string
	Value    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("player %s: %s %q: %v", e.PlayerID, e.Field, e.Value, e.Kind)
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, playerID, field, value string) *Error {
	return &Error{Kind: kind, PlayerID: playerID, Field: field, Value: value}
}
