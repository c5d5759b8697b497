package component

import (
	"errors"
	"fmt"
)

// ErrInvalidContentKind reports structural misuse of content, such as
// arguments attached to non-translatable content.
var ErrInvalidContentKind = errors.New("invalid content kind")

// ContentError describes a rejected builder or content edit.
type ContentError struct {
	Op     string      // Operation that was rejected (e.g. "args", "translatable")
	Kind   ContentKind // Content kind at the time of the call
	Reason string      // Human-readable reason
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("%s on %s content: %s", e.Op, e.Kind, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidContentKind) match.
func (e *ContentError) Is(target error) bool {
	return target == ErrInvalidContentKind
}
