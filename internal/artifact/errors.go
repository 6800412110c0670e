package artifact

import (
	"errors"
	"fmt"
)

// Error classification strings. They appear verbatim at the start of error
// messages on both the CLI and HTTP surfaces so automated consumers can
// branch on them.
const (
	KindMissingArtifact  = "missing_artifact"
	KindInvalidReference = "invalid_reference"
	KindUnknownBrick     = "unknown_brick"
	KindUnknownExport    = "unknown_export"
	KindMissingFile      = "missing_file"
)

// Error is a classified resolution failure.
type Error struct {
	Kind   string
	Detail string
}

func (e *Error) Error() string {
	return e.Kind + ": " + e.Detail
}

// NewError builds a classified error with a formatted detail message.
func NewError(kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf returns the classification string of err, or "" if err is not a
// classified artifact error.
func KindOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}
