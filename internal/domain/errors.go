package domain

import (
	"errors"
	"fmt"
)

// Sentinels wrapped by OpError.Err so callers can use errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid config")
	ErrDesync        = errors.New("document out of sync with board")
	ErrAmbiguous     = errors.New("ambiguous reference")
	ErrExecution     = errors.New("execution error")
)

// ErrorKind groups errors by how a caller should react to them.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindInvalidInput  ErrorKind = "invalid_input"
	KindInvalidIntent ErrorKind = "invalid_intent"
	KindDesync        ErrorKind = "desync"
	KindApply         ErrorKind = "apply_failed"
	KindExecution     ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path or document id
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err carries kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// KindOf returns the kind of the outermost OpError in err's chain, or "" when
// there is none.
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}

// DesyncError reports that the document line a node was read from no longer holds
// the node's text.
func DesyncError(op, source string, line int, want, got string) error {
	return &OpError{
		Op:   op,
		Kind: KindDesync,
		Path: source,
		Err:  fmt.Errorf("line %d: expected %q, found %q: %w", line, want, got, ErrDesync),
	}
}
