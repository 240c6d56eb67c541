// Package fault carries the error taxonomy shared across services. Every
// failure that crosses a service boundary is wrapped in an *Error with a
// Kind, so the HTTP layer can map outcomes to responses uniformly instead
// of string-matching wrapped errors.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for boundary handling.
type Kind string

const (
	// KindConfig marks invalid static configuration, fatal at startup or
	// first use and never retried.
	KindConfig Kind = "config"
	// KindInvalid marks a malformed or out-of-bounds client request.
	KindInvalid Kind = "invalid"
	// KindPrecondition marks a client-correctable state problem, e.g. a
	// quiz requested for a project with no ingested chunks.
	KindPrecondition Kind = "precondition"
	// KindUpstream marks an embedding/completion/store failure outside
	// our control.
	KindUpstream Kind = "upstream"
	// KindMalformed marks model output that failed parsing or validation.
	KindMalformed Kind = "malformed_output"
	// KindNotFound marks a missing entity reference.
	KindNotFound Kind = "not_found"
	// KindInternal is the fallback for everything else.
	KindInternal Kind = "internal"
)

// Error is the single error shape surfaced to the request boundary.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a fault of the given kind with a formatted detail message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and detail to an underlying error. A nil cause
// yields a nil result so call sites can wrap unconditionally.
func Wrap(err error, kind Kind, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind from err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
