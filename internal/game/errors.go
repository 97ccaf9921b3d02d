package game

import "fmt"

// Kind classifies a rejected event. Every kind is recoverable by the caller:
// the coordinator reports the failure to the originating connection and
// leaves all room state untouched.
type Kind int

const (
	// KindNotFound covers absent rooms, codes, and players.
	KindNotFound Kind = iota
	// KindForbidden covers non-host attempts at host-only actions and
	// self-kicks.
	KindForbidden
	// KindInvalidPhase covers actions attempted outside their valid phase.
	KindInvalidPhase
	// KindPreconditionFailed covers aggregate conditions that do not hold
	// yet, like insufficient players or not-all-ready.
	KindPreconditionFailed
)

// Error is a validation failure produced while handling an inbound event.
// Only the message crosses the wire; the kind exists so handlers state their
// failure mode explicitly in code.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func notFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func invalidPhase(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidPhase, Message: fmt.Sprintf(format, args...)}
}

func preconditionFailed(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPreconditionFailed, Message: fmt.Sprintf(format, args...)}
}
