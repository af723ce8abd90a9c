package graco

import "fmt"

// ErrorKind classifies the errors a grammar engine can produce, per the
// error taxonomy in spec §7.
type ErrorKind uint8

const (
	// KindConfiguration marks invalid flags or out-of-range parameters.
	// Fatal; surfaced directly to the caller.
	KindConfiguration ErrorKind = iota

	// KindResource marks an allocation failure or insufficient memory
	// budget for the input. Fatal; reported with the requested byte count.
	KindResource

	// KindIO marks an input/output failure in a collaborator outside this
	// module's scope (file reading/writing). Fatal.
	KindIO

	// KindCapacityExceeded marks a suffix-tree slab or match-trie arena
	// running out of room. Not fatal: recorded in Stats and the affected
	// component degrades gracefully rather than erroring out.
	KindCapacityExceeded

	// KindInvariantViolation marks a broken internal invariant (list
	// back-pointers, gap links, frequency counts disagreeing). Always a
	// bug; assertInvariant panics with it, and Grammar.DecodeBytes returns
	// it for a grammar it cannot expand.
	KindInvariantViolation
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "Configuration"
	case KindResource:
		return "Resource"
	case KindIO:
		return "IO"
	case KindCapacityExceeded:
		return "CapacityExceeded"
	case KindInvariantViolation:
		return "InvariantViolation"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", uint8(k))
	}
}

// EngineError is the single error type returned by this module. It carries
// an ErrorKind so callers can classify failures with errors.Is against the
// package-level sentinels below, plus an optional human-readable Message
// and wrapped Cause.
type EngineError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("graco: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("graco: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any, for errors.Is/errors.As.
func (e *EngineError) Unwrap() error { return e.Cause }

// Is implements error comparison by Kind so errors.Is(err, ErrResource)
// matches any *EngineError with Kind == KindResource, not just the exact
// sentinel value.
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors for the common cases; compare with errors.Is.
var (
	ErrConfiguration = &EngineError{Kind: KindConfiguration, Message: "invalid configuration"}
	ErrResource      = &EngineError{Kind: KindResource, Message: "allocation failure"}
	ErrIO            = &EngineError{Kind: KindIO, Message: "input/output failure"}
)

// configError builds a KindConfiguration EngineError naming the offending
// field, mirroring meta.Config.Validate's *ConfigError shape.
func configError(field, reason string) error {
	return &EngineError{Kind: KindConfiguration, Message: fmt.Sprintf("%s: %s", field, reason)}
}

// resourceError builds a KindResource EngineError reporting the requested
// byte count, per spec §7.
func resourceError(requestedBytes int64, cause error) error {
	return &EngineError{
		Kind:    KindResource,
		Message: fmt.Sprintf("failed to allocate %d bytes", requestedBytes),
		Cause:   cause,
	}
}

// assertInvariant panics with a KindInvariantViolation EngineError when
// cond is false. Invariant violations are bugs, not recoverable
// conditions, so this helper does not return an error — it unwinds the
// caller (spec §7).
func assertInvariant(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(&EngineError{Kind: KindInvariantViolation, Message: fmt.Sprintf(format, args...)})
}
