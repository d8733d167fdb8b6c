package resolve

import "fmt"

// CauseKind discriminates the closed set of resolution failure categories.
type CauseKind int

const (
	// CauseUnresolved marks a dependency selector that could not be
	// resolved in any repository.
	CauseUnresolved CauseKind = iota

	// CauseLockOutOfDate marks a resolved dependency that is absent from
	// the recorded lock state.
	CauseLockOutOfDate
)

// String returns the kind's name for logging.
func (k CauseKind) String() string {
	switch k {
	case CauseUnresolved:
		return "unresolved"
	case CauseLockOutOfDate:
		return "lock-out-of-date"
	default:
		return "unknown"
	}
}

// Cause is one typed resolution failure. Selector is set for
// CauseUnresolved; Message is set for CauseLockOutOfDate.
type Cause struct {
	Kind     CauseKind
	Selector string
	Message  string
}

// NewUnresolvedCause builds a cause for a selector that failed to resolve.
func NewUnresolvedCause(selector string) Cause {
	return Cause{Kind: CauseUnresolved, Selector: selector}
}

// NewLockOutOfDateCause builds a cause for a resolved coordinate missing
// from the lock state.
func NewLockOutOfDateCause(resolved string) Cause {
	return Cause{
		Kind:    CauseLockOutOfDate,
		Message: fmt.Sprintf("Resolved '%s' which is not part of the dependency lock state", resolved),
	}
}
