package verify

import "fmt"

// VerificationError halts the build after a project's resolution
// verification found failures and the project's policy selects failure. Its
// message is the user-facing report.
type VerificationError struct {
	Project string
	Report  Report
}

// Error implements the error interface.
func (e *VerificationError) Error() string {
	return e.Report.Message()
}

// FatalError wraps a failure of the verifier itself: classifying causes or
// constructing a report went wrong. It is always raised, independent of the
// fail-on-unresolved policy, because it indicates a bug in verification
// rather than a dependency problem.
type FatalError struct {
	Project string
	Err     error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	return fmt.Sprintf("dependency verification failed internally for project '%s': %v", e.Project, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *FatalError) Unwrap() error {
	return e.Err
}
