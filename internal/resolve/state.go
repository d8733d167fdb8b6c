package resolve

// State is the resolution lifecycle of a single configuration.
type State int

const (
	// StateUnresolved means no task has touched the configuration. Such
	// configurations are not part of the build's real dependency surface.
	StateUnresolved State = iota

	// StateResolving means resolution is in flight.
	StateResolving

	// StateResolvedSuccess means the last resolution produced no causes.
	StateResolvedSuccess

	// StateResolvedFailed means the last resolution produced at least one cause.
	StateResolvedFailed
)

// String returns a human-readable state name for logging.
func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolving:
		return "resolving"
	case StateResolvedSuccess:
		return "resolved"
	case StateResolvedFailed:
		return "failed"
	default:
		return "unknown"
	}
}
