package plugin

// HostState reports the health of the plugin host itself.
type HostState int

const (
	// HostRunning accepts loads and invocations.
	HostRunning HostState = iota

	// HostDisabled refuses to load plugins. Already loaded plugins keep working.
	HostDisabled

	// HostPanicked means the interpreter panicked with a Go value at least
	// once. The host keeps serving but the condition is reported.
	HostPanicked
)

// String returns a string representation of the state.
func (s HostState) String() string {
	switch s {
	case HostRunning:
		return "running"
	case HostDisabled:
		return "disabled"
	case HostPanicked:
		return "panicked"
	default:
		return "unknown"
	}
}
