package views

// State represents the render state of a view.
type State int

const (
	StateIdle    State = iota // nothing fetched yet
	StateLoading              // fetch in flight
	StateReady                // rows fetched, at least one
	StateEmpty                // fetch succeeded, zero rows
	StateFailed               // fetch failed, prior rows retained
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateEmpty:
		return "empty"
	case StateFailed:
		return "failed"
	default:
		return ""
	}
}
