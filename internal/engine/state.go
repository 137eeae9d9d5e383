package engine

// State is a stage of an invocation.
type State int

const (
	Idle State = iota
	IndexFetched
	Resolving
	Aggregated
	Installing
	Reported
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case IndexFetched:
		return "index-fetched"
	case Resolving:
		return "resolving"
	case Aggregated:
		return "aggregated"
	case Installing:
		return "installing"
	case Reported:
		return "reported"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}
