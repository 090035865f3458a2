package evm

// State is the connection state of the event source.
type State int

const (
	Disconnected State = iota
	Connecting
	CatchingUp
	Live
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case CatchingUp:
		return "catching_up"
	case Live:
		return "live"
	default:
		return "unknown"
	}
}

// Observers fans a state change out to several observers.
type Observers []StateObserver

func (o Observers) SetState(state State) {
	for _, observer := range o {
		observer.SetState(state)
	}
}
