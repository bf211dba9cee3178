package task

// State is the lifecycle state Pulp reports for a task.
type State string

const (
	StateWaiting   State = "waiting"
	StateAccepted  State = "accepted"
	StateRunning   State = "running"
	StateSuspended State = "suspended"
	StateFinished  State = "finished"
	StateError     State = "error"
	StateCanceled  State = "canceled"
	StateSkipped   State = "skipped"
)

var completedStates = map[State]bool{
	StateFinished: true,
	StateError:    true,
	StateCanceled: true,
	StateSkipped:  true,
}

var succeededStates = map[State]bool{
	StateFinished: true,
	StateSkipped:  true,
}

func (s State) String() string {
	return string(s)
}

// IsCompleted reports whether s is terminal, successful or not.
func (s State) IsCompleted() bool {
	return completedStates[s]
}

// IsSucceeded reports whether s is a successful terminal state.
func (s State) IsSucceeded() bool {
	return succeededStates[s]
}
