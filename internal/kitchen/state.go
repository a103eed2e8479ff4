package kitchen

// State is a step of the generation state machine.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateGeneratingRecipe
	StateGeneratingImage
	StateDisplaying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateValidating:
		return "Validating"
	case StateGeneratingRecipe:
		return "GeneratingRecipe"
	case StateGeneratingImage:
		return "GeneratingImage"
	case StateDisplaying:
		return "Displaying"
	default:
		return "Unknown"
	}
}

// Observer is told about every state transition, e.g. to show progress.
type Observer interface {
	Transition(from, to State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(from, to State)

func (f ObserverFunc) Transition(from, to State) { f(from, to) }
