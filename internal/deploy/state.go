package deploy

import "fmt"

// State is a host's position in the deployment pipeline.
type State int

const (
	StateIdle State = iota
	StateUploading
	StateExecuting
	StateCleaningUp
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateUploading:
		return "uploading"
	case StateExecuting:
		return "executing"
	case StateCleaningUp:
		return "cleaning up"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the state is terminal (finished).
func IsTerminal(s State) bool {
	return s == StateDone || s == StateFailed
}

// Ping and command modes go straight from Idle to Executing.
// Executing may also end the pipeline directly in those modes.
var allowedTransitions = map[State][]State{
	StateIdle:       {StateUploading, StateExecuting},
	StateUploading:  {StateExecuting, StateFailed},
	StateExecuting:  {StateCleaningUp, StateDone, StateFailed},
	StateCleaningUp: {StateDone, StateFailed},
}

func isAllowedTransition(from, to State) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition moves *cur to next if the pipeline allows it.
func Transition(cur *State, next State) error {
	if !isAllowedTransition(*cur, next) {
		return fmt.Errorf("disallowed transition: %s -> %s", *cur, next)
	}
	*cur = next
	return nil
}

// Phase names a pipeline step that can fail.
type Phase string

const (
	PhaseNone    Phase = ""
	PhaseUpload  Phase = "upload"
	PhaseExecute Phase = "execute"
	PhaseCleanup Phase = "cleanup"
)
