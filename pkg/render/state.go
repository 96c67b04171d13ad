package render

// State is the lifecycle state of a Renderer.
type State string

const (
	// StateUninitialized means the context and pipeline have not been
	// created yet.
	StateUninitialized State = "uninitialized"
	// StateReady means the context and pipeline exist and were bound to a
	// live window the last time they were checked.
	StateReady State = "ready"
	// StateInvalid means the window no longer accepts the context or the
	// renderer was closed. It is terminal: the instance must be replaced.
	StateInvalid State = "invalid"
)

// next reports whether moving from s to next is allowed.
func (s State) next(next State) bool {
	switch next {
	case StateReady:
		return s == StateUninitialized
	case StateInvalid:
		return true
	}
	return false
}
