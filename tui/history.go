package tui

// maxHistory bounds how far back esc can walk.
const maxHistory = 16

// stateHistory remembers the states the user came from.
type stateHistory struct {
	states []state
}

func (h *stateHistory) push(s state) {
	if n := len(h.states); n > 0 && h.states[n-1] == s {
		return
	}
	if len(h.states) == maxHistory {
		h.states = h.states[1:]
	}
	h.states = append(h.states, s)
}

func (h *stateHistory) pop() (state, bool) {
	n := len(h.states)
	if n == 0 {
		return 0, false
	}
	s := h.states[n-1]
	h.states = h.states[:n-1]
	return s, true
}

func (h *stateHistory) len() int {
	return len(h.states)
}
