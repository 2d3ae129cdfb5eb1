// Package history keeps the session's directory navigation trail.
package history

// History is an ordered trail of visited directories with a movable
// position, like a browser's back/forward list.
type History struct {
	dirs []string
	pos  int // index of the current entry, -1 when empty
}

func New() *History {
	return &History{pos: -1}
}

// Visit appends dir as the new current entry and drops any forward tail.
// Visiting the current entry again is a no-op.
func (h *History) Visit(dir string) {
	if h.pos >= 0 && h.dirs[h.pos] == dir {
		return
	}
	h.dirs = append(h.dirs[:h.pos+1], dir)
	h.pos++
}

// Back moves to the previous entry. It reports false at the start of the
// trail.
func (h *History) Back() (string, bool) {
	if h.pos <= 0 {
		return "", false
	}
	h.pos--
	return h.dirs[h.pos], true
}

// Forward moves to the next entry. It reports false at the end of the
// trail.
func (h *History) Forward() (string, bool) {
	if h.pos < 0 || h.pos+1 >= len(h.dirs) {
		return "", false
	}
	h.pos++
	return h.dirs[h.pos], true
}

// Current returns the current entry, if any.
func (h *History) Current() (string, bool) {
	if h.pos < 0 {
		return "", false
	}
	return h.dirs[h.pos], true
}

// Len returns the number of entries in the trail.
func (h *History) Len() int {
	return len(h.dirs)
}
