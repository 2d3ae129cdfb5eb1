package ingest

import (
	"fmt"
	"os"
)

// Session is the ephemeral link-farm directory presenting one ingestion
// batch as a single browsable directory. At most one session is live per
// process: a live session owns the process working directory.
type Session struct {
	// Dir is the ephemeral directory holding the links.
	Dir string
	// Origin is the working directory captured before any switch.
	// Relative path records resolve against it.
	Origin string
	// Entries records the outcome of every link attempt, in record order.
	Entries []LinkEntry

	active bool
}

// NewSession captures the current working directory and creates the
// ephemeral directory under tmpRoot (os.TempDir when empty). On error
// nothing is created and the working directory is untouched.
func NewSession(tmpRoot string) (*Session, error) {
	origin, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	if tmpRoot == "" {
		tmpRoot = os.TempDir()
	}

	dir, err := os.MkdirTemp(tmpRoot, "clifm.")
	if err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}

	return &Session{Dir: dir, Origin: origin, active: true}, nil
}

// Switch adopts the session directory as the process working directory.
// On failure the just-created directory is removed and the previous
// working directory is left in place; the directory is never left behind
// when the switch itself fails.
func (s *Session) Switch() error {
	if err := os.Chdir(s.Dir); err != nil {
		s.Remove()
		return fmt.Errorf("switching to %s: %w", s.Dir, err)
	}
	return nil
}

// Remove recursively deletes the session directory. Idempotent: only the
// first call removes anything, and calling it on a nil session is a no-op.
func (s *Session) Remove() error {
	if s == nil || !s.active {
		return nil
	}
	s.active = false
	return os.RemoveAll(s.Dir)
}

// Active reports whether the session directory is still live on disk.
func (s *Session) Active() bool {
	return s != nil && s.active
}

// Failed returns the entries whose link attempt did not succeed.
func (s *Session) Failed() []LinkEntry {
	var failed []LinkEntry
	for _, e := range s.Entries {
		if e.Failed() {
			failed = append(failed, e)
		}
	}
	return failed
}

// Linked returns the number of links that were created.
func (s *Session) Linked() int {
	n := 0
	for _, e := range s.Entries {
		if !e.Failed() {
			n++
		}
	}
	return n
}
