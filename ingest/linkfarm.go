package ingest

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// LinkEntry records the outcome of linking one path record into the
// session directory. Entries are never mutated after creation; they are
// retained for reporting only.
type LinkEntry struct {
	// Source is the absolute path the record resolved to.
	Source string
	// Name is the link name inside the session directory. Empty when the
	// record was rejected before a name was claimed.
	Name string
	// Err is nil when the link was created.
	Err error
}

// Failed reports whether the link attempt did not produce a link.
func (e LinkEntry) Failed() bool { return e.Err != nil }

// LinkAll drains records and creates one symlink per record in the
// session directory. A single failure (missing source, permission denial)
// is recorded on its entry and the batch continues; per-entry failures
// never abort the batch.
//
// Records sharing a basename are disambiguated deterministically in
// record order: the first claims the bare name, later ones get name-1,
// name-2, and so on.
func (s *Session) LinkAll(records iter.Seq[string]) {
	taken := make(map[string]struct{})
	for rec := range records {
		s.Entries = append(s.Entries, s.linkOne(rec, taken))
	}
}

func (s *Session) linkOne(rec string, taken map[string]struct{}) LinkEntry {
	src := rec
	if !filepath.IsAbs(src) {
		// relative records resolve against the directory the batch was
		// started from, never against the session directory
		src = filepath.Join(s.Origin, src)
	}

	// lstat, not stat: a dangling symlink is still a linkable source;
	// only a completely absent path is rejected
	var st unix.Stat_t
	if err := unix.Lstat(src, &st); err != nil {
		return LinkEntry{Source: src, Err: fmt.Errorf("%s: %w", rec, err)}
	}

	name := claimName(filepath.Base(src), taken)
	if err := os.Symlink(src, filepath.Join(s.Dir, name)); err != nil {
		return LinkEntry{Source: src, Name: name, Err: fmt.Errorf("%s: %w", rec, err)}
	}

	return LinkEntry{Source: src, Name: name}
}

func claimName(base string, taken map[string]struct{}) string {
	name := base
	for n := 1; ; n++ {
		if _, dup := taken[name]; !dup {
			taken[name] = struct{}{}
			return name
		}
		name = fmt.Sprintf("%s-%d", base, n)
	}
}
