// Package ingest turns a list of file paths piped on standard input into
// an ephemeral link-farm directory and switches the session there.
//
// The pipeline is strictly sequential: collect the raw bytes, tokenize
// them into path records, create the session directory, link every record
// into it, then adopt the directory as the working location and record
// the transition in the navigation history. Per-record link failures are
// tolerated; every other failure aborts with the previous working
// location intact and nothing left behind on disk.
package ingest

import (
	"io"
)

// History receives exactly one record of the working-directory transition
// when an ingestion batch succeeds.
type History interface {
	Visit(dir string)
}

// Options configures a pipeline run.
type Options struct {
	// TmpRoot is the directory the session directory is created under.
	// Empty means os.TempDir.
	TmpRoot string
	// Limits bounds the input buffer. Zero fields fall back to
	// DefaultLimits.
	Limits Limits
}

// Run executes the full pipeline against r.
//
// It returns (nil, nil) when r yields no bytes: no batch, nothing on disk
// or in the session changes. On success the returned session is live, the
// process working directory is its directory, and hist has received one
// visit. On error no session is live and the working directory is
// unchanged.
func Run(r io.Reader, opts Options, hist History) (*Session, error) {
	buf, err := Collect(r, opts.Limits)
	if err != nil {
		return nil, err
	}
	if len(buf) == 0 {
		return nil, nil
	}

	s, err := NewSession(opts.TmpRoot)
	if err != nil {
		return nil, err
	}

	s.LinkAll(Records(buf))

	// every link attempt is resolved before the switch: an observer never
	// sees a half-populated directory already adopted as current
	if err := s.Switch(); err != nil {
		return nil, err
	}

	if hist != nil {
		hist.Visit(s.Dir)
	}

	return s, nil
}
