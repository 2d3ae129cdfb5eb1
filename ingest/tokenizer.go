package ingest

import (
	"bytes"
	"iter"
)

// Records yields the non-empty records of buf, split on the line-feed
// byte. Splitting is purely byte-oriented: records are opaque byte
// strings, no encoding interpretation happens here. Zero-length records
// (consecutive or leading separators) are dropped, and the final record
// is yielded even when buf does not end in a separator.
func Records(buf []byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		for len(buf) > 0 {
			rec := buf
			if i := bytes.IndexByte(buf, '\n'); i >= 0 {
				rec, buf = buf[:i], buf[i+1:]
			} else {
				buf = nil
			}
			if len(rec) == 0 {
				continue
			}
			if !yield(string(rec)) {
				return
			}
		}
	}
}
