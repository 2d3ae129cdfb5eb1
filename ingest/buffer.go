package ingest

import (
	"fmt"
	"io"
)

// Limits bounds how much piped input Collect will buffer. The buffer grows
// in ChunkSize steps up to MaxChunks chunks, giving a hard ceiling of
// ChunkSize*MaxChunks bytes against unbounded or adversarial input.
type Limits struct {
	ChunkSize int
	MaxChunks int
}

// DefaultLimits mirrors the historical tuning: 512 chunks of 512 KiB,
// a ceiling of 256 MiB.
var DefaultLimits = Limits{
	ChunkSize: 512 * 1024,
	MaxChunks: 512,
}

func (l Limits) withDefaults() Limits {
	if l.ChunkSize <= 0 {
		l.ChunkSize = DefaultLimits.ChunkSize
	}
	if l.MaxChunks <= 0 {
		l.MaxChunks = DefaultLimits.MaxChunks
	}
	return l
}

// Ceiling returns the maximum number of bytes Collect will buffer.
func (l Limits) Ceiling() int {
	l = l.withDefaults()
	return l.ChunkSize * l.MaxChunks
}

// Collect reads r until EOF or the byte ceiling, whichever comes first,
// and returns everything read. Input cut off at the ceiling keeps the
// partial final record; tokenization treats it like any other record.
//
// A read error discards the partial buffer and is fatal to the caller's
// ingestion. An empty result with a nil error means no batch: the caller
// must skip every downstream stage.
func Collect(r io.Reader, lim Limits) ([]byte, error) {
	lim = lim.withDefaults()
	ceiling := lim.ChunkSize * lim.MaxChunks

	buf := make([]byte, 0, lim.ChunkSize)
	for len(buf) < ceiling {
		if len(buf) == cap(buf) {
			grown := make([]byte, len(buf), cap(buf)+lim.ChunkSize)
			copy(grown, buf)
			buf = grown
		}

		// read into spare capacity, never past the ceiling
		room := cap(buf) - len(buf)
		if rem := ceiling - len(buf); room > rem {
			room = rem
		}

		n, err := r.Read(buf[len(buf) : len(buf)+room])
		buf = buf[:len(buf)+n]

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading piped input: %w", err)
		}
		if n == 0 {
			// a zero-byte read terminates collection normally
			break
		}
	}

	return buf, nil
}
