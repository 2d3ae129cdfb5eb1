package ingest_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/Chiheisen/clifm/ingest"
)

// historySpy records Visit calls.
type historySpy struct {
	dirs []string
}

func (h *historySpy) Visit(dir string) {
	h.dirs = append(h.dirs, dir)
}

func Test_Run_Skips_Every_Stage_On_Empty_Input(t *testing.T) {
	work := t.TempDir()
	t.Chdir(work)

	root := t.TempDir()
	hist := &historySpy{}

	s, err := ingest.Run(strings.NewReader(""), ingest.Options{TmpRoot: root}, hist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != nil {
		t.Fatal("session created for empty input")
	}
	if got := mustGetwd(t); got != work {
		t.Fatalf("working directory changed to %s", got)
	}
	if len(hist.dirs) != 0 {
		t.Fatalf("history touched: %v", hist.dirs)
	}

	left, err := os.ReadDir(root)
	if err != nil || len(left) != 0 {
		t.Fatalf("filesystem mutated: %v %v", left, err)
	}
}

func Test_Run_Builds_Farm_Switches_And_Records_One_History_Entry(t *testing.T) {
	work := t.TempDir()
	t.Chdir(work)

	src := t.TempDir()
	a := writeFile(t, src, "a.txt", []byte("alpha"))
	b := writeFile(t, src, "b.txt", []byte("bravo"))

	hist := &historySpy{}

	s, err := ingest.Run(strings.NewReader(a+"\n"+b+"\n"), ingest.Options{TmpRoot: t.TempDir()}, hist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Remove()

	if got := mustGetwd(t); got != s.Dir {
		t.Fatalf("working directory %s, want session dir %s", got, s.Dir)
	}
	if readLink(t, filepath.Join(s.Dir, "a.txt")) != a || readLink(t, filepath.Join(s.Dir, "b.txt")) != b {
		t.Fatalf("farm incomplete: %+v", s.Entries)
	}
	if len(hist.dirs) != 1 || hist.dirs[0] != s.Dir {
		t.Fatalf("history %v, want exactly [%s]", hist.dirs, s.Dir)
	}
}

func Test_Run_Succeeds_Overall_Despite_Per_Entry_Failures(t *testing.T) {
	t.Chdir(t.TempDir())

	src := t.TempDir()
	exists := writeFile(t, src, "exists.txt", nil)
	missing := filepath.Join(src, "missing.txt")

	hist := &historySpy{}

	s, err := ingest.Run(strings.NewReader(exists+"\n"+missing+"\n"), ingest.Options{TmpRoot: t.TempDir()}, hist)
	if err != nil {
		t.Fatalf("batch aborted by per-entry failure: %v", err)
	}
	defer s.Remove()

	if s.Linked() != 1 || len(s.Failed()) != 1 {
		t.Fatalf("linked %d failed %d, want 1 and 1", s.Linked(), len(s.Failed()))
	}
	if len(hist.dirs) != 1 {
		t.Fatalf("history %v, want one entry", hist.dirs)
	}
}

func Test_Run_Aborts_With_Origin_Intact_When_TmpRoot_Unusable(t *testing.T) {
	work := t.TempDir()
	t.Chdir(work)

	root := writeFile(t, t.TempDir(), "not-a-dir", nil)
	hist := &historySpy{}

	s, err := ingest.Run(strings.NewReader("/tmp/whatever\n"), ingest.Options{TmpRoot: root}, hist)
	if err == nil {
		s.Remove()
		t.Fatal("expected directory creation error")
	}
	if s != nil {
		t.Fatal("session returned on fatal error")
	}
	if got := mustGetwd(t); got != work {
		t.Fatalf("working directory changed to %s", got)
	}
	if len(hist.dirs) != 0 {
		t.Fatalf("history touched on failure: %v", hist.dirs)
	}
}

func Test_Run_Aborts_On_Read_Error_Before_Any_Mutation(t *testing.T) {
	work := t.TempDir()
	t.Chdir(work)

	root := t.TempDir()
	readErr := errors.New("stdin gone")

	s, err := ingest.Run(iotest.ErrReader(readErr), ingest.Options{TmpRoot: root}, &historySpy{})
	if !errors.Is(err, readErr) {
		t.Fatalf("got %v, want %v", err, readErr)
	}
	if s != nil {
		t.Fatal("session returned on read error")
	}

	left, err := os.ReadDir(root)
	if err != nil || len(left) != 0 {
		t.Fatalf("filesystem mutated: %v %v", left, err)
	}
	if got := mustGetwd(t); got != work {
		t.Fatalf("working directory changed to %s", got)
	}
}

func Test_Run_Accepts_Nil_History(t *testing.T) {
	t.Chdir(t.TempDir())

	src := t.TempDir()
	a := writeFile(t, src, "a.txt", nil)

	s, err := ingest.Run(strings.NewReader(a), ingest.Options{TmpRoot: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Remove()

	if s.Linked() != 1 {
		t.Fatalf("linked %d, want 1", s.Linked())
	}
}
