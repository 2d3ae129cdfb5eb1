package launcher_test

import (
	"testing"

	"github.com/Chiheisen/clifm/launcher"
	"github.com/Chiheisen/clifm/model"
)

func Test_BuildOpenCommand_Quotes_The_Path(t *testing.T) {
	cmd := launcher.BuildOpenCommand("xdg-open", model.Entry{Path: "/tmp/it's here.txt"})

	want := `xdg-open '/tmp/it'\''s here.txt'`
	if cmd != want {
		t.Fatalf("got %q, want %q", cmd, want)
	}
}

func Test_BuildOpenCommand_Returns_Empty_Without_Opener_Or_Path(t *testing.T) {
	if cmd := launcher.BuildOpenCommand("", model.Entry{Path: "/tmp/a"}); cmd != "" {
		t.Fatalf("got %q for empty opener", cmd)
	}
	if cmd := launcher.BuildOpenCommand("xdg-open", model.Entry{}); cmd != "" {
		t.Fatalf("got %q for empty path", cmd)
	}
}

func Test_BuildEditCommand_Uses_EDITOR_With_Vi_Fallback(t *testing.T) {
	t.Setenv("EDITOR", "nano")
	if cmd := launcher.BuildEditCommand(model.Entry{Path: "/tmp/a"}); cmd != "nano '/tmp/a'" {
		t.Fatalf("got %q", cmd)
	}

	t.Setenv("EDITOR", "")
	if cmd := launcher.BuildEditCommand(model.Entry{Path: "/tmp/a"}); cmd != "vi '/tmp/a'" {
		t.Fatalf("got %q", cmd)
	}
}
