package launcher

import (
	"fmt"
	"os"
	"strings"

	"github.com/Chiheisen/clifm/model"
)

// BuildOpenCommand returns the shell command to open e with opener.
func BuildOpenCommand(opener string, e model.Entry) string {
	if opener == "" || e.Path == "" {
		return ""
	}
	return fmt.Sprintf("%s %s", opener, shellQuote(e.Path))
}

// BuildEditCommand returns the shell command to open e in the user's
// editor, falling back to vi.
func BuildEditCommand(e model.Entry) string {
	if e.Path == "" {
		return ""
	}
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	return fmt.Sprintf("%s %s", editor, shellQuote(e.Path))
}

func shellQuote(s string) string {
	// wrap in single quotes, escape existing single quotes
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}
