package tui

import (
	"testing"

	"github.com/Chiheisen/clifm/model"
)

func Test_humanSize_Scales_By_Binary_Units(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{512, "512"},
		{1024, "1.0K"},
		{1536, "1.5K"},
		{5 * 1024 * 1024, "5.0M"},
		{3 * 1024 * 1024 * 1024, "3.0G"},
	}

	for _, tt := range tests {
		if got := humanSize(tt.n); got != tt.want {
			t.Errorf("humanSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func Test_pad_Fills_And_Truncates_To_Width(t *testing.T) {
	if got := pad("ab", 5); got != "ab   " {
		t.Fatalf("fill: %q", got)
	}
	if got := pad("abcdefgh", 5); got != "abc.." {
		t.Fatalf("truncate: %q", got)
	}
}

func Test_applyFilter_Honors_Kind_And_Fuzzy_Search(t *testing.T) {
	entries := []model.Entry{
		{Name: "docs", IsDir: true},
		{Name: "main.go"},
		{Name: "main_test.go"},
		{Name: "readme.md"},
	}

	m := NewModel(Options{CWD: "/x", Entries: entries})

	if len(m.filtered) != len(entries) {
		t.Fatalf("unfiltered view has %d entries", len(m.filtered))
	}

	m.filter = "dirs"
	m.applyFilter()
	if len(m.filtered) != 1 || m.filtered[0].Name != "docs" {
		t.Fatalf("dirs filter: %+v", m.filtered)
	}

	m.filter = "all"
	m.searchInput.SetValue("maingo")
	m.applyFilter()
	if len(m.filtered) != 2 {
		t.Fatalf("fuzzy filter: %+v", m.filtered)
	}
}
