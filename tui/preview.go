package tui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/Chiheisen/clifm/launcher"
	"github.com/Chiheisen/clifm/model"
)

// previewLoadedMsg is sent when async preview reading completes.
type previewLoadedMsg struct {
	path  string // identifies which entry this result belongs to
	lines []string
	err   error
}

const previewMaxBytes = 256 * 1024

func loadPreview(e model.Entry) tea.Cmd {
	path := e.Path
	return func() tea.Msg {
		lines, err := readPreview(path)
		return previewLoadedMsg{path: path, lines: lines, err: err}
	}
}

func readPreview(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, previewMaxBytes))
	if err != nil {
		return nil, err
	}

	if bytes.IndexByte(data, 0) >= 0 {
		return []string{"(binary file)"}, nil
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(text, "\n"), nil
}

func (m Model) enterPreview() (Model, tea.Cmd) {
	if len(m.filtered) == 0 {
		return m, nil
	}
	m.previewEntry = m.filtered[m.cursor]
	m.previewLines = nil
	m.previewOffset = 0
	m.previewLoading = true
	m.mode = modePreview
	return m, loadPreview(m.previewEntry)
}

func (m Model) updatePreviewLoaded(msg previewLoadedMsg) Model {
	// discard stale result if the user already moved on
	if msg.path != m.previewEntry.Path {
		return m
	}
	m.previewLoading = false
	if msg.err != nil {
		m.previewLines = []string{fmt.Sprintf("error: %v", msg.err)}
		return m
	}
	m.previewLines = msg.lines
	m.previewOffset = 0
	return m
}

func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeList
		return m, nil

	case "up", "k":
		m.previewScrollUp(1)
	case "down", "j":
		m.previewScrollDown(1)
	case "pgup", "u":
		m.previewScrollUp(m.previewVisibleRows())
	case "pgdown", "d":
		m.previewScrollDown(m.previewVisibleRows())
	case "home", "g":
		m.previewOffset = 0
	case "end", "G":
		m.previewOffset = max(0, len(m.previewLines)-m.previewVisibleRows())

	case "o":
		m.launchCmd = launcher.BuildOpenCommand(m.opener, m.previewEntry)
		m.quitting = true
		return m, tea.Quit

	case "e":
		m.launchCmd = launcher.BuildEditCommand(m.previewEntry)
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) previewScrollUp(n int) {
	m.previewOffset -= n
	if m.previewOffset < 0 {
		m.previewOffset = 0
	}
}

func (m *Model) previewScrollDown(n int) {
	limit := max(0, len(m.previewLines)-m.previewVisibleRows())
	m.previewOffset += n
	if m.previewOffset > limit {
		m.previewOffset = limit
	}
}

func (m Model) previewVisibleRows() int {
	rows := m.height - 3 // title and bottom bar
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) viewPreview() string {
	var b strings.Builder

	title := m.previewEntry.Name
	if m.previewLoading {
		title += "  (loading...)"
	}
	b.WriteString(previewTitleStyle.Render(title) + "\n")

	visible := m.previewVisibleRows()
	end := m.previewOffset + visible
	if end > len(m.previewLines) {
		end = len(m.previewLines)
	}

	for _, line := range m.previewLines[m.previewOffset:end] {
		b.WriteString(runewidth.Truncate(line, max(1, m.width-1), "..") + "\n")
	}
	for i := end - m.previewOffset; i < visible; i++ {
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("  j/k: scroll  o: open  e: edit  Esc: back"))
	return b.String()
}
