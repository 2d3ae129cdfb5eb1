package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mattn/go-runewidth"

	"github.com/Chiheisen/clifm/history"
	"github.com/Chiheisen/clifm/launcher"
	"github.com/Chiheisen/clifm/lister"
	"github.com/Chiheisen/clifm/model"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeGoto
	modePreview
	modeWarnings
)

// Options configures the browser.
type Options struct {
	CWD        string
	Entries    []model.Entry // pre-read listing; nil means list on Init
	Hist       *history.History
	Opener     string
	ShowHidden bool
	Warnings   []string // per-entry ingestion failures, shown on demand
	HomeDir    string
}

type Model struct {
	cwd      string
	entries  []model.Entry
	filtered []model.Entry
	listed   bool // entries were handed in pre-read
	cursor   int
	offset   int // scroll offset
	width    int
	height   int
	mode     mode

	searchInput textinput.Model
	gotoInput   textinput.Model
	filter      string // "all", "dirs", "files"
	showHidden  bool
	hist        *history.History
	opener      string
	homeDir     string

	warnings      []string
	warningOffset int

	// preview state
	previewEntry   model.Entry
	previewLines   []string
	previewOffset  int
	previewLoading bool

	status    string // transient message on the bottom bar
	launchCmd string // final command to execute after the TUI exits
	quitting  bool
}

func NewModel(opts Options) Model {
	si := textinput.New()
	si.Placeholder = "search..."
	si.CharLimit = 100

	gi := textinput.New()
	gi.Placeholder = "~/some/dir"
	gi.CharLimit = 300

	m := Model{
		cwd:         opts.CWD,
		entries:     opts.Entries,
		listed:      opts.Entries != nil,
		filter:      "all",
		searchInput: si,
		gotoInput:   gi,
		showHidden:  opts.ShowHidden,
		hist:        opts.Hist,
		opener:      opts.Opener,
		homeDir:     opts.HomeDir,
		warnings:    opts.Warnings,
		width:       120,
		height:      30,
	}
	m.applyFilter()
	if len(m.warnings) > 0 {
		m.status = fmt.Sprintf("%d file(s) could not be linked  (w: details)", len(m.warnings))
	}
	return m
}

// dirLoadedMsg is sent when an async directory read completes.
type dirLoadedMsg struct {
	dir     string
	entries []model.Entry
	record  bool // append to the navigation history
	err     error
}

func loadDir(dir string, showHidden, record bool) tea.Cmd {
	return func() tea.Msg {
		entries, err := lister.List(dir, showHidden)
		return dirLoadedMsg{dir: dir, entries: entries, record: record, err: err}
	}
}

func (m *Model) applyFilter() {
	m.filtered = nil
	search := m.searchInput.Value()

	for _, e := range m.entries {
		switch m.filter {
		case "dirs":
			if !e.IsDir {
				continue
			}
		case "files":
			if e.IsDir {
				continue
			}
		}

		if search != "" && !fuzzy.MatchFold(search, e.Name) {
			continue
		}

		m.filtered = append(m.filtered, e)
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	m.clampOffset()
}

func (m Model) Init() tea.Cmd {
	if !m.listed {
		return loadDir(m.cwd, m.showHidden, false)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		return m, nil

	case dirLoadedMsg:
		return m.updateDirLoaded(msg), nil

	case previewLoadedMsg:
		return m.updatePreviewLoaded(msg), nil

	case tea.KeyMsg:
		switch m.mode {
		case modeList:
			return m.updateList(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeGoto:
			return m.updateGoto(msg)
		case modePreview:
			return m.updatePreview(msg)
		case modeWarnings:
			return m.updateWarnings(msg)
		}
	}
	return m, nil
}

func (m Model) updateDirLoaded(msg dirLoadedMsg) Model {
	if msg.err != nil {
		m.status = fmt.Sprintf("%s: %v", msg.dir, msg.err)
		return m
	}
	m.cwd = msg.dir
	m.entries = msg.entries
	m.listed = true
	m.cursor = 0
	m.offset = 0
	m.status = ""
	if msg.record && m.hist != nil {
		m.hist.Visit(msg.dir)
	}
	m.applyFilter()
	return m
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.clampOffset()
		}

	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.clampOffset()
		}

	case "home", "g":
		m.cursor = 0
		m.clampOffset()

	case "end", "G":
		m.cursor = max(0, len(m.filtered)-1)
		m.clampOffset()

	case "pgup":
		m.cursor = max(0, m.cursor-m.visibleRows())
		m.clampOffset()

	case "pgdown":
		m.cursor += m.visibleRows()
		if m.cursor >= len(m.filtered) {
			m.cursor = len(m.filtered) - 1
		}
		m.clampOffset()

	case "enter", "right", "l":
		if len(m.filtered) == 0 {
			break
		}
		e := m.filtered[m.cursor]
		if e.IsDir {
			return m, loadDir(e.Path, m.showHidden, true)
		}
		return m.enterPreview()

	case "backspace", "left", "h":
		parent := filepath.Dir(m.cwd)
		if parent != m.cwd {
			return m, loadDir(parent, m.showHidden, true)
		}

	case "b":
		if m.hist != nil {
			if dir, ok := m.hist.Back(); ok {
				return m, loadDir(dir, m.showHidden, false)
			}
		}

	case "f":
		if m.hist != nil {
			if dir, ok := m.hist.Forward(); ok {
				return m, loadDir(dir, m.showHidden, false)
			}
		}

	case "o":
		if len(m.filtered) > 0 && !m.filtered[m.cursor].IsDir {
			m.launchCmd = launcher.BuildOpenCommand(m.opener, m.filtered[m.cursor])
			m.quitting = true
			return m, tea.Quit
		}

	case "e":
		if len(m.filtered) > 0 && !m.filtered[m.cursor].IsDir {
			m.launchCmd = launcher.BuildEditCommand(m.filtered[m.cursor])
			m.quitting = true
			return m, tea.Quit
		}

	case "y":
		if len(m.filtered) > 0 {
			if err := clipboard.WriteAll(m.filtered[m.cursor].Path); err == nil {
				m.status = "path copied"
			} else {
				m.status = fmt.Sprintf("clipboard: %v", err)
			}
		}

	case "r":
		return m, loadDir(m.cwd, m.showHidden, false)

	case ".":
		m.showHidden = !m.showHidden
		return m, loadDir(m.cwd, m.showHidden, false)

	case "/":
		m.searchInput.Focus()
		m.mode = modeSearch

	case "tab":
		switch m.filter {
		case "all":
			m.filter = "dirs"
		case "dirs":
			m.filter = "files"
		case "files":
			m.filter = "all"
		}
		m.applyFilter()

	case "~":
		if m.homeDir != "" {
			return m, loadDir(m.homeDir, m.showHidden, true)
		}

	case ":":
		m.gotoInput.SetValue("")
		m.gotoInput.Focus()
		m.mode = modeGoto

	case "w":
		if len(m.warnings) > 0 {
			m.warningOffset = 0
			m.mode = modeWarnings
		}
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searchInput.Blur()
		m.mode = modeList
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m Model) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.gotoInput.Blur()
		m.mode = modeList
		return m, nil

	case "enter":
		dir := strings.TrimSpace(m.gotoInput.Value())
		m.gotoInput.Blur()
		m.mode = modeList
		if dir == "" {
			return m, nil
		}
		if dir == "~" || strings.HasPrefix(dir, "~/") {
			dir = filepath.Join(m.homeDir, strings.TrimPrefix(dir, "~"))
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(m.cwd, dir)
		}
		return m, loadDir(filepath.Clean(dir), m.showHidden, true)
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

func (m Model) updateWarnings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "w":
		m.mode = modeList
	case "up", "k":
		if m.warningOffset > 0 {
			m.warningOffset--
		}
	case "down", "j":
		if m.warningOffset < len(m.warnings)-1 {
			m.warningOffset++
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modePreview:
		return m.viewPreview()
	case modeWarnings:
		return m.viewWarnings()
	}

	var b strings.Builder

	// title bar
	title := titleStyle.Render("clifm")
	cwd := m.cwd
	if m.homeDir != "" && strings.HasPrefix(cwd, m.homeDir) {
		cwd = "~" + strings.TrimPrefix(cwd, m.homeDir)
	}
	info := dimStyle.Render(fmt.Sprintf("  %s  [%s]  %d items", cwd, m.filter, len(m.filtered)))
	b.WriteString(title + info + "\n")

	b.WriteString(m.renderHeader() + "\n")

	visible := m.visibleRows()
	end := m.offset + visible
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(m.filtered[i], i == m.cursor) + "\n")
	}

	// pad remaining rows
	for i := end - m.offset; i < visible; i++ {
		b.WriteString("\n")
	}

	// bottom bar
	switch m.mode {
	case modeSearch:
		b.WriteString(statusBarStyle.Render("Search: ") + m.searchInput.View())
	case modeGoto:
		b.WriteString(statusBarStyle.Render("Go to: ") + m.gotoInput.View())
	default:
		if m.status != "" {
			b.WriteString(statusBarStyle.Render(m.status))
		} else {
			b.WriteString(m.renderHelp())
		}
	}

	return b.String()
}

func (m Model) renderHeader() string {
	w := m.colWidths()
	cols := []string{
		pad("Name", w.name),
		pad("Size", w.size),
		pad("Modified", w.time),
	}
	return headerStyle.Render(strings.Join(cols, " "))
}

func (m Model) renderRow(e model.Entry, selected bool) string {
	w := m.colWidths()

	name := e.Name + e.Indicator()
	if e.IsLink && e.Target != "" {
		name += " -> " + e.Target
	}

	sizeStr := humanSize(e.Size)
	if e.IsDir {
		sizeStr = "-"
	}
	timeStr := e.ModTime.Format("01-02 15:04")

	cols := []string{
		pad(name, w.name),
		pad(sizeStr, w.size),
		pad(timeStr, w.time),
	}

	if selected {
		row := selectedStyle.Render(strings.Join(cols, " "))
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, row)
	}

	// style the name column only, padding is already applied
	var nameStr string
	switch {
	case e.Broken:
		nameStr = brokenStyle.Render(cols[0])
	case e.IsLink:
		nameStr = linkStyle.Render(cols[0])
	case e.IsDir:
		nameStr = dirStyle.Render(cols[0])
	default:
		nameStr = cols[0]
	}

	return strings.Join(append([]string{nameStr}, cols[1:]...), " ")
}

func (m Model) renderHelp() string {
	return helpStyle.Render("  Enter: open  /: search  :: goto  Tab: filter  b/f: history  y: yank  q: quit")
}

func (m Model) viewWarnings() string {
	var b strings.Builder
	b.WriteString(warnTitleStyle.Render("Files that could not be linked") + "\n\n")

	visible := m.height - 4
	if visible < 1 {
		visible = 1
	}
	end := m.warningOffset + visible
	if end > len(m.warnings) {
		end = len(m.warnings)
	}
	for _, w := range m.warnings[m.warningOffset:end] {
		b.WriteString("  " + brokenStyle.Render(runewidth.Truncate(w, max(1, m.width-4), "..")) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("  j/k: scroll  Esc: back"))
	return b.String()
}

type colWidths struct {
	name int
	size int
	time int
}

func (m Model) colWidths() colWidths {
	w := colWidths{
		size: 8,
		time: 12,
	}
	// name gets the remaining width
	used := w.size + w.time + 4 // separators and padding
	w.name = m.width - used
	if w.name < 20 {
		w.name = 20
	}
	return w
}

func (m Model) visibleRows() int {
	// total height minus title, header, bottom bar
	rows := m.height - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) clampOffset() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// LaunchCmd returns the command to execute after the TUI exits.
func (m Model) LaunchCmd() string {
	return m.launchCmd
}

func pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "..")
	}
	return runewidth.FillRight(s, width)
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), "KMGTPE"[exp])
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
