package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/Chiheisen/clifm/config"
	"github.com/Chiheisen/clifm/history"
	"github.com/Chiheisen/clifm/ingest"
	"github.com/Chiheisen/clifm/lister"
	"github.com/Chiheisen/clifm/model"
	"github.com/Chiheisen/clifm/tui"
)

var warnf = color.New(color.FgYellow).FprintfFunc()

func main() {
	cfgPath := config.Path()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		warnf(os.Stderr, "clifm: %s: %v (using defaults)\n", cfgPath, err)
	}
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		// first run: persist the defaults so they are discoverable
		if err := config.Write(cfgPath, cfg); err != nil {
			warnf(os.Stderr, "clifm: writing %s: %v\n", cfgPath, err)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "clifm: %v\n", err)
		os.Exit(1)
	}

	hist := history.New()
	hist.Visit(cwd)

	// when paths are piped in, build the ephemeral link-farm session and
	// switch there before the browser starts
	var sess *ingest.Session
	var ingestErr error
	piped := !term.IsTerminal(int(os.Stdin.Fd()))
	if piped {
		sess, ingestErr = ingest.Run(os.Stdin, ingest.Options{
			TmpRoot: cfg.TmpRoot,
			Limits: ingest.Limits{
				ChunkSize: cfg.InputChunkSize,
				MaxChunks: cfg.InputMaxChunks,
			},
		}, hist)
	}

	// an aborted ingestion leaves the session untouched, so the browser
	// still opens, at the pre-ingestion directory
	cwd, warnings := resolveSession(sess, ingestErr, cwd)
	for _, w := range warnings {
		warnf(os.Stderr, "clifm: %s\n", w)
	}

	var entries []model.Entry
	if cfg.ListOnTheFly {
		entries, err = lister.List(cwd, cfg.ShowHidden)
		if err != nil {
			warnf(os.Stderr, "clifm: %s: %v\n", cwd, err)
			entries = nil
		}
	}

	home, _ := os.UserHomeDir()
	m := tui.NewModel(tui.Options{
		CWD:        cwd,
		Entries:    entries,
		Hist:       hist,
		Opener:     cfg.Opener,
		ShowHidden: cfg.ShowHidden,
		Warnings:   warnings,
		HomeDir:    home,
	})

	// stdin was consumed by the pipe; re-attach interactive input to the
	// controlling terminal so the browser reads keys correctly
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	var ttyIn *os.File
	if piped {
		ttyIn, err = os.Open("/dev/tty")
		if err != nil {
			fmt.Fprintf(os.Stderr, "clifm: opening terminal: %v\n", err)
			sess.Remove()
			os.Exit(1)
		}
		defer ttyIn.Close()
		progOpts = append(progOpts, tea.WithInput(ttyIn))
	}

	p := tea.NewProgram(m, progOpts...)
	result, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		sess.Remove()
		os.Exit(1)
	}

	// after the TUI exits, check if we need to launch a command
	finalModel := result.(tui.Model)
	if cmd := finalModel.LaunchCmd(); cmd != "" {
		// launch before teardown: the command may point into the session
		// directory
		runCommand(cmd, ttyIn)
	}

	sess.Remove()
}

// resolveSession decides where the browser starts after an ingestion
// attempt. A fatal ingestion error degrades to a warning and the origin
// directory; a successful session moves the browser into its directory,
// carrying any per-entry link failures as warnings.
func resolveSession(sess *ingest.Session, err error, origin string) (string, []string) {
	if err != nil {
		return origin, []string{err.Error()}
	}
	if sess == nil {
		return origin, nil
	}

	var warnings []string
	for _, e := range sess.Failed() {
		warnings = append(warnings, fmt.Sprintf("ln: %v", e.Err))
	}
	return sess.Dir, warnings
}

// runCommand executes cmd via the shell, blocking until it exits.
func runCommand(cmd string, ttyIn *os.File) {
	shell := "/bin/bash"
	if runtime.GOOS == "darwin" {
		if zsh, err := exec.LookPath("zsh"); err == nil {
			shell = zsh
		}
	}

	execCmd := exec.Command(shell, "-c", cmd)
	execCmd.Stdin = os.Stdin
	if ttyIn != nil {
		execCmd.Stdin = ttyIn
	}
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr

	if err := execCmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to launch: %v\n", err)
	}
}
