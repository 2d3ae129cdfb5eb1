// Package config loads user preferences from ~/.config/clifm/clifm.toml.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the user preferences.
type Config struct {
	// TmpRoot is where ephemeral session directories are created.
	TmpRoot string `toml:"tmp_root"`
	// ListOnTheFly controls whether the listing is read eagerly before
	// the browser starts instead of on first draw.
	ListOnTheFly bool `toml:"list_on_the_fly"`
	// ShowHidden includes dotfiles in listings.
	ShowHidden bool `toml:"show_hidden"`
	// Opener is the program used to open regular files.
	Opener string `toml:"opener"`
	// InputChunkSize and InputMaxChunks bound how much piped input is
	// buffered (chunk size in bytes times chunk count).
	InputChunkSize int `toml:"input_chunk_size"`
	InputMaxChunks int `toml:"input_max_chunks"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TmpRoot:        os.TempDir(),
		ListOnTheFly:   true,
		Opener:         defaultOpener(),
		InputChunkSize: 512 * 1024,
		InputMaxChunks: 512,
	}
}

func defaultOpener() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// Path returns the config file location.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "clifm", "clifm.toml")
}

// Load reads the config file at path. A missing file yields the defaults;
// fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}

	// backfill values an older or hand-edited config may have zeroed
	def := Default()
	if cfg.TmpRoot == "" {
		cfg.TmpRoot = def.TmpRoot
	}
	if cfg.Opener == "" {
		cfg.Opener = def.Opener
	}
	if cfg.InputChunkSize <= 0 {
		cfg.InputChunkSize = def.InputChunkSize
	}
	if cfg.InputMaxChunks <= 0 {
		cfg.InputMaxChunks = def.InputMaxChunks
	}

	return cfg, nil
}

// Write persists cfg to path, creating parent directories as needed.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
