// Package lister reads directories into listing entries.
package lister

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Chiheisen/clifm/model"
)

// List reads dir and returns its entries sorted directories-first, then
// case-insensitively by name. Metadata comes from lstat, so dangling
// symlinks are still listed, flagged as broken. Entries whose metadata
// cannot be read at all are skipped.
func List(dir string, showHidden bool) ([]model.Entry, error) {
	dents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]model.Entry, 0, len(dents))
	for _, d := range dents {
		name := d.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}

		info, err := d.Info()
		if err != nil {
			continue
		}

		full := filepath.Join(dir, name)
		e := model.Entry{
			Name:    name,
			Path:    full,
			Size:    info.Size(),
			Mode:    info.Mode(),
			ModTime: info.ModTime(),
		}

		if info.Mode()&fs.ModeSymlink != 0 {
			e.IsLink = true
			e.Target, _ = os.Readlink(full)

			// follow the link for display metadata only
			st, err := os.Stat(full)
			if err != nil {
				e.Broken = true
			} else {
				e.IsDir = st.IsDir()
				e.Size = st.Size()
			}
		} else {
			e.IsDir = d.IsDir()
		}

		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	return entries, nil
}
