package model

import (
	"io/fs"
	"time"
)

// Entry is one row of a directory listing.
type Entry struct {
	Name    string
	Path    string // full path
	IsDir   bool   // true for directories and links resolving to one
	IsLink  bool
	Broken  bool   // dangling symlink
	Target  string // link target, when IsLink
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
}

// Indicator returns the classification suffix shown after the name.
func (e Entry) Indicator() string {
	switch {
	case e.Broken:
		return "!"
	case e.IsLink:
		return "@"
	case e.IsDir:
		return "/"
	}
	return ""
}
