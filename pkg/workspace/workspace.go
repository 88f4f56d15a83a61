// Package workspace decides which project folders are "open" for a command
// invocation.
//
// A workspace is an ordered list of folders. Commands act on the first one,
// the same way an editor acts on its first workspace folder. Folders come from
// the first non-empty source among --workspace flags, the [workspace] section
// of the config file, and the current working directory.
package workspace

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/knowdeps/pkg/errors"
)

// Workspace is an ordered set of project folders.
type Workspace struct {
	folders []string
}

// New creates a Workspace from folders, dropping blank entries.
func New(folders ...string) *Workspace {
	w := &Workspace{}
	for _, f := range folders {
		if f = strings.TrimSpace(f); f != "" {
			w.folders = append(w.folders, f)
		}
	}
	return w
}

// Detect builds a Workspace from the first source that names any folder.
// getwd is consulted last; if it fails the workspace is empty.
func Detect(flagFolders, configFolders []string, getwd func() (string, error)) *Workspace {
	if w := New(flagFolders...); len(w.folders) > 0 {
		return w
	}
	if w := New(configFolders...); len(w.folders) > 0 {
		return w
	}
	if getwd == nil {
		return New()
	}
	dir, err := getwd()
	if err != nil {
		return New()
	}
	return New(dir)
}

// Folders returns a copy of the workspace folders in order.
func (w *Workspace) Folders() []string {
	return append([]string(nil), w.folders...)
}

// Root returns the first folder as an absolute path.
// It returns an ErrCodeNoWorkspace error when no folder is open.
func (w *Workspace) Root() (string, error) {
	if w == nil || len(w.folders) == 0 {
		return "", errors.New(errors.ErrCodeNoWorkspace, "no workspace open")
	}
	root, err := filepath.Abs(w.folders[0])
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNoWorkspace, err, "no workspace open")
	}
	return root, nil
}
