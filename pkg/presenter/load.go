package presenter

import (
	"github.com/matzehuels/knowdeps/pkg/locale"
	"github.com/matzehuels/knowdeps/pkg/manifest"
	"github.com/matzehuels/knowdeps/pkg/workspace"
)

// Load reads the manifest at the workspace root and builds its document.
// The error is an environment error when no folder is open or the manifest
// cannot be read or decoded; no document is built in that case.
func Load(ws *workspace.Workspace, s locale.Strings) (Document, error) {
	root, err := ws.Root()
	if err != nil {
		return Document{}, err
	}
	m, err := manifest.Load(root)
	if err != nil {
		return Document{}, err
	}
	return New(m, s), nil
}
