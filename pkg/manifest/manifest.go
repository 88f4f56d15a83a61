package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/matzehuels/knowdeps/pkg/errors"
)

// FileName is the manifest file looked up in a project root.
const FileName = "package.json"

// Dependency is one name/version-specifier pair. The version is opaque.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Dependencies is an ordered dependency map. Names are unique.
type Dependencies []Dependency

// MarshalJSON encodes d as an array of [name, version] pairs, which keeps
// the order through consumers that do not preserve object key order.
func (d Dependencies) MarshalJSON() ([]byte, error) {
	pairs := make([][2]string, len(d))
	for i, dep := range d {
		pairs[i] = [2]string{dep.Name, dep.Version}
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON decodes the pair form written by MarshalJSON.
func (d *Dependencies) UnmarshalJSON(data []byte) error {
	var pairs [][2]string
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	out := make(Dependencies, len(pairs))
	for i, p := range pairs {
		out[i] = Dependency{Name: p[0], Version: p[1]}
	}
	*d = out
	return nil
}

// Manifest is the part of package.json the panel uses.
type Manifest struct {
	Path            string
	Name            string
	Version         string
	Dependencies    Dependencies
	DevDependencies Dependencies
}

// Load reads and parses <root>/package.json.
func Load(root string) (*Manifest, error) {
	if root == "" {
		return nil, errors.New(errors.ErrCodeNoWorkspace, "no workspace open")
	}

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeManifestUnreadable, err, "cannot read %s", FileName)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	m.Path = path
	return m, nil
}

// Parse decodes package.json content.
func Parse(data []byte) (*Manifest, error) {
	var pkg packageFile
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "%s is not valid", FileName)
	}

	deps, err := fromOrdered(pkg.Dependencies, "dependencies")
	if err != nil {
		return nil, err
	}
	devDeps, err := fromOrdered(pkg.DevDependencies, "devDependencies")
	if err != nil {
		return nil, err
	}

	return &Manifest{
		Name:            pkg.Name,
		Version:         pkg.Version,
		Dependencies:    deps,
		DevDependencies: devDeps,
	}, nil
}

func fromOrdered(om *orderedmap.OrderedMap[string, string], field string) (Dependencies, error) {
	if om == nil {
		return Dependencies{}, nil
	}
	deps := make(Dependencies, 0, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == "" {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "%s: %s has an empty package name", FileName, field)
		}
		deps = append(deps, Dependency{Name: pair.Key, Version: pair.Value})
	}
	return deps, nil
}

type packageFile struct {
	Name            string                                `json:"name"`
	Version         string                                `json:"version"`
	Dependencies    *orderedmap.OrderedMap[string, string] `json:"dependencies"`
	DevDependencies *orderedmap.OrderedMap[string, string] `json:"devDependencies"`
}
