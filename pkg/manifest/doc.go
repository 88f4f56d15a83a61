// Package manifest loads the dependency maps of an npm project.
//
// # Overview
//
// [Load] reads <root>/package.json and extracts the two top-level maps the
// dependencies panel shows:
//
//   - dependencies: runtime dependencies
//   - devDependencies: development dependencies
//
// Every other field is ignored except name and version, which label the panel.
//
// # Ordering
//
// [Dependencies] keeps the key order of the manifest. The panel shows entries
// and resolves them in that order, so the order matters.
//
// # Errors
//
// Load reports three environment failures as coded errors from
// [errors]: ErrCodeNoWorkspace for an empty root, ErrCodeManifestUnreadable
// when the file cannot be read, and ErrCodeInvalidManifest when it is not a
// JSON object with string-valued dependency maps.
//
// [errors]: github.com/matzehuels/knowdeps/pkg/errors
package manifest
