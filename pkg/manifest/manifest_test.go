package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/knowdeps/pkg/errors"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeManifest(t, `{
  "name": "my-app",
  "version": "1.0.0",
  "scripts": {"test": "jest"},
  "dependencies": {
    "zod": "^3.22.0",
    "express": "^4.18.0",
    "@types/node": "20.x"
  },
  "devDependencies": {
    "jest": "^29.0.0"
  }
}`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if m.Name != "my-app" || m.Version != "1.0.0" {
		t.Errorf("Name, Version = %q, %q; want my-app, 1.0.0", m.Name, m.Version)
	}
	if m.Path != filepath.Join(dir, FileName) {
		t.Errorf("Path = %q", m.Path)
	}

	want := Dependencies{{"zod", "^3.22.0"}, {"express", "^4.18.0"}, {"@types/node", "20.x"}}
	if !slices.Equal(m.Dependencies, want) {
		t.Errorf("Dependencies = %v, want %v (manifest order)", m.Dependencies, want)
	}
	if want := (Dependencies{{"jest", "^29.0.0"}}); !slices.Equal(m.DevDependencies, want) {
		t.Errorf("DevDependencies = %v, want %v", m.DevDependencies, want)
	}
}

func TestLoadMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"absent", `{"name": "bare"}`},
		{"null", `{"dependencies": null, "devDependencies": null}`},
		{"empty", `{"dependencies": {}, "devDependencies": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Load(writeManifest(t, tt.content))
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if m.Dependencies == nil || m.DevDependencies == nil {
				t.Fatal("dependency maps should be empty, not nil")
			}
			if len(m.Dependencies) != 0 || len(m.DevDependencies) != 0 {
				t.Errorf("got %d/%d dependencies, want 0/0", len(m.Dependencies), len(m.DevDependencies))
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		root func(t *testing.T) string
		code errors.Code
	}{
		{
			name: "no root",
			root: func(t *testing.T) string { return "" },
			code: errors.ErrCodeNoWorkspace,
		},
		{
			name: "missing file",
			root: func(t *testing.T) string { return t.TempDir() },
			code: errors.ErrCodeManifestUnreadable,
		},
		{
			name: "missing directory",
			root: func(t *testing.T) string { return filepath.Join(t.TempDir(), "gone") },
			code: errors.ErrCodeManifestUnreadable,
		},
		{
			name: "manifest is a directory",
			root: func(t *testing.T) string {
				dir := t.TempDir()
				if err := os.Mkdir(filepath.Join(dir, FileName), 0o755); err != nil {
					t.Fatal(err)
				}
				return dir
			},
			code: errors.ErrCodeManifestUnreadable,
		},
		{
			name: "malformed json",
			root: func(t *testing.T) string { return writeManifest(t, `{"dependencies": {`) },
			code: errors.ErrCodeInvalidManifest,
		},
		{
			name: "top-level array",
			root: func(t *testing.T) string { return writeManifest(t, `[]`) },
			code: errors.ErrCodeInvalidManifest,
		},
		{
			name: "non-string version",
			root: func(t *testing.T) string { return writeManifest(t, `{"dependencies": {"a": 1}}`) },
			code: errors.ErrCodeInvalidManifest,
		},
		{
			name: "dependencies not an object",
			root: func(t *testing.T) string { return writeManifest(t, `{"devDependencies": ["a"]}`) },
			code: errors.ErrCodeInvalidManifest,
		},
		{
			name: "empty name",
			root: func(t *testing.T) string { return writeManifest(t, `{"dependencies": {"": "1.0.0"}}`) },
			code: errors.ErrCodeInvalidManifest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.root(t))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestParseSameNameInBothMaps(t *testing.T) {
	m, err := Parse([]byte(`{"dependencies": {"typescript": "5.0.0"}, "devDependencies": {"typescript": "5.1.0"}}`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := m.Dependencies; len(got) != 1 || got[0].Version != "5.0.0" {
		t.Errorf("runtime = %v, want typescript 5.0.0", got)
	}
	if got := m.DevDependencies; len(got) != 1 || got[0].Version != "5.1.0" {
		t.Errorf("dev = %v, want typescript 5.1.0", got)
	}
}

func TestDependenciesMarshalJSON(t *testing.T) {
	deps := Dependencies{{Name: "b", Version: "2"}, {Name: "a", Version: "1"}}
	data, err := json.Marshal(deps)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if got, want := string(data), `[["b","2"],["a","1"]]`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	data, _ = json.Marshal(Dependencies{})
	if string(data) != `[]` {
		t.Errorf("Marshal(empty) = %s, want []", data)
	}
}

func TestDependenciesUnmarshalJSON(t *testing.T) {
	var deps Dependencies
	if err := json.Unmarshal([]byte(`[["zeta","1"],["@types/node","^20"]]`), &deps); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	want := Dependencies{{"zeta", "1"}, {"@types/node", "^20"}}
	if !slices.Equal(deps, want) {
		t.Errorf("Unmarshal() = %v, want %v", deps, want)
	}

	if err := json.Unmarshal([]byte(`{"a":"1"}`), &deps); err == nil {
		t.Error("Unmarshal() accepted an object")
	}
}
