// Package config loads knowdeps settings from a TOML file.
//
// The default location follows the XDG base directory convention:
// $XDG_CONFIG_HOME/knowdeps/config.toml, or ~/.config/knowdeps/config.toml.
// A missing file is not an error; [Default] applies. Command-line flags
// override whatever the file sets.
//
//	[registry]
//	url = "https://registry.npmjs.org"
//	timeout = "10s"
//
//	[links]
//	package = "https://www.npmjs.com/package/"
//	search = "https://github.com/search?q="
//
//	[server]
//	addr = "127.0.0.1:0"
//	open_browser = true
//
//	[workspace]
//	folders = ["~/src/my-app"]
//
//	[ui]
//	locale = "zh-CN"
//	view = "auto"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/knowdeps/pkg/errors"
	"github.com/matzehuels/knowdeps/pkg/integrations"
	"github.com/matzehuels/knowdeps/pkg/integrations/npm"
)

const appName = "knowdeps"

// Views accepted by [UI.View].
var Views = []string{"auto", "tui", "text", "web"}

// Config is the decoded configuration file.
type Config struct {
	Registry  Registry  `toml:"registry"`
	Links     Links     `toml:"links"`
	Server    Server    `toml:"server"`
	Workspace Workspace `toml:"workspace"`
	UI        UI        `toml:"ui"`
}

type Registry struct {
	URL     string `toml:"url"`
	Timeout string `toml:"timeout"`
}

type Links struct {
	Package string `toml:"package"`
	Search  string `toml:"search"`
}

type Server struct {
	Addr        string `toml:"addr"`
	OpenBrowser bool   `toml:"open_browser"`
}

type Workspace struct {
	Folders []string `toml:"folders"`
}

type UI struct {
	Locale string `toml:"locale"`
	View   string `toml:"view"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Registry: Registry{
			URL:     npm.DefaultBaseURL,
			Timeout: integrations.DefaultTimeout.String(),
		},
		Links: Links{
			Package: "https://www.npmjs.com/package/",
			Search:  "https://github.com/search?q=",
		},
		Server: Server{
			Addr:        "127.0.0.1:0",
			OpenBrowser: true,
		},
		UI: UI{View: "auto"},
	}
}

// DefaultPath returns the config file location using XDG conventions.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads path on top of [Default]. An empty path means [DefaultPath].
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML content on top of [Default] and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	cfg.Workspace.Folders = expandHome(cfg.Workspace.Folders)
	return cfg, cfg.Validate()
}

// Validate checks URLs, the timeout and the view name.
func (c Config) Validate() error {
	for _, u := range []string{c.Registry.URL, c.Links.Package, c.Links.Search} {
		if err := errors.ValidateURL(u); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid URL %q", u)
		}
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if !slices.Contains(Views, c.UI.View) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown view %q (want one of %s)", c.UI.View, strings.Join(Views, ", "))
	}
	return nil
}

// Timeout parses Registry.Timeout. An empty value selects the default.
func (c Config) Timeout() (time.Duration, error) {
	if c.Registry.Timeout == "" {
		return integrations.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Registry.Timeout)
	if err != nil || d <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "invalid registry timeout %q", c.Registry.Timeout)
	}
	return d, nil
}

func expandHome(paths []string) []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return paths
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if p == "~" || strings.HasPrefix(p, "~/") {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
		out[i] = p
	}
	return out
}
