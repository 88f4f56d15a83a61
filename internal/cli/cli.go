// Package cli implements the knowdeps command-line interface.
package cli

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/knowdeps/pkg/buildinfo"
	"github.com/matzehuels/knowdeps/pkg/config"
	"github.com/matzehuels/knowdeps/pkg/integrations/npm"
	"github.com/matzehuels/knowdeps/pkg/locale"
	"github.com/matzehuels/knowdeps/pkg/panel/web"
	"github.com/matzehuels/knowdeps/pkg/presenter"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "knowdeps"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Stdout io.Writer
	Stderr io.Writer

	configPath string
	config     config.Config

	getwd      func() (string, error)
	isTerminal func() bool
	openURL    func(string) error
}

// New creates a new CLI instance with a logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		Stdout:     os.Stdout,
		Stderr:     w,
		config:     config.Default(),
		getwd:      os.Getwd,
		isTerminal: stdoutIsTerminal,
		openURL:    web.OpenBrowser,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "knowdeps shows what a project's npm dependencies are for",
		Long:          `knowdeps lists the dependencies and dev dependencies of the package.json in the open workspace and fills in each package's description from the npm registry as it arrives.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/knowdeps/config.toml)")

	// Register all subcommands
	root.AddCommand(c.showCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.describeCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Setup
// =============================================================================

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "registry", cfg.Registry.URL)
	return nil
}

// localeStrings picks the catalog from [ui].locale, then the environment.
func (c *CLI) localeStrings() locale.Strings {
	if c.config.UI.Locale != "" {
		return locale.Lookup(c.config.UI.Locale)
	}
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return locale.Lookup(v)
		}
	}
	return locale.English
}

func (c *CLI) registry() (*npm.Client, error) {
	timeout, err := c.config.Timeout()
	if err != nil {
		return nil, err
	}
	return npm.NewClient(
		npm.WithBaseURL(c.config.Registry.URL),
		npm.WithTimeout(timeout),
	), nil
}

func (c *CLI) newEnricher(s locale.Strings, logger *log.Logger) (*presenter.Enricher, error) {
	client, err := c.registry()
	if err != nil {
		return nil, err
	}
	return &presenter.Enricher{
		Describer: client,
		Links: presenter.Links{
			PackageBase: c.config.Links.Package,
			SearchBase:  c.config.Links.Search,
		},
		Strings: s,
		Logger:  logger,
	}, nil
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// =============================================================================
// Reported Errors
// =============================================================================

// reportedError wraps an error the user has already been notified about.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already shown to the user, so main
// only needs to set the exit status.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}
