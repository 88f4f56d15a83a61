package cli

import (
	"context"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	kderrors "github.com/matzehuels/knowdeps/pkg/errors"
	"github.com/matzehuels/knowdeps/pkg/config"
	"github.com/matzehuels/knowdeps/pkg/locale"
	"github.com/matzehuels/knowdeps/pkg/panel/web"
	"github.com/matzehuels/knowdeps/pkg/presenter"
	"github.com/matzehuels/knowdeps/pkg/workspace"
)

// View names accepted by --view.
const (
	viewAuto = "auto"
	viewTUI  = "tui"
	viewText = "text"
	viewWeb  = "web"
)

// showOpts holds the command-line flags for the show command.
type showOpts struct {
	workspaces []string // workspace folders, the first one is used
	view       string   // auto, tui, text or web
	addr       string   // listen address for the web view
	noOpen     bool     // do not open a browser for the web view
}

// showCommand creates the show command, the "show project dependencies"
// action.
func (c *CLI) showCommand() *cobra.Command {
	opts := showOpts{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show project dependencies",
		Long: `Show the dependencies and dev dependencies of the package.json at the workspace root.

Each entry starts as "name (version)" and is filled in with the package's
description from the npm registry, one lookup at a time per section. Every
invocation opens a new, independent panel.

The view defaults to an interactive terminal panel when stdout is a terminal
and to plain text otherwise. --view web serves the panel over HTTP and opens
it in the browser.`,
		Example: `  # Show the dependencies of the current directory
  knowdeps show

  # Show another project in the browser
  knowdeps show --workspace ~/src/my-app --view web`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.workspaces, "workspace", "w", nil, "workspace folder (repeatable, the first is used)")
	cmd.Flags().StringVar(&opts.view, "view", "", "panel view: "+strings.Join(config.Views, ", ")+" (default from config)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address for --view web (default from config)")
	cmd.Flags().BoolVar(&opts.noOpen, "no-open", false, "do not open the browser for --view web")

	return cmd
}

func (c *CLI) runShow(ctx context.Context, opts showOpts) error {
	logger := loggerFromContext(ctx)
	strs := c.localeStrings()

	ws := workspace.Detect(opts.workspaces, c.config.Workspace.Folders, c.getwd)
	doc, err := presenter.Load(ws, strs)
	if err != nil {
		return c.notify(strs, err)
	}
	logger.Debug("manifest loaded", "entries", doc.Size())

	view, err := resolveView(opts.view, c.config.UI.View, c.isTerminal())
	if err != nil {
		return err
	}

	if view == viewWeb {
		return c.serveWeb(ctx, ws, strs, webOpts{addr: opts.addr, open: !opts.noOpen, doc: &doc})
	}

	enricher, err := c.newEnricher(strs, logger)
	if err != nil {
		return err
	}
	if view == viewTUI {
		return c.runTUI(ctx, doc, enricher, strs)
	}
	return runText(ctx, c.Stdout, doc, enricher, strs)
}

// notify shows an environment error as a notification and marks it
// reported. Other errors are returned unchanged.
func (c *CLI) notify(s locale.Strings, err error) error {
	if !kderrors.IsEnvironment(err) {
		return err
	}
	printError(c.Stderr, "%s", s.Notification(err))
	return reportedError{err}
}

// resolveView picks the view from the flag, then the config. "auto" selects
// the terminal panel when stdout is a terminal.
func resolveView(flag, configured string, terminal bool) (string, error) {
	view := flag
	if view == "" {
		view = configured
	}
	if view == "" {
		view = viewAuto
	}
	if !slices.Contains(config.Views, view) {
		return "", kderrors.New(kderrors.ErrCodeInvalidInput, "unknown view %q (want one of %s)", view, strings.Join(config.Views, ", "))
	}
	if view == viewAuto {
		if terminal {
			return viewTUI, nil
		}
		return viewText, nil
	}
	return view, nil
}

// =============================================================================
// Web View
// =============================================================================

type webOpts struct {
	addr string              // listen address, empty uses the config
	open bool                // open the browser, if the config allows it
	doc  *presenter.Document // panel to open at startup, nil serves the index
}

// serveWeb runs the web host until ctx ends. Its command action reads the
// manifest of ws. The URL of the startup panel, or of the index page, is
// printed and opened in the browser.
func (c *CLI) serveWeb(ctx context.Context, ws *workspace.Workspace, strs locale.Strings, opts webOpts) error {
	enricher, err := c.newEnricher(strs, c.Logger)
	if err != nil {
		return err
	}

	path := "/"
	srv := web.New(web.Options{
		Enricher: enricher,
		Strings:  strs,
		Logger:   c.Logger,
		Load: func(ctx context.Context) (presenter.Document, error) {
			return presenter.Load(ws, strs)
		},
		Ready: func(baseURL string) {
			c.announce(baseURL+path, opts.open)
		},
	})

	if opts.doc != nil {
		id, err := srv.Open(*opts.doc)
		if err != nil {
			return err
		}
		path = "/panels/" + id + "/"
	}

	addr := opts.addr
	if addr == "" {
		addr = c.config.Server.Addr
	}
	return srv.Run(ctx, addr)
}

func (c *CLI) announce(url string, open bool) {
	printInfo(c.Stdout, "%s", StyleLink.Render(url))
	if !open || !c.config.Server.OpenBrowser {
		return
	}
	if err := c.openURL(url); err != nil {
		c.Logger.Warn("cannot open browser", "err", err)
	}
}
