package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/knowdeps/pkg/workspace"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	workspaces []string
	addr       string
	noOpen     bool
}

// serveCommand creates the serve command, which runs the web host with no
// panel open. Its index page invokes "show project dependencies".
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dependencies panels over HTTP",
		Long: `Serve the web panel host. The index page has the "Show project dependencies"
command; each use opens a new panel for the package.json at the workspace root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := workspace.Detect(opts.workspaces, c.config.Workspace.Folders, c.getwd)
			return c.serveWeb(cmd.Context(), ws, c.localeStrings(), webOpts{addr: opts.addr, open: !opts.noOpen})
		},
	}

	cmd.Flags().StringArrayVarP(&opts.workspaces, "workspace", "w", nil, "workspace folder (repeatable, the first is used)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&opts.noOpen, "no-open", false, "do not open the browser")

	return cmd
}
