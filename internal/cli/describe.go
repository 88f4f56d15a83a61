package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	kderrors "github.com/matzehuels/knowdeps/pkg/errors"
	"github.com/matzehuels/knowdeps/pkg/integrations"
)

// describeCommand creates the describe command, a diagnostic for the
// registry client.
func (c *CLI) describeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <package>",
		Short: "Look up one package in the registry",
		Long: `Look up the latest version of a package in the configured npm registry and
print its metadata, including the description a panel would show.`,
		Example: `  knowdeps describe left-pad
  knowdeps describe @types/node`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDescribe(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runDescribe(ctx context.Context, name string) error {
	logger := loggerFromContext(ctx)

	if err := kderrors.ValidateNpmPackageName(name); err != nil {
		return err
	}
	client, err := c.registry()
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	var spin *Spinner
	if c.isTerminal() {
		spin = newSpinner(ctx, c.Stderr, "Fetching "+name)
		spin.Start()
	}
	info, err := client.FetchPackage(ctx, name)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		switch {
		case errors.Is(err, integrations.ErrNotFound):
			return kderrors.Wrap(kderrors.ErrCodeNotFound, err, "package %s not found in %s", name, client.BaseURL())
		case errors.Is(err, integrations.ErrNetwork), errors.Is(err, integrations.ErrDecode):
			return kderrors.Wrap(kderrors.ErrCodeNetwork, err, "registry %s did not answer for %s", client.BaseURL(), name)
		}
		return err
	}
	prog.done("Fetched " + info.Name)

	printKeyValue(c.Stdout, "name", info.Name)
	printKeyValue(c.Stdout, "version", info.Version)
	printKeyValue(c.Stdout, "description", info.Description)
	for _, kv := range [][2]string{
		{"license", info.License},
		{"author", info.Author},
		{"repository", info.Repository},
		{"homepage", info.HomePage},
	} {
		if kv[1] != "" {
			printKeyValue(c.Stdout, kv[0], kv[1])
		}
	}
	printKeyValue(c.Stdout, "registry", client.PackageURL(info.Name))
	return nil
}
