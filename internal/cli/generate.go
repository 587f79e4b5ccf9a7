package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kto/cursorctl/internal/config"
	"github.com/kto/cursorctl/internal/ops"
	"github.com/kto/cursorctl/internal/orchestrator"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Domain string

	// Generator allows overriding the account generator (for testing).
	Generator ops.AccountGenerator
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a fresh account and persist its credentials",
		Long: `Generate a fresh email/password pair for the configured domain.

The env file is backed up first, the domain is persisted, and the new
credentials are written back to the env file.

Example:
  cursorctl generate --domain example.com
  cursorctl generate --env-file ./work.env --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Domain, "domain", "", "account domain (defaults to the persisted DOMAIN)")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	app, err := newApp(cmd, opts.RootOptions, func(_ config.Config, oc *orchestrator.Config) {
		if opts.Generator != nil {
			oc.Generator = opts.Generator
		}
	})
	if err != nil {
		return err
	}

	if opts.Domain != "" {
		app.fields.Set(config.VarDomain, opts.Domain)
	}

	if err := app.orch.GenerateAccount(commandContext(cmd)); err != nil {
		return err
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if formatter.Format == "json" {
		return formatter.Success(map[string]string{
			"domain":   app.fields.Get(config.VarDomain),
			"email":    app.fields.Get(config.VarEmail),
			"password": app.fields.Get(config.VarPassword),
		})
	}

	fmt.Fprintf(formatter.Writer, "EMAIL: %s\n", app.fields.Get(config.VarEmail))
	fmt.Fprintf(formatter.Writer, "PASSWORD: %s\n", app.fields.Get(config.VarPassword))
	return nil
}
