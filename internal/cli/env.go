package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kto/cursorctl/internal/config"
	"github.com/kto/cursorctl/internal/envstore"
)

// EnvOptions holds flags for the env command.
type EnvOptions struct {
	*RootOptions
}

// NewEnvCommand creates the env command.
func NewEnvCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EnvOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Show the recognized environment variables",
		Long: `Print each recognized variable with its label and persisted value.

Example:
  cursorctl env
  cursorctl env --env-file ./work.env --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnv(opts, cmd)
		},
	}

	return cmd
}

func runEnv(opts *EnvOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	envFile := cfg.EnvFile
	if opts.EnvFile != "" {
		envFile = opts.EnvFile
	}
	vars, err := envstore.New(envFile).Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load env file", err)
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if formatter.Format == "json" {
		values := make(map[string]string, len(cfg.Vars))
		for _, v := range cfg.Vars {
			values[v.Name] = vars[v.Name]
		}
		return formatter.Success(values)
	}

	for _, v := range cfg.Vars {
		value := vars[v.Name]
		if value == "" {
			value = "(unset)"
		}
		fmt.Fprintf(formatter.Writer, "%s (%s): %s\n", v.Label, v.Name, value)
	}
	return nil
}
