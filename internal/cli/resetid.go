package cli

import (
	"github.com/spf13/cobra"

	"github.com/kto/cursorctl/internal/config"
	"github.com/kto/cursorctl/internal/cursor"
	"github.com/kto/cursorctl/internal/ops"
	"github.com/kto/cursorctl/internal/orchestrator"
)

// ResetIDOptions holds flags for the reset-id command.
type ResetIDOptions struct {
	*RootOptions
	Storage string

	// Resetter allows overriding the identifier resetter (for testing).
	Resetter ops.IDResetter
}

// NewResetIDCommand creates the reset-id command.
func NewResetIDCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResetIDOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reset-id",
		Short: "Reset the editor's machine identifiers",
		Long: `Rewrite the telemetry identifiers in the editor's storage.json with
fresh random values, so the editor no longer recognizes the machine.

Example:
  cursorctl reset-id
  cursorctl reset-id --storage ~/.config/Cursor/User/globalStorage/storage.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResetID(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Storage, "storage", "", "path to the editor's storage.json")

	return cmd
}

func runResetID(opts *ResetIDOptions, cmd *cobra.Command) error {
	app, err := newApp(cmd, opts.RootOptions, func(_ config.Config, oc *orchestrator.Config) {
		if opts.Resetter != nil {
			oc.Resetter = opts.Resetter
		} else if opts.Storage != "" {
			oc.Resetter = cursor.NewResetter(opts.Storage)
		}
	})
	if err != nil {
		return err
	}

	return app.orch.ResetID(commandContext(cmd))
}
