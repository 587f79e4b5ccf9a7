package cli

import (
	"github.com/spf13/cobra"

	"github.com/kto/cursorctl/internal/config"
	"github.com/kto/cursorctl/internal/ops"
	"github.com/kto/cursorctl/internal/orchestrator"
)

// UpdateAuthOptions holds flags for the update-auth command.
type UpdateAuthOptions struct {
	*RootOptions
	Cookie string

	// Cookies allows overriding the cookie processor (for testing).
	Cookies ops.CookieProcessor
}

// NewUpdateAuthCommand creates the update-auth command.
func NewUpdateAuthCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateAuthOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update-auth",
		Short: "Update the persisted auth cookie",
		Long: `Validate a browser cookie string and persist its session token.

The cookie must contain the WorkosCursorSessionToken assignment. The env
file is backed up before the token is written.

Example:
  cursorctl update-auth --cookie 'WorkosCursorSessionToken=user_01...; other=1'`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdateAuth(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Cookie, "cookie", "", "raw cookie string from the browser")

	return cmd
}

func runUpdateAuth(opts *UpdateAuthOptions, cmd *cobra.Command) error {
	app, err := newApp(cmd, opts.RootOptions, func(_ config.Config, oc *orchestrator.Config) {
		if opts.Cookies != nil {
			oc.Cookies = opts.Cookies
		}
	})
	if err != nil {
		return err
	}

	app.fields.Set(config.FieldCookie, opts.Cookie)

	return app.orch.UpdateAuth(commandContext(cmd))
}
