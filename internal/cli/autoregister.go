package cli

import (
	"github.com/spf13/cobra"

	"github.com/kto/cursorctl/internal/config"
	"github.com/kto/cursorctl/internal/orchestrator"
)

// AutoRegisterOptions holds flags for the auto-register command.
type AutoRegisterOptions struct {
	*RootOptions
	Headless bool

	// Registrar allows overriding the browser driver factory (for testing).
	Registrar orchestrator.RegistrarFactory
}

// NewAutoRegisterCommand creates the auto-register command.
func NewAutoRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AutoRegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "auto-register",
		Short: "Register the persisted account through a browser session",
		Long: `Drive a browser through the sign-up flow for the persisted EMAIL and
PASSWORD, pausing twice for manual verification (Turnstile, email code).
On success the session token is printed and placed in the cookie field.

Example:
  cursorctl auto-register
  cursorctl auto-register --headless`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAutoRegister(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Headless, "headless", false, "run the browser headless")

	return cmd
}

func runAutoRegister(opts *AutoRegisterOptions, cmd *cobra.Command) error {
	app, err := newApp(cmd, opts.RootOptions, func(cfg config.Config, oc *orchestrator.Config) {
		if opts.Registrar != nil {
			oc.NewRegistrar = opts.Registrar
			return
		}
		if cmd.Flags().Changed("headless") {
			browserCfg := cfg.Browser
			browserCfg.Headless = opts.Headless
			oc.NewRegistrar = registrarFactory(browserCfg)
		}
	})
	if err != nil {
		return err
	}

	if err := app.orch.AutoRegister(commandContext(cmd)); err != nil {
		return err
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if cookie := app.fields.Get(config.FieldCookie); cookie != "" {
		if formatter.Format == "json" {
			return formatter.Success(map[string]string{"cookie": cookie})
		}
		formatter.VerboseLog("session cookie: %s", cookie)
	}
	return nil
}
