package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kto/cursorctl/internal/backup"
	"github.com/kto/cursorctl/internal/browser"
	"github.com/kto/cursorctl/internal/config"
	"github.com/kto/cursorctl/internal/cursor"
	"github.com/kto/cursorctl/internal/envstore"
	"github.com/kto/cursorctl/internal/ops"
	"github.com/kto/cursorctl/internal/orchestrator"
)

// fieldMap is the CLI's view of the visible input fields. Commands seed it
// from the env store and flags before a workflow runs; workflows read and
// write it through ops.Fields.
type fieldMap struct {
	values map[string]string
}

func newFieldMap() *fieldMap {
	return &fieldMap{values: make(map[string]string)}
}

func (f *fieldMap) Get(name string) string {
	return f.values[name]
}

func (f *fieldMap) Set(name, value string) {
	f.values[name] = value
}

// app bundles the wired collaborators for one command invocation.
type app struct {
	cfg    config.Config
	store  *envstore.Store
	fields *fieldMap
	orch   *orchestrator.Orchestrator
}

// newApp loads configuration and wires the orchestrator with its production
// collaborators. The mutate hook lets commands (and their tests) override
// single collaborators before the orchestrator is built.
func newApp(cmd *cobra.Command, opts *RootOptions, mutate func(config.Config, *orchestrator.Config)) (*app, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	envFile := cfg.EnvFile
	if opts.EnvFile != "" {
		envFile = opts.EnvFile
	}
	store := envstore.New(envFile)
	backups := backup.NewManager(cfg.BackupDir, config.DefaultBackupSuffix, cfg.MaxBackups)

	// Seed the visible fields from whatever the store currently holds.
	fields := newFieldMap()
	vars, err := store.Load()
	if err != nil {
		slog.Warn("failed to load env file", "path", store.Path(), "error", err)
	}
	for _, name := range cfg.VarNames() {
		if v, ok := vars[name]; ok {
			fields.Set(name, v)
		}
	}

	// With --format json the structured response owns stdout, so
	// notifications move to stderr.
	notifyOut := cmd.OutOrStdout()
	if opts.Format == "json" {
		notifyOut = cmd.ErrOrStderr()
	}

	orchCfg := orchestrator.Config{
		Store:        store,
		Backups:      backups,
		Generator:    cursor.NewGenerator(store),
		Resetter:     cursor.NewResetter(cfg.StoragePath),
		Cookies:      cursor.NewCookieUpdater(store),
		NewRegistrar: registrarFactory(cfg.Browser),
		Fields:       fields,
		Notifier: &consoleNotifier{
			Out: notifyOut,
			Err: cmd.ErrOrStderr(),
		},
		Confirmer: &stdinConfirmer{
			In:  cmd.InOrStdin(),
			Out: cmd.OutOrStdout(),
		},
		Vars: cfg.Vars,
	}
	if mutate != nil {
		mutate(cfg, &orchCfg)
	}

	orch, err := orchestrator.New(orchCfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to wire orchestrator", err)
	}

	return &app{cfg: cfg, store: store, fields: fields, orch: orch}, nil
}

// commandContext returns the command's context if available (set by Execute),
// otherwise a fresh background context (as when a command runs in tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// registrarFactory builds a fresh chromedp driver per auto-register session.
func registrarFactory(opts config.Browser) orchestrator.RegistrarFactory {
	return func(ctx context.Context) (ops.Registrar, error) {
		return browser.New(browser.Options{
			SignupURL:   opts.SignupURL,
			SettingsURL: opts.SettingsURL,
			Headless:    opts.Headless,
		}), nil
	}
}
