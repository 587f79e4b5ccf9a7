package orchestrator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kto/cursorctl/internal/config"
	"github.com/kto/cursorctl/internal/result"
)

// WorkflowGenerate names the account generation workflow in logs and errors.
const WorkflowGenerate = "generate_account"

// GenerateAccount runs the account generation workflow:
//
//	backup store -> persist supplied domain (if any) and reload ->
//	invoke generator -> normalize envelope-or-tuple -> overwrite the
//	email/password fields -> report success -> persist visible fields
//
// A generator failure aborts with the envelope's message verbatim. The
// credential fields are overwritten in place before persistence, so the
// flush at the end writes the new values.
func (o *Orchestrator) GenerateAccount(ctx context.Context) error {
	return o.guard(ctx, WorkflowGenerate, func(ctx context.Context) error {
		if err := o.backupEnv(WorkflowGenerate); err != nil {
			return err
		}

		if domain := strings.TrimSpace(o.fields.Get(config.VarDomain)); domain != "" {
			if err := o.store.Update(map[string]string{config.VarDomain: domain}); err != nil {
				return NewIOError(WorkflowGenerate, "failed to save domain", err)
			}
			if err := o.reloadEnv(WorkflowGenerate); err != nil {
				return err
			}
		}

		raw, err := o.generator.GenerateAccount(ctx)
		if err != nil {
			return NewOperationError(WorkflowGenerate, err.Error(), err)
		}
		res, err := result.Normalize(raw)
		if err != nil {
			return NewOperationError(WorkflowGenerate, "account generation returned an unusable result", err)
		}
		if !res.OK {
			return NewOperationError(WorkflowGenerate, res.Message, nil)
		}

		email, password, err := res.Credentials()
		if err != nil {
			return NewOperationError(WorkflowGenerate, "account generation returned no credentials", err)
		}

		o.fields.Set(config.VarEmail, email)
		o.fields.Set(config.VarPassword, password)
		slog.Info("credentials generated", "email", email)

		o.notifier.Success("account generated")
		o.saveVisibleFields()
		return nil
	})
}
