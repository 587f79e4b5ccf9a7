package orchestrator

import (
	"context"
	"log/slog"

	"github.com/kto/cursorctl/internal/config"
	"github.com/kto/cursorctl/internal/register"
)

// WorkflowAutoRegister names the auto-registration workflow in logs and errors.
const WorkflowAutoRegister = "auto_register"

// AutoRegister runs the browser-driven registration workflow.
//
// Pre-step: the currently visible fields are persisted and the environment
// reloaded so the browser driver reads exactly what is displayed. The actual
// sequencing is delegated to register.Sequencer; the facade owns setup and
// teardown. Once a browser handle exists, Close runs exactly once no matter
// how the sequencer terminates - this is a mandatory cleanup, not
// best-effort.
//
// An empty token is a warning, not an abort: the workflow completes normally
// and the absence is reported. A retrieved token is placed into the cookie
// field prefixed with the required token name, ready for UpdateAuth.
func (o *Orchestrator) AutoRegister(ctx context.Context) error {
	return o.guard(ctx, WorkflowAutoRegister, func(ctx context.Context) error {
		o.saveVisibleFields()
		if err := o.reloadEnv(WorkflowAutoRegister); err != nil {
			return err
		}

		if o.registrar == nil {
			return NewOperationError(WorkflowAutoRegister, "no browser driver configured", nil)
		}
		reg, err := o.registrar(ctx)
		if err != nil {
			return NewOperationError(WorkflowAutoRegister, "failed to create browser driver", err)
		}
		defer func() {
			if cerr := reg.Close(); cerr != nil {
				slog.Warn("browser teardown failed", "error", cerr)
			}
		}()

		seq := register.NewSequencer(reg, o.confirmer)
		token, err := seq.Run(ctx)
		if err != nil {
			return NewOperationError(WorkflowAutoRegister, err.Error(), err)
		}

		if token == "" {
			o.notifier.Warning("failed to retrieve token")
			return nil
		}

		o.fields.Set(config.FieldCookie, config.RequiredCookieToken+"="+token)
		o.notifier.Success("registration complete, token filled into the cookie field")
		return nil
	})
}
