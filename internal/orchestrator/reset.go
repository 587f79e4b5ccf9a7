package orchestrator

import "context"

// WorkflowReset names the ID reset workflow in logs and errors.
const WorkflowReset = "reset_id"

// ResetID runs the machine identifier reset workflow: invoke the external
// resetter, report its message on success, then persist the currently
// visible recognized fields. The flush is not reset-specific; it is the
// shared "save whatever is displayed" side effect.
func (o *Orchestrator) ResetID(ctx context.Context) error {
	return o.guard(ctx, WorkflowReset, func(ctx context.Context) error {
		res, err := o.resetter.ResetID(ctx)
		if err != nil {
			return NewOperationError(WorkflowReset, err.Error(), err)
		}
		if !res.OK {
			return NewOperationError(WorkflowReset, res.Message, nil)
		}

		o.notifier.Success(res.Message)
		o.saveVisibleFields()
		return nil
	})
}
