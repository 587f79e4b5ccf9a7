package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/kto/cursorctl/internal/config"
)

// WorkflowUpdateAuth names the auth update workflow in logs and errors.
const WorkflowUpdateAuth = "update_auth"

// UpdateAuth runs the authentication refresh workflow.
//
// The validation gate runs before any mutation: an empty cookie or one
// missing the required token name warns and returns with no state touched -
// no backup is taken and the processor is never invoked. Only then:
// backup -> process the normalized cookie -> report the processor's message ->
// clear the cookie field -> persist visible fields.
func (o *Orchestrator) UpdateAuth(ctx context.Context) error {
	return o.guard(ctx, WorkflowUpdateAuth, func(ctx context.Context) error {
		cookie := strings.TrimSpace(o.fields.Get(config.FieldCookie))
		if cookie == "" {
			return NewValidationError(WorkflowUpdateAuth, "cookie string is required")
		}
		// User-pasted cookies can arrive in decomposed unicode form.
		// Normalize once here so the validation gate, the processor, and
		// the persisted token all see the same composed string.
		cookie = norm.NFC.String(cookie)
		if !strings.Contains(cookie, config.RequiredCookieToken+"=") {
			return NewValidationError(WorkflowUpdateAuth,
				fmt.Sprintf("cookie string is malformed: it must contain %s", config.RequiredCookieToken))
		}

		if err := o.backupEnv(WorkflowUpdateAuth); err != nil {
			return err
		}

		res, err := o.cookies.ProcessCookie(ctx, cookie)
		if err != nil {
			return NewOperationError(WorkflowUpdateAuth, err.Error(), err)
		}
		if !res.OK {
			return NewOperationError(WorkflowUpdateAuth, res.Message, nil)
		}

		o.notifier.Success(res.Message)
		o.fields.Set(config.FieldCookie, "")
		o.saveVisibleFields()
		return nil
	})
}
