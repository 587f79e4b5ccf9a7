package cursor

import (
	"context"
	"fmt"
	"strings"

	"github.com/kto/cursorctl/internal/config"
	"github.com/kto/cursorctl/internal/envstore"
	"github.com/kto/cursorctl/internal/result"
)

// CookieUpdater extracts the session token from a raw cookie string and
// persists it into the env store under the COOKIE key.
type CookieUpdater struct {
	store *envstore.Store
}

// NewCookieUpdater creates a cookie processor over the env store.
func NewCookieUpdater(store *envstore.Store) *CookieUpdater {
	return &CookieUpdater{store: store}
}

// ProcessCookie extracts the value following "WorkosCursorSessionToken=",
// cutting at the first ";" if the string carries further cookie pairs, and
// persists it. A missing or empty token is a failed envelope.
func (u *CookieUpdater) ProcessCookie(ctx context.Context, cookie string) (result.Result, error) {
	token := ExtractToken(cookie)
	if token == "" {
		return result.Fail(fmt.Sprintf("no %s value found in cookie string", config.RequiredCookieToken)), nil
	}

	if err := u.store.Update(map[string]string{
		config.VarCookie: config.RequiredCookieToken + "=" + token,
	}); err != nil {
		return result.Result{}, fmt.Errorf("persist cookie: %w", err)
	}

	return result.Ok("auth cookie updated"), nil
}

// ExtractToken pulls the session token value out of a raw cookie string.
// Returns "" when the token name is absent or carries no value.
func ExtractToken(cookie string) string {
	_, after, found := strings.Cut(cookie, config.RequiredCookieToken+"=")
	if !found {
		return ""
	}
	token, _, _ := strings.Cut(after, ";")
	return strings.TrimSpace(token)
}
