package browser

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"os"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"

	"github.com/kto/cursorctl/internal/config"
)

// Options configures the registration driver.
type Options struct {
	SignupURL   string
	SettingsURL string
	Headless    bool
}

// Driver drives the editor service's registration pages.
type Driver struct {
	opts Options

	ctx           context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc

	usage string
}

// New creates an unstarted driver. The browser launches on InitBrowser.
func New(opts Options) *Driver {
	return &Driver{opts: opts}
}

// InitBrowser launches Chrome and verifies the connection.
func (d *Driver) InitBrowser(ctx context.Context) error {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", d.opts.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// An empty Run starts the browser process.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("start browser: %w", err)
	}

	d.ctx = browserCtx
	d.browserCancel = browserCancel
	d.allocCancel = allocCancel
	slog.Debug("browser started", "headless", d.opts.Headless)
	return nil
}

// FillRegistrationForm opens the sign-up page and fills the name and email
// fields from the process environment, then submits.
func (d *Driver) FillRegistrationForm(ctx context.Context) error {
	first, err := randomName()
	if err != nil {
		return fmt.Errorf("generate first name: %w", err)
	}
	last, err := randomName()
	if err != nil {
		return fmt.Errorf("generate last name: %w", err)
	}
	email := os.Getenv(config.VarEmail)
	if email == "" {
		return fmt.Errorf("%s is not set", config.VarEmail)
	}

	return chromedp.Run(d.ctx,
		chromedp.Navigate(d.opts.SignupURL),
		chromedp.WaitVisible(`input[name="first_name"]`, chromedp.ByQuery),
		chromedp.SendKeys(`input[name="first_name"]`, first, chromedp.ByQuery),
		chromedp.SendKeys(`input[name="last_name"]`, last, chromedp.ByQuery),
		chromedp.SendKeys(`input[name="email"]`, email, chromedp.ByQuery),
		chromedp.Click(`button[type="submit"]`, chromedp.ByQuery),
	)
}

// FillPassword fills and submits the password step.
func (d *Driver) FillPassword(ctx context.Context) error {
	password := os.Getenv(config.VarPassword)
	if password == "" {
		return fmt.Errorf("%s is not set", config.VarPassword)
	}

	return chromedp.Run(d.ctx,
		chromedp.WaitVisible(`input[name="password"]`, chromedp.ByQuery),
		chromedp.SendKeys(`input[name="password"]`, password, chromedp.ByQuery),
		chromedp.Click(`button[type="submit"]`, chromedp.ByQuery),
	)
}

// GetUserInfo opens the settings page and captures the account/usage text
// for the log. Failures to read the page body are not fatal to the flow.
func (d *Driver) GetUserInfo(ctx context.Context) error {
	if err := chromedp.Run(d.ctx,
		chromedp.Navigate(d.opts.SettingsURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Text("body", &d.usage, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("read settings page: %w", err)
	}
	slog.Debug("account info retrieved", "bytes", len(d.usage))
	return nil
}

// GetToken reads the session token out of the browser cookie jar.
// An empty return means the cookie is not present; that is not an error.
func (d *Driver) GetToken(ctx context.Context) (string, error) {
	var cookies []*network.Cookie
	err := chromedp.Run(d.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = storage.GetCookies().Do(ctx)
		return err
	}))
	if err != nil {
		return "", fmt.Errorf("read cookies: %w", err)
	}
	return sessionTokenFromCookies(cookies), nil
}

// Close tears the browser down. Safe to call when InitBrowser never ran or
// failed.
func (d *Driver) Close() error {
	if d.browserCancel != nil {
		d.browserCancel()
		d.browserCancel = nil
	}
	if d.allocCancel != nil {
		d.allocCancel()
		d.allocCancel = nil
	}
	return nil
}

// sessionTokenFromCookies finds the required session token among the
// browser's cookies.
func sessionTokenFromCookies(cookies []*network.Cookie) string {
	for _, c := range cookies {
		if c.Name == config.RequiredCookieToken {
			return c.Value
		}
	}
	return ""
}

const nameAlphabet = "abcdefghijklmnopqrstuvwxyz"

// randomName produces a short plausible name for the sign-up form.
func randomName() (string, error) {
	max := big.NewInt(int64(len(nameAlphabet)))
	out := make([]byte, 8)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = nameAlphabet[n.Int64()]
	}
	// Capitalized like a real form entry.
	return string(out[0]-'a'+'A') + string(out[1:]), nil
}
