// Package browser implements the browser-automation Registrar over chromedp.
//
// The driver owns a Chrome process for the duration of one registration
// session. It fills the sign-up form from the process environment (EMAIL,
// PASSWORD - persisted and reloaded by the orchestrator before the session
// starts) and reads the session token back out of the browser's cookie jar
// via CDP. Close is safe to call at any point, including before InitBrowser.
package browser
