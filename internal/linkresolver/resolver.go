// Package linkresolver finds the URL the user is looking at.
//
// Sources are tried in order of reliability: the browser-extension tab bridge,
// a per-application AppleScript (macOS only), and finally the clipboard. Every
// call is independent; nothing is cached between calls.
package linkresolver

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// Source tags how a LinkResult was obtained.
type Source string

const (
	SourceBrowser   Source = "browser"
	SourceClipboard Source = "clipboard"
)

// LinkResult is a resolved URL and its provenance.
type LinkResult struct {
	URL    string `json:"url"`
	Source Source `json:"source"`
}

// Tab is a browser tab as reported by the extension capability.
type Tab struct {
	ID     int    `json:"id,omitempty"`
	Active bool   `json:"active"`
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
}

// Application identifies the frontmost application.
type Application struct {
	BundleID string `json:"bundle_id"`
	Name     string `json:"name"`
	Path     string `json:"path,omitempty"`
}

// DisplayName returns the best human-readable label for the application.
func (a Application) DisplayName() string {
	switch {
	case a.Name != "":
		return a.Name
	case a.BundleID != "":
		return a.BundleID
	default:
		return "unknown application"
	}
}

// TabSource is the browser-extension capability.
type TabSource interface {
	Available(ctx context.Context) bool
	Tabs(ctx context.Context) ([]Tab, error)
}

// AppDetector reports the frontmost application.
type AppDetector interface {
	Frontmost(ctx context.Context) (Application, error)
}

// ScriptRunner executes a UI-automation script and returns its output.
type ScriptRunner interface {
	Run(ctx context.Context, script string) (string, error)
}

// ClipboardReader reads the system clipboard as plain text.
type ClipboardReader interface {
	ReadText() (string, error)
}

// Dependencies are the external services the resolver consults.
// Extension may be nil when no extension integration is configured.
type Dependencies struct {
	Extension TabSource
	Apps      AppDetector
	Scripts   ScriptRunner
	Clipboard ClipboardReader
}

// Resolver implements the extension → automation → clipboard fallback chain.
type Resolver struct {
	deps              Dependencies
	registry          *Registry
	platform          string
	clipboardFallback bool
	log               *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPlatform overrides runtime.GOOS.
func WithPlatform(goos string) Option {
	return func(r *Resolver) { r.platform = goos }
}

// WithLogger sets the logger used for recovered failures.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// WithRegistry replaces the built-in browser script table.
func WithRegistry(reg *Registry) Option {
	return func(r *Resolver) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// WithClipboardFallback enables or disables the clipboard as the last resort.
func WithClipboardFallback(enabled bool) Option {
	return func(r *Resolver) { r.clipboardFallback = enabled }
}

// New creates a Resolver. The clipboard fallback is on by default.
func New(deps Dependencies, opts ...Option) *Resolver {
	r := &Resolver{
		deps:              deps,
		registry:          DefaultRegistry(),
		platform:          runtime.GOOS,
		clipboardFallback: true,
		log:               zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.deps.Clipboard == nil {
		r.clipboardFallback = false
	}
	return r
}

// SupportsAutomation reports whether UI scripting is available on the platform.
func (r *Resolver) SupportsAutomation() bool {
	return r.platform == "darwin"
}

// Resolve returns the best available URL. Only the terminal failure is returned;
// intermediate failures are logged.
func (r *Resolver) Resolve(ctx context.Context) (LinkResult, error) {
	if res, ok := r.fromExtension(ctx); ok {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return LinkResult{}, err
	}

	if !r.SupportsAutomation() || r.deps.Apps == nil || r.deps.Scripts == nil {
		return LinkResult{}, newError(KindUnsupportedPlatform, "",
			fmt.Sprintf("Please install the browser extension to use this feature on %s", platformLabel(r.platform)), nil)
	}

	app, err := r.deps.Apps.Frontmost(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return LinkResult{}, ctxErr
		}
		r.log.Warn("frontmost application lookup failed",
			zap.String("stage", "automation"),
			zap.Error(err))
	}

	script, ok := r.registry.Lookup(app)
	if !ok {
		r.log.Warn("unsupported application",
			zap.String("stage", "automation"),
			zap.String("bundle_id", app.BundleID),
			zap.String("name", app.Name))
		if !r.clipboardFallback {
			return LinkResult{}, newError(KindUnrecognizedApplication, app.DisplayName(),
				fmt.Sprintf("Unsupported App: %s.", app.DisplayName()), err)
		}
		return r.fromClipboard(app, "Unsupported App: %s.")
	}

	res, scriptErr := r.fromScript(ctx, app, script)
	if scriptErr == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return LinkResult{}, ctxErr
	}
	if !r.clipboardFallback {
		return LinkResult{}, scriptErr
	}
	r.log.Warn("automation script failed, trying clipboard",
		zap.String("stage", "automation"),
		zap.String("bundle_id", app.BundleID),
		zap.String("browser", script.Name),
		zap.Error(scriptErr))
	return r.fromClipboard(app, "Could not read the URL from %s.")
}

func (r *Resolver) fromExtension(ctx context.Context) (LinkResult, bool) {
	if r.deps.Extension == nil || !r.deps.Extension.Available(ctx) {
		return LinkResult{}, false
	}

	tabs, err := r.deps.Extension.Tabs(ctx)
	if err == nil {
		if u, ok := pickTab(tabs); ok {
			return LinkResult{URL: u, Source: SourceBrowser}, true
		}
		err = errNoActiveTab
	}

	r.log.Warn("browser extension failed, falling back",
		zap.String("stage", "extension"),
		zap.Int("tabs", len(tabs)),
		zap.Error(err))
	return LinkResult{}, false
}

// pickTab prefers the first active tab and otherwise takes the first tab in the
// list. Tabs whose URL is empty or not absolute count as absent.
func pickTab(tabs []Tab) (string, bool) {
	for _, tab := range tabs {
		if !tab.Active {
			continue
		}
		if u, ok := validBrowserURL(tab.URL); ok {
			return u, true
		}
		break
	}
	if len(tabs) > 0 {
		return validBrowserURL(tabs[0].URL)
	}
	return "", false
}

func (r *Resolver) fromScript(ctx context.Context, app Application, script Script) (LinkResult, error) {
	r.log.Debug("running automation script",
		zap.String("bundle_id", app.BundleID),
		zap.String("browser", script.Name))

	out, err := r.deps.Scripts.Run(ctx, script.Body)
	if err != nil {
		return LinkResult{}, newError(KindAutomationScriptFailure, app.DisplayName(),
			fmt.Sprintf("Failed to read the URL from %s", script.Name), err)
	}
	u, ok := validBrowserURL(out)
	if !ok {
		return LinkResult{}, newError(KindAutomationScriptFailure, app.DisplayName(),
			fmt.Sprintf("%s did not return a valid URL", script.Name), nil)
	}
	return LinkResult{URL: u, Source: SourceBrowser}, nil
}

// fromClipboard runs the last-resort step. prefix is a format string taking the
// application name and qualifies every surfaced message.
func (r *Resolver) fromClipboard(app Application, prefix string) (LinkResult, error) {
	name := app.DisplayName()
	qualify := func(re *ResolutionError) *ResolutionError {
		re.App = name
		re.Message = fmt.Sprintf(prefix, name) + " " + re.Message
		return re
	}

	text, err := r.deps.Clipboard.ReadText()
	if err != nil {
		r.log.Warn("clipboard read failed", zap.String("stage", "clipboard"), zap.Error(err))
		return LinkResult{}, qualify(newError(KindEmptyClipboard, "", "Clipboard is empty.", err))
	}

	u, err := ValidateClipboardURL(text)
	if err != nil {
		var re *ResolutionError
		if !errors.As(err, &re) {
			return LinkResult{}, err
		}
		r.log.Debug("clipboard rejected", zap.String("stage", "clipboard"), zap.String("kind", string(re.Kind)))
		return LinkResult{}, qualify(re)
	}
	return LinkResult{URL: u, Source: SourceClipboard}, nil
}

func platformLabel(goos string) string {
	switch goos {
	case "windows":
		return "Windows"
	case "linux":
		return "Linux"
	case "":
		return "this platform"
	default:
		return goos
	}
}
