package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aidanlsb/tablink/internal/automation"
	"github.com/aidanlsb/tablink/internal/browserext"
	"github.com/aidanlsb/tablink/internal/clipboard"
	"github.com/aidanlsb/tablink/internal/config"
	"github.com/aidanlsb/tablink/internal/linkresolver"
)

// newResolver builds the resolver from config. Tests replace it to inject fakes.
var newResolver = func(c *config.Config, log *zap.Logger) (*linkresolver.Resolver, error) {
	reg, err := loadRegistry(c)
	if err != nil {
		return nil, err
	}

	runner := automation.NewRunner(c.ScriptTimeout())
	deps := linkresolver.Dependencies{
		Apps:      automation.NewFrontmostDetector(runner),
		Scripts:   runner,
		Clipboard: clipboard.New(),
	}
	if c.Extension.Endpoint != "" {
		deps.Extension = browserext.New(c.Extension.Endpoint, c.ExtensionTimeout())
	}

	return linkresolver.New(deps,
		linkresolver.WithRegistry(reg),
		linkresolver.WithClipboardFallback(c.Resolver.ClipboardFallback),
		linkresolver.WithLogger(log),
	), nil
}

// writeClipboard backs `resolve --copy`.
var writeClipboard = func(text string) error {
	return clipboard.New().WriteText(text)
}

// loadRegistry merges scripts_file over the built-in browser table.
func loadRegistry(c *config.Config) (*linkresolver.Registry, error) {
	reg := linkresolver.DefaultRegistry()
	overlay, err := linkresolver.LoadScriptFile(c.ScriptsPath())
	if err != nil {
		return nil, err
	}
	reg.Merge(overlay)
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scripts file %s: %w", c.ScriptsPath(), err)
	}
	return reg, nil
}

// resolutionErrorResponse maps a resolver failure to a stable code.
func resolutionErrorResponse(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return handleError(ErrCanceled, err, "")
	}

	var re *linkresolver.ResolutionError
	if !errors.As(err, &re) {
		return handleError(ErrInternal, err, "")
	}

	details := map[string]string{"kind": string(re.Kind)}
	if re.App != "" {
		details["app"] = re.App
	}
	var se *automation.ScriptError
	if errors.As(err, &se) {
		details["command"] = se.Command
	}
	code, suggestion := ErrInternal, ""
	switch re.Kind {
	case linkresolver.KindUnsupportedPlatform:
		code = ErrUnsupportedPlatform
		suggestion = "Run 'tablink bridge' and install the tablink browser extension"
	case linkresolver.KindUnrecognizedApplication:
		code = ErrUnsupportedApp
		suggestion = "Run 'tablink browsers' to see supported browsers, or add one in scripts_file"
	case linkresolver.KindAutomationScriptFailure:
		code = ErrAutomationFailed
		suggestion = "Allow your terminal to control the browser in System Settings > Privacy & Security > Automation"
	case linkresolver.KindEmptyClipboard:
		code = ErrEmptyClipboard
		suggestion = "Copy a link and try again"
	case linkresolver.KindInvalidURL:
		code = ErrInvalidURL
		suggestion = "Copy only the URL, without surrounding text"
	case linkresolver.KindUnsupportedScheme:
		code = ErrUnsupportedScheme
		suggestion = "Only http and https links are supported"
	}
	return &commandError{Code: code, Message: re.Message, Suggestion: suggestion, Details: details, Err: err}
}
