package linkresolver

import (
	"errors"
	"fmt"
)

// Kind classifies why a resolution step failed.
type Kind string

const (
	// KindNoActiveTab means the extension returned no tab with a usable URL.
	// Always recovered.
	KindNoActiveTab Kind = "no_active_tab"
	// KindUnsupportedPlatform means UI scripting is unavailable on this OS and the
	// extension capability did not produce a URL.
	KindUnsupportedPlatform Kind = "unsupported_platform"
	// KindUnrecognizedApplication means no script is registered for the frontmost app.
	// Recovered by the clipboard fallback.
	KindUnrecognizedApplication Kind = "unrecognized_application"
	// KindAutomationScriptFailure means the app's script failed or returned garbage.
	KindAutomationScriptFailure Kind = "automation_script_failure"
	KindEmptyClipboard          Kind = "empty_clipboard"
	KindInvalidURL              Kind = "invalid_url"
	KindUnsupportedScheme       Kind = "unsupported_scheme"
)

// ErrResolution matches every *ResolutionError via errors.Is.
var ErrResolution = errors.New("link resolution failed")

// ResolutionError is the single error type surfaced by Resolve.
type ResolutionError struct {
	Kind Kind
	// App is the human-readable name of the last application consulted, if any.
	App     string
	Message string
	Err     error
}

func (e *ResolutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports true for ErrResolution so callers need not know the concrete type.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

// KindOf returns the kind of a resolution error, or "" when err is not one.
func KindOf(err error) Kind {
	var re *ResolutionError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

func newError(kind Kind, app, message string, cause error) *ResolutionError {
	return &ResolutionError{
		Kind:    kind,
		App:     app,
		Message: message,
		Err:     cause,
	}
}

// errNoActiveTab is internal to the extension step and never leaves Resolve.
var errNoActiveTab = newError(KindNoActiveTab, "", "No active tab found", nil)
