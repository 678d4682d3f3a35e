package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Resolution errors
	ErrUnsupportedPlatform = "UNSUPPORTED_PLATFORM"
	ErrUnsupportedApp      = "UNSUPPORTED_APP"
	ErrAutomationFailed    = "AUTOMATION_FAILED"
	ErrEmptyClipboard      = "EMPTY_CLIPBOARD"
	ErrInvalidURL          = "INVALID_URL"
	ErrUnsupportedScheme   = "UNSUPPORTED_SCHEME"

	// Config errors
	ErrConfigInvalid  = "CONFIG_INVALID"
	ErrScriptsInvalid = "SCRIPTS_INVALID"

	// Raindrop errors
	ErrMissingToken  = "MISSING_TOKEN"
	ErrRaindropError = "RAINDROP_ERROR"

	// Bridge errors
	ErrBridgeFailed = "BRIDGE_FAILED"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"

	// General errors
	ErrCanceled = "CANCELED"
	ErrInternal = "INTERNAL_ERROR"
)
