package linkresolver

import (
	"net/url"
	"strings"
)

// ValidateClipboardURL checks that text is, as a whole, an http or https URL and
// returns it trimmed. No URL is extracted from surrounding text.
func ValidateClipboardURL(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", newError(KindEmptyClipboard, "", "Clipboard is empty.", nil)
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", newError(KindInvalidURL, "", "Clipboard does not contain a valid URL.", err)
	}
	if u.Scheme == "" {
		return "", newError(KindInvalidURL, "", "Clipboard does not contain a valid URL.", nil)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", newError(KindUnsupportedScheme, "", "Clipboard contains invalid URL (must be http/https).", nil)
	}
	if u.Host == "" {
		return "", newError(KindInvalidURL, "", "Clipboard does not contain a valid URL.", nil)
	}
	return trimmed, nil
}

// validBrowserURL trims s and reports whether it is an absolute URL.
func validBrowserURL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return "", false
	}
	return s, true
}
