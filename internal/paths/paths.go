// Package paths provides helpers for user-supplied file paths:
// - tilde expansion ("~/x" -> "$HOME/x") so configs stay portable across machines
// - the tablink config directory layout
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// AppDirName is the directory name used under the user's config directory.
const AppDirName = "tablink"

// ExpandTilde expands a leading "~" or "~/" to the user's home directory.
// Surrounding whitespace is trimmed. Other paths are returned unchanged.
//
// Examples:
// - "~/Documents/x" -> "/Users/me/Documents/x"
// - "~"             -> "/Users/me"
// - "~other/x"      -> "~other/x"
func ExpandTilde(p string) string {
	if p == "" {
		return p
	}
	trimmed := strings.TrimSpace(p)
	if trimmed != "~" && !strings.HasPrefix(trimmed, "~/") {
		return trimmed
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return trimmed
	}
	return filepath.Join(home, trimmed[1:])
}

// XDGConfigDir returns ~/.config/tablink.
func XDGConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// ConfigDir returns the preferred config directory: ~/.config/tablink when it
// exists, otherwise the OS-specific user config directory.
func ConfigDir() string {
	if dir, err := XDGConfigDir(); err == nil {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, AppDirName)
	}
	return "."
}
