// Package clipboard reads and writes the system clipboard as plain text.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility is usable on this system
// (for example Linux without xclip, xsel or wl-clipboard).
var ErrUnavailable = errors.New("clipboard unavailable")

// System is the OS clipboard.
type System struct {
	unsupported bool
	readAll     func() (string, error)
	writeAll    func(string) error
}

// New returns the OS clipboard.
func New() *System {
	return &System{
		unsupported: clipboard.Unsupported,
		readAll:     clipboard.ReadAll,
		writeAll:    clipboard.WriteAll,
	}
}

// ReadText returns the clipboard contents. An empty clipboard is not an error.
func (s *System) ReadText() (string, error) {
	if s.unsupported {
		return "", ErrUnavailable
	}
	text, err := s.readAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

// WriteText replaces the clipboard contents with text.
func (s *System) WriteText(text string) error {
	if s.unsupported {
		return ErrUnavailable
	}
	if err := s.writeAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
