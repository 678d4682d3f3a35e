package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// Spinner displays an animated spinner with a message on stderr, keeping
// stdout clean for the resolved URL.
type Spinner struct {
	message string
	frames  []string
	out     io.Writer
	animate bool
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.Mutex
	current int
}

// Default spinner frames (dots style)
var defaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a spinner on stderr. It only animates on a terminal.
func NewSpinner(message string) *Spinner {
	return newSpinner(os.Stderr, message, isatty.IsTerminal(os.Stderr.Fd()))
}

func newSpinner(out io.Writer, message string, animate bool) *Spinner {
	return &Spinner{
		message: message,
		frames:  defaultFrames,
		out:     out,
		animate: animate,
		done:    make(chan struct{}),
	}
}

// Start begins the spinner animation. Off a terminal it prints nothing.
func (s *Spinner) Start() {
	if !s.animate {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
				s.mu.Lock()
				frame := s.frames[s.current%len(s.frames)]
				s.current++
				s.mu.Unlock()
				fmt.Fprintf(s.out, "\r%s %s", Accent.Render(frame), Muted.Render(s.message))
			}
		}
	}()
}

// Stop stops the spinner and clears its line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
	})
}
