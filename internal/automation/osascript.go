// Package automation runs AppleScript through osascript.
package automation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single script run when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// ErrTimeout is returned when a script does not finish in time.
var ErrTimeout = errors.New("automation script timed out")

// ScriptError reports a script that ran but exited non-zero.
type ScriptError struct {
	ExitCode int
	Stderr   string
	// Command is a shell-pasteable rendition of the failed run.
	Command string
}

func (e *ScriptError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("osascript exited with status %d", e.ExitCode)
	}
	return fmt.Sprintf("osascript exited with status %d: %s", e.ExitCode, msg)
}

// Runner executes AppleScript source with osascript.
type Runner struct {
	// Path is the osascript binary; empty means look it up on PATH.
	Path    string
	Timeout time.Duration
}

// NewRunner returns a Runner with the given per-script timeout.
func NewRunner(timeout time.Duration) *Runner {
	return &Runner{Timeout: timeout}
}

// Run executes script and returns its trimmed stdout.
func (r *Runner) Run(ctx context.Context, script string) (string, error) {
	bin := r.Path
	if bin == "" {
		p, err := exec.LookPath("osascript")
		if err != nil {
			return "", fmt.Errorf("osascript not found: %w", err)
		}
		bin = p
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, "-e", script)
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return "", &ScriptError{
				ExitCode: ee.ExitCode(),
				Stderr:   stderr.String(),
				Command:  "osascript -e " + shellQuote(script),
			}
		}
		return "", fmt.Errorf("failed to start %s: %w", bin, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
