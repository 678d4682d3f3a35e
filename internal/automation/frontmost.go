package automation

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aidanlsb/tablink/internal/linkresolver"
)

// frontmostScript prints the frontmost process's bundle id and application path
// on two lines.
const frontmostScript = `
tell application "System Events"
	set frontProc to first application process whose frontmost is true
	set bundleID to bundle identifier of frontProc
	set appPath to POSIX path of (application file of frontProc as alias)
end tell
return bundleID & linefeed & appPath`

// FrontmostDetector reports the frontmost application via System Events.
type FrontmostDetector struct {
	Scripts linkresolver.ScriptRunner
}

// NewFrontmostDetector returns a detector that runs its query through runner.
func NewFrontmostDetector(runner linkresolver.ScriptRunner) *FrontmostDetector {
	return &FrontmostDetector{Scripts: runner}
}

// Frontmost returns the bundle id, name and path of the frontmost application.
// Name is the application bundle's file name, e.g. "Vivaldi.app".
func (d *FrontmostDetector) Frontmost(ctx context.Context) (linkresolver.Application, error) {
	out, err := d.Scripts.Run(ctx, frontmostScript)
	if err != nil {
		return linkresolver.Application{}, fmt.Errorf("frontmost application: %w", err)
	}
	return parseFrontmost(out)
}

func parseFrontmost(out string) (linkresolver.Application, error) {
	lines := strings.Split(strings.ReplaceAll(strings.TrimSpace(out), "\r", "\n"), "\n")
	if len(lines) < 2 {
		return linkresolver.Application{}, fmt.Errorf("frontmost application: unexpected output %q", out)
	}

	bundleID := strings.TrimSpace(lines[0])
	if bundleID == "missing value" {
		bundleID = ""
	}
	appPath := strings.TrimSuffix(strings.TrimSpace(lines[1]), "/")

	return linkresolver.Application{
		BundleID: bundleID,
		Name:     path.Base(appPath),
		Path:     appPath,
	}, nil
}
