package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/tablink/internal/linkresolver"
	"github.com/aidanlsb/tablink/internal/ui"
)

var resolveCopy bool

type resolveResult struct {
	URL    string              `json:"url"`
	Source linkresolver.Source `json:"source"`
	Copied bool                `json:"copied,omitempty"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the URL of the current browser tab",
	Long: `Print the URL of the page you are looking at.

Sources are tried in order: the browser extension bridge, the frontmost
browser via AppleScript (macOS), then the clipboard. The URL goes to stdout
so it can be piped; with --json the source is reported too.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newResolver(getConfig(), logger)
		if err != nil {
			return handleError(ErrScriptsInvalid, err, "Fix scripts_file or remove it to use the built-in browser list")
		}

		res, err := runResolve(commandContext(cmd), r)
		if err != nil {
			return resolutionErrorResponse(err)
		}

		out := resolveResult{URL: res.URL, Source: res.Source}
		var warnings []Warning
		if resolveCopy {
			if err := writeClipboard(res.URL); err != nil {
				warnings = append(warnings, Warning{Code: "CLIPBOARD_WRITE_FAILED", Message: err.Error()})
			} else {
				out.Copied = true
			}
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(out, warnings, nil)
			return nil
		}

		fmt.Println(out.URL)
		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, ui.Warning(w.Message))
		}
		if isatty.IsTerminal(os.Stderr.Fd()) {
			note := ui.Source(string(out.Source))
			if out.Copied {
				note += ui.Hint(", copied")
			}
			fmt.Fprintln(os.Stderr, note)
		}
		return nil
	},
}

// runResolve resolves with a spinner on stderr in text mode.
func runResolve(ctx context.Context, r *linkresolver.Resolver) (linkresolver.LinkResult, error) {
	if !isJSONOutput() {
		s := ui.NewSpinner("Resolving link")
		s.Start()
		defer s.Stop()
	}
	return r.Resolve(ctx)
}

func init() {
	resolveCmd.Flags().BoolVarP(&resolveCopy, "copy", "c", false, "Also copy the URL to the clipboard")
	rootCmd.AddCommand(resolveCmd)
}
