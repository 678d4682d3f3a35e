package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/tablink/internal/linkresolver"
	"github.com/aidanlsb/tablink/internal/ui"
)

var browsersCmd = &cobra.Command{
	Use:   "browsers",
	Short: "List browsers tablink can read through AppleScript",
	Long: `List the browser script table: built-in entries merged with scripts_file.

Applications are matched by bundle id first, then by name alias.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(getConfig())
		if err != nil {
			return handleError(ErrScriptsInvalid, err, "Fix scripts_file or remove it to use the built-in browser list")
		}
		entries := reg.Browsers()

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"browsers":   entries,
				"automation": runtime.GOOS == "darwin",
			}, &Meta{Count: len(entries)})
			return nil
		}

		display := ui.NewDisplayContext()
		if display.IsTTY {
			rendered, err := ui.RenderMarkdown(browsersMarkdown(entries), display.TermWidth)
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			fmt.Print(rendered)
		} else {
			fmt.Print(browsersTable(entries))
		}
		if runtime.GOOS != "darwin" {
			fmt.Println(ui.Hint("AppleScript lookup only runs on macOS; other platforms rely on the browser extension."))
		}
		return nil
	},
}

func browsersMarkdown(entries []linkresolver.BrowserEntry) string {
	var sb strings.Builder
	sb.WriteString("# Browsers\n\n")
	sb.WriteString("| Browser | Bundle ID | Aliases |\n")
	sb.WriteString("|---|---|---|\n")
	for _, e := range entries {
		aliases := strings.Join(e.Aliases, ", ")
		if aliases == "" {
			aliases = "-"
		}
		fmt.Fprintf(&sb, "| %s | `%s` | %s |\n", e.Name, e.BundleID, aliases)
	}
	return sb.String()
}

func browsersTable(entries []linkresolver.BrowserEntry) string {
	t := ui.NewTable(3)
	for _, e := range entries {
		t.AddRow(e.Name, e.BundleID, strings.Join(e.Aliases, ", "))
	}
	return t.String()
}

func init() {
	rootCmd.AddCommand(browsersCmd)
}
