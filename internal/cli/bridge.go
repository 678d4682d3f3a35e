package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/tablink/internal/bridge"
	"github.com/aidanlsb/tablink/internal/ui"
)

var bridgeListen string

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Run the local tab bridge for the browser extension",
	Long: `Run the HTTP bridge the tablink browser extension pushes tabs to.

The extension PUTs its tab list to /tabs; 'tablink resolve' reads it back.
Stops on Ctrl-C or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getConfig()
		addr := c.Bridge.Listen
		if bridgeListen != "" {
			addr = bridgeListen
		}

		srv := bridge.NewServer(bridge.NewStore(c.BridgeMaxAge()), logger)
		if !isJSONOutput() {
			fmt.Fprintln(os.Stderr, ui.Hint(fmt.Sprintf("Tab bridge listening on http://%s (Ctrl-C to stop)", addr)))
		}

		if err := srv.ListenAndServe(commandContext(cmd), addr); err != nil {
			return handleError(ErrBridgeFailed, err, "Pick another address with --listen or bridge.listen")
		}
		if isJSONOutput() {
			outputSuccess(map[string]string{"addr": addr, "status": "stopped"}, nil)
		}
		return nil
	},
}

func init() {
	bridgeCmd.Flags().StringVar(&bridgeListen, "listen", "", "Address to listen on (default from bridge.listen)")
	rootCmd.AddCommand(bridgeCmd)
}
