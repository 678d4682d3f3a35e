package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/tablink/internal/config"
	"github.com/aidanlsb/tablink/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialize the tablink config file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := getConfigPath()
		_, statErr := os.Stat(path)
		exists := statErr == nil

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path, "exists": exists}, nil)
			return nil
		}
		fmt.Println(path)
		if !exists {
			fmt.Fprintln(os.Stderr, ui.Hint("(not created yet; run 'tablink config init')"))
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration (file plus environment)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		effective := redactedConfig(getConfig())

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": getConfigPath(), "config": effective}, nil)
			return nil
		}
		fmt.Println(ui.Hint("# " + getConfigPath()))
		if err := toml.NewEncoder(os.Stdout).Encode(effective); err != nil {
			return handleError(ErrInternal, err, "")
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := getConfigPath()
		created, err := config.CreateDefault(path)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path, "created": created}, nil)
			return nil
		}
		if created {
			fmt.Println(ui.Successf("Created %s", path))
		} else {
			fmt.Println(ui.Hint(fmt.Sprintf("Config already exists at %s", path)))
		}
		return nil
	},
}

// redactedConfig hides the Raindrop token.
func redactedConfig(c *config.Config) config.Config {
	out := *c
	if out.Raindrop.Token != "" {
		out.Raindrop.Token = "********"
	}
	return out
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
