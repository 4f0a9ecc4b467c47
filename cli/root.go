// Package cli holds the compareaid commands.
package cli

import (
	"compareaid/config"

	"github.com/rohanthewiz/logger"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "compareaid",
	Short: "Compare Irish grocery prices",
	Long: `compareaid - grocery price comparison across Tesco, SuperValu, Dunnes, Lidl and Aldi
  serve  run the search page and the price API
  tui    search from the terminal
  seed   create the stores and load the catalog once`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(seedCmd)
}

// loadConfig reads the configuration and applies its log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.SetLogLevel(cfg.LogLevel)
	return cfg, nil
}
