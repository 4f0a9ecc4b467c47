package cli

import (
	"compareaid/searchui"
	"compareaid/tui"

	"github.com/spf13/cobra"
)

var backendURL string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Search prices from the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if backendURL != "" {
			cfg.BackendURL = backendURL
		}

		client := searchui.NewClient(cfg.BackendURL, cfg.SearchTimeout)
		return tui.Run(client, cfg.SearchTimeout, searchui.WithLocation(cfg.Location()))
	},
}

func init() {
	tuiCmd.Flags().StringVar(&backendURL, "backend", "", "search backend base URL (overrides config)")
}
