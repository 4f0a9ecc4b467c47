package cli

import (
	"compareaid/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the stores and load the catalog once",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err := models.InitDB(cfg.DBPath); err != nil {
			return serr.Wrap(err, "failed to initialize database")
		}
		defer models.CloseDB()

		added, err := models.SeedStores()
		if err != nil {
			return err
		}
		logger.Info("Stores seeded", "added", added)

		stats, err := models.RefreshCatalog(cmd.Context(), models.NewStaticSource(), nil)
		if err != nil {
			return err
		}
		logger.Info("Catalog loaded", "listings", stats.Listings, "inserted", stats.Inserted,
			"price_changed", stats.PriceChanged, "failures", stats.Failures)
		return nil
	},
}
