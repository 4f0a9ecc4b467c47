package web

import (
	"net/http"

	"compareaid/models"
	"compareaid/searchui"
	"compareaid/web/pages/catalog"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// StoresPage serves the store overview.
func (app *App) StoresPage(ctx rweb.Context) error {
	stats, err := models.StoreStatistics()
	if err != nil {
		logger.LogErr(err, "failed to load store statistics")
		ctx.SetStatus(http.StatusInternalServerError)
	}

	ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.WriteHTML(catalog.NewStoresPage(stats).Render())
}

// TrendsPage serves the price spread of the preset search terms.
func (app *App) TrendsPage(ctx rweb.Context) error {
	trends, err := models.PriceTrends(searchui.PresetTerms)
	if err != nil {
		logger.LogErr(err, "failed to load price trends")
		ctx.SetStatus(http.StatusInternalServerError)
	}

	ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.WriteHTML(catalog.NewTrendsPage(trends).Render())
}
