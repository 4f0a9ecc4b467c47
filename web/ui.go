package web

import (
	"context"
	"encoding/json"
	"net/http"

	"compareaid/searchui"
	"compareaid/web/pages/landing"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// ScrollEvent is the client-side event that asks the page to scroll to a section.
const ScrollEvent = "compareaid:scroll"

// searchContext bounds a page search and tags it with the caller's address
// so the backend rate limits each visitor on their own.
func (app *App) searchContext(c rweb.Context) (context.Context, context.CancelFunc) {
	base := context.Background()
	if ip := clientIP(c); ip != unknownClient {
		base = searchui.WithClientAddr(base, ip)
	}
	if app.SearchTimeout > 0 {
		return context.WithTimeout(base, app.SearchTimeout)
	}
	return context.WithCancel(base)
}

// HomePage serves the full search page. A page load starts the session
// over; ?q= runs the search server-side so the page works without scripts.
func (app *App) HomePage(ctx rweb.Context) error {
	sess := app.Sessions.Fresh(sessionID(ctx))

	query := ctx.Request().QueryParam("q")
	if searchui.NormalizeQuery(query) != "" {
		sctx, cancel := app.searchContext(ctx)
		out := sess.Controller.Submit(sctx, query)
		cancel()
		logger.Debug("Page search", "request_id", out.RequestID, "state", out.State.String())
	}

	sections, _, _ := sess.View.Snapshot()
	ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.WriteHTML(landing.NewPage(searchui.NormalizeQuery(query), sections).Render())
}

// UISearch runs one search for the session and answers with the sections
// fragment. A blank or superseded search answers 204 and leaves the page as is.
func (app *App) UISearch(ctx rweb.Context) error {
	sess := app.Sessions.Get(sessionID(ctx))

	sctx, cancel := app.searchContext(ctx)
	out := sess.Controller.Submit(sctx, ctx.Request().QueryParam("q"))
	cancel()

	if out.Skipped || out.Stale {
		ctx.Response().SetHeader("HX-Reswap", "none")
		ctx.SetStatus(http.StatusNoContent)
		return nil
	}

	sections, scroll, ok := sess.View.Snapshot()
	if ok {
		if trigger, err := scrollTrigger(scroll); err == nil {
			ctx.Response().SetHeader("HX-Trigger-After-Settle", trigger)
		} else {
			logger.LogErr(err, "failed to encode scroll trigger")
		}
	}

	ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.WriteHTML(sections.HTML())
}

func scrollTrigger(section searchui.Section) (string, error) {
	b, err := json.Marshal(map[string]map[string]string{
		ScrollEvent: {"target": section.ElementID()},
	})
	return string(b), err
}
