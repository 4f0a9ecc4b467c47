package searchui

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// View is the surface a Controller paints on. The web page, the terminal UI
// and tests each provide one. Calls arrive one at a time, never concurrently.
type View interface {
	// ShowLoading makes the loading indicator visible, disables the search
	// control and switches its label to the busy label.
	ShowLoading()
	// HideLoading reverses ShowLoading.
	HideLoading()
	HideResults()
	HideError()
	ShowResults(rv ResultsView)
	ShowError(message string)
	ScrollTo(section Section)
}

// Outcome describes how one Submit resolved.
type Outcome struct {
	RequestID string
	Seq       uint64
	Query     string
	State     State
	Message   string       // error section text when State is StateErrorShown
	Results   *ResultsView // set when State is StateResultsShown
	Skipped   bool         // blank query, nothing happened
	Stale     bool         // a newer search superseded this one; the view was left alone
	Err       error        // transport or decode failure, for diagnostics only
}

// Controller owns the page state transitions of the search UI.
// Build one per page with New.
type Controller struct {
	searcher Searcher
	view     View
	now      func() time.Time
	loc      *time.Location

	mu    sync.Mutex // serializes view updates
	seq   uint64     // sequence number of the latest submission
	state State
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock overrides time.Now, used for the "last updated" line.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLocation sets the zone for zone-less timestamps and absolute dates.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// New binds a controller to its search backend and view.
func New(searcher Searcher, view View, opts ...Option) *Controller {
	c := &Controller{
		searcher: searcher,
		view:     view,
		now:      time.Now,
		loc:      DefaultLocation(),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current page state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs one search for raw. A blank query is ignored.
//
// The page goes to loading (results and error hidden) before the request is
// issued. When the response arrives the loading state is cleared first, then
// the results or error section is shown. If another Submit started in the
// meantime, this response is dropped and the newer search owns the page.
func (c *Controller) Submit(ctx context.Context, raw string) Outcome {
	query := NormalizeQuery(raw)
	if query == "" {
		return Outcome{Skipped: true, State: c.State()}
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state = StateLoading
	c.view.ShowLoading()
	c.view.HideResults()
	c.view.HideError()
	c.view.ScrollTo(SectionLoading)
	c.mu.Unlock()

	out := Outcome{RequestID: uuid.NewString(), Seq: seq, Query: query}
	logger.Debug("Search submitted", "request_id", out.RequestID, "seq", seq, "query", query)

	res, err := c.searcher.Search(ctx, query)
	if err == nil && res == nil {
		err = serr.New("search returned no payload")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		out.Stale = true
		out.State = c.state
		logger.Debug("Dropping superseded search response", "request_id", out.RequestID, "seq", seq, "latest", c.seq)
		return out
	}

	c.view.HideLoading()

	switch {
	case err != nil:
		logger.LogErr(err, "product search failed", "request_id", out.RequestID, "query", query)
		out.Err = err
		c.showError(&out, MsgConnectivity)
	case res.Error != "":
		c.showError(&out, res.Error)
	case len(res.Products) > 0:
		rv := BuildResults(query, *res, c.now(), c.loc)
		c.state = StateResultsShown
		c.view.ShowResults(rv)
		c.view.ScrollTo(SectionResults)
		out.Results = &rv
	default:
		c.showError(&out, NoProductsMessage(query))
	}

	out.State = c.state
	return out
}

// showError must be called with mu held.
func (c *Controller) showError(out *Outcome, message string) {
	c.state = StateErrorShown
	out.Message = message
	c.view.ShowError(message)
	c.view.ScrollTo(SectionError)
}
