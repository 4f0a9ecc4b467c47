package web

import (
	"strconv"
	"sync"
	"time"

	"compareaid/searchui"
	"compareaid/web/pages/landing"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rohanthewiz/serr"
)

// PageView records what the search page should currently show. It is the
// searchui.View of a browser session; handlers render from Snapshot.
type PageView struct {
	mu       sync.Mutex
	sections landing.Sections
	scroll   searchui.Section
	scrolled bool
}

func (v *PageView) ShowLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sections.Loading = true
}

func (v *PageView) HideLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sections.Loading = false
}

func (v *PageView) HideResults() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sections.ShowResults = false
	v.sections.Results = nil
}

func (v *PageView) HideError() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sections.ShowError = false
	v.sections.Message = ""
}

func (v *PageView) ShowResults(rv searchui.ResultsView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sections.ShowResults = true
	v.sections.Results = &rv
}

func (v *PageView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sections.ShowError = true
	v.sections.Message = message
}

func (v *PageView) ScrollTo(section searchui.Section) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scroll = section
	v.scrolled = true
}

// Snapshot returns the current sections and the last scroll target.
// ok is false when nothing has asked for a scroll yet.
func (v *PageView) Snapshot() (sections landing.Sections, scroll searchui.Section, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sections, v.scroll, v.scrolled
}

// Session is one browser tab's search state.
type Session struct {
	ID         string
	View       *PageView
	Controller *searchui.Controller
	Created    time.Time
}

// SessionStore holds the most recently used sessions; the oldest are
// evicted once capacity is reached.
type SessionStore struct {
	searcher searchui.Searcher
	loc      *time.Location
	cache    *lru.Cache[string, *Session]
	mu       sync.Mutex
}

// NewSessionStore builds a store whose controllers search with searcher.
func NewSessionStore(capacity int, searcher searchui.Searcher, loc *time.Location) (*SessionStore, error) {
	if searcher == nil {
		return nil, serr.New("session store needs a searcher")
	}
	cache, err := lru.New[string, *Session](capacity)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create session cache", "capacity", strconv.Itoa(capacity))
	}
	return &SessionStore{searcher: searcher, loc: loc, cache: cache}, nil
}

func (ss *SessionStore) newSession(id string) *Session {
	view := &PageView{}
	return &Session{
		ID:         id,
		View:       view,
		Controller: searchui.New(ss.searcher, view, searchui.WithLocation(ss.loc)),
		Created:    time.Now(),
	}
}

// Fresh replaces any state held for id with an idle session, as on a
// full page load.
func (ss *SessionStore) Fresh(id string) *Session {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	sess := ss.newSession(id)
	ss.cache.Add(id, sess)
	return sess
}

// Get returns the session for id, creating an idle one if it is unknown
// or was evicted.
func (ss *SessionStore) Get(id string) *Session {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if sess, ok := ss.cache.Get(id); ok {
		return sess
	}
	sess := ss.newSession(id)
	ss.cache.Add(id, sess)
	return sess
}

// Len reports the number of live sessions.
func (ss *SessionStore) Len() int {
	return ss.cache.Len()
}
