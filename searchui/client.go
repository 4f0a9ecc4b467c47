package searchui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rohanthewiz/serr"
)

// Searcher runs one product search against the backend.
type Searcher interface {
	Search(ctx context.Context, query string) (*Result, error)
}

// Client calls the backend's GET /search endpoint over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a search client for the backend at baseURL.
// A zero timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchURL is the request URL for query: <base>/search?q=<encoded>.
// Spaces encode as %20; reserved characters such as & and + stay escaped.
func (c *Client) SearchURL(query string) string {
	return c.baseURL + "/search?q=" + strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}

type clientAddrKey struct{}

// WithClientAddr marks ctx as a search made on behalf of the client at addr.
// The client forwards it as X-Forwarded-For so the backend can tell callers apart.
func WithClientAddr(ctx context.Context, addr string) context.Context {
	if addr == "" {
		return ctx
	}
	return context.WithValue(ctx, clientAddrKey{}, addr)
}

func clientAddr(ctx context.Context) string {
	addr, _ := ctx.Value(clientAddrKey{}).(string)
	return addr
}

// Search issues exactly one GET request. Any non-2xx status or a body that is
// not the expected JSON is an error.
func (c *Client) Search(ctx context.Context, query string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SearchURL(query), nil)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create search request")
	}
	if addr := clientAddr(ctx); addr != "" {
		req.Header.Set("X-Forwarded-For", addr)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, serr.Wrap(err, "search request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serr.New(fmt.Sprintf("search returned status %d", resp.StatusCode))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, serr.Wrap(err, "failed to decode search response")
	}
	return &result, nil
}

// SearcherFunc adapts a plain function to the Searcher interface.
type SearcherFunc func(ctx context.Context, query string) (*Result, error)

// Search calls f.
func (f SearcherFunc) Search(ctx context.Context, query string) (*Result, error) {
	return f(ctx, query)
}
