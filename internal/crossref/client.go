package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/matsen/refsolve/internal/citation"
)

const (
	// DefaultBaseURL is the public Crossref API base URL.
	DefaultBaseURL = "https://api.crossref.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 20 * time.Second

	// DefaultRows is the default number of candidates fetched per query.
	DefaultRows = 7

	// DefaultPause is the default spacing between outbound requests.
	DefaultPause = 250 * time.Millisecond

	// worksSelect is the fixed field projection for works queries.
	worksSelect = "DOI,title,container-title,issued,volume,page,author,article-number"
)

var cleanYearRe = regexp.MustCompile(`^\d{4}$`)

// ResponseCache memoizes raw works responses keyed by request URL. Get
// reports a miss for anything it cannot return; Put failures are not fatal
// to the query.
type ResponseCache interface {
	Get(request string) ([]byte, bool)
	Put(request string, status int, body []byte) error
}

// Client is a rate-limited HTTP client for the Crossref works API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
	rows       int
	cache      ResponseCache
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithMailto sets the contact email advertised in the User-Agent header.
// Crossref routes identified traffic to its polite pool.
func WithMailto(mailto string) ClientOption {
	return func(c *Client) {
		c.mailto = mailto
	}
}

// WithRows sets how many candidates each query requests.
func WithRows(rows int) ClientOption {
	return func(c *Client) {
		if rows > 0 {
			c.rows = rows
		}
	}
}

// WithPause sets the minimum spacing between outbound requests. Zero
// disables pacing.
func WithPause(pause time.Duration) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Every(pause), 1)
	}
}

// WithCache attaches a response cache. Cache hits skip both the network
// request and the rate limiter.
func WithCache(cache ResponseCache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// NewClient creates a Crossref works client. The contact email is taken
// from CROSSREF_MAILTO when set; WithMailto overrides it.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(DefaultPause), 1),
		baseURL:    DefaultBaseURL,
		rows:       DefaultRows,
	}

	if m := os.Getenv("CROSSREF_MAILTO"); m != "" {
		c.mailto = m
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Candidates fetches catalog candidates for one citation. The structured
// primary query runs first; whenever it errors or matches nothing, the
// free-text bibliographic fallback runs instead. A non-nil error means both
// stages failed and no candidates are available; callers are expected to
// treat that as an empty result, not abort.
func (c *Client) Candidates(ctx context.Context, w citation.Wanted) ([]Work, error) {
	items, err := c.works(ctx, primaryParams(w, c.rows))
	if err == nil && len(items) > 0 {
		return items, nil
	}
	return c.works(ctx, fallbackParams(w, c.rows))
}

// works performs one GET against the works endpoint.
func (c *Client) works(ctx context.Context, params url.Values) ([]Work, error) {
	requestURL := c.baseURL + "/works?" + params.Encode()

	if c.cache != nil {
		if body, ok := c.cache.Get(requestURL); ok {
			if items, err := decodeWorks(body); err == nil {
				return items, nil
			}
			// An undecodable cached body is treated as a miss.
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.mailto != "" {
		req.Header.Set("User-Agent", fmt.Sprintf("refsolve/1.0 (mailto:%s)", c.mailto))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	items, err := decodeWorks(body)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		_ = c.cache.Put(requestURL, resp.StatusCode, body)
	}
	return items, nil
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response) error {
	if resp.StatusCode == 429 {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}
	return nil
}

func decodeWorks(body []byte) ([]Work, error) {
	var resp worksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return resp.Message.Items, nil
}

// primaryParams builds the structured query: container title and first
// author as query fields, year/volume/page as exact filter clauses. The
// date filter is only applied for a clean 4-digit year.
func primaryParams(w citation.Wanted, rows int) url.Values {
	params := url.Values{}
	params.Set("rows", strconv.Itoa(rows))
	params.Set("select", worksSelect)
	if w.JournalFull != "" {
		params.Set("query.container-title", w.JournalFull)
	}
	if len(w.Authors) > 0 {
		params.Set("query.author", w.Authors[0])
	}

	var filters []string
	if cleanYearRe.MatchString(w.Year) {
		filters = append(filters,
			"from-pub-date:"+w.Year+"-01-01",
			"until-pub-date:"+w.Year+"-12-31")
	}
	if w.Volume != "" {
		filters = append(filters, "volume:"+w.Volume)
	}
	if w.Page != "" {
		filters = append(filters, "page:"+w.Page)
	}
	if len(filters) > 0 {
		params.Set("filter", strings.Join(filters, ","))
	}
	return params
}

// fallbackParams builds the free-text query: up to three authors, the
// journal as extracted, year, volume, and page, joined into one
// bibliographic string. Only the date filter survives; exact volume/page
// filters are what usually starve the primary query of results.
func fallbackParams(w citation.Wanted, rows int) url.Values {
	params := url.Values{}
	params.Set("rows", strconv.Itoa(rows))
	params.Set("select", worksSelect)

	var parts []string
	if len(w.Authors) > 0 {
		authors := w.Authors
		if len(authors) > 3 {
			authors = authors[:3]
		}
		parts = append(parts, strings.Join(authors, ", "))
	}
	for _, p := range []string{w.Journal, w.Year, w.Volume, w.Page} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	params.Set("query.bibliographic", strings.Join(parts, ", "))

	if cleanYearRe.MatchString(w.Year) {
		params.Set("filter", "from-pub-date:"+w.Year+"-01-01,until-pub-date:"+w.Year+"-12-31")
	}
	return params
}
