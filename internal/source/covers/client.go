// Package covers fetches the daily over/under expert consensus page
// and extracts the event slate from it.
//
// The page is server-rendered HTML; rows are pulled out with regular
// expressions rather than a DOM parser, so extraction is best-effort:
// rows that do not match are skipped, and kickoff times that fail
// every known layout leave the record inert (empty date/time fields).
package covers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomasvidela/consensus-alerts/internal/event"
	"github.com/tomasvidela/consensus-alerts/internal/source"
)

const defaultBaseURL = "https://contests.covers.com/consensus/topoverunderconsensus"

// tableMarker distinguishes a real consensus page from an error or
// interstitial page that still returns 200.
const tableMarker = "covers-CoversConsensus-table"

// Client scrapes the consensus page for one sport.
type Client struct {
	httpClient *http.Client
	baseURL    string
	sport      string
	offset     time.Duration // source ET clock -> operating timezone
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// New creates a rate-limited consensus client. offset shifts the
// page's Eastern kickoff times into the operating timezone.
func New(sport string, offset time.Duration, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 20
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		sport:      strings.ToLower(sport),
		offset:     offset,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// Fetch downloads and parses the consensus slate for day. All
// transport and page-shape failures wrap source.ErrFetch.
func (c *Client) Fetch(ctx context.Context, day time.Time) ([]event.Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait: %v", source.ErrFetch, err)
	}

	u := fmt.Sprintf("%s/%s/expert/%s", c.baseURL, c.sport, day.Format("2006-01-02"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", source.ErrFetch, err)
	}
	setBrowserHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", source.ErrFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", source.ErrFetch, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: consensus page returned %d", source.ErrFetch, resp.StatusCode)
	}
	if !strings.Contains(string(body), tableMarker) {
		return nil, fmt.Errorf("%w: unrecognized page layout", source.ErrFetch)
	}

	records := c.parseSlate(string(body))
	c.logger.Info("Consensus page fetched", "sport", c.sport, "date", day.Format("2006-01-02"), "events", len(records))
	return records, nil
}

// setBrowserHeaders mirrors a plain desktop browser request; the page
// serves a cookie-consent interstitial to unadorned clients.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "es-ES,es;q=0.8,en-US;q=0.5,en;q=0.3")
	req.Header.Set("Referer", "https://contests.covers.com/")
	req.Header.Set("Cookie", "consent=1;")
}
