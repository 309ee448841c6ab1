package fetch

import (
	"net/url"
	"strconv"
	"time"

	"github.com/widgetworks/metricfeed/pkg/cache"
	"github.com/widgetworks/metricfeed/pkg/catalog"
)

// TimeRangeMode selects the window of data a fetch asks for and keeps.
type TimeRangeMode string

const (
	// Last24h requests the trailing 24 hours. The upstream request already
	// constrains the window via the since parameter, so no local filter is
	// applied.
	Last24h TimeRangeMode = "last24h"

	// SinceMidnight keeps only points from the current local day (with a
	// short grace window before midnight).
	SinceMidnight TimeRangeMode = "midnight"
)

// Request is the fully planned fetch: endpoint, query inputs and cache key.
// It is a value object, rebuilt per call and never mutated.
type Request struct {
	MetricID string
	Mode     TimeRangeMode
	Asset    string
	Interval catalog.Interval

	// PointBudget caps the shaped series length.
	PointBudget int

	// Since is now minus 24 hours, truncated to the second so equal inputs
	// plan byte-identical requests.
	Since time.Time

	// Endpoint is the request URL without query parameters.
	Endpoint string

	CacheKey string
}

// URL renders the full request URL with query parameters and the API key.
func (r Request) URL(apiKey string) string {
	q := url.Values{}
	q.Set("a", r.Asset)
	q.Set("i", string(r.Interval))
	q.Set("s", strconv.FormatInt(r.Since.Unix(), 10))
	q.Set("api_key", apiKey)
	return r.Endpoint + "?" + q.Encode()
}

// Planner builds deterministic fetch requests. Same metric, mode and clock
// reading always yield the same cache key and since timestamp.
type Planner struct {
	baseURL string
	asset   string
	catalog catalog.Catalog

	// now is replaceable in tests.
	now func() time.Time
}

// NewPlanner creates a planner. baseURL is the API origin without a trailing
// slash (e.g. "https://api.example.com"); asset is the default asset used
// when a fetch does not name one.
func NewPlanner(baseURL, asset string, cat catalog.Catalog) *Planner {
	return &Planner{
		baseURL: baseURL,
		asset:   asset,
		catalog: cat,
		now:     time.Now,
	}
}

// Plan builds the request for one metric fetch. An empty asset falls back to
// the planner default. Unknown metric ids are not an error here: they plan
// with the default hourly descriptor and the API rejects them if invalid.
func (p *Planner) Plan(metricID string, mode TimeRangeMode, asset string) Request {
	if asset == "" {
		asset = p.asset
	}
	d := catalog.Resolve(p.catalog, metricID)

	return Request{
		MetricID:    metricID,
		Mode:        mode,
		Asset:       asset,
		Interval:    d.Interval,
		PointBudget: d.PointBudget(),
		Since:       p.now().Add(-24 * time.Hour).Truncate(time.Second),
		Endpoint:    p.baseURL + "/v1/metrics/" + url.PathEscape(metricID),
		CacheKey:    cache.Key(metricID, string(mode)),
	}
}
