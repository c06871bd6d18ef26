// Package iogbif implements sources.OccurrenceSource for a GBIF-compatible
// occurrence API.
package iogbif

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ecoglobe/biosync/internal/iometrics"
	"github.com/ecoglobe/biosync/internal/iorest"
	"github.com/ecoglobe/biosync/pkg/config"
	"github.com/ecoglobe/biosync/pkg/sources"
	"github.com/patrickmn/go-cache"
)

// SourceName identifies the occurrence API in logs and metrics.
const SourceName = "gbif"

type gbif struct {
	rest  *iorest.Client
	cache *cache.Cache
}

// New creates an occurrence source client. Vernacular names and media
// are cached for cfg.CacheTTL, categories are never cached.
func New(
	cfg config.OccurrenceConfig,
	opts ...iorest.Option,
) sources.OccurrenceSource {
	res := gbif{
		rest: iorest.New(SourceName, cfg.BaseURL, cfg.Timeout,
			cfg.RateLimit, opts...),
	}
	if cfg.CacheTTL > 0 {
		res.cache = cache.New(cfg.CacheTTL, cfg.CacheTTL*2)
	}
	return &res
}

// NewWithClient is New with a custom HTTP client.
func NewWithClient(
	cfg config.OccurrenceConfig,
	hc *http.Client,
) sources.OccurrenceSource {
	return New(cfg, iorest.OptHTTPClient(hc))
}

func (g *gbif) Search(
	ctx context.Context,
	q sources.Query,
) (sources.OccurrencePage, error) {
	var res sources.OccurrencePage
	err := g.rest.GetJSON(ctx, "occurrence_search", "occurrence/search",
		searchQuery(q), &res)
	if err != nil {
		return sources.OccurrencePage{}, err
	}
	return res, nil
}

func searchQuery(q sources.Query) url.Values {
	res := url.Values{}
	res.Set("country", strings.ToUpper(q.Country))
	res.Set("eventDate", q.DateMin+","+q.DateMax)
	res.Set("limit", strconv.Itoa(q.Limit))
	res.Set("offset", strconv.Itoa(q.Offset))
	for _, v := range q.Categories {
		res.Add("iucnRedListCategory", v)
	}
	return res
}

type resultsResponse[T any] struct {
	Offset       int  `json:"offset"`
	Limit        int  `json:"limit"`
	EndOfRecords bool `json:"endOfRecords"`
	Results      []T  `json:"results"`
}

func (g *gbif) VernacularNames(
	ctx context.Context,
	taxonKey string,
) ([]sources.Vernacular, error) {
	return cached(ctx, g, "vernacular", taxonKey,
		"species/"+url.PathEscape(taxonKey)+"/vernacularNames",
		func(r resultsResponse[sources.Vernacular]) []sources.Vernacular {
			return r.Results
		})
}

func (g *gbif) Media(
	ctx context.Context,
	taxonKey string,
) ([]sources.MediaItem, error) {
	return cached(ctx, g, "media", taxonKey,
		"species/"+url.PathEscape(taxonKey)+"/media",
		func(r resultsResponse[sources.MediaItem]) []sources.MediaItem {
			return r.Results
		})
}

// cached serves a per-taxon list endpoint through the TTL cache.
func cached[R any, T any](
	ctx context.Context,
	g *gbif,
	endpoint, taxonKey, path string,
	extract func(R) []T,
) ([]T, error) {
	key := endpoint + ":" + taxonKey
	if g.cache != nil {
		if v, ok := g.cache.Get(key); ok {
			if res, ok := v.([]T); ok {
				iometrics.RecordCacheHit(SourceName, endpoint)
				return res, nil
			}
		}
	}

	var resp R
	if err := g.rest.GetJSON(ctx, endpoint, path, nil, &resp); err != nil {
		return nil, err
	}
	res := extract(resp)
	if g.cache != nil {
		g.cache.Set(key, res, cache.DefaultExpiration)
	}
	return res, nil
}

type categoryResponse struct {
	Category string `json:"category"`
	Code     string `json:"code"`
}

// Category returns the category code of a taxon. A taxon unknown to the
// red list endpoint has no category, that is not an error.
func (g *gbif) Category(ctx context.Context, taxonKey string) (string, error) {
	var resp categoryResponse
	err := g.rest.GetJSON(ctx, "category",
		"species/"+url.PathEscape(taxonKey)+"/iucnRedListCategory",
		nil, &resp)
	if err != nil {
		if iorest.StatusCode(err) == http.StatusNotFound {
			return "", nil
		}
		return "", err
	}
	if resp.Code != "" {
		return resp.Code, nil
	}
	return resp.Category, nil
}
