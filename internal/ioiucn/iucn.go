// Package ioiucn implements sources.AssessmentSource for an IUCN Red List
// v4 compatible assessment API.
package ioiucn

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/ecoglobe/biosync/internal/iometrics"
	"github.com/ecoglobe/biosync/internal/iorest"
	"github.com/ecoglobe/biosync/pkg/config"
	"github.com/ecoglobe/biosync/pkg/sources"
	"github.com/patrickmn/go-cache"
)

// SourceName identifies the assessment API in logs and metrics.
const SourceName = "iucn"

type iucn struct {
	rest  *iorest.Client
	cache *cache.Cache
}

// New creates an assessment source client. Both assessment lookups and
// assessment details are cached for cfg.CacheTTL.
func New(
	cfg config.AssessmentConfig,
	opts ...iorest.Option,
) sources.AssessmentSource {
	if cfg.Token != "" {
		opts = append([]iorest.Option{
			iorest.OptHeader("Authorization", "Bearer "+cfg.Token),
		}, opts...)
	} else {
		slog.Warn("Assessment API token is not set, descriptions will fail")
	}

	res := iucn{
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
	cfg config.AssessmentConfig,
	hc *http.Client,
) sources.AssessmentSource {
	return New(cfg, iorest.OptHTTPClient(hc))
}

type taxonResponse struct {
	Assessments []sources.AssessmentRef `json:"assessments"`
}

// FindAssessments returns assessments of a species. A species unknown to
// the API has no assessments, that is not an error.
func (i *iucn) FindAssessments(
	ctx context.Context,
	genus, epithet string,
) ([]sources.AssessmentRef, error) {
	genus = strings.TrimSpace(genus)
	epithet = strings.TrimSpace(epithet)
	key := "taxa:" + strings.ToLower(genus+" "+epithet)
	if v, ok := i.get(key); ok {
		iometrics.RecordCacheHit(SourceName, "taxa")
		return v.([]sources.AssessmentRef), nil
	}

	q := url.Values{}
	q.Set("genus_name", genus)
	q.Set("species_name", epithet)

	var resp taxonResponse
	err := i.rest.GetJSON(ctx, "taxa", "taxa/scientific_name", q, &resp)
	if err != nil {
		if iorest.StatusCode(err) != http.StatusNotFound {
			return nil, err
		}
		resp.Assessments = nil
	}

	i.set(key, resp.Assessments)
	return resp.Assessments, nil
}

// Assessment returns the documentation of an assessment.
func (i *iucn) Assessment(
	ctx context.Context,
	id string,
) (sources.Assessment, error) {
	key := "assessment:" + id
	if v, ok := i.get(key); ok {
		iometrics.RecordCacheHit(SourceName, "assessment")
		return v.(sources.Assessment), nil
	}

	var res sources.Assessment
	err := i.rest.GetJSON(ctx, "assessment",
		"assessment/"+url.PathEscape(id), nil, &res)
	if err != nil {
		return sources.Assessment{}, err
	}
	i.set(key, res)
	return res, nil
}

func (i *iucn) get(key string) (any, bool) {
	if i.cache == nil {
		return nil, false
	}
	return i.cache.Get(key)
}

func (i *iucn) set(key string, v any) {
	if i.cache != nil {
		i.cache.Set(key, v, cache.DefaultExpiration)
	}
}
