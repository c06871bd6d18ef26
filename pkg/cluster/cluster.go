// Package cluster defines the per-country summary of species and the fold
// that derives its count and worst conservation category.
package cluster

import (
	"sort"
	"strings"
	"time"

	"github.com/ecoglobe/biosync/pkg/geo"
	"github.com/ecoglobe/biosync/pkg/species"
	"github.com/google/uuid"
)

// Cluster is a per-country aggregate shown on the map.
type Cluster struct {
	ID          string  `json:"id"`
	Country     string  `json:"country"`
	CountryName string  `json:"country_name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	MarkerSize  float64 `json:"marker_size"`

	// Count is the number of species with a location in the country.
	Count int `json:"count"`

	// WorstCategory is the most severe category among the species of the
	// country, species.Unknown until the first recompute.
	WorstCategory species.Category `json:"worst_category"`

	// Occurrences is a legacy counter. It is stored but never computed.
	Occurrences int `json:"occurrences"`

	// UpdatedAt is the high-water mark of the delta window.
	UpdatedAt time.Time `json:"updated_at"`
}

// Result is the outcome of a recompute of a country.
type Result struct {
	Country       string           `json:"country"`
	Count         int              `json:"updatedCount"`
	WorstCategory species.Category `json:"updatedCategory"`

	// Empty is true when no species has a location in the country.
	// Such result must not be persisted.
	Empty bool `json:"-"`
}

// New creates a cluster for a country code using geographic data.
// Returns false if the country code is not known.
func New(country string) (Cluster, bool) {
	c, ok := geo.Lookup(country)
	if !ok {
		return Cluster{}, false
	}
	res := Cluster{
		ID:            uuid.NewString(),
		Country:       c.Code,
		CountryName:   c.Name,
		Lat:           c.Lat,
		Lng:           c.Lng,
		MarkerSize:    geo.MarkerSize(c.Area),
		WorstCategory: species.Unknown,
	}
	return res, true
}

// NormCountry returns a trimmed upper-case country code.
func NormCountry(country string) string {
	return strings.ToUpper(strings.TrimSpace(country))
}

// Aggregate folds species of a country into a Result. Species without a
// location in the country are ignored. Species are visited ordered by
// taxon id, starting from species.Unknown, and the accumulator changes
// only on a strictly more severe category.
func Aggregate(country string, spp []species.Species) Result {
	country = NormCountry(country)
	res := Result{Country: country, WorstCategory: species.Unknown}

	matched := make([]species.Species, 0, len(spp))
	for i := range spp {
		if spp[i].HasCountry(country) {
			matched = append(matched, spp[i])
		}
	}
	if len(matched) == 0 {
		res.Empty = true
		return res
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].TaxonID < matched[j].TaxonID
	})

	res.Count = len(matched)
	for i := range matched {
		res.WorstCategory = species.Worse(res.WorstCategory, matched[i].Category)
	}
	return res
}

// Apply writes a non-empty Result to the cluster.
func (c *Cluster) Apply(r Result, now time.Time) {
	if r.Empty {
		return
	}
	c.Count = r.Count
	c.WorstCategory = r.WorstCategory
	c.UpdatedAt = now
}
