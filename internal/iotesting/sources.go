package iotesting

import (
	"context"
	"errors"
	"sync"

	"github.com/ecoglobe/biosync/pkg/sources"
)

// OccurrenceSource is an in-memory sources.OccurrenceSource. Search
// serves Occurrences sliced by offset and limit, and records every query.
type OccurrenceSource struct {
	mu sync.Mutex

	Occurrences []sources.Occurrence

	// Total overrides the reported count when positive.
	Total int

	Categories  map[string]string
	Vernaculars map[string][]sources.Vernacular
	MediaItems  map[string][]sources.MediaItem

	// SearchErr is returned by Search. FailAtOffset limits it to queries
	// with the given offset when non-negative.
	SearchErr    error
	FailAtOffset int

	CategoryErr   error
	VernacularErr error
	MediaErr      error

	Queries []sources.Query
	Calls   map[string]int
}

var _ sources.OccurrenceSource = (*OccurrenceSource)(nil)

// NewOccurrenceSource creates a source that serves the given occurrences.
func NewOccurrenceSource(occs ...sources.Occurrence) *OccurrenceSource {
	return &OccurrenceSource{
		Occurrences:  occs,
		Categories:   make(map[string]string),
		Vernaculars:  make(map[string][]sources.Vernacular),
		MediaItems:   make(map[string][]sources.MediaItem),
		FailAtOffset: -1,
		Calls:        make(map[string]int),
	}
}

func (o *OccurrenceSource) Search(
	_ context.Context,
	q sources.Query,
) (sources.OccurrencePage, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Calls["search"]++
	o.Queries = append(o.Queries, q)

	if o.SearchErr != nil &&
		(o.FailAtOffset < 0 || (o.FailAtOffset == q.Offset && q.Limit > 0)) {
		return sources.OccurrencePage{}, o.SearchErr
	}

	total := len(o.Occurrences)
	if o.Total > 0 {
		total = o.Total
	}
	res := sources.OccurrencePage{
		Offset: q.Offset,
		Limit:  q.Limit,
		Count:  total,
	}
	start := min(q.Offset, len(o.Occurrences))
	end := min(q.Offset+q.Limit, len(o.Occurrences))
	res.Results = append(res.Results, o.Occurrences[start:end]...)
	res.EndOfRecords = end >= len(o.Occurrences)
	return res, nil
}

func (o *OccurrenceSource) VernacularNames(
	_ context.Context,
	taxonKey string,
) ([]sources.Vernacular, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Calls["vernacular"]++
	if o.VernacularErr != nil {
		return nil, o.VernacularErr
	}
	return o.Vernaculars[taxonKey], nil
}

func (o *OccurrenceSource) Category(
	_ context.Context,
	taxonKey string,
) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Calls["category"]++
	if o.CategoryErr != nil {
		return "", o.CategoryErr
	}
	return o.Categories[taxonKey], nil
}

func (o *OccurrenceSource) Media(
	_ context.Context,
	taxonKey string,
) ([]sources.MediaItem, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Calls["media"]++
	if o.MediaErr != nil {
		return nil, o.MediaErr
	}
	return o.MediaItems[taxonKey], nil
}

// CallCount returns the number of calls of a method: "search",
// "vernacular", "category" or "media".
func (o *OccurrenceSource) CallCount(method string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Calls[method]
}

// ErrNoAssessment is returned for unknown assessment ids.
var ErrNoAssessment = errors.New("assessment not found")

// AssessmentSource is an in-memory sources.AssessmentSource.
type AssessmentSource struct {
	mu sync.Mutex

	// Refs maps "genus epithet" to assessment references.
	Refs        map[string][]sources.AssessmentRef
	Assessments map[string]sources.Assessment

	FindErr       error
	AssessmentErr error

	// Lookups records "genus epithet" of every FindAssessments call.
	Lookups []string
}

var _ sources.AssessmentSource = (*AssessmentSource)(nil)

// NewAssessmentSource creates an empty assessment source.
func NewAssessmentSource() *AssessmentSource {
	return &AssessmentSource{
		Refs:        make(map[string][]sources.AssessmentRef),
		Assessments: make(map[string]sources.Assessment),
	}
}

func (a *AssessmentSource) FindAssessments(
	_ context.Context,
	genus, epithet string,
) ([]sources.AssessmentRef, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := genus + " " + epithet
	a.Lookups = append(a.Lookups, key)
	if a.FindErr != nil {
		return nil, a.FindErr
	}
	return a.Refs[key], nil
}

func (a *AssessmentSource) Assessment(
	_ context.Context,
	id string,
) (sources.Assessment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.AssessmentErr != nil {
		return sources.Assessment{}, a.AssessmentErr
	}
	res, ok := a.Assessments[id]
	if !ok {
		return sources.Assessment{}, ErrNoAssessment
	}
	return res, nil
}

// Occurrence builds a valid occurrence for tests.
func Occurrence(
	gbifID, taxonKey, name, country string,
	lat, lng float64,
	cat string,
) sources.Occurrence {
	return sources.Occurrence{
		GbifID:           sources.FlexString(gbifID),
		TaxonKey:         sources.FlexString(taxonKey),
		ScientificName:   name,
		CountryCode:      country,
		DecimalLatitude:  &lat,
		DecimalLongitude: &lng,
		Category:         cat,
		Kingdom:          "Animalia",
		Genus:            firstWord(name),
	}
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' {
			return s[:i]
		}
	}
	return s
}
