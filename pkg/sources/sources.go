// Package sources defines contracts and wire types of the remote
// biodiversity APIs: the occurrence API that lists observation records by
// country and time window, and the assessment API that provides
// conservation narratives.
//
// Implementations live in internal/iogbif and internal/ioiucn. They are
// expected to pace their requests and may cache idempotent lookups, but
// they never retry.
package sources

import (
	"context"
)

// OccurrenceSource is the occurrence-record API.
type OccurrenceSource interface {
	// Search returns one page of occurrences for a country and date range.
	// A query with zero Limit returns only the total count.
	Search(ctx context.Context, q Query) (OccurrencePage, error)

	// VernacularNames returns common names of a taxon.
	VernacularNames(ctx context.Context, taxonKey string) ([]Vernacular, error)

	// Category returns the current conservation category code of a taxon.
	// Empty string means the taxon has no category.
	Category(ctx context.Context, taxonKey string) (string, error)

	// Media returns media records of a taxon.
	Media(ctx context.Context, taxonKey string) ([]MediaItem, error)
}

// AssessmentSource is the conservation-assessment API.
type AssessmentSource interface {
	// FindAssessments returns assessments of a species identified by its
	// genus and specific epithet.
	FindAssessments(
		ctx context.Context,
		genus, epithet string,
	) ([]AssessmentRef, error)

	// Assessment returns the narrative documentation of an assessment.
	Assessment(ctx context.Context, id string) (Assessment, error)
}

// Query selects occurrences of a country observed in the inclusive date
// range [DateMin, DateMax]. Dates use the 2006-01-02 layout.
type Query struct {
	Country string
	DateMin string
	DateMax string
	Limit   int
	Offset  int

	// Categories optionally restricts results to the given category codes.
	Categories []string
}
