package sources

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoTaxonKey means an occurrence is not attributed to a taxon.
	ErrNoTaxonKey = errors.New("occurrence has no taxon key")

	// ErrNoCoordinates means an occurrence lacks latitude or longitude.
	ErrNoCoordinates = errors.New("occurrence has no coordinates")

	// ErrBadCoordinates means coordinates are outside of valid range.
	ErrBadCoordinates = errors.New("occurrence coordinates out of range")

	// ErrNoCountry means an occurrence has no country code.
	ErrNoCountry = errors.New("occurrence has no country code")
)

// Validate checks that an occurrence carries the data needed to attribute
// it to a species and a country. Invalid occurrences are skipped by the
// sync, so the error describes the data problem, not a failure.
func (o Occurrence) Validate() error {
	if strings.TrimSpace(o.TaxonKey.String()) == "" {
		return ErrNoTaxonKey
	}
	if strings.TrimSpace(o.CountryCode) == "" {
		return ErrNoCountry
	}
	if o.DecimalLatitude == nil || o.DecimalLongitude == nil {
		return ErrNoCoordinates
	}
	lat, lng := *o.DecimalLatitude, *o.DecimalLongitude
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: %v, %v", ErrBadCoordinates, lat, lng)
	}
	return nil
}
