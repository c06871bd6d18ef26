// Package store defines persistence contracts of species and clusters.
//
// Species writes are split into per-field setters, so the enrichment of a
// species never overwrites locations appended concurrently by a sync, and
// a sync never overwrites enriched fields.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/ecoglobe/biosync/pkg/cluster"
	"github.com/ecoglobe/biosync/pkg/species"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique key is already taken.
	// For species it means another invocation created the same taxon.
	ErrDuplicate = errors.New("duplicate key")
)

// SpeciesStore persists species.
type SpeciesStore interface {
	// Get returns a species by its ID.
	Get(ctx context.Context, id string) (species.Species, error)

	// GetByTaxonID returns a species by the external taxon id.
	GetByTaxonID(ctx context.Context, taxonID string) (species.Species, error)

	// Create inserts a new species. Returns ErrDuplicate if a species with
	// the same taxon id exists.
	Create(ctx context.Context, sp species.Species) error

	// UpdateOccurrenceData replaces locations and the occurrence-id ledger
	// of a species.
	UpdateOccurrenceData(
		ctx context.Context,
		id string,
		locs []species.Location,
		gbifIDs []string,
	) error

	// SetCategory updates the conservation category.
	SetCategory(ctx context.Context, id string, cat species.Category) error

	// SetCommonName updates the common name.
	SetCommonName(ctx context.Context, id, name string) error

	// SetMedia replaces the media list.
	SetMedia(ctx context.Context, id string, media []species.Media) error

	// SetDescription replaces the description.
	SetDescription(ctx context.Context, id string, d species.Description) error

	// ListByCountry returns species that have a location in the country,
	// ordered by taxon id.
	ListByCountry(ctx context.Context, country string) ([]species.Species, error)
}

// ClusterStore persists clusters.
type ClusterStore interface {
	// Get returns a cluster by its ID.
	Get(ctx context.Context, id string) (cluster.Cluster, error)

	// GetByCountry returns the cluster of a country.
	GetByCountry(ctx context.Context, country string) (cluster.Cluster, error)

	// Ensure inserts the cluster unless a cluster of the same country
	// exists. Returns the stored cluster and true if it was created.
	Ensure(ctx context.Context, c cluster.Cluster) (cluster.Cluster, bool, error)

	// UpdateAggregate stores count and worst category of a cluster and
	// moves its UpdatedAt mark.
	UpdateAggregate(
		ctx context.Context,
		country string,
		count int,
		cat species.Category,
		updatedAt time.Time,
	) error

	// List returns all clusters ordered by country.
	List(ctx context.Context) ([]cluster.Cluster, error)
}
