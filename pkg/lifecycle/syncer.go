package lifecycle

import (
	"context"
	"time"

	"github.com/ecoglobe/biosync/pkg/cluster"
	"github.com/ecoglobe/biosync/pkg/species"
)

// Syncer brings clusters of countries up to date with the occurrence API.
type Syncer interface {
	// Sync fetches occurrences of the country that appeared since the
	// last update, creates or updates species, recomputes the cluster
	// and moves its UpdatedAt mark. Remote failures abort the sync and
	// leave the cluster untouched.
	Sync(ctx context.Context, in SyncInput) (SyncResult, error)

	// SyncAll syncs every stored cluster one after another. A failed
	// country does not stop the others, its error is kept in the result.
	SyncAll(ctx context.Context) ([]SyncResult, error)

	// Recompute derives count and worst category of the country from
	// stored species and persists them. An empty result is not persisted.
	Recompute(ctx context.Context, country string) (cluster.Result, error)

	// EnsureCluster creates the cluster of a country if it is missing.
	EnsureCluster(ctx context.Context, country string) (cluster.Cluster, error)

	// Wait blocks until all enrichment tasks started by Sync are finished
	// and returns their reports.
	Wait() []EnrichReport
}

// SyncInput selects a cluster to sync.
type SyncInput struct {
	// ClusterID is optional, it is reported back in logs only.
	ClusterID string

	// Country is an ISO-3166 alpha-2 code.
	Country string

	// LastUpdatedAt is the start of the delta window. Zero time means the
	// cluster was never synced.
	LastUpdatedAt time.Time
}

// SyncResult summarizes a sync of a country.
type SyncResult struct {
	// Country, UpdatedCount and UpdatedCategory form the payload returned
	// to the presentation layer.
	Country         string           `json:"country"`
	UpdatedCount    int              `json:"updatedCount"`
	UpdatedCategory species.Category `json:"updatedCategory"`

	DateMin   string `json:"-"`
	DateMax   string `json:"-"`
	Total     int    `json:"-"`
	Pages     int    `json:"-"`
	Processed int    `json:"-"`
	Created   int    `json:"-"`
	Updated   int    `json:"-"`
	Skipped   int    `json:"-"`

	// Tasks is the number of enrichment tasks started.
	Tasks int `json:"-"`

	// Empty is true when the country has no species after the sync.
	Empty bool `json:"-"`

	// Err is set by SyncAll for countries that failed.
	Err error `json:"-"`
}
