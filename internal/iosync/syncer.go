// Package iosync implements lifecycle.Syncer. It pages through new
// occurrences of a country, folds them into species and the cluster of
// the country, and schedules enrichment of newly created species.
package iosync

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ecoglobe/biosync/internal/iologger"
	"github.com/ecoglobe/biosync/internal/iometrics"
	"github.com/ecoglobe/biosync/pkg/cluster"
	"github.com/ecoglobe/biosync/pkg/config"
	"github.com/ecoglobe/biosync/pkg/geo"
	"github.com/ecoglobe/biosync/pkg/lifecycle"
	"github.com/ecoglobe/biosync/pkg/sources"
	"github.com/ecoglobe/biosync/pkg/species"
	"github.com/ecoglobe/biosync/pkg/store"
	"github.com/gnames/gnfmt"
)

// Syncer implements lifecycle.Syncer.
type Syncer struct {
	cfg   *config.Config
	spp   store.SpeciesStore
	cls   store.ClusterStore
	occ   sources.OccurrenceSource
	tasks *TaskGroup
	log   *slog.Logger

	// now is replaced in tests.
	now func() time.Time
}

// Option configures a Syncer.
type Option func(*Syncer)

// OptClock sets the clock used for delta windows and UpdatedAt marks.
func OptClock(now func() time.Time) Option {
	return func(s *Syncer) {
		s.now = now
	}
}

// New creates a Syncer. A nil enricher disables enrichment of created
// species.
func New(
	cfg *config.Config,
	spp store.SpeciesStore,
	cls store.ClusterStore,
	occ sources.OccurrenceSource,
	enr lifecycle.Enricher,
	opts ...Option,
) *Syncer {
	res := &Syncer{
		cfg: cfg,
		spp: spp,
		cls: cls,
		occ: occ,
		log: iologger.Component("sync"),
		now: time.Now,
	}
	if enr != nil {
		res.tasks = NewTaskGroup(enr, cfg.Sync.EnrichJobs,
			cfg.Sync.EnrichTimeout, cfg.Sync.KeepReports)
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Sync implements lifecycle.Syncer.
func (s *Syncer) Sync(
	ctx context.Context,
	in lifecycle.SyncInput,
) (lifecycle.SyncResult, error) {
	start := time.Now()
	res, err := s.sync(ctx, in)
	iometrics.RecordSync(time.Since(start), err)
	if err != nil {
		s.logger(ctx).Error("Sync failed", "country", res.Country, "error", err)
		return res, err
	}

	s.logger(ctx).Info("Sync finished",
		"country", res.Country,
		"cluster_id", in.ClusterID,
		"date_min", res.DateMin,
		"date_max", res.DateMax,
		"total", res.Total,
		"pages", res.Pages,
		"created", res.Created,
		"updated", res.Updated,
		"skipped", res.Skipped,
		"tasks", res.Tasks,
		"count", res.UpdatedCount,
		"category", res.UpdatedCategory,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return res, nil
}

func (s *Syncer) sync(
	ctx context.Context,
	in lifecycle.SyncInput,
) (lifecycle.SyncResult, error) {
	country := cluster.NormCountry(in.Country)
	res := lifecycle.SyncResult{Country: country}
	if _, ok := geo.Lookup(country); !ok {
		return res, CountryError(in.Country)
	}

	now := s.now().UTC()
	res.DateMin, res.DateMax = window(in.LastUpdatedAt, s.cfg.Sync.InitialDate, now)
	q := sources.Query{
		Country:    country,
		DateMin:    res.DateMin,
		DateMax:    res.DateMax,
		Categories: s.cfg.Occurrence.Categories,
	}

	probe, err := s.occ.Search(ctx, q)
	if err != nil {
		return res, ProbeError(country, res.DateMin, res.DateMax, err)
	}
	res.Total = probe.Count
	pageSize := min(max(s.cfg.Sync.PageSize, 1), config.MaxPageSize)
	res.Pages = pages(res.Total, pageSize)

	bar := newProgressBar(res.Pages, country+" pages: ", s.cfg.Sync.WithProgress)
	if bar != nil {
		defer bar.Finish()
	}

	q.Limit = pageSize
	for page := range res.Pages {
		q.Offset = page * pageSize
		pg, err := s.occ.Search(ctx, q)
		if err != nil {
			return res, PageError(country, q.Offset, err)
		}
		for i := range pg.Results {
			if err = s.process(ctx, pg.Results[i], now, &res); err != nil {
				return res, PageError(country, q.Offset, err)
			}
		}
		if bar != nil {
			bar.Increment()
		}
	}

	agg, err := s.recompute(ctx, country, now)
	if err != nil {
		return res, err
	}
	res.UpdatedCount = agg.Count
	res.UpdatedCategory = agg.WorstCategory
	res.Empty = agg.Empty
	return res, nil
}

// process folds one occurrence into its species. Invalid occurrences are
// skipped, store failures abort the sync.
func (s *Syncer) process(
	ctx context.Context,
	o sources.Occurrence,
	now time.Time,
	res *lifecycle.SyncResult,
) error {
	res.Processed++
	if err := o.Validate(); err != nil {
		res.Skipped++
		iometrics.RecordOccurrence("skipped")
		s.logger(ctx).Warn("Skipping occurrence",
			"gbif_id", o.GbifID.String(),
			"reason", err,
		)
		return nil
	}

	taxonID := strings.TrimSpace(o.TaxonKey.String())
	gbifID := strings.TrimSpace(o.GbifID.String())
	loc := location(o)

	sp, err := s.spp.GetByTaxonID(ctx, taxonID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		created, err := s.create(ctx, o, taxonID, gbifID, loc, now)
		if err != nil {
			return err
		}
		if created.ID != "" {
			res.Created++
			iometrics.RecordOccurrence("created")
			if s.tasks != nil {
				s.tasks.Go(ctx, created.ID)
				res.Tasks++
			}
			return s.ensureLocationCluster(ctx, loc.Country)
		}
		// another invocation created the species first
		if sp, err = s.spp.GetByTaxonID(ctx, taxonID); err != nil {
			return err
		}
	case err != nil:
		return err
	}

	locAdded := sp.AddLocation(loc)
	idAdded := sp.AddGbifID(gbifID)
	if !locAdded && !idAdded {
		iometrics.RecordOccurrence("unchanged")
		return s.ensureLocationCluster(ctx, loc.Country)
	}
	err = s.spp.UpdateOccurrenceData(ctx, sp.ID, sp.Locations, sp.GbifIDs)
	if err != nil {
		return err
	}
	res.Updated++
	iometrics.RecordOccurrence("updated")
	return s.ensureLocationCluster(ctx, loc.Country)
}

// create inserts a species for the first occurrence of a taxon. It returns
// an empty species without error when the taxon was created concurrently.
func (s *Syncer) create(
	ctx context.Context,
	o sources.Occurrence,
	taxonID, gbifID string,
	loc species.Location,
	now time.Time,
) (species.Species, error) {
	cat, _ := species.ParseCategory(o.Category)
	tx := species.Taxonomy{
		Kingdom: o.Kingdom,
		Phylum:  o.Phylum,
		Class:   o.Class,
		Order:   o.Order,
		Family:  o.Family,
		Genus:   o.Genus,
	}
	sp := species.New(taxonID, o.ScientificName, tx, cat, loc, gbifID, now)
	err := s.spp.Create(ctx, sp)
	if errors.Is(err, store.ErrDuplicate) {
		s.logger(ctx).Debug("Species created concurrently", "taxon_id", taxonID)
		return species.Species{}, nil
	}
	if err != nil {
		return species.Species{}, err
	}
	return sp, nil
}

func location(o sources.Occurrence) species.Location {
	country := cluster.NormCountry(o.CountryCode)
	return species.Location{
		Country:   country,
		Continent: geo.Continent(country),
		Lat:       *o.DecimalLatitude,
		Lng:       *o.DecimalLongitude,
	}
}

// ensureLocationCluster creates the cluster of an occurrence country.
// Countries unknown to geo lookup are logged and have no cluster.
func (s *Syncer) ensureLocationCluster(ctx context.Context, country string) error {
	if _, ok := geo.Lookup(country); !ok {
		s.logger(ctx).Warn("No cluster for unknown country", "country", country)
		return nil
	}
	_, err := s.EnsureCluster(ctx, country)
	return err
}

// EnsureCluster implements lifecycle.Syncer.
func (s *Syncer) EnsureCluster(
	ctx context.Context,
	country string,
) (cluster.Cluster, error) {
	c, ok := cluster.New(country)
	if !ok {
		return cluster.Cluster{}, CountryError(country)
	}
	res, created, err := s.cls.Ensure(ctx, c)
	if err != nil {
		return cluster.Cluster{}, ClusterError(country, err)
	}
	if created {
		s.logger(ctx).Info("Cluster created", "country", res.Country, "id", res.ID)
	}
	return res, nil
}

// Recompute implements lifecycle.Syncer. The UpdatedAt mark of the
// cluster is kept, so the next sync window is not moved.
func (s *Syncer) Recompute(
	ctx context.Context,
	country string,
) (cluster.Result, error) {
	country = cluster.NormCountry(country)
	if _, ok := geo.Lookup(country); !ok {
		return cluster.Result{Country: country}, CountryError(country)
	}
	var updatedAt time.Time
	c, err := s.cls.GetByCountry(ctx, country)
	switch {
	case err == nil:
		updatedAt = c.UpdatedAt
	case !errors.Is(err, store.ErrNotFound):
		return cluster.Result{Country: country}, RecomputeError(country, err)
	}
	return s.recompute(ctx, country, updatedAt)
}

// recompute derives the aggregate of a country from stored species and
// persists it with the given UpdatedAt mark. Empty results are not
// persisted.
func (s *Syncer) recompute(
	ctx context.Context,
	country string,
	updatedAt time.Time,
) (cluster.Result, error) {
	spp, err := s.spp.ListByCountry(ctx, country)
	if err != nil {
		return cluster.Result{Country: country}, RecomputeError(country, err)
	}
	res := cluster.Aggregate(country, spp)
	if res.Empty {
		s.logger(ctx).Info("No species in country, cluster is not updated",
			"country", country)
		return res, nil
	}

	if _, err = s.EnsureCluster(ctx, country); err != nil {
		return res, err
	}
	err = s.cls.UpdateAggregate(ctx, country, res.Count, res.WorstCategory, updatedAt)
	if err != nil {
		return res, RecomputeError(country, err)
	}
	return res, nil
}

// SyncAll implements lifecycle.Syncer.
func (s *Syncer) SyncAll(ctx context.Context) ([]lifecycle.SyncResult, error) {
	cls, err := s.cls.List(ctx)
	if err != nil {
		return nil, ClusterError("*", err)
	}

	res := make([]lifecycle.SyncResult, 0, len(cls))
	var failed int
	var lastErr error
	for _, c := range cls {
		if err = ctx.Err(); err != nil {
			return res, err
		}
		r, err := s.Sync(ctx, lifecycle.SyncInput{
			ClusterID:     c.ID,
			Country:       c.Country,
			LastUpdatedAt: c.UpdatedAt,
		})
		if err != nil {
			r.Err = err
			failed++
			lastErr = err
		}
		res = append(res, r)
	}

	s.logger(ctx).Info("Synced all clusters", "synced", len(cls)-failed, "failed", failed)
	if failed > 0 && failed == len(cls) {
		return res, AllFailedError(failed, lastErr)
	}
	return res, nil
}

// Enriching is true when created species are enriched.
func (s *Syncer) Enriching() bool {
	return s.tasks != nil
}

// Wait implements lifecycle.Syncer.
func (s *Syncer) Wait() []lifecycle.EnrichReport {
	if s.tasks == nil {
		return nil
	}
	return s.tasks.Wait()
}

// logger prefers the logger of the caller, such as an HTTP request logger.
func (s *Syncer) logger(ctx context.Context) *slog.Logger {
	return iologger.FromContext(ctx, s.log)
}
