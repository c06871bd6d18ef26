// Package ioimport loads species prepared outside of the occurrence API.
// A record carries taxonomy, locations, media and a description in one
// shot. Existing species are never modified.
package ioimport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/ecoglobe/biosync/internal/iofs"
	"github.com/ecoglobe/biosync/internal/iologger"
	"github.com/ecoglobe/biosync/internal/iosync"
	"github.com/ecoglobe/biosync/pkg/cluster"
	"github.com/ecoglobe/biosync/pkg/geo"
	"github.com/ecoglobe/biosync/pkg/lifecycle"
	"github.com/ecoglobe/biosync/pkg/species"
	"github.com/ecoglobe/biosync/pkg/store"
)

// Record is a species of an import file.
type Record struct {
	TaxonID        string               `json:"taxon_id"`
	ScientificName string               `json:"scientific_name"`
	CommonName     string               `json:"common_name"`
	Category       string               `json:"category"`
	Taxonomy       species.Taxonomy     `json:"taxonomy"`
	Locations      []species.Location   `json:"locations"`
	GbifIDs        []string             `json:"gbif_ids"`
	Media          []species.Media      `json:"media"`
	Description    *species.Description `json:"description"`
}

// Result summarizes an import.
type Result struct {
	Files    int
	Records  int
	Created  int
	Existing int
	Skipped  int

	// Clusters are recompute results of touched countries.
	Clusters []cluster.Result

	// Reports are set when created species were enriched.
	Reports []lifecycle.EnrichReport
}

// Importer creates species from import files.
type Importer struct {
	spp   store.SpeciesStore
	snc   lifecycle.Syncer
	tasks *iosync.TaskGroup
	log   *slog.Logger
	now   func() time.Time
}

// New creates an Importer. Clusters are ensured and recomputed with the
// syncer. A non-nil task group enriches created species.
func New(
	spp store.SpeciesStore,
	snc lifecycle.Syncer,
	tasks *iosync.TaskGroup,
) *Importer {
	return &Importer{
		spp:   spp,
		snc:   snc,
		tasks: tasks,
		log:   iologger.Component("import"),
		now:   time.Now,
	}
}

// Decode reads records from a JSON file.
func Decode(path string) ([]Record, error) {
	data, err := iofs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var res []Record
	if err = json.Unmarshal(data, &res); err != nil {
		return nil, DecodeError(path, err)
	}
	return res, nil
}

// ImportPath imports records of a JSON file or of every JSON file of a
// directory. All files are decoded before any species is created.
func (i *Importer) ImportPath(ctx context.Context, path string) (Result, error) {
	files, err := iofs.ImportFiles(path)
	if err != nil {
		return Result{}, err
	}

	var recs []Record
	for _, f := range files {
		r, err := Decode(f)
		if err != nil {
			return Result{}, err
		}
		i.log.Info("Decoded import file", "path", f, "records", len(r))
		recs = append(recs, r...)
	}

	res, err := i.Import(ctx, recs)
	res.Files = len(files)
	return res, err
}

// Import creates missing species, ensures clusters of their countries
// and recomputes them.
func (i *Importer) Import(ctx context.Context, recs []Record) (Result, error) {
	res := Result{Records: len(recs)}
	var countries []string
	now := i.now().UTC()

	for _, rec := range recs {
		sp, ok := toSpecies(rec, now)
		if !ok {
			res.Skipped++
			i.log.Warn("Skipping import record",
				"taxon_id", rec.TaxonID,
				"scientific_name", rec.ScientificName,
			)
			continue
		}

		err := i.spp.Create(ctx, sp)
		if errors.Is(err, store.ErrDuplicate) {
			res.Existing++
			continue
		}
		if err != nil {
			return res, RecordError(sp.TaxonID, err)
		}
		res.Created++
		if i.tasks != nil {
			i.tasks.Go(ctx, sp.ID)
		}
		for _, c := range sp.Countries() {
			if !slices.Contains(countries, c) {
				countries = append(countries, c)
			}
		}
	}

	slices.Sort(countries)
	for _, c := range countries {
		if _, err := i.snc.EnsureCluster(ctx, c); err != nil {
			i.log.Warn("No cluster for country", "country", c, "error", err)
			continue
		}
		r, err := i.snc.Recompute(ctx, c)
		if err != nil {
			return res, err
		}
		res.Clusters = append(res.Clusters, r)
	}

	if i.tasks != nil {
		res.Reports = i.tasks.Wait()
	}
	return res, nil
}

// toSpecies converts a record. Records without a taxon id, a name or a
// location are rejected.
func toSpecies(rec Record, now time.Time) (species.Species, bool) {
	locs := make([]species.Location, 0, len(rec.Locations))
	for _, l := range rec.Locations {
		l.Country = cluster.NormCountry(l.Country)
		if l.Country == "" {
			continue
		}
		if strings.TrimSpace(l.Continent) == "" {
			l.Continent = geo.Continent(l.Country)
		}
		locs = append(locs, l)
	}
	if strings.TrimSpace(rec.TaxonID) == "" ||
		strings.TrimSpace(rec.ScientificName) == "" ||
		len(locs) == 0 {
		return species.Species{}, false
	}

	cat, _ := species.ParseCategory(rec.Category)
	res := species.New(rec.TaxonID, rec.ScientificName, rec.Taxonomy, cat,
		locs[0], "", now)
	for _, l := range locs[1:] {
		res.AddLocation(l)
	}
	for _, id := range rec.GbifIDs {
		res.AddGbifID(strings.TrimSpace(id))
	}
	if name := strings.TrimSpace(rec.CommonName); name != "" {
		res.CommonName = name
	}
	if len(rec.Media) > 0 {
		res.Media = rec.Media
	}
	if !rec.Description.IsEmpty() {
		res.Description = rec.Description
	}
	return res, true
}
