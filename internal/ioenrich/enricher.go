// Package ioenrich implements lifecycle.Enricher. It completes a species
// with its current category, a common name, media and an assessment
// description fetched from remote APIs.
package ioenrich

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ecoglobe/biosync/internal/iologger"
	"github.com/ecoglobe/biosync/internal/iometrics"
	"github.com/ecoglobe/biosync/pkg/lifecycle"
	"github.com/ecoglobe/biosync/pkg/parserpool"
	"github.com/ecoglobe/biosync/pkg/sources"
	"github.com/ecoglobe/biosync/pkg/species"
	"github.com/ecoglobe/biosync/pkg/store"
)

// Enricher runs enrichment steps of a species one after another.
// It is safe for concurrent use if its store and sources are.
type Enricher struct {
	spp    store.SpeciesStore
	occ    sources.OccurrenceSource
	asm    sources.AssessmentSource
	parser parserpool.Pool
	log    *slog.Logger
}

// New creates an Enricher.
func New(
	spp store.SpeciesStore,
	occ sources.OccurrenceSource,
	asm sources.AssessmentSource,
	parser parserpool.Pool,
) *Enricher {
	return &Enricher{
		spp:    spp,
		occ:    occ,
		asm:    asm,
		parser: parser,
		log:    iologger.Component("enrich"),
	}
}

type step struct {
	name string
	fn   func(context.Context, *species.Species) lifecycle.StepReport
}

// Enrich implements lifecycle.Enricher.
func (e *Enricher) Enrich(
	ctx context.Context,
	speciesID string,
) (lifecycle.EnrichReport, error) {
	res := lifecycle.EnrichReport{SpeciesID: speciesID}
	sp, err := e.spp.Get(ctx, speciesID)
	if err != nil {
		res.Err = SpeciesNotFoundError(speciesID, err)
		return res, res.Err
	}
	res.TaxonID = sp.TaxonID

	steps := []step{
		{lifecycle.StepCategory, e.category},
		{lifecycle.StepVernacular, e.vernacular},
		{lifecycle.StepMedia, e.media},
		{lifecycle.StepDescription, e.description},
	}
	for _, v := range steps {
		r := v.fn(ctx, &sp)
		r.Name = v.name
		if r.Err != nil {
			r.Err = StepError(v.name, sp.TaxonID, r.Err)
			r.Error = r.Err.Error()
			e.log.Warn("Enrichment step failed",
				"step", v.name,
				"taxon_id", sp.TaxonID,
				"error", r.Err,
			)
		}
		iometrics.RecordEnrichStep(v.name, r.Updated, r.Skipped, r.Err)
		res.Steps = append(res.Steps, r)
	}

	e.log.Info("Species enriched",
		"species_id", sp.ID,
		"taxon_id", sp.TaxonID,
		"failed_steps", res.Failed(),
	)
	return res, nil
}

// category always asks for the current category and stores it if it
// changed.
func (e *Enricher) category(
	ctx context.Context,
	sp *species.Species,
) lifecycle.StepReport {
	res := lifecycle.StepReport{Before: sp.Category.String()}
	code, err := e.occ.Category(ctx, sp.TaxonID)
	if err != nil {
		res.Err = err
		return res
	}
	cat, ok := species.ParseCategory(code)
	if !ok {
		res.Skipped = true
		return res
	}
	res.After = cat.String()
	if cat == sp.Category {
		return res
	}
	if err = e.spp.SetCategory(ctx, sp.ID, cat); err != nil {
		res.Err = err
		return res
	}
	sp.Category = cat
	res.Updated = true
	return res
}

// vernacular sets the common name unless it is known already. An English
// name is preferred.
func (e *Enricher) vernacular(
	ctx context.Context,
	sp *species.Species,
) lifecycle.StepReport {
	res := lifecycle.StepReport{Before: sp.CommonName}
	if sp.HasCommonName() {
		res.Skipped = true
		return res
	}
	names, err := e.occ.VernacularNames(ctx, sp.TaxonID)
	if err != nil {
		res.Err = err
		return res
	}
	name := pickVernacular(names)
	if name == "" {
		return res
	}
	if err = e.spp.SetCommonName(ctx, sp.ID, name); err != nil {
		res.Err = err
		return res
	}
	sp.CommonName = name
	res.After = name
	res.Updated = true
	return res
}

func pickVernacular(names []sources.Vernacular) string {
	var first string
	for _, v := range names {
		name := strings.TrimSpace(v.VernacularName)
		if name == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(v.Language)) {
		case "eng", "en":
			return name
		}
		if first == "" {
			first = name
		}
	}
	return first
}

// media populates media of a species that has none.
func (e *Enricher) media(
	ctx context.Context,
	sp *species.Species,
) lifecycle.StepReport {
	res := lifecycle.StepReport{Before: strconv.Itoa(len(sp.Media))}
	if len(sp.Media) > 0 {
		res.Skipped = true
		return res
	}
	items, err := e.occ.Media(ctx, sp.TaxonID)
	if err != nil {
		res.Err = err
		return res
	}
	media := normalizeMedia(items)
	if len(media) == 0 {
		return res
	}
	if err = e.spp.SetMedia(ctx, sp.ID, media); err != nil {
		res.Err = err
		return res
	}
	sp.Media = media
	res.After = strconv.Itoa(len(media))
	res.Updated = true
	return res
}

// description replaces the description with the narrative of the first
// assessment found for the species.
func (e *Enricher) description(
	ctx context.Context,
	sp *species.Species,
) lifecycle.StepReport {
	var res lifecycle.StepReport
	genus := strings.TrimSpace(sp.Genus)
	if genus == "" || genus == species.UnknownValue || sp.ScientificName == "" {
		res.Skipped = true
		return res
	}
	epithet, ok := e.parser.Epithet(sp.ScientificName, genus, sp.Kingdom)
	if !ok {
		res.Skipped = true
		return res
	}

	refs, err := e.asm.FindAssessments(ctx, genus, epithet)
	if err != nil {
		res.Err = err
		return res
	}
	if len(refs) == 0 {
		res.Skipped = true
		return res
	}

	id := string(refs[0].AssessmentID)
	asm, err := e.asm.Assessment(ctx, id)
	if err != nil {
		res.Err = err
		return res
	}
	desc := describe(asm.Documentation)
	if desc.IsEmpty() {
		res.Skipped = true
		return res
	}
	if err = e.spp.SetDescription(ctx, sp.ID, desc); err != nil {
		res.Err = err
		return res
	}
	sp.Description = &desc
	res.After = id
	res.Updated = true
	return res
}
