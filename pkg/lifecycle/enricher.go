package lifecycle

import (
	"context"
)

// Enricher completes a species with data from remote APIs.
type Enricher interface {
	// Enrich runs category, vernacular, media and description steps for
	// a species. A failed step does not prevent the others. The returned
	// error is only set when the species cannot be read.
	Enrich(ctx context.Context, speciesID string) (EnrichReport, error)
}

// Enrichment step names.
const (
	StepCategory    = "category"
	StepVernacular  = "vernacular"
	StepMedia       = "media"
	StepDescription = "description"
)

// EnrichReport describes what an enrichment changed.
type EnrichReport struct {
	SpeciesID string       `json:"species_id"`
	TaxonID   string       `json:"taxon_id"`
	Steps     []StepReport `json:"steps"`

	// Err is set when the whole enrichment failed.
	Err error `json:"-"`
}

// StepReport describes the outcome of one enrichment step.
type StepReport struct {
	Name    string `json:"name"`
	Updated bool   `json:"updated"`
	Skipped bool   `json:"skipped"`
	Before  string `json:"before,omitempty"`
	After   string `json:"after,omitempty"`

	// Err is the failure of the step.
	Err error `json:"-"`

	// Error is the message of Err for JSON output.
	Error string `json:"error,omitempty"`
}

// Step returns the report of a named step.
func (r EnrichReport) Step(name string) (StepReport, bool) {
	for _, v := range r.Steps {
		if v.Name == name {
			return v, true
		}
	}
	return StepReport{}, false
}

// Failed returns the number of failed steps.
func (r EnrichReport) Failed() int {
	var res int
	for _, v := range r.Steps {
		if v.Err != nil {
			res++
		}
	}
	return res
}
