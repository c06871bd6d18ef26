package ioenrich

import (
	"fmt"
	"runtime"

	"github.com/ecoglobe/biosync/pkg/errcode"
	"github.com/gnames/gn"
)

// SpeciesNotFoundError is returned when the species to enrich cannot be
// read from the store.
func SpeciesNotFoundError(id string, err error) error {
	msg := "Cannot enrich species <em>%s</em>, it cannot be read"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.EnrichSpeciesNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: get species %s: %w", fn, id, err),
	}
}

// StepError is returned when an enrichment step of a species fails.
func StepError(step, taxonID string, err error) error {
	msg := "Enrichment step <em>%s</em> failed for taxon <em>%s</em>"
	vars := []any{step, taxonID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.EnrichStepError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: step %s of %s: %w", fn, step, taxonID, err),
	}
}
