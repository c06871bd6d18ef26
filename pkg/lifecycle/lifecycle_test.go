package lifecycle_test

import (
	"errors"
	"testing"

	"github.com/ecoglobe/biosync/internal/ioenrich"
	"github.com/ecoglobe/biosync/internal/iosync"
	"github.com/ecoglobe/biosync/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestContracts is a compile-time check of Syncer and Enricher
// implementations.
func TestContracts(t *testing.T) {
	var _ lifecycle.Syncer = (*iosync.Syncer)(nil)
	var _ lifecycle.Enricher = (*ioenrich.Enricher)(nil)
	assert.True(t, true)
}

func TestEnrichReport(t *testing.T) {
	r := lifecycle.EnrichReport{
		Steps: []lifecycle.StepReport{
			{Name: lifecycle.StepCategory, Updated: true},
			{Name: lifecycle.StepVernacular, Err: errors.New("boom")},
			{Name: lifecycle.StepMedia, Skipped: true},
		},
	}
	st, ok := r.Step(lifecycle.StepCategory)
	assert.True(t, ok)
	assert.True(t, st.Updated)

	_, ok = r.Step(lifecycle.StepDescription)
	assert.False(t, ok)
	assert.Equal(t, 1, r.Failed())
}
