package ioimport_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ecoglobe/biosync/internal/ioimport"
	"github.com/ecoglobe/biosync/internal/iosync"
	"github.com/ecoglobe/biosync/internal/iotesting"
	"github.com/ecoglobe/biosync/pkg/config"
	"github.com/ecoglobe/biosync/pkg/lifecycle"
	"github.com/ecoglobe/biosync/pkg/species"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const data = `[
  {
    "taxon_id": "2435099",
    "scientific_name": "Puma concolor",
    "common_name": "Cougar",
    "category": "LEAST_CONCERN",
    "taxonomy": {"kingdom": "Animalia", "genus": "Puma"},
    "locations": [
      {"country": "cl", "continent": "South America", "lat": -33, "lng": -70},
      {"country": "AR", "lat": -34, "lng": -64},
      {"country": "CL", "lat": 0, "lng": 0}
    ],
    "gbif_ids": ["1", "1", "2"],
    "description": {"habitat": "Mountains"}
  },
  {
    "taxon_id": "1",
    "scientific_name": "Lama guanicoe",
    "category": "EX",
    "locations": [{"country": "AR"}]
  },
  {"taxon_id": "", "scientific_name": "Nameless", "locations": [{"country": "AR"}]},
  {"taxon_id": "3", "scientific_name": "Nowhere", "locations": []}
]`

type countingEnricher struct {
	n int
}

func (e *countingEnricher) Enrich(
	_ context.Context,
	id string,
) (lifecycle.EnrichReport, error) {
	e.n++
	return lifecycle.EnrichReport{SpeciesID: id}, nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "species.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportPath(t *testing.T) {
	ctx := context.Background()
	cfg := config.New()
	spp := iotesting.NewSpeciesStore()
	cls := iotesting.NewClusterStore()
	snc := iosync.New(cfg, spp, cls, iotesting.NewOccurrenceSource(), nil)
	enr := &countingEnricher{}
	imp := ioimport.New(spp, snc, iosync.NewTaskGroup(enr, 1, time.Second, true))

	res, err := imp.ImportPath(ctx, writeFile(t, data))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Files)
	assert.Equal(t, 4, res.Records)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 2, res.Skipped)
	assert.Len(t, res.Reports, 2)
	assert.Equal(t, 2, enr.n)

	sp, err := spp.GetByTaxonID(ctx, "2435099")
	require.NoError(t, err)
	assert.Equal(t, "Cougar", sp.CommonName)
	assert.Equal(t, species.LeastConcern, sp.Category)
	assert.Equal(t, []string{"CL", "AR"}, sp.Countries())
	for _, l := range sp.Locations {
		assert.Equal(t, "South America", l.Continent, l.Country)
	}
	assert.Equal(t, []string{"1", "2"}, sp.GbifIDs)
	assert.Equal(t, species.UnknownValue, sp.Phylum)
	require.NotNil(t, sp.Description)
	assert.Equal(t, "Mountains", sp.Description.Habitat)

	guanaco, err := spp.GetByTaxonID(ctx, "1")
	require.NoError(t, err)
	require.Len(t, guanaco.Locations, 1)
	assert.Equal(t, "South America", guanaco.Locations[0].Continent)

	require.Len(t, res.Clusters, 2)
	assert.Equal(t, "AR", res.Clusters[0].Country)
	assert.Equal(t, 2, res.Clusters[0].Count)
	assert.Equal(t, species.Extinct, res.Clusters[0].WorstCategory)
	assert.Equal(t, "CL", res.Clusters[1].Country)
	assert.Equal(t, 1, res.Clusters[1].Count)

	again, err := imp.ImportPath(ctx, writeFile(t, data))
	require.NoError(t, err)
	assert.Equal(t, 0, again.Created)
	assert.Equal(t, 2, again.Existing)
	assert.Empty(t, again.Clusters)
}

func TestImportPath_Errors(t *testing.T) {
	ctx := context.Background()
	imp := ioimport.New(iotesting.NewSpeciesStore(), nil, nil)

	_, err := imp.ImportPath(ctx, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = imp.ImportPath(ctx, writeFile(t, `{"taxon_id": "1"}`))
	assert.Error(t, err)
}

func TestImportPath_Directory(t *testing.T) {
	ctx := context.Background()
	cfg := config.New()
	spp := iotesting.NewSpeciesStore()
	snc := iosync.New(cfg, spp, iotesting.NewClusterStore(),
		iotesting.NewOccurrenceSource(), nil)
	imp := ioimport.New(spp, snc, nil)

	dir := t.TempDir()
	files := map[string]string{
		"01.json": `[{"taxon_id": "10", "scientific_name": "Puma concolor",
		  "locations": [{"country": "CL"}]}]`,
		"02.json": `[{"taxon_id": "10", "scientific_name": "Puma concolor",
		  "locations": [{"country": "CL"}]},
		  {"taxon_id": "11", "scientific_name": "Lama guanicoe",
		  "locations": [{"country": "CL"}]}]`,
		"readme.txt": "not imported",
	}
	for k, v := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, k), []byte(v), 0644))
	}

	res, err := imp.ImportPath(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Files)
	assert.Equal(t, 3, res.Records)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Existing)
	require.Len(t, res.Clusters, 1)
	assert.Equal(t, 2, res.Clusters[0].Count)
	assert.Empty(t, res.Reports)
}
