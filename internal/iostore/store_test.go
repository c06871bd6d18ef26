package iostore_test

import (
	"context"
	"testing"
	"time"

	"github.com/ecoglobe/biosync/internal/iodb"
	"github.com/ecoglobe/biosync/internal/ioschema"
	"github.com/ecoglobe/biosync/internal/iostore"
	"github.com/ecoglobe/biosync/internal/iotesting"
	"github.com/ecoglobe/biosync/pkg/cluster"
	"github.com/ecoglobe/biosync/pkg/db"
	"github.com/ecoglobe/biosync/pkg/schema"
	"github.com/ecoglobe/biosync/pkg/species"
	"github.com/ecoglobe/biosync/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup connects to the test database and recreates the schema.
func setup(t *testing.T) db.Operator {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	cfg := iotesting.GetTestConfig()
	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	t.Cleanup(func() { op.Close() })

	require.NoError(t, op.DropTables(ctx, schema.TableNames()...))
	require.NoError(t, ioschema.NewManager(op).Create(ctx, cfg))
	return op
}

func TestSpeciesStore(t *testing.T) {
	op := setup(t)
	ctx := context.Background()
	st := iostore.NewSpeciesStore(op.Pool())
	now := time.Now().UTC().Truncate(time.Millisecond)

	sp := species.New("2435099", "Puma concolor",
		species.Taxonomy{Kingdom: "Animalia", Genus: "Puma"}, species.LeastConcern,
		species.Location{Country: "CL", Continent: "South America",
			Lat: -33.4, Lng: -70.6},
		"100", now)
	require.NoError(t, st.Create(ctx, sp))

	err := st.Create(ctx, sp)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	got, err := st.GetByTaxonID(ctx, "2435099")
	require.NoError(t, err)
	assert.Equal(t, sp.ID, got.ID)
	assert.Equal(t, species.LeastConcern, got.Category)
	assert.Equal(t, "Unknown", got.Order)
	assert.Equal(t, sp.Locations, got.Locations)
	assert.Equal(t, []string{"100"}, got.GbifIDs)
	assert.Empty(t, got.Media)
	assert.Nil(t, got.Description)

	_, err = st.Get(ctx, species.ID("missing"))
	assert.ErrorIs(t, err, store.ErrNotFound)

	got.AddLocation(species.Location{Country: "AR"})
	got.AddGbifID("101")
	require.NoError(t, st.UpdateOccurrenceData(ctx, got.ID, got.Locations, got.GbifIDs))
	require.NoError(t, st.SetCategory(ctx, got.ID, species.Vulnerable))
	require.NoError(t, st.SetCommonName(ctx, got.ID, "Cougar"))
	require.NoError(t, st.SetMedia(ctx, got.ID, []species.Media{
		{Type: "StillImage", Format: "image/jpeg", Identifier: "https://x/p.jpg"},
	}))
	require.NoError(t, st.SetDescription(ctx, got.ID,
		species.Description{Habitat: "Forest"}))

	got, err = st.Get(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"CL", "AR"}, got.Countries())
	assert.Equal(t, []string{"100", "101"}, got.GbifIDs)
	assert.Equal(t, species.Vulnerable, got.Category)
	assert.Equal(t, "Cougar", got.CommonName)
	require.Len(t, got.Media, 1)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Forest", got.Description.Habitat)

	err = st.SetCategory(ctx, species.ID("missing"), species.Extinct)
	assert.ErrorIs(t, err, store.ErrNotFound)

	other := species.New("1", "Lama guanicoe", species.Taxonomy{}, "",
		species.Location{Country: "AR"}, "", now)
	require.NoError(t, st.Create(ctx, other))

	cl, err := st.ListByCountry(ctx, "cl")
	require.NoError(t, err)
	require.Len(t, cl, 1)

	ar, err := st.ListByCountry(ctx, "AR")
	require.NoError(t, err)
	require.Len(t, ar, 2)
	assert.Equal(t, "1", ar[0].TaxonID, "ordered by taxon id")
}

func TestClusterStore(t *testing.T) {
	op := setup(t)
	ctx := context.Background()
	st := iostore.NewClusterStore(op.Pool())

	c, ok := cluster.New("CL")
	require.True(t, ok)

	res, created, err := st.Ensure(ctx, c)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, c.ID, res.ID)

	dup, _ := cluster.New("CL")
	res, created, err = st.Ensure(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, c.ID, res.ID, "first cluster wins")
	assert.True(t, res.UpdatedAt.IsZero())
	assert.Equal(t, species.Unknown, res.WorstCategory)

	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.UpdateAggregate(ctx, "cl", 3, species.Extinct, now))

	got, err := st.GetByCountry(ctx, "CL")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, species.Extinct, got.WorstCategory)
	assert.True(t, now.Equal(got.UpdatedAt))

	err = st.UpdateAggregate(ctx, "ZZ", 1, species.Extinct, now)
	assert.ErrorIs(t, err, store.ErrNotFound)

	ar, _ := cluster.New("AR")
	_, _, err = st.Ensure(ctx, ar)
	require.NoError(t, err)

	list, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "AR", list[0].Country)

	byID, err := st.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "CL", byID.Country)
}
