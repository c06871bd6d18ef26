package iostore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ecoglobe/biosync/pkg/species"
	"github.com/ecoglobe/biosync/pkg/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountryFilter(t *testing.T) {
	res, err := countryFilter(" cl ")
	require.NoError(t, err)
	assert.Equal(t, `[{"country":"CL"}]`, res)
}

func TestClassify(t *testing.T) {
	assert.ErrorIs(t, classify(pgx.ErrNoRows), store.ErrNotFound)
	assert.ErrorIs(t, classify(fmt.Errorf("wrap: %w", pgx.ErrNoRows)),
		store.ErrNotFound)

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_species_taxon_id"}
	assert.ErrorIs(t, classify(dup), store.ErrDuplicate)

	other := &pgconn.PgError{Code: "42P01"}
	assert.Nil(t, classify(other))
	assert.Nil(t, classify(errors.New("boom")))
}

func TestToRow(t *testing.T) {
	sp := species.Species{TaxonID: "1"}
	row, err := toRow(sp)
	require.NoError(t, err)
	assert.Equal(t, "[]", row.locations)
	assert.Equal(t, "[]", row.gbifIDs)
	assert.Equal(t, "[]", row.media)
	assert.Nil(t, row.description)

	sp.Locations = []species.Location{{Country: "CL", Lat: 1.5}}
	sp.GbifIDs = []string{"10"}
	sp.Description = &species.Description{Habitat: "forest"}
	row, err = toRow(sp)
	require.NoError(t, err)
	assert.Contains(t, row.locations, `"country":"CL"`)
	assert.Equal(t, `["10"]`, row.gbifIDs)
	require.NotNil(t, row.description)
	assert.Equal(t, `{"habitat":"forest"}`, *row.description)
}

func TestUnmarshal(t *testing.T) {
	var ids []string
	require.NoError(t, unmarshal(nil, &ids))
	assert.NotNil(t, ids)
	assert.Empty(t, ids)

	require.NoError(t, unmarshal([]byte(`null`), &ids))
	assert.NotNil(t, ids)

	require.NoError(t, unmarshal([]byte(`["1","2"]`), &ids))
	assert.Equal(t, []string{"1", "2"}, ids)

	assert.Error(t, unmarshal([]byte(`{`), &ids))
}
