// Package iostore implements species and cluster stores on PostgreSQL
// using pgxpool. JSON-valued species fields live in JSONB columns and
// species of a country are found by JSONB containment on locations.
package iostore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecoglobe/biosync/pkg/species"
	"github.com/ecoglobe/biosync/pkg/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const speciesColumns = `id, taxon_id, scientific_name, common_name, category,
	kingdom, phylum, class, "order", family, genus,
	locations, gbif_ids, media, description, created_at, updated_at`

type speciesStore struct {
	pool *pgxpool.Pool
}

// NewSpeciesStore creates a PostgreSQL species store.
func NewSpeciesStore(pool *pgxpool.Pool) store.SpeciesStore {
	return &speciesStore{pool: pool}
}

func (s *speciesStore) Get(ctx context.Context, id string) (species.Species, error) {
	q := `SELECT ` + speciesColumns + ` FROM species WHERE id = $1`
	return s.getOne(ctx, q, id)
}

func (s *speciesStore) GetByTaxonID(
	ctx context.Context,
	taxonID string,
) (species.Species, error) {
	q := `SELECT ` + speciesColumns + ` FROM species WHERE taxon_id = $1`
	return s.getOne(ctx, q, taxonID)
}

func (s *speciesStore) getOne(
	ctx context.Context,
	q, key string,
) (species.Species, error) {
	rows, err := s.pool.Query(ctx, q, key)
	if err != nil {
		return species.Species{}, QueryError("species", key, err)
	}
	res, err := pgx.CollectExactlyOneRow(rows, scanSpecies)
	if err != nil {
		if sErr := classify(err); sErr != nil {
			return species.Species{}, sErr
		}
		return species.Species{}, QueryError("species", key, err)
	}
	return res, nil
}

func (s *speciesStore) Create(ctx context.Context, sp species.Species) error {
	row, err := toRow(sp)
	if err != nil {
		return err
	}
	q := `INSERT INTO species (` + speciesColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		$12::jsonb, $13::jsonb, $14::jsonb, $15::jsonb, $16, $17)`
	_, err = s.pool.Exec(ctx, q,
		sp.ID, sp.TaxonID, sp.ScientificName, sp.CommonName,
		sp.Category.String(),
		sp.Kingdom, sp.Phylum, sp.Class, sp.Order, sp.Family, sp.Genus,
		row.locations, row.gbifIDs, row.media, row.description,
		sp.CreatedAt, sp.UpdatedAt,
	)
	if err != nil {
		if sErr := classify(err); sErr != nil {
			return sErr
		}
		return InsertError("species", sp.TaxonID, err)
	}
	return nil
}

func (s *speciesStore) UpdateOccurrenceData(
	ctx context.Context,
	id string,
	locs []species.Location,
	gbifIDs []string,
) error {
	if locs == nil {
		locs = []species.Location{}
	}
	if gbifIDs == nil {
		gbifIDs = []string{}
	}
	l, err := json.Marshal(locs)
	if err != nil {
		return DecodeError("species", "locations", err)
	}
	g, err := json.Marshal(gbifIDs)
	if err != nil {
		return DecodeError("species", "gbif_ids", err)
	}
	q := `UPDATE species
	SET locations = $2::jsonb, gbif_ids = $3::jsonb, updated_at = $4
	WHERE id = $1`
	return s.exec(ctx, id, q, id, string(l), string(g), time.Now())
}

func (s *speciesStore) SetCategory(
	ctx context.Context,
	id string,
	cat species.Category,
) error {
	q := `UPDATE species SET category = $2, updated_at = $3 WHERE id = $1`
	return s.exec(ctx, id, q, id, cat.String(), time.Now())
}

func (s *speciesStore) SetCommonName(ctx context.Context, id, name string) error {
	q := `UPDATE species SET common_name = $2, updated_at = $3 WHERE id = $1`
	return s.exec(ctx, id, q, id, name, time.Now())
}

func (s *speciesStore) SetMedia(
	ctx context.Context,
	id string,
	media []species.Media,
) error {
	if media == nil {
		media = []species.Media{}
	}
	m, err := json.Marshal(media)
	if err != nil {
		return DecodeError("species", "media", err)
	}
	q := `UPDATE species SET media = $2::jsonb, updated_at = $3 WHERE id = $1`
	return s.exec(ctx, id, q, id, string(m), time.Now())
}

func (s *speciesStore) SetDescription(
	ctx context.Context,
	id string,
	d species.Description,
) error {
	desc, err := json.Marshal(d)
	if err != nil {
		return DecodeError("species", "description", err)
	}
	q := `UPDATE species
	SET description = $2::jsonb, updated_at = $3 WHERE id = $1`
	return s.exec(ctx, id, q, id, string(desc), time.Now())
}

func (s *speciesStore) exec(
	ctx context.Context,
	id, q string,
	args ...any,
) error {
	tag, err := s.pool.Exec(ctx, q, args...)
	if err != nil {
		return UpdateError("species", id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *speciesStore) ListByCountry(
	ctx context.Context,
	country string,
) ([]species.Species, error) {
	filter, err := countryFilter(country)
	if err != nil {
		return nil, DecodeError("species", "locations", err)
	}
	q := `SELECT ` + speciesColumns + `
	FROM species
	WHERE locations @> $1::jsonb
	ORDER BY taxon_id`
	rows, err := s.pool.Query(ctx, q, filter)
	if err != nil {
		return nil, QueryError("species", country, err)
	}
	res, err := pgx.CollectRows(rows, scanSpecies)
	if err != nil {
		return nil, QueryError("species", country, err)
	}
	return res, nil
}
