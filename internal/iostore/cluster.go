package iostore

import (
	"context"
	"time"

	"github.com/ecoglobe/biosync/pkg/cluster"
	"github.com/ecoglobe/biosync/pkg/species"
	"github.com/ecoglobe/biosync/pkg/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clusterColumns = `id, country, country_name, lat, lng, marker_size,
	count, worst_category, occurrences, updated_at`

type clusterStore struct {
	pool *pgxpool.Pool
}

// NewClusterStore creates a PostgreSQL cluster store.
func NewClusterStore(pool *pgxpool.Pool) store.ClusterStore {
	return &clusterStore{pool: pool}
}

func (s *clusterStore) Get(ctx context.Context, id string) (cluster.Cluster, error) {
	q := `SELECT ` + clusterColumns + ` FROM clusters WHERE id = $1`
	return s.getOne(ctx, q, id)
}

func (s *clusterStore) GetByCountry(
	ctx context.Context,
	country string,
) (cluster.Cluster, error) {
	q := `SELECT ` + clusterColumns + ` FROM clusters WHERE country = $1`
	return s.getOne(ctx, q, cluster.NormCountry(country))
}

func (s *clusterStore) getOne(
	ctx context.Context,
	q, key string,
) (cluster.Cluster, error) {
	rows, err := s.pool.Query(ctx, q, key)
	if err != nil {
		return cluster.Cluster{}, QueryError("clusters", key, err)
	}
	res, err := pgx.CollectExactlyOneRow(rows, scanCluster)
	if err != nil {
		if sErr := classify(err); sErr != nil {
			return cluster.Cluster{}, sErr
		}
		return cluster.Cluster{}, QueryError("clusters", key, err)
	}
	return res, nil
}

// Ensure inserts the cluster unless its country is taken. Concurrent
// callers are resolved by the unique constraint on country.
func (s *clusterStore) Ensure(
	ctx context.Context,
	c cluster.Cluster,
) (cluster.Cluster, bool, error) {
	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		updatedAt = &c.UpdatedAt
	}
	q := `INSERT INTO clusters (` + clusterColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (country) DO NOTHING`
	tag, err := s.pool.Exec(ctx, q,
		c.ID, c.Country, c.CountryName, c.Lat, c.Lng, c.MarkerSize,
		c.Count, c.WorstCategory.String(), c.Occurrences, updatedAt,
	)
	if err != nil {
		return cluster.Cluster{}, false, InsertError("clusters", c.Country, err)
	}
	if tag.RowsAffected() == 1 {
		return c, true, nil
	}
	res, err := s.GetByCountry(ctx, c.Country)
	return res, false, err
}

func (s *clusterStore) UpdateAggregate(
	ctx context.Context,
	country string,
	count int,
	cat species.Category,
	updatedAt time.Time,
) error {
	country = cluster.NormCountry(country)
	var mark *time.Time
	if !updatedAt.IsZero() {
		mark = &updatedAt
	}
	q := `UPDATE clusters
	SET count = $2, worst_category = $3, updated_at = $4
	WHERE country = $1`
	tag, err := s.pool.Exec(ctx, q, country, count, cat.String(), mark)
	if err != nil {
		return UpdateError("clusters", country, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *clusterStore) List(ctx context.Context) ([]cluster.Cluster, error) {
	q := `SELECT ` + clusterColumns + ` FROM clusters ORDER BY country`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, QueryError("clusters", "*", err)
	}
	res, err := pgx.CollectRows(rows, scanCluster)
	if err != nil {
		return nil, QueryError("clusters", "*", err)
	}
	return res, nil
}

func scanCluster(row pgx.CollectableRow) (cluster.Cluster, error) {
	var res cluster.Cluster
	var cat string
	var updatedAt *time.Time
	err := row.Scan(
		&res.ID, &res.Country, &res.CountryName, &res.Lat, &res.Lng,
		&res.MarkerSize, &res.Count, &cat, &res.Occurrences, &updatedAt,
	)
	if err != nil {
		return res, err
	}
	res.WorstCategory = species.Category(cat)
	if updatedAt != nil {
		res.UpdatedAt = updatedAt.UTC()
	}
	return res, nil
}
