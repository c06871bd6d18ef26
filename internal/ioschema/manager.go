// Package ioschema implements lifecycle.SchemaManager with GORM
// AutoMigrate on top of the pgx pool of a db.Operator.
package ioschema

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ecoglobe/biosync/pkg/config"
	"github.com/ecoglobe/biosync/pkg/db"
	"github.com/ecoglobe/biosync/pkg/lifecycle"
	"github.com/ecoglobe/biosync/pkg/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type manager struct {
	op db.Operator
}

// NewManager creates a SchemaManager that works through op.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{op: op}
}

func (m *manager) Create(ctx context.Context, cfg *config.Config) error {
	if err := m.migrate(ctx, CreateSchemaError); err != nil {
		return err
	}
	slog.Info("Schema created", "database", cfg.Database.Database)
	return nil
}

func (m *manager) Migrate(ctx context.Context, cfg *config.Config) error {
	if err := m.migrate(ctx, MigrateSchemaError); err != nil {
		return err
	}
	slog.Info("Schema migrated", "database", cfg.Database.Database)
	return nil
}

func (m *manager) migrate(ctx context.Context, wrap func(error) error) error {
	gdb, err := m.gorm()
	if err != nil {
		return err
	}
	if err = schema.Migrate(gdb.WithContext(ctx)); err != nil {
		return wrap(err)
	}
	return m.createIndexes(ctx)
}

func (m *manager) gorm() (*gorm.DB, error) {
	if m.op == nil || m.op.Pool() == nil {
		return nil, NotConnectedError()
	}

	gdb, err := gorm.Open(
		postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(m.op.Pool())}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gdb, nil
}

func (m *manager) createIndexes(ctx context.Context) error {
	for _, g := range schema.Generators() {
		for _, v := range g.Indexes() {
			if _, err := m.op.Pool().Exec(ctx, v.DDL()); err != nil {
				return IndexError(v.Name, err)
			}
		}
	}
	return nil
}

func (m *manager) Status(ctx context.Context) ([]lifecycle.TableStatus, error) {
	if m.op == nil || m.op.Pool() == nil {
		return nil, NotConnectedError()
	}

	missing, err := m.op.MissingTables(ctx, schema.TableNames()...)
	if err != nil {
		return nil, err
	}

	var res []lifecycle.TableStatus
	for _, g := range schema.Generators() {
		st := lifecycle.TableStatus{Table: g.TableName()}
		if slices.Contains(missing, st.Table) {
			res = append(res, st)
			continue
		}
		st.Exists = true

		if st.Rows, err = m.op.RowCount(ctx, st.Table); err != nil {
			return nil, err
		}

		idx, err := m.indexNames(ctx, st.Table)
		if err != nil {
			return nil, err
		}
		for _, v := range g.Indexes() {
			if !slices.Contains(idx, v.Name) {
				st.MissingIndexes = append(st.MissingIndexes, v.Name)
			}
		}
		res = append(res, st)
	}
	return res, nil
}

func (m *manager) indexNames(ctx context.Context, table string) ([]string, error) {
	rows, err := m.op.Pool().Query(ctx, `
		SELECT indexname FROM pg_indexes
		WHERE schemaname = 'public' AND tablename = $1`, table)
	if err != nil {
		return nil, StatusError(table, err)
	}
	res, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, StatusError(table, err)
	}
	return res, nil
}
