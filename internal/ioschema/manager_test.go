package ioschema_test

import (
	"context"
	"testing"

	"github.com/ecoglobe/biosync/internal/iodb"
	"github.com/ecoglobe/biosync/internal/ioschema"
	"github.com/ecoglobe/biosync/internal/iotesting"
	"github.com/ecoglobe/biosync/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_NotConnected(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.GetTestConfig()
	mgr := ioschema.NewManager(iodb.NewPgxOperator())
	assert.Error(t, mgr.Create(ctx, cfg))
	assert.Error(t, mgr.Migrate(ctx, cfg))
	_, err := mgr.Status(ctx)
	assert.Error(t, err)
}

func TestManager_Lifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg := iotesting.GetTestConfig()
	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()
	require.NoError(t, op.DropTables(ctx, schema.TableNames()...))

	mgr := ioschema.NewManager(op)

	st, err := mgr.Status(ctx)
	require.NoError(t, err)
	require.Len(t, st, 2)
	for _, v := range st {
		assert.False(t, v.Exists, v.Table)
	}

	require.NoError(t, mgr.Create(ctx, cfg))
	st, err = mgr.Status(ctx)
	require.NoError(t, err)
	for _, v := range st {
		assert.True(t, v.Ready(), v.Table)
		assert.Zero(t, v.Rows, v.Table)
	}

	_, err = op.Pool().Exec(ctx, "DROP INDEX idx_species_category")
	require.NoError(t, err)
	st, err = mgr.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"idx_species_category"}, st[0].MissingIndexes)

	require.NoError(t, mgr.Migrate(ctx, cfg))
	st, err = mgr.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st[0].Ready())
}
