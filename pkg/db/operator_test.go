package db_test

import (
	"context"
	"testing"

	"github.com/ecoglobe/biosync/internal/iodb"
	"github.com/ecoglobe/biosync/pkg/db"
	"github.com/stretchr/testify/assert"
)

func TestOperatorBeforeConnect(t *testing.T) {
	var op db.Operator = iodb.NewPgxOperator()
	assert.Nil(t, op.Pool())

	_, err := op.MissingTables(context.Background(), "species")
	assert.Error(t, err)
	assert.NoError(t, op.Close())
}
