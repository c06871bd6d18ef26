package ioschema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDDL(t *testing.T) {
	res := DDL()
	for _, v := range []string{
		"CREATE TABLE species",
		"CREATE TABLE clusters",
		"idx_species_locations",
		"idx_clusters_updated_at",
	} {
		assert.Contains(t, res, v)
	}
	assert.True(t, strings.HasSuffix(res, ";\n"))

	order := []string{
		"CREATE TABLE species",
		"idx_species_locations",
		"CREATE TABLE clusters",
		"idx_clusters_updated_at",
	}
	for i := 1; i < len(order); i++ {
		assert.Less(t,
			strings.Index(res, order[i-1]), strings.Index(res, order[i]),
			"%s goes before %s", order[i-1], order[i])
	}
}
