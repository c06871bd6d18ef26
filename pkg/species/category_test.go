package species_test

import (
	"testing"

	"github.com/ecoglobe/biosync/pkg/species"
	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		msg string
		in  string
		res species.Category
		ok  bool
	}{
		{"code", "CR", species.CriticallyEndangered, true},
		{"lower case code", "lc", species.LeastConcern, true},
		{"long name", "CRITICALLY_ENDANGERED", species.CriticallyEndangered, true},
		{"long name with spaces", "extinct in the wild", species.ExtinctInTheWild, true},
		{"empty", "", "", false},
		{"unknown code", "XX", "", false},
		{"sentinel is not a real category", "UNKNOWN", "", false},
	}

	for _, v := range tests {
		res, ok := species.ParseCategory(v.in)
		assert.Equal(t, v.ok, ok, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestRank(t *testing.T) {
	assert.Equal(t, 3, species.Extinct.Rank())
	assert.Equal(t, 2, species.ExtinctInTheWild.Rank())
	assert.Equal(t, 1, species.CriticallyEndangered.Rank())
	for _, c := range []species.Category{species.Endangered,
		species.Vulnerable, species.LeastConcern, species.DataDeficient} {
		assert.Equal(t, 0, c.Rank(), c.String())
	}
	assert.Equal(t, -1, species.Unknown.Rank())
	assert.Equal(t, -1, species.Category("").Rank())
}

func TestWorse(t *testing.T) {
	tests := []struct {
		msg       string
		current   species.Category
		candidate species.Category
		res       species.Category
	}{
		{"real replaces sentinel", species.Unknown, species.LeastConcern, species.LeastConcern},
		{"higher rank wins", species.CriticallyEndangered, species.Extinct, species.Extinct},
		{"lower rank never overrides", species.ExtinctInTheWild, species.CriticallyEndangered, species.ExtinctInTheWild},
		{"rank zero never overrides CR", species.CriticallyEndangered, species.Endangered, species.CriticallyEndangered},
		{"equal rank keeps current", species.LeastConcern, species.Vulnerable, species.LeastConcern},
		{"sentinel never overrides", species.LeastConcern, species.Unknown, species.LeastConcern},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, species.Worse(v.current, v.candidate), v.msg)
	}
}
