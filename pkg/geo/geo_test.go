package geo_test

import (
	"testing"

	"github.com/ecoglobe/biosync/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		msg       string
		code      string
		ok        bool
		name      string
		continent string
	}{
		{"chile", "CL", true, "Chile", "South America"},
		{"lower case", "br", true, "Brazil", "South America"},
		{"padded", " ke ", true, "Kenya", "Africa"},
		{"norway is not a boolean", "NO", true, "Norway", "Europe"},
		{"namibia is not null", "NA", true, "Namibia", "Africa"},
		{"unknown", "ZZ", false, "", ""},
		{"empty", "", false, "", ""},
	}

	for _, v := range tests {
		c, ok := geo.Lookup(v.code)
		assert.Equal(t, v.ok, ok, v.msg)
		assert.Equal(t, v.name, c.Name, v.msg)
		assert.Equal(t, v.continent, c.Continent, v.msg)
	}
}

func TestLookupCentroid(t *testing.T) {
	c, ok := geo.Lookup("CL")
	require.True(t, ok)
	assert.InDelta(t, -35.675, c.Lat, 0.01)
	assert.InDelta(t, -71.543, c.Lng, 0.01)
	assert.Greater(t, c.Area, 0.0)
}

func TestContinent(t *testing.T) {
	assert.Equal(t, "Oceania", geo.Continent("AU"))
	assert.Equal(t, "Asia", geo.Continent("jp"))
	assert.Equal(t, geo.UnknownContinent, geo.Continent("XX"))
}

func TestCodes(t *testing.T) {
	assert.Greater(t, geo.Codes(), 200)
}

func TestMarkerSize(t *testing.T) {
	tests := []struct {
		msg  string
		area float64
		res  float64
	}{
		{"zero area", 0, geo.MinMarkerSize},
		{"negative area", -5, geo.MinMarkerSize},
		{"one square km", 1, geo.MinMarkerSize},
		{"largest country", geo.MaxArea, geo.MaxMarkerSize},
		{"larger than largest", geo.MaxArea * 10, geo.MaxMarkerSize},
		{"chile", 756102, 8.5},
	}

	for _, v := range tests {
		assert.InDelta(t, v.res, geo.MarkerSize(v.area), 0.01, v.msg)
	}
}

func TestMarkerSizeMonotonic(t *testing.T) {
	prev := geo.MarkerSize(1)
	for _, area := range []float64{10, 100, 1_000, 10_000, 100_000, 1_000_000} {
		size := geo.MarkerSize(area)
		assert.Greater(t, size, prev, "area %v", area)
		prev = size
	}
}
