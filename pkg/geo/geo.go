// Package geo resolves country codes to display names, centroids and
// continents, and computes map marker sizes from country land area.
// This is a pure package, the country table is embedded.
package geo

import (
	_ "embed"
	"fmt"
	"math"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed countries.yaml
var countriesYAML []byte

const (
	// UnknownContinent is returned for codes absent from the table.
	UnknownContinent = "Unknown"

	// MinMarkerSize is the marker size of the smallest countries.
	MinMarkerSize = 2.0

	// MaxMarkerSize is the marker size of the largest country.
	MaxMarkerSize = 10.0

	// MaxArea is the land area (km²) mapped to MaxMarkerSize.
	MaxArea = 17_098_246.0
)

// Country describes one entry of the country table.
type Country struct {
	// Code is ISO 3166-1 alpha-2 code in upper case.
	Code string `yaml:"code"`

	// Name is the English display name.
	Name string `yaml:"name"`

	// Continent is one of Africa, Antarctica, Asia, Europe, North America,
	// Oceania, South America.
	Continent string `yaml:"continent"`

	// Lat and Lng are the centroid coordinates.
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`

	// Area is the land area in square kilometers.
	Area float64 `yaml:"area"`
}

var (
	loadOnce  sync.Once
	countries map[string]Country
	loadErr   error
)

func load() {
	var data struct {
		Countries []Country `yaml:"countries"`
	}
	if err := yaml.Unmarshal(countriesYAML, &data); err != nil {
		loadErr = fmt.Errorf("cannot parse embedded country table: %w", err)
		return
	}
	countries = make(map[string]Country, len(data.Countries))
	for _, c := range data.Countries {
		countries[c.Code] = c
	}
}

// Lookup returns the country for a code. The code is case-insensitive.
// The second value is false if the code is not known.
func Lookup(code string) (Country, bool) {
	loadOnce.Do(load)
	if loadErr != nil {
		return Country{}, false
	}
	c, ok := countries[normalize(code)]
	return c, ok
}

// Continent returns the continent label of a country or UnknownContinent.
func Continent(code string) string {
	if c, ok := Lookup(code); ok {
		return c.Continent
	}
	return UnknownContinent
}

// Codes returns the number of countries in the table.
func Codes() int {
	loadOnce.Do(load)
	return len(countries)
}

// MarkerSize converts land area to a log-scaled marker size between
// MinMarkerSize and MaxMarkerSize, rounded to two decimals.
func MarkerSize(area float64) float64 {
	if area <= 1 {
		return MinMarkerSize
	}
	ratio := math.Log10(area) / math.Log10(MaxArea)
	size := MinMarkerSize + ratio*(MaxMarkerSize-MinMarkerSize)
	size = math.Max(MinMarkerSize, math.Min(MaxMarkerSize, size))
	return math.Round(size*100) / 100
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
