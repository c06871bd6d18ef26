// Package species defines the canonical per-taxon record and the rules
// that keep its location list and occurrence-id ledger free of duplicates.
package species

import (
	"strings"
	"time"

	"github.com/gnames/gnuuid"
)

// UnknownValue is the placeholder of taxonomic fields and of the common
// name until they are known.
const UnknownValue = "Unknown"

// Species is the canonical record of one external taxon.
type Species struct {
	// ID is UUID v5 generated from TaxonID.
	ID string `json:"id"`

	// TaxonID is the external taxon identifier. Immutable.
	TaxonID string `json:"taxon_id"`

	ScientificName string `json:"scientific_name"`

	// CommonName is UnknownValue until enriched.
	CommonName string `json:"common_name"`

	Category Category `json:"category"`

	Taxonomy

	// Locations holds at most one entry per country.
	Locations []Location `json:"locations"`

	// GbifIDs is the ledger of occurrence ids attributed to the species.
	GbifIDs []string `json:"gbif_ids"`

	// Media is populated once and never overwritten when non-empty.
	Media []Media `json:"media"`

	// Description is replaced as a whole on every successful enrichment.
	Description *Description `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Taxonomy contains higher classification of a species.
type Taxonomy struct {
	Kingdom string `json:"kingdom"`
	Phylum  string `json:"phylum"`
	Class   string `json:"class"`
	Order   string `json:"order"`
	Family  string `json:"family"`
	Genus   string `json:"genus"`
}

// Location is a country where the species was observed.
type Location struct {
	Country   string  `json:"country"`
	Continent string  `json:"continent"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// Media is a normalized media record.
type Media struct {
	Type         string `json:"type"`
	Format       string `json:"format"`
	Identifier   string `json:"identifier"`
	Title        string `json:"title,omitempty"`
	Creator      string `json:"creator,omitempty"`
	License      string `json:"license,omitempty"`
	RightsHolder string `json:"rights_holder,omitempty"`
	Source       string `json:"source,omitempty"`
	References   string `json:"references,omitempty"`
}

// Description contains narrative fields of a conservation assessment,
// stripped of HTML.
type Description struct {
	Rationale           string `json:"rationale,omitempty"`
	Habitat             string `json:"habitat,omitempty"`
	Threats             string `json:"threats,omitempty"`
	Population          string `json:"population,omitempty"`
	PopulationTrend     string `json:"population_trend,omitempty"`
	Range               string `json:"range,omitempty"`
	UseTrade            string `json:"use_trade,omitempty"`
	ConservationActions string `json:"conservation_actions,omitempty"`
}

// IsEmpty is true when no narrative field is set.
func (d *Description) IsEmpty() bool {
	return d == nil || *d == Description{}
}

// ID returns the species ID that corresponds to a taxon id.
func ID(taxonID string) string {
	return gnuuid.New(strings.TrimSpace(taxonID)).String()
}

// New creates a species from the data of its first occurrence.
// Empty taxonomy fields and the common name become UnknownValue, an empty
// category becomes DefaultCategory.
func New(
	taxonID, scientificName string,
	tx Taxonomy,
	cat Category,
	loc Location,
	gbifID string,
	now time.Time,
) Species {
	taxonID = strings.TrimSpace(taxonID)
	if cat == "" || cat == Unknown {
		cat = DefaultCategory
	}
	res := Species{
		ID:             ID(taxonID),
		TaxonID:        taxonID,
		ScientificName: strings.TrimSpace(scientificName),
		CommonName:     UnknownValue,
		Category:       cat,
		Taxonomy:       tx.withDefaults(),
		Locations:      []Location{loc},
		GbifIDs:        []string{},
		Media:          []Media{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if gbifID != "" {
		res.GbifIDs = append(res.GbifIDs, gbifID)
	}
	return res
}

func (tx Taxonomy) withDefaults() Taxonomy {
	def := func(s string) string {
		s = strings.TrimSpace(s)
		if s == "" {
			return UnknownValue
		}
		return s
	}
	return Taxonomy{
		Kingdom: def(tx.Kingdom),
		Phylum:  def(tx.Phylum),
		Class:   def(tx.Class),
		Order:   def(tx.Order),
		Family:  def(tx.Family),
		Genus:   def(tx.Genus),
	}
}

// HasCountry is true if the species already has a location in the country.
func (s *Species) HasCountry(country string) bool {
	for _, l := range s.Locations {
		if strings.EqualFold(l.Country, country) {
			return true
		}
	}
	return false
}

// AddLocation appends a location unless the country is already present.
// The first location seen for a country wins. Returns true if the
// location was added.
func (s *Species) AddLocation(loc Location) bool {
	if s.HasCountry(loc.Country) {
		return false
	}
	s.Locations = append(s.Locations, loc)
	return true
}

// HasGbifID is true if the occurrence id is in the ledger.
func (s *Species) HasGbifID(id string) bool {
	for _, v := range s.GbifIDs {
		if v == id {
			return true
		}
	}
	return false
}

// AddGbifID appends an occurrence id to the ledger unless it is present
// or empty. Returns true if the id was added.
func (s *Species) AddGbifID(id string) bool {
	if id == "" || s.HasGbifID(id) {
		return false
	}
	s.GbifIDs = append(s.GbifIDs, id)
	return true
}

// HasCommonName is true if the common name is set to a real value.
func (s *Species) HasCommonName() bool {
	n := strings.TrimSpace(s.CommonName)
	return n != "" && n != UnknownValue
}

// Countries returns country codes of all locations in their order.
func (s *Species) Countries() []string {
	res := make([]string, len(s.Locations))
	for i, l := range s.Locations {
		res[i] = l.Country
	}
	return res
}
