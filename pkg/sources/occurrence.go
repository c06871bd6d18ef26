package sources

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexString decodes JSON strings and numbers into a string. Remote APIs
// are not consistent about the type of their identifiers.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*f = FlexString(strconv.FormatInt(i, 10))
		return nil
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// OccurrencePage is a page of occurrence search results.
type OccurrencePage struct {
	Offset       int          `json:"offset"`
	Limit        int          `json:"limit"`
	EndOfRecords bool         `json:"endOfRecords"`
	Count        int          `json:"count"`
	Results      []Occurrence `json:"results"`
}

// Occurrence is a single observation record.
type Occurrence struct {
	GbifID           FlexString `json:"gbifID"`
	TaxonKey         FlexString `json:"taxonKey"`
	ScientificName   string     `json:"scientificName"`
	CountryCode      string     `json:"countryCode"`
	DecimalLatitude  *float64   `json:"decimalLatitude"`
	DecimalLongitude *float64   `json:"decimalLongitude"`
	Category         string     `json:"iucnRedListCategory"`
	Kingdom          string     `json:"kingdom"`
	Phylum           string     `json:"phylum"`
	Class            string     `json:"class"`
	Order            string     `json:"order"`
	Family           string     `json:"family"`
	Genus            string     `json:"genus"`
}

// Vernacular is a common name of a taxon.
type Vernacular struct {
	VernacularName string `json:"vernacularName"`
	Language       string `json:"language"`
	Source         string `json:"source"`
}

// MediaItem is a raw media record of a taxon.
type MediaItem struct {
	Type         string `json:"type"`
	Format       string `json:"format"`
	Identifier   string `json:"identifier"`
	Title        string `json:"title"`
	Creator      string `json:"creator"`
	License      string `json:"license"`
	RightsHolder string `json:"rightsHolder"`
	Source       string `json:"source"`
	References   string `json:"references"`
}

// AssessmentRef points to an assessment of a species.
type AssessmentRef struct {
	AssessmentID  FlexString `json:"assessment_id"`
	YearPublished string     `json:"year_published"`
	Latest        bool       `json:"latest"`
	Category      string     `json:"red_list_category_code"`
}

// Assessment contains narrative documentation of an assessment.
// Fields may contain HTML markup.
type Assessment struct {
	AssessmentID  FlexString    `json:"assessment_id"`
	Documentation Documentation `json:"documentation"`
}

// Documentation holds narrative fields of an assessment.
type Documentation struct {
	Rationale           string `json:"rationale"`
	Habitat             string `json:"habitat"`
	Threats             string `json:"threats"`
	Population          string `json:"population"`
	PopulationTrend     string `json:"populationTrend"`
	Range               string `json:"range"`
	UseTrade            string `json:"useTrade"`
	ConservationActions string `json:"conservationActions"`
}
