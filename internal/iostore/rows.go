package iostore

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ecoglobe/biosync/pkg/species"
	"github.com/jackc/pgx/v5"
)

// speciesRow holds JSON-encoded values of JSONB columns of a species.
type speciesRow struct {
	locations   string
	gbifIDs     string
	media       string
	description *string
}

func toRow(sp species.Species) (speciesRow, error) {
	var res speciesRow

	locs := sp.Locations
	if locs == nil {
		locs = []species.Location{}
	}
	b, err := json.Marshal(locs)
	if err != nil {
		return res, DecodeError("species", "locations", err)
	}
	res.locations = string(b)

	ids := sp.GbifIDs
	if ids == nil {
		ids = []string{}
	}
	if b, err = json.Marshal(ids); err != nil {
		return res, DecodeError("species", "gbif_ids", err)
	}
	res.gbifIDs = string(b)

	media := sp.Media
	if media == nil {
		media = []species.Media{}
	}
	if b, err = json.Marshal(media); err != nil {
		return res, DecodeError("species", "media", err)
	}
	res.media = string(b)

	if sp.Description != nil {
		if b, err = json.Marshal(sp.Description); err != nil {
			return res, DecodeError("species", "description", err)
		}
		d := string(b)
		res.description = &d
	}
	return res, nil
}

// scanSpecies is a pgx.RowToFunc for speciesColumns.
func scanSpecies(row pgx.CollectableRow) (species.Species, error) {
	var res species.Species
	var cat string
	var locs, ids, media, desc []byte
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&res.ID, &res.TaxonID, &res.ScientificName, &res.CommonName, &cat,
		&res.Kingdom, &res.Phylum, &res.Class, &res.Order, &res.Family,
		&res.Genus,
		&locs, &ids, &media, &desc, &createdAt, &updatedAt,
	)
	if err != nil {
		return res, err
	}
	res.Category = species.Category(cat)
	res.CreatedAt = createdAt
	res.UpdatedAt = updatedAt

	if err = unmarshal(locs, &res.Locations); err != nil {
		return res, DecodeError("species", "locations", err)
	}
	if err = unmarshal(ids, &res.GbifIDs); err != nil {
		return res, DecodeError("species", "gbif_ids", err)
	}
	if err = unmarshal(media, &res.Media); err != nil {
		return res, DecodeError("species", "media", err)
	}
	if len(desc) > 0 && string(desc) != "null" {
		var d species.Description
		if err = json.Unmarshal(desc, &d); err != nil {
			return res, DecodeError("species", "description", err)
		}
		res.Description = &d
	}
	return res, nil
}

func unmarshal[T any](b []byte, out *[]T) error {
	if len(b) == 0 {
		*out = []T{}
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return err
	}
	if *out == nil {
		*out = []T{}
	}
	return nil
}

// countryFilter returns a JSONB containment filter for locations.
func countryFilter(country string) (string, error) {
	f := []map[string]string{
		{"country": strings.ToUpper(strings.TrimSpace(country))},
	}
	b, err := json.Marshal(f)
	return string(b), err
}
