// Package schema provides database schema models for biosync.
// JSON-valued fields of species are stored in JSONB columns, so a species
// row is complete on its own and location search uses JSONB containment.
package schema

import (
	"time"
)

// DDLGenerator describes a table of a model.
type DDLGenerator interface {
	// TableDDL is the CREATE TABLE statement built from db and ddl tags.
	TableDDL() string

	// Indexes are indexes GORM tags cannot express.
	Indexes() []Index

	TableName() string
}

// Species stores the canonical record of a taxon.
type Species struct {
	// ID is UUID v5 generated from TaxonID.
	ID string `db:"id" ddl:"UUID PRIMARY KEY" gorm:"column:id;type:uuid;primaryKey"`

	// TaxonID is the identifier of the taxon in the occurrence API.
	// The unique constraint resolves concurrent creation of a species.
	TaxonID string `db:"taxon_id" ddl:"VARCHAR(50) NOT NULL UNIQUE" gorm:"column:taxon_id;type:varchar(50);not null;uniqueIndex"`

	ScientificName string `db:"scientific_name" ddl:"VARCHAR(255) NOT NULL" gorm:"column:scientific_name;type:varchar(255);not null"`

	CommonName string `db:"common_name" ddl:"VARCHAR(255) NOT NULL DEFAULT 'Unknown'" gorm:"column:common_name;type:varchar(255);not null;default:'Unknown'"`

	// Category is a conservation-status code.
	Category string `db:"category" ddl:"VARCHAR(10) NOT NULL" gorm:"column:category;type:varchar(10);not null"`

	Kingdom string `db:"kingdom" ddl:"VARCHAR(255)" gorm:"column:kingdom;type:varchar(255)"`
	Phylum  string `db:"phylum" ddl:"VARCHAR(255)" gorm:"column:phylum;type:varchar(255)"`
	Class   string `db:"class" ddl:"VARCHAR(255)" gorm:"column:class;type:varchar(255)"`
	Order   string `db:"order" ddl:"VARCHAR(255)" gorm:"column:order;type:varchar(255)"`
	Family  string `db:"family" ddl:"VARCHAR(255)" gorm:"column:family;type:varchar(255)"`
	Genus   string `db:"genus" ddl:"VARCHAR(255)" gorm:"column:genus;type:varchar(255)"`

	// Locations is a JSON array of {country, continent, lat, lng}.
	Locations string `db:"locations" ddl:"JSONB NOT NULL DEFAULT '[]'" gorm:"column:locations;type:jsonb;not null;default:'[]'"`

	// GbifIDs is a JSON array of occurrence ids.
	GbifIDs string `db:"gbif_ids" ddl:"JSONB NOT NULL DEFAULT '[]'" gorm:"column:gbif_ids;type:jsonb;not null;default:'[]'"`

	// Media is a JSON array of media records.
	Media string `db:"media" ddl:"JSONB NOT NULL DEFAULT '[]'" gorm:"column:media;type:jsonb;not null;default:'[]'"`

	// Description is a JSON object of narrative fields or NULL.
	Description *string `db:"description" ddl:"JSONB" gorm:"column:description;type:jsonb"`

	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL" gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMPTZ NOT NULL" gorm:"column:updated_at;type:timestamptz;not null"`
}

// Cluster stores the per-country aggregate.
type Cluster struct {
	ID string `db:"id" ddl:"UUID PRIMARY KEY" gorm:"column:id;type:uuid;primaryKey"`

	// Country is an ISO-3166 alpha-2 code.
	Country string `db:"country" ddl:"VARCHAR(2) NOT NULL UNIQUE" gorm:"column:country;type:varchar(2);not null;uniqueIndex"`

	CountryName string  `db:"country_name" ddl:"VARCHAR(255) NOT NULL" gorm:"column:country_name;type:varchar(255);not null"`
	Lat         float64 `db:"lat" ddl:"DOUBLE PRECISION NOT NULL DEFAULT 0" gorm:"column:lat;type:double precision;not null;default:0"`
	Lng         float64 `db:"lng" ddl:"DOUBLE PRECISION NOT NULL DEFAULT 0" gorm:"column:lng;type:double precision;not null;default:0"`
	MarkerSize  float64 `db:"marker_size" ddl:"DOUBLE PRECISION NOT NULL DEFAULT 0" gorm:"column:marker_size;type:double precision;not null;default:0"`

	// Count is the number of species with a location in the country.
	Count int `db:"count" ddl:"INT NOT NULL DEFAULT 0" gorm:"column:count;type:int;not null;default:0"`

	// WorstCategory is the most severe category in the country.
	WorstCategory string `db:"worst_category" ddl:"VARCHAR(10) NOT NULL DEFAULT 'UNKNOWN'" gorm:"column:worst_category;type:varchar(10);not null;default:'UNKNOWN'"`

	// Occurrences is a legacy counter kept for the presentation layer.
	Occurrences int `db:"occurrences" ddl:"INT NOT NULL DEFAULT 0" gorm:"column:occurrences;type:int;not null;default:0"`

	// UpdatedAt is NULL until the first successful sync.
	UpdatedAt *time.Time `db:"updated_at" ddl:"TIMESTAMPTZ" gorm:"column:updated_at;type:timestamptz"`
}
