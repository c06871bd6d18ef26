package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Index is an index created after AutoMigrate.
type Index struct {
	Name  string
	Table string

	// Method is an access method such as GIN, empty for btree.
	Method string

	// Expr is the indexed column list or expression with operator class.
	Expr string
}

// DDL is an idempotent CREATE INDEX statement.
func (i Index) DDL() string {
	using := ""
	if i.Method != "" {
		using = " USING " + i.Method
	}
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s%s (%s);",
		i.Name, i.Table, using, i.Expr)
}

// generateDDL creates a CREATE TABLE statement from db and ddl tags.
// Column names are quoted, "order" is a reserved word.
func generateDDL(model any, tableName string) string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var cols []string
	for i := range t.NumField() {
		f := t.Field(i)
		col, ddl := f.Tag.Get("db"), f.Tag.Get("ddl")
		if col == "" || ddl == "" {
			continue
		}
		cols = append(cols, fmt.Sprintf("    %q %s", col, ddl))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		tableName, strings.Join(cols, ",\n"))
}

func (s Species) TableName() string {
	return "species"
}

func (s Species) TableDDL() string {
	return generateDDL(s, s.TableName())
}

// Indexes support JSONB containment search of species by country
// and category filters.
func (s Species) Indexes() []Index {
	return []Index{
		{
			Name:   "idx_species_locations",
			Table:  s.TableName(),
			Method: "GIN",
			Expr:   "locations jsonb_path_ops",
		},
		{
			Name:  "idx_species_category",
			Table: s.TableName(),
			Expr:  "category",
		},
	}
}

func (c Cluster) TableName() string {
	return "clusters"
}

func (c Cluster) TableDDL() string {
	return generateDDL(c, c.TableName())
}

// Indexes support listing clusters that were never synced first.
func (c Cluster) Indexes() []Index {
	return []Index{
		{
			Name:  "idx_clusters_updated_at",
			Table: c.TableName(),
			Expr:  "updated_at NULLS FIRST",
		},
	}
}
