package ioschema

import (
	"strings"

	"github.com/ecoglobe/biosync/pkg/schema"
)

// DDL documents the schema for database administrators: CREATE TABLE
// statements each followed by its indexes. Create itself uses AutoMigrate.
func DDL() string {
	var res []string
	for _, g := range schema.Generators() {
		res = append(res, g.TableDDL())
		for _, v := range g.Indexes() {
			res = append(res, v.DDL())
		}
	}
	return strings.Join(res, "\n\n") + "\n"
}
