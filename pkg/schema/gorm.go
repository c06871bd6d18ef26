package schema

import "gorm.io/gorm"

// Generators returns table descriptions in creation order.
func Generators() []DDLGenerator {
	return []DDLGenerator{Species{}, Cluster{}}
}

// TableNames returns names of biosync tables in creation order.
func TableNames() []string {
	gens := Generators()
	res := make([]string, len(gens))
	for i, g := range gens {
		res[i] = g.TableName()
	}
	return res
}

// Migrate runs GORM AutoMigrate of all models. It creates missing tables
// and columns and never drops anything.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Species{}, &Cluster{})
}
