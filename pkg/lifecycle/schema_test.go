package lifecycle_test

import (
	"testing"

	"github.com/ecoglobe/biosync/internal/ioschema"
	"github.com/ecoglobe/biosync/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

func TestSchemaManagerContract(t *testing.T) {
	var _ lifecycle.SchemaManager = ioschema.NewManager(nil)
}

func TestTableStatusReady(t *testing.T) {
	tests := []struct {
		msg string
		st  lifecycle.TableStatus
		res bool
	}{
		{"complete", lifecycle.TableStatus{Table: "species", Exists: true}, true},
		{"missing table", lifecycle.TableStatus{Table: "species"}, false},
		{"missing index", lifecycle.TableStatus{Table: "species", Exists: true,
			MissingIndexes: []string{"idx_species_locations"}}, false},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, v.st.Ready(), v.msg)
	}
}
