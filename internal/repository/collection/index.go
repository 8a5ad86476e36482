package collection

import (
	"github.com/kailas-cloud/searchable/internal/db"
	"github.com/kailas-cloud/searchable/internal/domain"
	domcol "github.com/kailas-cloud/searchable/internal/domain/collection"
)

// buildIndex creates the JSON index definition of a collection: one TEXT
// field over every element of the keyword array, queried by the keyword
// field name.
func buildIndex(prefix string, col domcol.Collection) (*db.IndexDefinition, error) {
	kw := col.KeywordField()
	return db.NewIndex(domain.IndexName(prefix, col.Name())).
		Prefix(domain.RecordKeyPrefix(prefix, col.Name())).
		Language(col.Language()).
		Text("$."+kw+"[*]", kw).
		Build()
}
