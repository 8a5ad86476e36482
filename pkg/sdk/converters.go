package searchable

import (
	"sort"

	domcol "github.com/kailas-cloud/searchable/internal/domain/collection"
	domrec "github.com/kailas-cloud/searchable/internal/domain/record"
	"github.com/kailas-cloud/searchable/internal/domain/search/filter"
	"github.com/kailas-cloud/searchable/internal/domain/search/result"
)

func toCollectionInfo(c domcol.Collection) CollectionInfo {
	blacklist := c.Blacklist().Terms()
	sort.Strings(blacklist)
	return CollectionInfo{
		Name:         c.Name(),
		KeywordField: c.KeywordField(),
		Fields:       c.Fields(),
		Blacklist:    blacklist,
		Language:     c.Language(),
	}
}

func fromInternalRecord(col domcol.Collection, doc *domrec.Document) Record {
	attrs := doc.Attributes()
	delete(attrs, col.KeywordField())
	return Record{
		ID:         doc.ID(),
		Attributes: attrs,
		Keywords:   domrec.Keywords(doc, col.KeywordField(), nil).Slice(),
	}
}

func fromInternalResult(col domcol.Collection, r *result.Result) Hit {
	attrs := make(map[string]any, len(r.Attributes()))
	for k, v := range r.Attributes() {
		if k != col.KeywordField() {
			attrs[k] = v
		}
	}
	return Hit{
		ID:         r.ID(),
		Score:      r.Score(),
		Attributes: attrs,
		Keywords:   r.Keywords().Slice(),
	}
}

func fromInternalFilter(f filter.SearchFilter) Filter {
	return Filter{
		Search:          f.SearchText(),
		Language:        f.Language(),
		Options:         f.ExtraOptions(),
		SortByRelevance: f.SortByRelevance(),
	}
}
