package chi

import (
	"sort"

	domcol "github.com/kailas-cloud/searchable/internal/domain/collection"
	domrec "github.com/kailas-cloud/searchable/internal/domain/record"
	"github.com/kailas-cloud/searchable/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/searchable/internal/usecase/search"
)

// ErrorCode is the machine-readable error code of an ErrorResponse.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest             ErrorCode = "bad_request"
	CodeUnauthorized           ErrorCode = "unauthorized"
	CodeValidationFailed       ErrorCode = "validation_failed"
	CodeCollectionNotFound     ErrorCode = "collection_not_found"
	CodeRecordNotFound         ErrorCode = "record_not_found"
	CodeExtractionFailed       ErrorCode = "extraction_failed"
	CodeTextSearchNotSupported ErrorCode = "text_search_not_supported"
	CodeMethodNotAllowed       ErrorCode = "method_not_allowed"
	CodeRouteNotFound          ErrorCode = "route_not_found"
	CodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// CollectionResponse describes a configured collection.
type CollectionResponse struct {
	Name         string   `json:"name"`
	KeywordField string   `json:"keyword_field"`
	Fields       []string `json:"fields"`
	Blacklist    []string `json:"blacklist"`
	Language     string   `json:"language"`
}

// CollectionListResponse wraps GET /collections.
type CollectionListResponse struct {
	Items []CollectionResponse `json:"items"`
}

// PutRecordRequest is the body of PUT /collections/{collection}/records/{id}.
// Keywords may be a string or a list of strings.
type PutRecordRequest struct {
	Attributes map[string]any `json:"attributes"`
	Keywords   any            `json:"keywords,omitempty"`
}

// KeywordsRequest is the body of the keyword add/remove endpoints.
type KeywordsRequest struct {
	Keywords any `json:"keywords"`
}

// RecordResponse is a stored record with its keyword set.
type RecordResponse struct {
	ID         string         `json:"id"`
	Attributes map[string]any `json:"attributes"`
	Keywords   []string       `json:"keywords"`
}

// SearchRequest is the body of POST /collections/{collection}/search.
// Q may be a string or a list of strings.
type SearchRequest struct {
	Q       any            `json:"q"`
	Options map[string]any `json:"options,omitempty"`
	Limit   int            `json:"limit,omitempty"`
	Offset  int            `json:"offset,omitempty"`
}

// SearchResultItem is one ranked record.
type SearchResultItem struct {
	ID         string         `json:"id"`
	Score      float64        `json:"score"`
	Attributes map[string]any `json:"attributes"`
	Keywords   []string       `json:"keywords"`
}

// SearchResponse carries the executed filter and one page of results.
type SearchResponse struct {
	Filter map[string]any     `json:"filter"`
	Items  []SearchResultItem `json:"items"`
	Total  int                `json:"total"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
}

func collectionToResponse(c domcol.Collection) CollectionResponse {
	blacklist := c.Blacklist().Terms()
	sort.Strings(blacklist)
	return CollectionResponse{
		Name:         c.Name(),
		KeywordField: c.KeywordField(),
		Fields:       c.Fields(),
		Blacklist:    blacklist,
		Language:     c.Language(),
	}
}

func recordToResponse(col domcol.Collection, doc *domrec.Document) RecordResponse {
	attrs := doc.Attributes()
	delete(attrs, col.KeywordField())
	return RecordResponse{
		ID:         doc.ID(),
		Attributes: attrs,
		Keywords:   domrec.Keywords(doc, col.KeywordField(), nil).Slice(),
	}
}

func searchToResponse(col domcol.Collection, resp searchuc.Response) SearchResponse {
	items := make([]SearchResultItem, len(resp.Results))
	for i := range resp.Results {
		items[i] = resultToItem(col, &resp.Results[i])
	}
	return SearchResponse{
		Filter: resp.Filter.Map(),
		Items:  items,
		Total:  resp.Total,
	}
}

func resultToItem(col domcol.Collection, r *result.Result) SearchResultItem {
	attrs := make(map[string]any, len(r.Attributes()))
	for k, v := range r.Attributes() {
		if k == col.KeywordField() {
			continue
		}
		attrs[k] = v
	}
	return SearchResultItem{
		ID:         r.ID(),
		Score:      r.Score(),
		Attributes: attrs,
		Keywords:   r.Keywords().Slice(),
	}
}
