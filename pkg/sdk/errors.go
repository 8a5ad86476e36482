package searchable

import (
	"errors"

	"github.com/kailas-cloud/searchable/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound               = domain.ErrNotFound
	ErrRecordNotFound         = domain.ErrRecordNotFound
	ErrInvalidRecord          = domain.ErrInvalidRecord
	ErrInvalidCollection      = domain.ErrInvalidCollection
	ErrExtractionFailed       = domain.ErrExtractionFailed
	ErrTextSearchNotSupported = domain.ErrTextSearchNotSupported
)

// ExtractionError reports which source field failed extraction.
// Use errors.As() to inspect it.
type ExtractionError = domain.ExtractionError

var errUnhealthy = errors.New("searchable: datastore unhealthy")
