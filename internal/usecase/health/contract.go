package health

import "context"

// DBPinger checks datastore availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ExtractorChecker is implemented by keyword extractors that depend on a
// remote service. Local extractors are not checked.
type ExtractorChecker interface {
	HealthCheck(ctx context.Context) error
}
