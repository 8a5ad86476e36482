package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the extractor is failing but the datastore answers.
	Degraded Status = "degraded"
	// Unhealthy indicates the datastore is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	extractor ExtractorChecker
	timeout   time.Duration
}

// New creates a Service. extractor can be nil.
func New(db DBPinger, extractor ExtractorChecker) *Service {
	return &Service{db: db, extractor: extractor, timeout: 2 * time.Second}
}

// Check probes the datastore and, when configured, the remote extractor.
// Without a datastore nothing can be saved or searched, so its failure makes
// the report Unhealthy; an extractor failure only degrades it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)
	status := Healthy

	checks["database"] = s.probe(ctx, s.db.Ping)
	if checks["database"] == CheckError {
		status = Unhealthy
	}

	if s.extractor != nil {
		checks["extractor"] = s.probe(ctx, s.extractor.HealthCheck)
		if checks["extractor"] == CheckError && status == Healthy {
			status = Degraded
		}
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) probe(ctx context.Context, fn func(context.Context) error) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}
