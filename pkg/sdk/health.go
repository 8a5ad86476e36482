package searchable

import (
	"context"

	healthuc "github.com/kailas-cloud/searchable/internal/usecase/health"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded" or "error"
	Checks map[string]string // component to "ok" or "error"
}

// Health checks the datastore.
func (c *Client) Health(ctx context.Context) HealthStatus {
	done := c.obs.track("health", "")
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	var err error
	if report.Status == healthuc.Unhealthy {
		err = errUnhealthy
	}
	done(err)
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
