// Package health aggregates dependency probes for the /healthz endpoint.
package health

import (
	"context"
	"time"
)

// Status overall or per-check health state
type Status string

const (
	// StatusHealthy all checks passed
	StatusHealthy Status = "healthy"
	// StatusDegraded optional dependencies failed; core serving continues
	StatusDegraded Status = "degraded"
	// StatusUnhealthy a critical dependency failed
	StatusUnhealthy Status = "unhealthy"
)

// Checker a single dependency probe
type Checker interface {
	Name() string
	Check(ctx context.Context) error

	// Critical reports whether a failure makes the whole service unhealthy;
	// non-critical failures only degrade it (the cache is fail-open, so its
	// store going down degrades rather than kills the service)
	Critical() bool
}

// CheckResult one probe outcome
type CheckResult struct {
	Name     string        `json:"name"`
	Status   Status        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Response aggregate health report
type Response struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Duration  time.Duration          `json:"duration"`
	Checks    map[string]CheckResult `json:"checks"`
}

// IsHealthy reports whether every check passed
func (r *Response) IsHealthy() bool {
	return r.Status == StatusHealthy
}
