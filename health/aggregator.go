package health

import (
	"context"
	"sync"
	"time"
)

// Aggregator runs registered probes concurrently under a shared timeout
type Aggregator struct {
	checkers []Checker
	timeout  time.Duration
	mu       sync.RWMutex
}

// NewAggregator creates an aggregator; timeout bounds one whole Check pass
func NewAggregator(timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Aggregator{timeout: timeout}
}

// Register adds a probe
func (a *Aggregator) Register(checker Checker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.checkers = append(a.checkers, checker)
}

// Check executes all probes and folds their results into one response
func (a *Aggregator) Check(ctx context.Context) *Response {
	start := time.Now()

	checkCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	a.mu.RLock()
	checkers := make([]Checker, len(a.checkers))
	copy(checkers, a.checkers)
	a.mu.RUnlock()

	results := make([]CheckResult, len(checkers))
	var wg sync.WaitGroup
	for i, checker := range checkers {
		wg.Add(1)
		go func(i int, checker Checker) {
			defer wg.Done()
			checkStart := time.Now()
			err := checker.Check(checkCtx)
			result := CheckResult{
				Name:     checker.Name(),
				Status:   StatusHealthy,
				Duration: time.Since(checkStart),
			}
			if err != nil {
				result.Error = err.Error()
				if checker.Critical() {
					result.Status = StatusUnhealthy
				} else {
					result.Status = StatusDegraded
				}
			}
			results[i] = result
		}(i, checker)
	}
	wg.Wait()

	resp := &Response{
		Status:    StatusHealthy,
		Timestamp: start,
		Duration:  time.Since(start),
		Checks:    make(map[string]CheckResult, len(results)),
	}
	for _, r := range results {
		resp.Checks[r.Name] = r
		switch r.Status {
		case StatusUnhealthy:
			resp.Status = StatusUnhealthy
		case StatusDegraded:
			if resp.Status == StatusHealthy {
				resp.Status = StatusDegraded
			}
		}
	}
	return resp
}
