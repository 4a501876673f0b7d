package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	name     string
	err      error
	critical bool
	delay    time.Duration
}

func (f *fakeChecker) Name() string   { return f.name }
func (f *fakeChecker) Critical() bool { return f.critical }
func (f *fakeChecker) Check(ctx context.Context) error {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.err
}

func TestAggregator_AllHealthy(t *testing.T) {
	agg := NewAggregator(time.Second)
	agg.Register(&fakeChecker{name: "a"})
	agg.Register(&fakeChecker{name: "b"})

	resp := agg.Check(context.Background())
	assert.Equal(t, StatusHealthy, resp.Status)
	assert.True(t, resp.IsHealthy())
	assert.Len(t, resp.Checks, 2)
}

func TestAggregator_NonCriticalFailureDegrades(t *testing.T) {
	agg := NewAggregator(time.Second)
	agg.Register(&fakeChecker{name: "db"})
	agg.Register(&fakeChecker{name: "redis", err: errors.New("connection refused")})

	resp := agg.Check(context.Background())
	assert.Equal(t, StatusDegraded, resp.Status)
	assert.Equal(t, StatusDegraded, resp.Checks["redis"].Status)
	assert.Equal(t, StatusHealthy, resp.Checks["db"].Status)
	assert.Contains(t, resp.Checks["redis"].Error, "connection refused")
}

func TestAggregator_CriticalFailureWins(t *testing.T) {
	agg := NewAggregator(time.Second)
	agg.Register(&fakeChecker{name: "db", err: errors.New("down"), critical: true})
	agg.Register(&fakeChecker{name: "redis", err: errors.New("down")})

	resp := agg.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, resp.Status)
}

func TestAggregator_TimeoutCancelsSlowChecks(t *testing.T) {
	agg := NewAggregator(50 * time.Millisecond)
	agg.Register(&fakeChecker{name: "slow", delay: time.Second, critical: true})

	start := time.Now()
	resp := agg.Check(context.Background())
	require.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, StatusUnhealthy, resp.Status)
}
