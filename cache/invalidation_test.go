package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/KOMKZ/go-dealdesk/logger"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry(nil)

	r.Register("deal.create", "deals:{org}:*", "dashboard:{org}:*")

	patterns := r.Patterns("deal.create")
	assert.Equal(t, []string{"deals:{org}:*", "dashboard:{org}:*"}, patterns)
}

func TestRegistry_RepeatedRegisterAppends(t *testing.T) {
	r := NewRegistry(nil)

	r.Register("client.update", "clients:{org}:*")
	r.Register("client.update", "deals:{org}:*")

	assert.Equal(t, []string{"clients:{org}:*", "deals:{org}:*"}, r.Patterns("client.update"))
}

func TestRegistry_UnknownOperationWarns(t *testing.T) {
	log, logs := logger.NewObserved("cache", zapcore.WarnLevel)
	r := NewRegistry(log)

	patterns := r.Patterns("deal.archive")

	assert.Nil(t, patterns)
	require.Len(t, logs.All(), 1)
	assert.Contains(t, logs.All()[0].Message, "no invalidation patterns")
}

func TestRegistry_Operations(t *testing.T) {
	r := NewRegistry(nil)
	r.Register("task.create", "tasks:{org}:*")
	r.Register("deal.create", "deals:{org}:*")

	assert.Equal(t, []string{"deal.create", "task.create"}, r.Operations())
}

func TestExpandPattern(t *testing.T) {
	expanded := ExpandPattern("dealdesk", "deals:{org}:*", "org-42")
	assert.Equal(t, "dealdesk:deals:org-42:*", expanded)

	// pattern without placeholder expands unchanged under the namespace
	assert.Equal(t, "dealdesk:global:*", ExpandPattern("dealdesk", "global:*", "org-42"))
}
