package cache

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKey_Deterministic(t *testing.T) {
	a, err := BuildKey("dealdesk", "deals", "org-1", "stage=open", 0, 100)
	require.NoError(t, err)
	b, err := BuildKey("dealdesk", "deals", "org-1", "stage=open", 0, 100)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, "dealdesk:deals:org-1:stage=open:0:100", a)
}

func TestBuildKey_TenantIsolation(t *testing.T) {
	a, err := BuildKey("dealdesk", "deals", "org-a")
	require.NoError(t, err)
	b, err := BuildKey("dealdesk", "deals", "org-b")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestBuildKey_NoQualifiers(t *testing.T) {
	key, err := BuildKey("dealdesk", "dashboard")
	require.NoError(t, err)
	assert.Equal(t, "dealdesk:dashboard", key)
}

func TestBuildKey_AbsentVsEmpty(t *testing.T) {
	absent, err := BuildKey("ns", "c", "org", nil)
	require.NoError(t, err)
	empty, err := BuildKey("ns", "c", "org", "")
	require.NoError(t, err)

	assert.Equal(t, "ns:c:org:-", absent)
	assert.Equal(t, "ns:c:org:", empty)
	assert.NotEqual(t, absent, empty)
}

func TestBuildKey_CanonicalForms(t *testing.T) {
	id := uuid.MustParse("a2f1f7a0-8a2e-4f2e-9a64-0f0f3f4f5f6f")

	tests := []struct {
		name      string
		qualifier any
		want      string
	}{
		{"bool true", true, "t"},
		{"bool false", false, "f"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"uint64", uint64(9), "9"},
		{"float no trailing zeros", 1.50, "1.5"},
		{"float integral", float64(3), "3"},
		{"uuid", id, id.String()},
		{"nil pointer string", (*string)(nil), NilQualifier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := BuildKey("ns", "c", tt.qualifier)
			require.NoError(t, err)
			assert.Equal(t, "ns:c:"+tt.want, key)
		})
	}
}

func TestBuildKey_InvalidQualifier(t *testing.T) {
	_, err := BuildKey("ns", "c", struct{ X int }{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQualifier)

	_, err = BuildKey("ns", "c", []string{"a"})
	assert.ErrorIs(t, err, ErrInvalidQualifier)
}

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"dealdesk:deals:org1:*", "dealdesk:deals:org1:stage=open", true},
		{"dealdesk:deals:org1:*", "dealdesk:deals:org2:stage=open", false},
		{"dealdesk:deals:org1:*", "dealdesk:deals:org1:", true},
		{"exact", "exact", true},
		{"exact", "exact2", false},
		{"*", "anything:at:all", true},
		{"dealdesk:*:org1:*", "dealdesk:tasks:org1:u7", true},
		{"dealdesk:*:org1:*", "dealdesk:tasks:org2:u7", false},
		{"*suffix", "has-suffix", true},
		{"*suffix", "hassuffix", true},
		{"*suffix", "suffix-not", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchGlob(tt.pattern, tt.key),
			"pattern %q key %q", tt.pattern, tt.key)
	}
}
