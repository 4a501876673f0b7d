package errcode

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ModuleCache, 6, "cache", "error.cache.store_get", "store read failed", http.StatusInternalServerError)

	assert.Equal(t, 700006, err.Code())
	assert.Equal(t, "cache", err.Module())
	assert.Equal(t, "error.cache.store_get", err.MsgKey())
	assert.Equal(t, "store read failed", err.Message())
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestNew_DefaultHTTPStatus(t *testing.T) {
	err := New(ModuleCache, 1, "cache", "error.cache.miss", "cache miss")
	assert.Equal(t, http.StatusOK, err.HTTPStatus())
}

func TestLayeredError_Wrap(t *testing.T) {
	base := New(ModuleStore, 1, "store", "error.store.query", "query failed", http.StatusInternalServerError)
	cause := fmt.Errorf("connection refused")

	wrapped := base.Wrap(cause)

	// original untouched
	require.Nil(t, base.Cause())
	assert.Equal(t, cause, wrapped.Cause())
	assert.Equal(t, "query failed: connection refused", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, cause, errors.Unwrap(wrapped))
}

func TestLayeredError_WrapNil(t *testing.T) {
	base := New(ModuleStore, 1, "store", "error.store.query", "query failed")
	assert.Same(t, base, base.Wrap(nil))
}

func TestLayeredError_WithMsgf(t *testing.T) {
	base := New(ModuleCache, 10, "cache", "error.cache.invalid_qualifier", "invalid qualifier")
	err := base.WithMsgf("invalid qualifier type: %T", 1.5)

	assert.Equal(t, "invalid qualifier type: float64", err.Message())
	assert.Equal(t, "invalid qualifier", base.Message())
	assert.ErrorIs(t, err, base)
}

func TestLayeredError_Is(t *testing.T) {
	a := New(ModuleCache, 1, "cache", "error.cache.miss", "miss")
	b := New(ModuleCache, 1, "cache", "error.cache.miss", "other message")
	c := New(ModuleCache, 2, "cache", "error.cache.other", "other")

	assert.ErrorIs(t, a, b)
	assert.NotErrorIs(t, a, c)
	assert.False(t, a.Is(errors.New("plain")))
}

func TestLayeredError_WithHTTPStatus(t *testing.T) {
	base := New(ModuleAPI, 4, "api", "error.api.not_found", "not found", http.StatusNotFound)
	err := base.WithHTTPStatus(http.StatusGone)

	assert.Equal(t, http.StatusGone, err.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, base.HTTPStatus())
}
