package cache

import (
	"net/http"

	"github.com/KOMKZ/go-dealdesk/errcode"
)

// Business codes within errcode.ModuleCache (70xxxx)
const (
	ErrCodeCacheMiss        = 1
	ErrCodeInvalidQualifier = 2
	ErrCodeStoreGet         = 3
	ErrCodeStoreSet         = 4
	ErrCodeStoreDelete      = 5
	ErrCodeStoreUnavailable = 6
)

var (
	// ErrCacheMiss key not present (not a failure, a sentinel)
	ErrCacheMiss = errcode.New(
		errcode.ModuleCache, ErrCodeCacheMiss,
		"cache", "error.cache.miss", "cache miss",
		http.StatusOK,
	)

	// ErrInvalidQualifier key builder received an unsupported qualifier type.
	// This is a programming error and must fail loudly at the call site.
	ErrInvalidQualifier = errcode.New(
		errcode.ModuleCache, ErrCodeInvalidQualifier,
		"cache", "error.cache.invalid_qualifier", "invalid cache key qualifier",
		http.StatusInternalServerError,
	)

	// ErrStoreGet store read failed
	ErrStoreGet = errcode.New(
		errcode.ModuleCache, ErrCodeStoreGet,
		"cache", "error.cache.store_get", "cache store read failed",
		http.StatusInternalServerError,
	)

	// ErrStoreSet store write failed
	ErrStoreSet = errcode.New(
		errcode.ModuleCache, ErrCodeStoreSet,
		"cache", "error.cache.store_set", "cache store write failed",
		http.StatusInternalServerError,
	)

	// ErrStoreDelete store delete failed
	ErrStoreDelete = errcode.New(
		errcode.ModuleCache, ErrCodeStoreDelete,
		"cache", "error.cache.store_delete", "cache store delete failed",
		http.StatusInternalServerError,
	)

	// ErrStoreUnavailable store unreachable; callers must fail open
	ErrStoreUnavailable = errcode.New(
		errcode.ModuleCache, ErrCodeStoreUnavailable,
		"cache", "error.cache.store_unavailable", "cache store unavailable",
		http.StatusInternalServerError,
	)
)
