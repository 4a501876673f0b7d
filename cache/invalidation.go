package cache

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/KOMKZ/go-dealdesk/logger"
)

// OrgPlaceholder marks where the tenant id is substituted into a declared
// invalidation pattern at request time.
const OrgPlaceholder = "{org}"

// Registry maps operation identifiers to the glob patterns a successful
// mutation must evict. Populated once at route registration; the declarative
// seam through which the surrounding CRUD integrates with the cache core
// without the core knowing any domain semantics.
//
// Correctness contract: the union of patterns declared for an operation must
// cover every key namespace that mutation can affect. The registry cannot
// verify this; it is audited by the invalidation-completeness tests.
type Registry struct {
	mu    sync.RWMutex
	rules map[string][]string
	log   *logger.ModuleLogger
}

// NewRegistry creates an empty pattern registry
func NewRegistry(log *logger.ModuleLogger) *Registry {
	if log == nil {
		log = logger.Nop("cache")
	}
	return &Registry{
		rules: make(map[string][]string),
		log:   log,
	}
}

// Register declares the invalidation patterns for an operation.
// Repeated calls for the same operation append (a route registered in two
// groups keeps the union of its declarations).
func (r *Registry) Register(operation string, patterns ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[operation] = append(r.rules[operation], patterns...)
	r.log.Debug("invalidation patterns registered",
		zap.String("operation", operation),
		zap.Strings("patterns", patterns))
}

// Patterns returns the declared patterns for an operation. An unknown
// operation logs a warning: a mutating route without declared patterns is
// the primary correctness risk of the whole subsystem.
func (r *Registry) Patterns(operation string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	patterns, ok := r.rules[operation]
	if !ok {
		r.log.Warn("no invalidation patterns declared for operation",
			zap.String("operation", operation))
		return nil
	}
	return patterns
}

// Operations lists registered operation ids in stable order (audit tooling)
func (r *Registry) Operations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ops := make([]string, 0, len(r.rules))
	for op := range r.rules {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// ExpandPattern resolves a declared pattern into a concrete store glob:
// substitutes the tenant id and prepends the namespace. Declared patterns are
// org-scoped ("deals:{org}:*") so one tenant's mutation never evicts another
// tenant's entries.
func ExpandPattern(namespace, pattern, orgID string) string {
	expanded := strings.ReplaceAll(pattern, OrgPlaceholder, orgID)
	return namespace + ":" + expanded
}
