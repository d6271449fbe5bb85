package cache

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/credsphere/loancalc-service/internal/domain/model"
	"github.com/credsphere/loancalc-service/internal/domain/port"
)

// ---------------------------------------------------------------------------
// In-memory calculation cache with in-flight coalescing
// ---------------------------------------------------------------------------

// inflightCall tracks one outstanding fetch for a loan id. Waiters block on
// done and read result/err afterwards.
type inflightCall struct {
	done   chan struct{}
	result model.CalculationResult
	err    error
	// stale is set when the entry is invalidated while the fetch runs. The
	// fetched result is still handed to its waiters, since they asked before
	// the invalidation, but it must not repopulate the cache: the invalidation
	// is the later write and last write wins.
	stale bool
}

// MemoryCache implements port.CalculationCache. Entries are keyed by loan
// id only; callers invalidate whenever principal, plan, or fee assignment
// changes. Deletion is the only mutation of an existing entry.
type MemoryCache struct {
	mu       sync.Mutex
	entries  map[string]model.CalculationResult
	inflight map[string]*inflightCall

	hits      metric.Int64Counter
	misses    metric.Int64Counter
	coalesced metric.Int64Counter
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	meter := otel.Meter("loancalc.cache")
	hits, _ := meter.Int64Counter("loancalc_cache_hits_total",
		metric.WithDescription("Calculation cache hits"))
	misses, _ := meter.Int64Counter("loancalc_cache_misses_total",
		metric.WithDescription("Calculation cache misses"))
	coalesced, _ := meter.Int64Counter("loancalc_cache_coalesced_total",
		metric.WithDescription("Callers coalesced onto an in-flight fetch"))

	return &MemoryCache{
		entries:   make(map[string]model.CalculationResult),
		inflight:  make(map[string]*inflightCall),
		hits:      hits,
		misses:    misses,
		coalesced: coalesced,
	}
}

// Get returns the cached result for the loan, if any. It is not part of the
// cache port; reads go through Do. Kept for inspection in tests.
func (c *MemoryCache) Get(loanID string) (model.CalculationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	result, ok := c.entries[loanID]
	return result, ok
}

// Do returns the cached result or runs fetch. Concurrent callers for the
// same loan id join the outstanding fetch instead of issuing duplicates.
func (c *MemoryCache) Do(ctx context.Context, loanID string, fetch port.FetchFunc) (model.CalculationResult, error) {
	c.mu.Lock()
	if result, ok := c.entries[loanID]; ok {
		c.mu.Unlock()
		c.hits.Add(ctx, 1)
		return result, nil
	}
	if call, ok := c.inflight[loanID]; ok {
		c.mu.Unlock()
		c.coalesced.Add(ctx, 1)
		select {
		case <-call.done:
			return call.result, call.err
		case <-ctx.Done():
			return model.CalculationResult{}, ctx.Err()
		}
	}

	call := &inflightCall{done: make(chan struct{})}
	c.inflight[loanID] = call
	c.mu.Unlock()
	c.misses.Add(ctx, 1)

	result, err := fetch(ctx)

	c.mu.Lock()
	call.result, call.err = result, err
	if c.inflight[loanID] == call {
		delete(c.inflight, loanID)
	}
	if err == nil && !call.stale {
		c.entries[loanID] = result
	}
	c.mu.Unlock()
	close(call.done)

	return result, err
}

// Invalidate deletes the entry for the loan. An in-flight fetch is marked
// stale and detached so its eventual result is not stored, and the next Do
// starts a fresh fetch.
func (c *MemoryCache) Invalidate(loanID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, loanID)
	if call, ok := c.inflight[loanID]; ok {
		call.stale = true
		delete(c.inflight, loanID)
	}
}

// Len reports the number of cached entries. Like Get, it exists for
// inspection in tests, not for the cache port.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
