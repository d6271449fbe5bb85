package cache_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credsphere/loancalc-service/internal/domain/model"
	"github.com/credsphere/loancalc-service/internal/infrastructure/cache"
	"github.com/credsphere/loancalc-service/pkg/testutil"
)

func resultFor(loanID string, principal int64) model.CalculationResult {
	return model.CalculationResult{LoanID: loanID, Principal: decimal.NewFromInt(principal)}
}

func TestMemoryCache_DoCachesResult(t *testing.T) {
	c := cache.NewMemoryCache()
	calls := 0
	fetch := func(context.Context) (model.CalculationResult, error) {
		calls++
		return resultFor(testutil.TestLoanID1, 100_000), nil
	}

	for i := 0; i < 3; i++ {
		result, err := c.Do(context.Background(), testutil.TestLoanID1, fetch)
		require.NoError(t, err)
		assert.Equal(t, testutil.TestLoanID1, result.LoanID)
	}

	assert.Equal(t, 1, calls, "second and third reads should be cache hits")
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_EntriesAreIndependent(t *testing.T) {
	c := cache.NewMemoryCache()

	_, err := c.Do(context.Background(), testutil.TestLoanID1, func(context.Context) (model.CalculationResult, error) {
		return resultFor(testutil.TestLoanID1, 100_000), nil
	})
	require.NoError(t, err)
	_, err = c.Do(context.Background(), testutil.TestLoanID2, func(context.Context) (model.CalculationResult, error) {
		return resultFor(testutil.TestLoanID2, 50_000), nil
	})
	require.NoError(t, err)

	c.Invalidate(testutil.TestLoanID1)

	_, ok := c.Get(testutil.TestLoanID1)
	assert.False(t, ok)
	other, ok := c.Get(testutil.TestLoanID2)
	require.True(t, ok, "invalidation must not touch other loans")
	assert.Equal(t, testutil.TestLoanID2, other.LoanID)
}

func TestMemoryCache_FailedFetchIsNotCached(t *testing.T) {
	c := cache.NewMemoryCache()
	calls := 0
	fetch := func(context.Context) (model.CalculationResult, error) {
		calls++
		if calls == 1 {
			return model.CalculationResult{}, context.DeadlineExceeded
		}
		return resultFor(testutil.TestLoanID1, 100_000), nil
	}

	_, err := c.Do(context.Background(), testutil.TestLoanID1, fetch)
	require.Error(t, err)
	assert.Equal(t, 0, c.Len(), "errors must not be memoized")

	_, err = c.Do(context.Background(), testutil.TestLoanID1, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestMemoryCache_ConcurrentCallersCoalesce(t *testing.T) {
	c := cache.NewMemoryCache()

	var fetches int32
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(context.Context) (model.CalculationResult, error) {
		atomic.AddInt32(&fetches, 1)
		close(started)
		<-release
		return resultFor(testutil.TestLoanID1, 100_000), nil
	}

	var wg sync.WaitGroup
	results := make([]model.CalculationResult, 10)
	errs := make([]error, 10)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = c.Do(context.Background(), testutil.TestLoanID1, fetch)
	}()
	<-started

	// Everyone arriving while the fetch is outstanding must wait on it, not
	// start their own.
	for i := 1; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Do(context.Background(), testutil.TestLoanID1, func(context.Context) (model.CalculationResult, error) {
				t.Error("coalesced caller ran its own fetch")
				return model.CalculationResult{}, nil
			})
		}(i)
	}

	// Give the waiters a moment to reach the coalescing path.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
	for i := 0; i < 10; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, testutil.TestLoanID1, results[i].LoanID)
	}
}

func TestMemoryCache_CoalescedCallerHonorsContext(t *testing.T) {
	c := cache.NewMemoryCache()

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = c.Do(context.Background(), testutil.TestLoanID1, func(context.Context) (model.CalculationResult, error) {
			close(started)
			<-release
			return resultFor(testutil.TestLoanID1, 100_000), nil
		})
	}()
	<-started
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Do(ctx, testutil.TestLoanID1, func(context.Context) (model.CalculationResult, error) {
		return model.CalculationResult{}, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryCache_InvalidationBeatsInflightFetch(t *testing.T) {
	c := cache.NewMemoryCache()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	var result model.CalculationResult
	var err error
	go func() {
		defer close(done)
		result, err = c.Do(context.Background(), testutil.TestLoanID1, func(context.Context) (model.CalculationResult, error) {
			close(started)
			<-release
			return resultFor(testutil.TestLoanID1, 100_000), nil
		})
	}()
	<-started

	// The invalidation lands while the fetch is still running: the fetch
	// started from pre-invalidation state, so its result may be returned to
	// the caller but must not be stored.
	c.Invalidate(testutil.TestLoanID1)
	close(release)
	<-done

	require.NoError(t, err)
	assert.Equal(t, testutil.TestLoanID1, result.LoanID)

	_, ok := c.Get(testutil.TestLoanID1)
	assert.False(t, ok, "stale fetch must not repopulate the cache")
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_FreshFetchAfterInvalidation(t *testing.T) {
	c := cache.NewMemoryCache()
	calls := 0
	fetch := func(context.Context) (model.CalculationResult, error) {
		calls++
		return resultFor(testutil.TestLoanID1, int64(100_000+calls)), nil
	}

	first, err := c.Do(context.Background(), testutil.TestLoanID1, fetch)
	require.NoError(t, err)

	c.Invalidate(testutil.TestLoanID1)

	second, err := c.Do(context.Background(), testutil.TestLoanID1, fetch)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.False(t, first.Principal.Equal(second.Principal), "post-invalidation read must recompute")
}
