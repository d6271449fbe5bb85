package port

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/credsphere/loancalc-service/internal/domain/event"
	"github.com/credsphere/loancalc-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanRepository retrieves loan records. This subsystem only reads loans;
// origination and servicing own the writes.
type LoanRepository interface {
	FindByID(ctx context.Context, tenantID, id string) (model.Loan, error)
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// CalculationInputs carries the mutable engine-side calculation parameters.
// Nil fields are left unchanged.
type CalculationInputs struct {
	ProcessingFeePercent  *decimal.Decimal
	InterestPercentPerDay *decimal.Decimal
}

// CalculationEngine is the remote authoritative calculation service.
type CalculationEngine interface {
	// GetLoanCalculation fetches the engine's figures for a loan. Returns
	// valueobject.ErrCalculationNotFound when the engine has none and
	// valueobject.ErrEngineUnavailable on transport or server failure.
	GetLoanCalculation(ctx context.Context, loanID string) (model.EngineCalculation, error)

	// UpdateCalculationInputs changes fee/interest parameters on the engine.
	// The caller owns the subsequent cache invalidation.
	UpdateCalculationInputs(ctx context.Context, loanID string, inputs CalculationInputs) error

	// UpdateLoanAmount changes the loan principal on the engine. The caller
	// owns the subsequent cache invalidation.
	UpdateLoanAmount(ctx context.Context, loanID string, newPrincipal decimal.Decimal) error
}

// ---------------------------------------------------------------------------
// Calculation cache port
// ---------------------------------------------------------------------------

// FetchFunc produces a calculation result for a loan, typically by calling
// the engine and running the calculator.
type FetchFunc func(ctx context.Context) (model.CalculationResult, error)

// CalculationCache memoizes calculation results per loan id. Concurrent
// callers for the same id coalesce into one outstanding fetch; invalidation
// deletes the entry outright; there is no partial-update path.
type CalculationCache interface {
	// Do returns the cached result or runs fetch, coalescing concurrent
	// callers for the same id into the single in-flight fetch. A result
	// from a fetch that was started before an invalidation is returned to
	// its waiters but not stored.
	Do(ctx context.Context, loanID string, fetch FetchFunc) (model.CalculationResult, error)

	// Invalidate deletes the cache entry, forcing the next read to
	// recompute from scratch.
	Invalidate(loanID string)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
