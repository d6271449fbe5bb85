package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/credsphere/loancalc-service/internal/application/dto"
	"github.com/credsphere/loancalc-service/internal/domain/model"
	"github.com/credsphere/loancalc-service/internal/domain/port"
	"github.com/credsphere/loancalc-service/internal/domain/service"
	"github.com/credsphere/loancalc-service/internal/domain/valueobject"
)

// GetCalculationUseCase serves the cache-backed calculation read path.
type GetCalculationUseCase struct {
	loanRepo   port.LoanRepository
	engine     port.CalculationEngine
	cache      port.CalculationCache
	calculator *service.Calculator
	now        func() time.Time
}

// NewGetCalculationUseCase wires dependencies.
func NewGetCalculationUseCase(
	loanRepo port.LoanRepository,
	engine port.CalculationEngine,
	cache port.CalculationCache,
	calculator *service.Calculator,
) *GetCalculationUseCase {
	return &GetCalculationUseCase{
		loanRepo:   loanRepo,
		engine:     engine,
		cache:      cache,
		calculator: calculator,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source. Intended for tests.
func (uc *GetCalculationUseCase) WithClock(now func() time.Time) *GetCalculationUseCase {
	uc.now = now
	return uc
}

// Execute returns the calculation for a loan. Repeated calls without an
// intervening invalidation are served from the cache and issue at most one
// engine request; concurrent callers coalesce onto a single fetch.
//
// When the engine is unreachable, non-frozen loans get a locally computed
// preview in PENDING state; the preview is never cached and never
// overwrites an engine-backed result. Frozen loans whose figures cannot be
// produced surface UNAVAILABLE rather than a guessed figure.
func (uc *GetCalculationUseCase) Execute(
	ctx context.Context,
	req dto.GetCalculationRequest,
) (dto.CalculationResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return dto.CalculationResponse{}, fmt.Errorf("find loan: %w", err)
	}

	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = uc.now()
	}

	result, err := uc.cache.Do(ctx, loan.ID(), func(ctx context.Context) (model.CalculationResult, error) {
		return uc.fetch(ctx, loan, asOf)
	})
	if err == nil {
		return dto.CalculationResponse{State: dto.CalculationStateReady, Result: &result}, nil
	}

	if errors.Is(err, valueobject.ErrEngineUnavailable) || errors.Is(err, valueobject.ErrCalculationNotFound) {
		return uc.degraded(loan, asOf)
	}
	return dto.CalculationResponse{}, fmt.Errorf("calculate loan %s: %w", loan.ID(), err)
}

// fetch produces the authoritative result. Frozen loans never touch the
// engine: their figures are read from the processed snapshot.
func (uc *GetCalculationUseCase) fetch(ctx context.Context, loan model.Loan, asOf time.Time) (model.CalculationResult, error) {
	if loan.Basis().Frozen() {
		return uc.calculator.Build(loan, asOf, nil)
	}

	engineCalc, err := uc.engine.GetLoanCalculation(ctx, loan.ID())
	if err != nil {
		return model.CalculationResult{}, err
	}
	return uc.calculator.Build(loan, asOf, &engineCalc)
}

// degraded handles an unreachable or empty engine: a preview for active
// loans, UNAVAILABLE otherwise. Previews bypass the cache entirely.
func (uc *GetCalculationUseCase) degraded(loan model.Loan, asOf time.Time) (dto.CalculationResponse, error) {
	if loan.Basis().Frozen() {
		return dto.CalculationResponse{State: dto.CalculationStateUnavailable}, nil
	}

	preview, err := uc.calculator.Build(loan, asOf, nil)
	if err != nil {
		return dto.CalculationResponse{State: dto.CalculationStateUnavailable}, nil
	}
	return dto.CalculationResponse{State: dto.CalculationStatePending, Result: &preview}, nil
}
