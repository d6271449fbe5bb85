package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/credsphere/loancalc-service/internal/application/dto"
	"github.com/credsphere/loancalc-service/internal/domain/event"
	"github.com/credsphere/loancalc-service/internal/domain/port"
	"github.com/credsphere/loancalc-service/internal/domain/valueobject"
)

// UpdateLoanAmountUseCase pushes a principal change to the engine and
// invalidates the cached calculation, forcing the next read to recompute.
type UpdateLoanAmountUseCase struct {
	engine    port.CalculationEngine
	cache     port.CalculationCache
	publisher port.EventPublisher
}

// NewUpdateLoanAmountUseCase wires dependencies.
func NewUpdateLoanAmountUseCase(
	engine port.CalculationEngine,
	cache port.CalculationCache,
	publisher port.EventPublisher,
) *UpdateLoanAmountUseCase {
	return &UpdateLoanAmountUseCase{engine: engine, cache: cache, publisher: publisher}
}

// Execute validates and applies the principal change. The cache entry is
// invalidated even though the engine call already succeeded; the stored
// result became stale the moment the engine accepted the new amount.
func (uc *UpdateLoanAmountUseCase) Execute(
	ctx context.Context,
	req dto.UpdateLoanAmountRequest,
) (dto.AckResponse, error) {
	if req.NewPrincipal.LessThanOrEqual(decimal.Zero) {
		return dto.AckResponse{}, fmt.Errorf("principal %s: %w", req.NewPrincipal, valueobject.ErrInvalidInput)
	}

	if err := uc.engine.UpdateLoanAmount(ctx, req.LoanID, req.NewPrincipal); err != nil {
		return dto.AckResponse{}, fmt.Errorf("update amount for loan %s: %w", req.LoanID, err)
	}

	uc.cache.Invalidate(req.LoanID)

	evt := event.NewLoanAmountUpdated(req.LoanID, req.TenantID, req.NewPrincipal)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.AckResponse{}, fmt.Errorf("publish amount update for loan %s: %w", req.LoanID, err)
	}

	return dto.AckResponse{LoanID: req.LoanID}, nil
}
