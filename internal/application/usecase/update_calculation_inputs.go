package usecase

import (
	"context"
	"fmt"

	"github.com/credsphere/loancalc-service/internal/application/dto"
	"github.com/credsphere/loancalc-service/internal/domain/event"
	"github.com/credsphere/loancalc-service/internal/domain/port"
	"github.com/credsphere/loancalc-service/internal/domain/valueobject"
)

// UpdateCalculationInputsUseCase pushes fee/interest parameter changes to
// the engine and invalidates the cached calculation.
type UpdateCalculationInputsUseCase struct {
	engine    port.CalculationEngine
	cache     port.CalculationCache
	publisher port.EventPublisher
}

// NewUpdateCalculationInputsUseCase wires dependencies.
func NewUpdateCalculationInputsUseCase(
	engine port.CalculationEngine,
	cache port.CalculationCache,
	publisher port.EventPublisher,
) *UpdateCalculationInputsUseCase {
	return &UpdateCalculationInputsUseCase{engine: engine, cache: cache, publisher: publisher}
}

// Execute validates and applies the parameter changes.
func (uc *UpdateCalculationInputsUseCase) Execute(
	ctx context.Context,
	req dto.UpdateCalculationInputsRequest,
) (dto.AckResponse, error) {
	if req.ProcessingFeePercent == nil && req.InterestPercentPerDay == nil {
		return dto.AckResponse{}, fmt.Errorf("no inputs given: %w", valueobject.ErrInvalidInput)
	}
	if req.ProcessingFeePercent != nil && req.ProcessingFeePercent.IsNegative() {
		return dto.AckResponse{}, fmt.Errorf("processing fee percent %s: %w", req.ProcessingFeePercent, valueobject.ErrInvalidInput)
	}
	if req.InterestPercentPerDay != nil && req.InterestPercentPerDay.IsNegative() {
		return dto.AckResponse{}, fmt.Errorf("interest percent per day %s: %w", req.InterestPercentPerDay, valueobject.ErrInvalidInput)
	}

	inputs := port.CalculationInputs{
		ProcessingFeePercent:  req.ProcessingFeePercent,
		InterestPercentPerDay: req.InterestPercentPerDay,
	}
	if err := uc.engine.UpdateCalculationInputs(ctx, req.LoanID, inputs); err != nil {
		return dto.AckResponse{}, fmt.Errorf("update inputs for loan %s: %w", req.LoanID, err)
	}

	uc.cache.Invalidate(req.LoanID)

	evt := event.NewCalculationInputsUpdated(req.LoanID, req.TenantID, req.ProcessingFeePercent, req.InterestPercentPerDay)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.AckResponse{}, fmt.Errorf("publish inputs update for loan %s: %w", req.LoanID, err)
	}

	return dto.AckResponse{LoanID: req.LoanID}, nil
}
