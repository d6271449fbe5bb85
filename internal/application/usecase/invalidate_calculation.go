package usecase

import (
	"context"
	"fmt"

	"github.com/credsphere/loancalc-service/internal/application/dto"
	"github.com/credsphere/loancalc-service/internal/domain/event"
	"github.com/credsphere/loancalc-service/internal/domain/port"
)

// InvalidateCalculationUseCase drops a loan's cached calculation. The entry
// is deleted, never patched: the next read recomputes from scratch, which
// eliminates the whole class of stale-field bugs a partial update invites.
type InvalidateCalculationUseCase struct {
	cache     port.CalculationCache
	publisher port.EventPublisher
}

// NewInvalidateCalculationUseCase wires dependencies.
func NewInvalidateCalculationUseCase(
	cache port.CalculationCache,
	publisher port.EventPublisher,
) *InvalidateCalculationUseCase {
	return &InvalidateCalculationUseCase{cache: cache, publisher: publisher}
}

// Execute deletes the cache entry and announces the invalidation.
func (uc *InvalidateCalculationUseCase) Execute(
	ctx context.Context,
	req dto.InvalidateCalculationRequest,
) (dto.AckResponse, error) {
	uc.cache.Invalidate(req.LoanID)

	evt := event.NewCalculationInvalidated(req.LoanID, req.TenantID, req.Reason)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.AckResponse{}, fmt.Errorf("publish invalidation for loan %s: %w", req.LoanID, err)
	}

	return dto.AckResponse{LoanID: req.LoanID}, nil
}
