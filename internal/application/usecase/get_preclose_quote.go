package usecase

import (
	"context"
	"fmt"

	"github.com/credsphere/loancalc-service/internal/application/dto"
	"github.com/credsphere/loancalc-service/internal/domain/valueobject"
)

// GetPreCloseQuoteUseCase derives the early-settlement payoff figure from a
// ready calculation.
type GetPreCloseQuoteUseCase struct {
	getCalculation *GetCalculationUseCase
}

// NewGetPreCloseQuoteUseCase wires dependencies.
func NewGetPreCloseQuoteUseCase(getCalculation *GetCalculationUseCase) *GetPreCloseQuoteUseCase {
	return &GetPreCloseQuoteUseCase{getCalculation: getCalculation}
}

// Execute returns the pre-closure quote. A quote is only issued off an
// authoritative calculation; a preview is not a figure to settle money on.
func (uc *GetPreCloseQuoteUseCase) Execute(
	ctx context.Context,
	req dto.GetPreCloseQuoteRequest,
) (dto.PreCloseQuoteResponse, error) {
	resp, err := uc.getCalculation.Execute(ctx, dto.GetCalculationRequest{
		TenantID: req.TenantID,
		LoanID:   req.LoanID,
		AsOf:     req.AsOf,
	})
	if err != nil {
		return dto.PreCloseQuoteResponse{}, err
	}
	if resp.State != dto.CalculationStateReady {
		return dto.PreCloseQuoteResponse{}, fmt.Errorf("quote for loan %s: %w", req.LoanID, valueobject.ErrCalculationPending)
	}

	return dto.PreCloseQuoteResponse{
		LoanID: req.LoanID,
		AsOf:   resp.Result.AsOf,
		Quote:  resp.Result.PreClose,
	}, nil
}
