package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/credsphere/loancalc-service/internal/application/dto"
	"github.com/credsphere/loancalc-service/internal/application/usecase"
	"github.com/credsphere/loancalc-service/internal/domain/valueobject"
	"github.com/credsphere/loancalc-service/internal/infrastructure/persistence/postgres"
)

const dateLayout = "2006-01-02"

// CalculationHandler exposes the calculation use cases over gRPC.
type CalculationHandler struct {
	UnimplementedCalculationServiceServer

	getCalc      *usecase.GetCalculationUseCase
	invalidate   *usecase.InvalidateCalculationUseCase
	updateAmount *usecase.UpdateLoanAmountUseCase
	updateInputs *usecase.UpdateCalculationInputsUseCase
	preClose     *usecase.GetPreCloseQuoteUseCase
}

// NewCalculationHandler creates a new handler with all use-case dependencies.
func NewCalculationHandler(
	getCalc *usecase.GetCalculationUseCase,
	invalidate *usecase.InvalidateCalculationUseCase,
	updateAmount *usecase.UpdateLoanAmountUseCase,
	updateInputs *usecase.UpdateCalculationInputsUseCase,
	preClose *usecase.GetPreCloseQuoteUseCase,
) *CalculationHandler {
	return &CalculationHandler{
		getCalc:      getCalc,
		invalidate:   invalidate,
		updateAmount: updateAmount,
		updateInputs: updateInputs,
		preClose:     preClose,
	}
}

// GetCalculation serves the cache-backed calculation read path.
func (h *CalculationHandler) GetCalculation(ctx context.Context, req *GetCalculationRequest) (*GetCalculationResponse, error) {
	asOf, err := parseDate(req.AsOf)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "as_of: %v", err)
	}

	resp, err := h.getCalc.Execute(ctx, dto.GetCalculationRequest{
		TenantID: req.TenantID,
		LoanID:   req.LoanID,
		AsOf:     asOf,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &GetCalculationResponse{Calculation: resp}, nil
}

// InvalidateCalculation drops the cached calculation for a loan.
func (h *CalculationHandler) InvalidateCalculation(ctx context.Context, req *InvalidateCalculationRequest) (*InvalidateCalculationResponse, error) {
	ack, err := h.invalidate.Execute(ctx, dto.InvalidateCalculationRequest{
		TenantID: req.TenantID,
		LoanID:   req.LoanID,
		Reason:   req.Reason,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &InvalidateCalculationResponse{LoanID: ack.LoanID}, nil
}

// UpdateLoanAmount changes the loan principal on the engine and drops the
// cached calculation.
func (h *CalculationHandler) UpdateLoanAmount(ctx context.Context, req *UpdateLoanAmountRequest) (*UpdateLoanAmountResponse, error) {
	principal, err := decimal.NewFromString(req.NewPrincipal)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "new_principal: %v", err)
	}

	ack, err := h.updateAmount.Execute(ctx, dto.UpdateLoanAmountRequest{
		TenantID:     req.TenantID,
		LoanID:       req.LoanID,
		NewPrincipal: principal,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &UpdateLoanAmountResponse{LoanID: ack.LoanID}, nil
}

// UpdateCalculationInputs changes engine-side parameters and drops the
// cached calculation.
func (h *CalculationHandler) UpdateCalculationInputs(ctx context.Context, req *UpdateCalculationInputsRequest) (*UpdateCalculationInputsResponse, error) {
	feePercent, err := parseOptionalDecimal(req.ProcessingFeePercent)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "processing_fee_percent: %v", err)
	}
	interestPercent, err := parseOptionalDecimal(req.InterestPercentPerDay)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "interest_percent_per_day: %v", err)
	}

	ack, err := h.updateInputs.Execute(ctx, dto.UpdateCalculationInputsRequest{
		TenantID:              req.TenantID,
		LoanID:                req.LoanID,
		ProcessingFeePercent:  feePercent,
		InterestPercentPerDay: interestPercent,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &UpdateCalculationInputsResponse{LoanID: ack.LoanID}, nil
}

// GetPreCloseQuote serves the early-settlement payoff quote.
func (h *CalculationHandler) GetPreCloseQuote(ctx context.Context, req *GetPreCloseQuoteRequest) (*GetPreCloseQuoteResponse, error) {
	asOf, err := parseDate(req.AsOf)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "as_of: %v", err)
	}

	quote, err := h.preClose.Execute(ctx, dto.GetPreCloseQuoteRequest{
		TenantID: req.TenantID,
		LoanID:   req.LoanID,
		AsOf:     asOf,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &GetPreCloseQuoteResponse{Quote: quote}, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func parseOptionalDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// mapError translates domain errors onto gRPC status codes.
func mapError(err error) error {
	switch {
	case errors.Is(err, postgres.ErrLoanNotFound), errors.Is(err, valueobject.ErrCalculationNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, valueobject.ErrCalculationPending):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, valueobject.ErrEngineUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
