package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/credsphere/loancalc-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// GetCalculationRequest identifies a loan calculation to retrieve. A zero
// AsOf means "today".
type GetCalculationRequest struct {
	TenantID string    `json:"tenant_id"`
	LoanID   string    `json:"loan_id"`
	AsOf     time.Time `json:"as_of,omitempty"`
}

// InvalidateCalculationRequest identifies a cached calculation to drop.
type InvalidateCalculationRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
	Reason   string `json:"reason,omitempty"`
}

// UpdateLoanAmountRequest carries a principal change for the engine.
type UpdateLoanAmountRequest struct {
	TenantID     string          `json:"tenant_id"`
	LoanID       string          `json:"loan_id"`
	NewPrincipal decimal.Decimal `json:"new_principal"`
}

// UpdateCalculationInputsRequest carries engine-side parameter changes.
// Nil fields are left unchanged.
type UpdateCalculationInputsRequest struct {
	TenantID              string           `json:"tenant_id"`
	LoanID                string           `json:"loan_id"`
	ProcessingFeePercent  *decimal.Decimal `json:"processing_fee_percent,omitempty"`
	InterestPercentPerDay *decimal.Decimal `json:"interest_percent_per_day,omitempty"`
}

// GetPreCloseQuoteRequest identifies a loan to quote a pre-closure payoff
// for. A zero AsOf means "today".
type GetPreCloseQuoteRequest struct {
	TenantID string    `json:"tenant_id"`
	LoanID   string    `json:"loan_id"`
	AsOf     time.Time `json:"as_of,omitempty"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// CalculationState tells the caller how much to trust the attached result.
type CalculationState string

const (
	// CalculationStateReady means the result is authoritative: engine-backed
	// or read from a frozen snapshot.
	CalculationStateReady CalculationState = "READY"
	// CalculationStatePending means the engine result is not available yet;
	// any attached result is a local preview.
	CalculationStatePending CalculationState = "PENDING"
	// CalculationStateUnavailable means no trustworthy figure can be
	// produced. There is deliberately no approximate fallback.
	CalculationStateUnavailable CalculationState = "UNAVAILABLE"
)

// CalculationResponse wraps a calculation result with its trust state.
type CalculationResponse struct {
	State  CalculationState         `json:"state"`
	Result *model.CalculationResult `json:"result,omitempty"`
}

// PreCloseQuoteResponse is the payoff figure for settling a loan early.
type PreCloseQuoteResponse struct {
	LoanID string              `json:"loan_id"`
	AsOf   time.Time           `json:"as_of"`
	Quote  model.PreCloseQuote `json:"quote"`
}

// AckResponse acknowledges a mutation that carries no payload back.
type AckResponse struct {
	LoanID string `json:"loan_id"`
}
