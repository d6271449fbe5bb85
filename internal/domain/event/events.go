package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainEvent is implemented by all events this subsystem publishes.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	TenantID() string
	OccurredAt() time.Time
}

// baseEvent provides the common envelope fields.
type baseEvent struct {
	ID     string    `json:"event_id"`
	Type   string    `json:"event_type"`
	LoanID string    `json:"loan_id"`
	Tenant string    `json:"tenant_id"`
	At     time.Time `json:"occurred_at"`
}

func newBaseEvent(eventType, loanID, tenantID string) baseEvent {
	return baseEvent{
		ID:     uuid.New().String(),
		Type:   eventType,
		LoanID: loanID,
		Tenant: tenantID,
		At:     time.Now().UTC(),
	}
}

func (e baseEvent) EventID() string       { return e.ID }
func (e baseEvent) EventType() string     { return e.Type }
func (e baseEvent) AggregateID() string   { return e.LoanID }
func (e baseEvent) TenantID() string      { return e.Tenant }
func (e baseEvent) OccurredAt() time.Time { return e.At }

// ---------------------------------------------------------------------------
// Calculation events
// ---------------------------------------------------------------------------

const (
	EventTypeCalculationInvalidated   = "loancalc.calculation.invalidated"
	EventTypeLoanAmountUpdated        = "loancalc.loan.amount_updated"
	EventTypeCalculationInputsUpdated = "loancalc.calculation.inputs_updated"
)

// CalculationInvalidated is raised when a loan's cached calculation is
// deleted, for whatever reason, so downstream views can drop theirs too.
type CalculationInvalidated struct {
	baseEvent
	Reason string `json:"reason"`
}

func NewCalculationInvalidated(loanID, tenantID, reason string) CalculationInvalidated {
	return CalculationInvalidated{
		baseEvent: newBaseEvent(EventTypeCalculationInvalidated, loanID, tenantID),
		Reason:    reason,
	}
}

// LoanAmountUpdated is raised after the engine accepted a principal change.
type LoanAmountUpdated struct {
	baseEvent
	NewPrincipal decimal.Decimal `json:"new_principal"`
}

func NewLoanAmountUpdated(loanID, tenantID string, newPrincipal decimal.Decimal) LoanAmountUpdated {
	return LoanAmountUpdated{
		baseEvent:    newBaseEvent(EventTypeLoanAmountUpdated, loanID, tenantID),
		NewPrincipal: newPrincipal,
	}
}

// CalculationInputsUpdated is raised after the engine accepted new fee or
// interest parameters.
type CalculationInputsUpdated struct {
	baseEvent
	ProcessingFeePercent  *decimal.Decimal `json:"processing_fee_percent,omitempty"`
	InterestPercentPerDay *decimal.Decimal `json:"interest_percent_per_day,omitempty"`
}

func NewCalculationInputsUpdated(loanID, tenantID string, processingFeePercent, interestPercentPerDay *decimal.Decimal) CalculationInputsUpdated {
	return CalculationInputsUpdated{
		baseEvent:             newBaseEvent(EventTypeCalculationInputsUpdated, loanID, tenantID),
		ProcessingFeePercent:  processingFeePercent,
		InterestPercentPerDay: interestPercentPerDay,
	}
}
