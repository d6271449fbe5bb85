package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// CalculationResult – derived, never persisted by this subsystem
// ---------------------------------------------------------------------------

// InterestBreakdown describes accrued interest on a loan.
type InterestBreakdown struct {
	RatePerDay              decimal.Decimal `json:"rate_per_day"`
	ExhaustedDays           int             `json:"exhausted_days"`
	TotalInterestFullTenure decimal.Decimal `json:"total_interest_full_tenure"`
	InterestTillToday       decimal.Decimal `json:"interest_till_today"`
}

// PenaltyBreakdown describes the days-past-due penalty and its GST.
type PenaltyBreakdown struct {
	DPD   int             `json:"dpd"`
	Base  decimal.Decimal `json:"base"`
	GST   decimal.Decimal `json:"gst"`
	Total decimal.Decimal `json:"total"`
}

// FeeLine is one resolved fee with its GST carried as a separate line.
type FeeLine struct {
	Name string          `json:"name"`
	Base decimal.Decimal `json:"base"`
	GST  decimal.Decimal `json:"gst"`
}

// FeeBreakdown splits resolved fees by where they apply: deducted from the
// disbursal payout versus added to the total repayable.
type FeeBreakdown struct {
	DeductFromDisbursal []FeeLine `json:"deduct_from_disbursal,omitempty"`
	AddToTotal          []FeeLine `json:"add_to_total,omitempty"`
}

// FeeTotals carries the aggregate fee figures. These also act as the legacy
// fallback source for the fee resolver when no itemized line matches.
type FeeTotals struct {
	DisbursalFee    decimal.Decimal `json:"disbursal_fee"`
	DisbursalFeeGST decimal.Decimal `json:"disbursal_fee_gst"`
	RepayableFee    decimal.Decimal `json:"repayable_fee"`
	RepayableFeeGST decimal.Decimal `json:"repayable_fee_gst"`
}

// EmiScheduleEntry is one instalment with penalty injected for overdue
// unpaid periods.
type EmiScheduleEntry struct {
	Number           int             `json:"emi_number"`
	DueDate          time.Time       `json:"due_date"`
	BaseEmiAmount    decimal.Decimal `json:"base_emi_amount"`
	PenaltyBase      decimal.Decimal `json:"penalty_base"`
	PenaltyGST       decimal.Decimal `json:"penalty_gst"`
	InstalmentAmount decimal.Decimal `json:"instalment_amount"`
	Status           string          `json:"status"`
}

// PreCloseQuote is the payoff figure to settle a loan before its due date.
// Every intermediate is rounded to two decimals before the final sum; the
// rounding order is part of the reconciliation contract.
type PreCloseQuote struct {
	Fee               decimal.Decimal `json:"fee"`
	FeeGST            decimal.Decimal `json:"fee_gst"`
	InterestTillToday decimal.Decimal `json:"interest_till_today"`
	Amount            decimal.Decimal `json:"amount"`
}

// CalculationResult is the full derived money view of a loan as of a date.
type CalculationResult struct {
	LoanID          string              `json:"loan_id"`
	AsOf            time.Time           `json:"as_of"`
	Principal       decimal.Decimal     `json:"principal"`
	Interest        InterestBreakdown   `json:"interest"`
	Penalty         PenaltyBreakdown    `json:"penalty"`
	Fees            FeeBreakdown        `json:"fees"`
	Totals          FeeTotals           `json:"totals"`
	DisbursalAmount decimal.NullDecimal `json:"disbursal_amount"`
	Schedule        []EmiScheduleEntry  `json:"schedule,omitempty"`
	TotalRepayable  decimal.Decimal     `json:"total_repayable"`
	PreClose        PreCloseQuote       `json:"pre_close"`

	// Frozen marks figures read from the processed snapshot.
	Frozen bool `json:"frozen"`
	// Preview marks locally computed figures produced before the engine
	// result arrived. A preview never overwrites a fetched result.
	Preview bool `json:"preview,omitempty"`
}

// ---------------------------------------------------------------------------
// EngineCalculation – payload returned by the remote calculation engine
// ---------------------------------------------------------------------------

// EngineFee is one itemized fee line from the engine.
type EngineFee struct {
	Name string          `json:"name"`
	Base decimal.Decimal `json:"base_amount"`
	GST  decimal.Decimal `json:"gst_amount"`
	// Total including GST is reported by older engine versions; it is
	// deliberately never used as a base amount.
	TotalWithGST decimal.Decimal `json:"total_with_gst"`
}

// EngineCalculation is the authoritative figure set from the remote engine.
type EngineCalculation struct {
	LoanID                  string              `json:"loan_id"`
	TotalInterestFullTenure decimal.Decimal     `json:"total_interest_full_tenure"`
	Fees                    []EngineFee         `json:"fees"`
	Totals                  FeeTotals           `json:"totals"`
	DisbursalAmount         decimal.NullDecimal `json:"disbursal_amount"`
	TotalRepayable          decimal.Decimal     `json:"total_repayable"`
}
