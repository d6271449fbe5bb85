package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/credsphere/loancalc-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan aggregate root (calculation inputs)
// ---------------------------------------------------------------------------

// FeeComponent is one line of a loan's stored fee breakdown. The base amount
// and its GST are always carried separately; a "total including GST" never
// appears here because summing it with a separate GST line double-counts tax.
type FeeComponent struct {
	Name      string          `json:"name"`
	Base      decimal.Decimal `json:"base_amount"`
	GST       decimal.Decimal `json:"gst_amount"`
}

// ProcessedSnapshot captures the calculation figures frozen when a loan
// entered servicing (ACCOUNT_MANAGER) or was cleared. Once set it is
// immutable; no component may recompute the frozen fields.
type ProcessedSnapshot struct {
	Principal      decimal.Decimal `json:"principal"`
	Interest       decimal.Decimal `json:"interest"`
	Penalty        decimal.Decimal `json:"penalty"`
	GST            decimal.Decimal `json:"gst"`
	ProcessingFee  decimal.Decimal `json:"processing_fee"`
	PostServiceFee decimal.Decimal `json:"post_service_fee"`
	DueDate        time.Time       `json:"due_date"`
}

// RawEmiEntry is one scheduled instalment as recorded by the servicing
// platform, before penalty injection.
type RawEmiEntry struct {
	Number  int             `json:"emi_number"`
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"emi_amount"`
	Status  string          `json:"status"`
}

// EmiStatusPaid marks an instalment that has a qualifying payment; unpaid
// entries past their due date accrue penalty.
const EmiStatusPaid = "PAID"

// Loan is an immutable aggregate holding everything the calculators need.
// It is reconstructed from persistence; this subsystem never mutates it.
type Loan struct {
	id                    string
	tenantID              string
	principal             decimal.Decimal
	status                valueobject.LoanStatus
	disbursedDate         time.Time // zero = not yet disbursed
	dueDate               time.Time // zero = no due date assigned
	ratePerDay            decimal.Decimal // daily rate as a fraction, 0.001 = 0.1%/day
	feesBreakdown         []FeeComponent
	storedDisbursalAmount decimal.NullDecimal
	processedSnapshot     *ProcessedSnapshot
	emiSchedule           []RawEmiEntry
	version               int
	createdAt             time.Time
	updatedAt             time.Time
}

// ReconstructLoan rebuilds a Loan aggregate from persistence. Validation
// errors are returned for inputs the calculators must reject rather than
// coerce.
func ReconstructLoan(
	id, tenantID string,
	principal decimal.Decimal,
	status valueobject.LoanStatus,
	disbursedDate, dueDate time.Time,
	ratePerDay decimal.Decimal,
	feesBreakdown []FeeComponent,
	storedDisbursalAmount decimal.NullDecimal,
	processedSnapshot *ProcessedSnapshot,
	emiSchedule []RawEmiEntry,
	version int,
	createdAt, updatedAt time.Time,
) (Loan, error) {
	if id == "" {
		return Loan{}, valueobject.ErrInvalidInput
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return Loan{}, valueobject.ErrInvalidInput
	}
	if ratePerDay.IsNegative() {
		return Loan{}, valueobject.ErrInvalidInput
	}
	if status.IsZero() {
		return Loan{}, valueobject.ErrInvalidInput
	}

	return Loan{
		id:                    id,
		tenantID:              tenantID,
		principal:             principal,
		status:                status,
		disbursedDate:         disbursedDate,
		dueDate:               dueDate,
		ratePerDay:            ratePerDay,
		feesBreakdown:         copyFees(feesBreakdown),
		storedDisbursalAmount: storedDisbursalAmount,
		processedSnapshot:     copySnapshot(processedSnapshot),
		emiSchedule:           copySchedule(emiSchedule),
		version:               version,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}, nil
}

// ---------------------------------------------------------------------------
// Calculation basis
// ---------------------------------------------------------------------------

// CalculationBasis is the tagged state that decides whether figures are
// recomputed or read from the processed snapshot. Deriving it once, up
// front, keeps the freeze rule out of every individual formula.
type CalculationBasis struct {
	snapshot *ProcessedSnapshot
}

// Frozen reports whether the basis is the immutable processed snapshot.
func (b CalculationBasis) Frozen() bool { return b.snapshot != nil }

// Snapshot returns the frozen figures. Only valid when Frozen is true.
func (b CalculationBasis) Snapshot() ProcessedSnapshot { return *b.snapshot }

// Basis derives the calculation basis for this loan. A loan in servicing
// (ACCOUNT_MANAGER or CLEARED) with a processed snapshot is frozen, unless
// it is simultaneously in a repeat-disbursal cycle, in which case a fresh
// cycle is underway and the snapshot belongs to the previous one.
func (l Loan) Basis() CalculationBasis {
	if l.processedSnapshot == nil {
		return CalculationBasis{}
	}
	if !l.status.IsServicing() {
		return CalculationBasis{}
	}
	if l.status.IsRepeatDisbursal() {
		return CalculationBasis{}
	}
	return CalculationBasis{snapshot: copySnapshot(l.processedSnapshot)}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                                  { return l.id }
func (l Loan) TenantID() string                            { return l.tenantID }
func (l Loan) Principal() decimal.Decimal                  { return l.principal }
func (l Loan) Status() valueobject.LoanStatus              { return l.status }
func (l Loan) DisbursedDate() time.Time                    { return l.disbursedDate }
func (l Loan) DueDate() time.Time                          { return l.dueDate }
func (l Loan) RatePerDay() decimal.Decimal                 { return l.ratePerDay }
func (l Loan) StoredDisbursalAmount() decimal.NullDecimal  { return l.storedDisbursalAmount }
func (l Loan) Version() int                                { return l.version }
func (l Loan) CreatedAt() time.Time                        { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                        { return l.updatedAt }

// IsDisbursed reports whether principal has been released to the borrower.
func (l Loan) IsDisbursed() bool { return !l.disbursedDate.IsZero() }

// IsMultiInstalment reports whether the loan repays over more than one EMI.
func (l Loan) IsMultiInstalment() bool { return len(l.emiSchedule) > 1 }

// FeesBreakdown returns a copy of the stored fee lines.
func (l Loan) FeesBreakdown() []FeeComponent { return copyFees(l.feesBreakdown) }

// EmiSchedule returns a copy of the raw instalment schedule.
func (l Loan) EmiSchedule() []RawEmiEntry { return copySchedule(l.emiSchedule) }

// ProcessedSnapshot returns a copy of the frozen figures, or nil.
func (l Loan) ProcessedSnapshot() *ProcessedSnapshot { return copySnapshot(l.processedSnapshot) }

func copyFees(in []FeeComponent) []FeeComponent {
	if in == nil {
		return nil
	}
	out := make([]FeeComponent, len(in))
	copy(out, in)
	return out
}

func copySchedule(in []RawEmiEntry) []RawEmiEntry {
	if in == nil {
		return nil
	}
	out := make([]RawEmiEntry, len(in))
	copy(out, in)
	return out
}

func copySnapshot(in *ProcessedSnapshot) *ProcessedSnapshot {
	if in == nil {
		return nil
	}
	s := *in
	return &s
}
