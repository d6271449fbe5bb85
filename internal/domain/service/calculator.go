package service

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/credsphere/loancalc-service/internal/domain/model"
	"github.com/credsphere/loancalc-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Calculator – assembles a full CalculationResult from a loan, an as-of
// date, and (optionally) the remote engine's figures.
// ---------------------------------------------------------------------------

// Calculator derives the complete money view of a loan. It is a pure domain
// service: same inputs, same output, no I/O.
type Calculator struct{}

// NewCalculator creates a Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Build assembles the calculation result as of the given date. When engine
// is nil the result is a local preview: permitted for non-frozen loans
// while the authoritative figures are still in flight, and never a
// substitute for them.
//
// Frozen loans are built exclusively from the processed snapshot; passing
// engine figures for one is a recompute attempt and returns
// ErrFrozenSnapshot.
func (c *Calculator) Build(loan model.Loan, asOf time.Time, engine *model.EngineCalculation) (model.CalculationResult, error) {
	if asOf.IsZero() {
		return model.CalculationResult{}, valueobject.ErrInvalidInput
	}

	if basis := loan.Basis(); basis.Frozen() {
		if engine != nil {
			return model.CalculationResult{}, valueobject.ErrFrozenSnapshot
		}
		return c.buildFrozen(loan, asOf, basis.Snapshot())
	}
	return c.buildActive(loan, asOf, engine)
}

func (c *Calculator) buildFrozen(loan model.Loan, asOf time.Time, snap model.ProcessedSnapshot) (model.CalculationResult, error) {
	disbursal, _, err := ResolveDisbursalAmount(loan, nil)
	if err != nil {
		return model.CalculationResult{}, err
	}

	processing := model.FeeLine{Name: FeeCategoryProcessing.Name(), Base: snap.ProcessingFee, GST: decimal.Zero}
	postService := model.FeeLine{Name: FeeCategoryPostService.Name(), Base: snap.PostServiceFee, GST: decimal.Zero}

	penalty := model.PenaltyBreakdown{
		DPD:   DaysPastDue(snap.DueDate, asOf),
		Base:  snap.Penalty,
		GST:   snap.GST,
		Total: snap.Penalty.Add(snap.GST),
	}

	// The raw schedule is passed through untouched: penalty injection is a
	// recomputation and frozen figures are read, not derived.
	schedule := passthroughSchedule(loan.EmiSchedule())

	totalRepayable := snap.Principal.
		Add(snap.Interest).
		Add(penalty.Total).
		Add(snap.PostServiceFee)

	return model.CalculationResult{
		LoanID:    loan.ID(),
		AsOf:      civil(asOf),
		Principal: snap.Principal,
		Interest: model.InterestBreakdown{
			RatePerDay:              loan.RatePerDay(),
			ExhaustedDays:           exhaustedDays(loan, asOf),
			TotalInterestFullTenure: snap.Interest,
			InterestTillToday:       snap.Interest,
		},
		Penalty: penalty,
		Fees: model.FeeBreakdown{
			DeductFromDisbursal: []model.FeeLine{processing},
			AddToTotal:          []model.FeeLine{postService},
		},
		Totals: model.FeeTotals{
			DisbursalFee:    processing.Base,
			DisbursalFeeGST: processing.GST,
			RepayableFee:    postService.Base,
			RepayableFeeGST: postService.GST,
		},
		DisbursalAmount: disbursal,
		Schedule:        schedule,
		TotalRepayable:  totalRepayable,
		PreClose:        PreClose(snap.Principal, snap.Interest),
		Frozen:          true,
	}, nil
}

func (c *Calculator) buildActive(loan model.Loan, asOf time.Time, engine *model.EngineCalculation) (model.CalculationResult, error) {
	var (
		interestTillToday = decimal.Zero
		days              int
		err               error
	)
	if loan.IsDisbursed() {
		interestTillToday, days, err = AccruedInterest(loan, asOf)
		if err != nil {
			return model.CalculationResult{}, err
		}
	}

	totalInterest := decimal.Zero
	if loan.IsDisbursed() || !loan.DueDate().IsZero() {
		totalInterest, err = TotalInterestFullTenure(loan, engine)
		if err != nil {
			return model.CalculationResult{}, err
		}
	}

	dpd := 0
	if loan.IsDisbursed() && !loan.DueDate().IsZero() {
		dpd = DaysPastDue(loan.DueDate(), asOf)
	}
	penalty := PenaltyForDPD(loan.Principal(), dpd)

	legacy := model.FeeTotals{}
	if engine != nil {
		legacy = engine.Totals
	}
	fees := ResolveFees(loan, engine, legacy)
	processing := fees.DeductFromDisbursal[0]
	postService := fees.AddToTotal[0]

	disbursal, _, err := ResolveDisbursalAmount(loan, engine)
	if err != nil && !errors.Is(err, valueobject.ErrCalculationPending) {
		return model.CalculationResult{}, err
	}

	schedule := BuildSchedule(loan, asOf)
	totalRepayable := TotalRepayable(loan, schedule, postService, totalInterest, penalty)

	return model.CalculationResult{
		LoanID:    loan.ID(),
		AsOf:      civil(asOf),
		Principal: loan.Principal(),
		Interest: model.InterestBreakdown{
			RatePerDay:              loan.RatePerDay(),
			ExhaustedDays:           days,
			TotalInterestFullTenure: totalInterest,
			InterestTillToday:       interestTillToday,
		},
		Penalty: penalty,
		Fees:    fees,
		Totals: model.FeeTotals{
			DisbursalFee:    processing.Base,
			DisbursalFeeGST: processing.GST,
			RepayableFee:    postService.Base,
			RepayableFeeGST: postService.GST,
		},
		DisbursalAmount: disbursal,
		Schedule:        schedule,
		TotalRepayable:  totalRepayable,
		PreClose:        PreClose(loan.Principal(), interestTillToday),
		Preview:         engine == nil,
	}, nil
}

func exhaustedDays(loan model.Loan, asOf time.Time) int {
	if !loan.IsDisbursed() {
		return 0
	}
	return InclusiveDays(loan.DisbursedDate(), asOf)
}

func passthroughSchedule(raw []model.RawEmiEntry) []model.EmiScheduleEntry {
	if len(raw) == 0 {
		return nil
	}
	out := make([]model.EmiScheduleEntry, 0, len(raw))
	for _, entry := range raw {
		out = append(out, model.EmiScheduleEntry{
			Number:           entry.Number,
			DueDate:          entry.DueDate,
			BaseEmiAmount:    entry.Amount,
			PenaltyBase:      decimal.Zero,
			PenaltyGST:       decimal.Zero,
			InstalmentAmount: entry.Amount,
			Status:           entry.Status,
		})
	}
	return out
}
