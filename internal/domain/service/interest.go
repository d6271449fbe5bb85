package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/credsphere/loancalc-service/internal/domain/model"
	"github.com/credsphere/loancalc-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Interest accrual
// ---------------------------------------------------------------------------

// InterestTillDate computes simple daily interest over the inclusive day
// span from start to asOf:
//
//	principal * ratePerDay * InclusiveDays(start, asOf)
//
// ratePerDay is a fraction (0.001 = 0.1%/day).
func InterestTillDate(principal, ratePerDay decimal.Decimal, start, asOf time.Time) (decimal.Decimal, error) {
	if principal.LessThanOrEqual(decimal.Zero) || ratePerDay.IsNegative() {
		return decimal.Zero, valueobject.ErrInvalidInput
	}
	if start.IsZero() {
		return decimal.Zero, valueobject.ErrInvalidInput
	}
	days := InclusiveDays(start, asOf)
	return principal.Mul(ratePerDay).Mul(decimal.NewFromInt(int64(days))), nil
}

// TotalInterestFullTenure resolves the aggregate interest over the loan's
// full tenure. The engine already accrues across EMI boundaries, so its
// aggregate is preferred; recomputing on this side is a last resort.
//
// Resolution order:
//  1. the engine-provided aggregate, when positive;
//  2. the sum of per-period interest across the raw EMI schedule;
//  3. the single full-tenure formula from disbursal to due date.
//
// An undisbursed loan resolves to zero unless the engine supplies an
// aggregate: steps 2 and 3 both need the disbursal date as the accrual start.
func TotalInterestFullTenure(loan model.Loan, engine *model.EngineCalculation) (decimal.Decimal, error) {
	if engine != nil && engine.TotalInterestFullTenure.IsPositive() {
		return engine.TotalInterestFullTenure, nil
	}

	// Plan terms (due date, schedule) may be set before money moves. Until
	// disbursal anchors the accrual start there is no tenure to price yet.
	if loan.DisbursedDate().IsZero() {
		return decimal.Zero, nil
	}

	if schedule := loan.EmiSchedule(); len(schedule) > 0 {
		return sumSchedulePeriodInterest(loan, schedule)
	}

	if loan.DueDate().IsZero() {
		return decimal.Zero, valueobject.ErrInvalidInput
	}
	return InterestTillDate(loan.Principal(), loan.RatePerDay(), loan.DisbursedDate(), loan.DueDate())
}

// sumSchedulePeriodInterest accrues interest per EMI period: the first
// period runs from disbursal to the first due date, each subsequent period
// from the day after the previous due date.
func sumSchedulePeriodInterest(loan model.Loan, schedule []model.RawEmiEntry) (decimal.Decimal, error) {
	total := decimal.Zero
	start := loan.DisbursedDate()
	for _, entry := range schedule {
		periodInterest, err := InterestTillDate(loan.Principal(), loan.RatePerDay(), start, entry.DueDate)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(periodInterest)
		start = entry.DueDate.AddDate(0, 0, 1)
	}
	return total, nil
}

// AccruedInterest computes interest from disbursal till asOf and returns
// the exhausted (inclusive) day count alongside.
func AccruedInterest(loan model.Loan, asOf time.Time) (decimal.Decimal, int, error) {
	start := loan.DisbursedDate()
	if start.IsZero() {
		return decimal.Zero, 0, valueobject.ErrInvalidInput
	}
	days := InclusiveDays(start, asOf)
	interest, err := InterestTillDate(loan.Principal(), loan.RatePerDay(), start, asOf)
	if err != nil {
		return decimal.Zero, 0, err
	}
	return interest, days, nil
}
