package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/credsphere/loancalc-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// EMI schedule assembly
// ---------------------------------------------------------------------------

var (
	preCloseFeeRate = decimal.NewFromFloat(0.10)
)

// BuildSchedule merges the raw instalment entries with per-period penalty.
// An unpaid entry whose due date is strictly before asOf accrues penalty on
// its own elapsed days past due; the instalment amount becomes
// base + penaltyBase + penaltyGST.
func BuildSchedule(loan model.Loan, asOf time.Time) []model.EmiScheduleEntry {
	raw := loan.EmiSchedule()
	if len(raw) == 0 {
		return nil
	}

	out := make([]model.EmiScheduleEntry, 0, len(raw))
	for _, entry := range raw {
		built := model.EmiScheduleEntry{
			Number:           entry.Number,
			DueDate:          entry.DueDate,
			BaseEmiAmount:    entry.Amount,
			PenaltyBase:      decimal.Zero,
			PenaltyGST:       decimal.Zero,
			InstalmentAmount: entry.Amount,
			Status:           entry.Status,
		}

		overdue := DaysDifference(entry.DueDate, asOf) > 0
		if overdue && entry.Status != model.EmiStatusPaid {
			penalty := PenaltyForDPD(loan.Principal(), DaysPastDue(entry.DueDate, asOf))
			built.PenaltyBase = penalty.Base
			built.PenaltyGST = penalty.GST
			built.InstalmentAmount = entry.Amount.Add(penalty.Base).Add(penalty.GST)
		}

		out = append(out, built)
	}
	return out
}

// TotalRepayable derives the total amount owed over the loan's life.
// Multi-instalment loans sum the penalty-adjusted instalments; single
// instalment loans are principal + post-service fee (+GST) + full-tenure
// interest + penalty.
func TotalRepayable(
	loan model.Loan,
	schedule []model.EmiScheduleEntry,
	postServiceFee model.FeeLine,
	totalInterestFullTenure decimal.Decimal,
	penalty model.PenaltyBreakdown,
) decimal.Decimal {
	if len(schedule) > 1 {
		total := decimal.Zero
		for _, entry := range schedule {
			total = total.Add(entry.InstalmentAmount)
		}
		return total
	}

	return loan.Principal().
		Add(postServiceFee.Base).
		Add(postServiceFee.GST).
		Add(totalInterestFullTenure).
		Add(penalty.Total)
}

// round2 rounds to two decimal places, half away from zero.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PreClose derives the payoff figure to settle the loan before its natural
// due date. Each intermediate is rounded to two decimals before the final
// sum, not only the result, because the rounding order changes the payoff
// by paisa amounts and the figure must reconcile exactly.
func PreClose(principal, interestTillToday decimal.Decimal) model.PreCloseQuote {
	fee := round2(principal.Mul(preCloseFeeRate))
	feeGST := round2(fee.Mul(gstRate))
	interest := round2(interestTillToday)
	amount := round2(principal.Add(interest).Add(fee).Add(feeGST))
	return model.PreCloseQuote{
		Fee:               fee,
		FeeGST:            feeGST,
		InterestTillToday: interest,
		Amount:            amount,
	}
}
