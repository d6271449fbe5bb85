package service

import (
	"github.com/shopspring/decimal"

	"github.com/credsphere/loancalc-service/internal/domain/model"
)

// GST rate applied to fees and penalties in this domain.
var gstRate = decimal.NewFromFloat(0.18)

var (
	hundred          = decimal.NewFromInt(100)
	firstDayPercent  = decimal.NewFromInt(5)
	earlyTierPercent = decimal.NewFromInt(1)
	lateTierBase     = decimal.NewFromInt(9)
	lateTierStep     = decimal.NewFromFloat(0.6)
)

// PenaltyPercent returns the penalty as a percentage of principal for the
// given days past due. The schedule is tiered:
//
//	dpd <= 0      -> 0
//	dpd == 1      -> 5
//	2..10         -> 1 * (dpd - 1)
//	11..120       -> 9 + 0.6 * (dpd - 10)
//	dpd > 120     -> 0 (recovery moves to collections; no further accrual)
func PenaltyPercent(dpd int) decimal.Decimal {
	switch {
	case dpd <= 0:
		return decimal.Zero
	case dpd == 1:
		return firstDayPercent
	case dpd <= 10:
		return earlyTierPercent.Mul(decimal.NewFromInt(int64(dpd - 1)))
	case dpd <= 120:
		return lateTierBase.Add(lateTierStep.Mul(decimal.NewFromInt(int64(dpd - 10))))
	default:
		return decimal.Zero
	}
}

// PenaltyForDPD computes the full penalty breakdown on a principal for the
// given days past due. GST is carried as its own line at 18%.
func PenaltyForDPD(principal decimal.Decimal, dpd int) model.PenaltyBreakdown {
	if dpd < 0 {
		dpd = 0
	}
	base := principal.Mul(PenaltyPercent(dpd)).Div(hundred)
	gst := base.Mul(gstRate)
	return model.PenaltyBreakdown{
		DPD:   dpd,
		Base:  base,
		GST:   gst,
		Total: base.Add(gst),
	}
}

// GSTOn returns the 18% GST line for a fee or penalty base amount.
func GSTOn(base decimal.Decimal) decimal.Decimal {
	return base.Mul(gstRate)
}
