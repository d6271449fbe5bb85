package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/credsphere/loancalc-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Fee resolution
// ---------------------------------------------------------------------------

// FeeCategory identifies one of the two fee kinds the calculators care
// about: the processing fee is deducted from the disbursal payout, the post
// service fee is added to the total repayable.
type FeeCategory struct {
	name string
	// matchTerms are matched case-insensitively as substrings against fee
	// names from the engine and the stored breakdown. The representations
	// have drifted over time ("Processing Fee", "processing_fee", "PF
	// charges"), so substring matching is the compatibility shim.
	matchTerms []string
}

var (
	FeeCategoryProcessing  = FeeCategory{name: "processing fee", matchTerms: []string{"processing"}}
	FeeCategoryPostService = FeeCategory{name: "post service fee", matchTerms: []string{"post service", "post_service", "postservice"}}
)

// Name returns the canonical display name of the category.
func (c FeeCategory) Name() string { return c.name }

func (c FeeCategory) matches(feeName string) bool {
	lower := strings.ToLower(feeName)
	for _, term := range c.matchTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// legacyTotals picks the aggregate fallback figures for the category.
func (c FeeCategory) legacyTotals(totals model.FeeTotals) (base, gst decimal.Decimal) {
	if c.name == FeeCategoryProcessing.name {
		return totals.DisbursalFee, totals.DisbursalFeeGST
	}
	return totals.RepayableFee, totals.RepayableFeeGST
}

// ResolveFee resolves the base amount and GST for a fee category through the
// source precedence chain, stopping at the first source with a nonzero base:
//
//	1. the engine's itemized fee lines;
//	2. the loan's stored fee breakdown;
//	3. the legacy aggregate totals;
//	4. zero.
//
// Only base amounts are taken. GST is always its own line, and a
// "total including GST" field conflated into the base double-counts tax
// downstream.
func ResolveFee(category FeeCategory, loan model.Loan, engine *model.EngineCalculation, legacy model.FeeTotals) model.FeeLine {
	if engine != nil {
		for _, fee := range engine.Fees {
			if category.matches(fee.Name) && !fee.Base.IsZero() {
				return model.FeeLine{Name: category.name, Base: fee.Base, GST: fee.GST}
			}
		}
	}

	for _, fee := range loan.FeesBreakdown() {
		if category.matches(fee.Name) && !fee.Base.IsZero() {
			return model.FeeLine{Name: category.name, Base: fee.Base, GST: fee.GST}
		}
	}

	if base, gst := category.legacyTotals(legacy); !base.IsZero() {
		return model.FeeLine{Name: category.name, Base: base, GST: gst}
	}

	return model.FeeLine{Name: category.name, Base: decimal.Zero, GST: decimal.Zero}
}

// ResolveFees resolves both fee categories and splits them into the
// disbursal-deduction and repayable-addition buckets.
func ResolveFees(loan model.Loan, engine *model.EngineCalculation, legacy model.FeeTotals) model.FeeBreakdown {
	processing := ResolveFee(FeeCategoryProcessing, loan, engine, legacy)
	postService := ResolveFee(FeeCategoryPostService, loan, engine, legacy)
	return model.FeeBreakdown{
		DeductFromDisbursal: []model.FeeLine{processing},
		AddToTotal:          []model.FeeLine{postService},
	}
}
