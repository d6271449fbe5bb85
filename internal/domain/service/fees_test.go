package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/credsphere/loancalc-service/internal/domain/model"
	"github.com/credsphere/loancalc-service/internal/domain/service"
	"github.com/credsphere/loancalc-service/pkg/testutil"
)

func TestResolveFee_Precedence(t *testing.T) {
	legacy := model.FeeTotals{
		DisbursalFee:    money(300),
		DisbursalFeeGST: money(54),
	}

	t.Run("engine itemized line wins", func(t *testing.T) {
		loan := loanFixture{
			fees: []model.FeeComponent{{Name: "processing_fee", Base: money(900), GST: money(162)}},
		}.build(t)
		engine := &model.EngineCalculation{
			Fees: []model.EngineFee{{Name: "Processing Fee", Base: money(1500), GST: money(270)}},
		}

		line := service.ResolveFee(service.FeeCategoryProcessing, loan, engine, legacy)
		testutil.AssertDecimalEqual(t, money(1500), line.Base)
		testutil.AssertDecimalEqual(t, money(270), line.GST)
	})

	t.Run("zero engine line falls through to stored breakdown", func(t *testing.T) {
		loan := loanFixture{
			fees: []model.FeeComponent{{Name: "processing_fee", Base: money(900), GST: money(162)}},
		}.build(t)
		engine := &model.EngineCalculation{
			Fees: []model.EngineFee{{Name: "Processing Fee", Base: decimal.Zero, GST: decimal.Zero}},
		}

		line := service.ResolveFee(service.FeeCategoryProcessing, loan, engine, legacy)
		testutil.AssertDecimalEqual(t, money(900), line.Base)
	})

	t.Run("legacy totals as fallback", func(t *testing.T) {
		loan := loanFixture{}.build(t)

		line := service.ResolveFee(service.FeeCategoryProcessing, loan, nil, legacy)
		testutil.AssertDecimalEqual(t, money(300), line.Base)
		testutil.AssertDecimalEqual(t, money(54), line.GST)
	})

	t.Run("zero when no source has the fee", func(t *testing.T) {
		loan := loanFixture{}.build(t)

		line := service.ResolveFee(service.FeeCategoryPostService, loan, nil, model.FeeTotals{})
		testutil.AssertDecimalEqual(t, decimal.Zero, line.Base)
		testutil.AssertDecimalEqual(t, decimal.Zero, line.GST)
	})
}

func TestResolveFee_NameDrift(t *testing.T) {
	// Fee names drift across engine versions and stored records; matching
	// is case-insensitive substring.
	names := []string{"Processing Fee", "processing_fee", "PROCESSING CHARGES"}
	for _, name := range names {
		loan := loanFixture{
			fees: []model.FeeComponent{{Name: name, Base: money(500), GST: money(90)}},
		}.build(t)

		line := service.ResolveFee(service.FeeCategoryProcessing, loan, nil, model.FeeTotals{})
		testutil.AssertDecimalEqual(t, money(500), line.Base)
	}

	t.Run("post service variants", func(t *testing.T) {
		for _, name := range []string{"Post Service Fee", "post_service_fee", "PostService Charge"} {
			loan := loanFixture{
				fees: []model.FeeComponent{{Name: name, Base: money(250), GST: money(45)}},
			}.build(t)

			line := service.ResolveFee(service.FeeCategoryPostService, loan, nil, model.FeeTotals{})
			testutil.AssertDecimalEqual(t, money(250), line.Base)
		}
	})
}

func TestResolveFee_IgnoresTotalWithGST(t *testing.T) {
	loan := loanFixture{}.build(t)
	engine := &model.EngineCalculation{
		Fees: []model.EngineFee{{
			Name:         "Processing Fee",
			Base:         money(1000),
			GST:          money(180),
			TotalWithGST: money(1180),
		}},
	}

	line := service.ResolveFee(service.FeeCategoryProcessing, loan, engine, model.FeeTotals{})
	// Taking the GST-inclusive total as the base would double-count tax.
	testutil.AssertDecimalEqual(t, money(1000), line.Base)
}

func TestResolveFees_Buckets(t *testing.T) {
	loan := loanFixture{
		fees: []model.FeeComponent{
			{Name: "processing_fee", Base: money(1500), GST: money(270)},
			{Name: "post_service_fee", Base: money(600), GST: money(108)},
		},
	}.build(t)

	fees := service.ResolveFees(loan, nil, model.FeeTotals{})

	assert.Len(t, fees.DeductFromDisbursal, 1)
	assert.Len(t, fees.AddToTotal, 1)
	testutil.AssertDecimalEqual(t, money(1500), fees.DeductFromDisbursal[0].Base)
	testutil.AssertDecimalEqual(t, money(600), fees.AddToTotal[0].Base)
}
