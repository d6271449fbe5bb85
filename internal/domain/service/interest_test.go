package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credsphere/loancalc-service/internal/domain/model"
	"github.com/credsphere/loancalc-service/internal/domain/service"
	"github.com/credsphere/loancalc-service/internal/domain/valueobject"
	"github.com/credsphere/loancalc-service/pkg/testutil"
)

var ratePointOnePercent = decimal.NewFromFloat(0.001)

func TestInterestTillDate(t *testing.T) {
	principal := decimal.NewFromInt(100_000)

	t.Run("ten inclusive days", func(t *testing.T) {
		got, err := service.InterestTillDate(principal, ratePointOnePercent,
			testutil.Date(2025, 1, 1), testutil.Date(2025, 1, 10))
		require.NoError(t, err)
		// 100000 * 0.001 * 10 days.
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(1000), got)
	})

	t.Run("same day accrues one day", func(t *testing.T) {
		got, err := service.InterestTillDate(principal, ratePointOnePercent,
			testutil.Date(2025, 1, 1), testutil.Date(2025, 1, 1))
		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), got)
	})

	t.Run("zero rate accrues nothing", func(t *testing.T) {
		got, err := service.InterestTillDate(principal, decimal.Zero,
			testutil.Date(2025, 1, 1), testutil.Date(2025, 6, 1))
		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.Zero, got)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		_, err := service.InterestTillDate(decimal.Zero, ratePointOnePercent,
			testutil.Date(2025, 1, 1), testutil.Date(2025, 1, 2))
		assert.ErrorIs(t, err, valueobject.ErrInvalidInput)

		_, err = service.InterestTillDate(principal, decimal.NewFromFloat(-0.001),
			testutil.Date(2025, 1, 1), testutil.Date(2025, 1, 2))
		assert.ErrorIs(t, err, valueobject.ErrInvalidInput)
	})
}

func TestTotalInterestFullTenure(t *testing.T) {
	t.Run("engine aggregate wins when positive", func(t *testing.T) {
		loan := loanFixture{
			disbursedDate: testutil.Date(2025, 1, 1),
			dueDate:       testutil.Date(2025, 3, 1),
			ratePerDay:    ratePointOnePercent,
		}.build(t)
		engine := &model.EngineCalculation{
			TotalInterestFullTenure: decimal.NewFromInt(7777),
		}

		got, err := service.TotalInterestFullTenure(loan, engine)
		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(7777), got)
	})

	t.Run("schedule periods when engine silent", func(t *testing.T) {
		loan := loanFixture{
			disbursedDate: testutil.Date(2025, 1, 1),
			ratePerDay:    ratePointOnePercent,
			schedule: []model.RawEmiEntry{
				{Number: 1, DueDate: testutil.Date(2025, 1, 31), Amount: money(35_000)},
				{Number: 2, DueDate: testutil.Date(2025, 3, 2), Amount: money(35_000)},
			},
		}.build(t)

		got, err := service.TotalInterestFullTenure(loan, nil)
		require.NoError(t, err)
		// Period 1: Jan 1..Jan 31 inclusive = 31 days -> 3100.
		// Period 2: Feb 1..Mar 2 inclusive = 30 days -> 3000.
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(6100), got)
	})

	t.Run("full tenure formula as last resort", func(t *testing.T) {
		loan := loanFixture{
			disbursedDate: testutil.Date(2025, 1, 1),
			dueDate:       testutil.Date(2025, 1, 30),
			ratePerDay:    ratePointOnePercent,
		}.build(t)

		got, err := service.TotalInterestFullTenure(loan, nil)
		require.NoError(t, err)
		// 30 inclusive days at 100 per day.
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(3000), got)
	})

	t.Run("undisbursed loan with plan terms resolves to zero", func(t *testing.T) {
		loan := loanFixture{
			status:     valueobject.LoanStatusApproved,
			dueDate:    testutil.Date(2025, 3, 1),
			ratePerDay: ratePointOnePercent,
		}.build(t)

		got, err := service.TotalInterestFullTenure(loan, nil)
		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.Zero, got)
	})

	t.Run("undisbursed loan with a draft schedule resolves to zero", func(t *testing.T) {
		loan := loanFixture{
			status:     valueobject.LoanStatusApproved,
			ratePerDay: ratePointOnePercent,
			schedule: []model.RawEmiEntry{
				{Number: 1, DueDate: testutil.Date(2025, 1, 31), Amount: money(35_000)},
			},
		}.build(t)

		got, err := service.TotalInterestFullTenure(loan, nil)
		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.Zero, got)
	})

	t.Run("no schedule and no due date is unresolvable", func(t *testing.T) {
		loan := loanFixture{
			disbursedDate: testutil.Date(2025, 1, 1),
			ratePerDay:    ratePointOnePercent,
		}.build(t)

		_, err := service.TotalInterestFullTenure(loan, nil)
		assert.ErrorIs(t, err, valueobject.ErrInvalidInput)
	})
}

func TestAccruedInterest(t *testing.T) {
	t.Run("returns interest with exhausted days", func(t *testing.T) {
		loan := loanFixture{
			disbursedDate: testutil.Date(2025, 1, 1),
			ratePerDay:    ratePointOnePercent,
		}.build(t)

		interest, days, err := service.AccruedInterest(loan, testutil.Date(2025, 1, 10))
		require.NoError(t, err)
		assert.Equal(t, 10, days)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(1000), interest)
	})

	t.Run("undisbursed loan cannot accrue", func(t *testing.T) {
		loan := loanFixture{ratePerDay: ratePointOnePercent}.build(t)

		_, _, err := service.AccruedInterest(loan, testutil.Date(2025, 1, 10))
		assert.ErrorIs(t, err, valueobject.ErrInvalidInput)
	})
}
