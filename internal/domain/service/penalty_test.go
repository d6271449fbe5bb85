package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/credsphere/loancalc-service/internal/domain/service"
	"github.com/credsphere/loancalc-service/pkg/testutil"
)

func TestPenaltyPercent_Tiers(t *testing.T) {
	cases := []struct {
		dpd     int
		percent string
	}{
		{dpd: -3, percent: "0"},
		{dpd: 0, percent: "0"},
		{dpd: 1, percent: "5"},
		{dpd: 2, percent: "1"},
		{dpd: 5, percent: "4"},
		{dpd: 10, percent: "9"},
		{dpd: 11, percent: "9.6"},
		{dpd: 20, percent: "15"},
		{dpd: 120, percent: "75"},
		{dpd: 121, percent: "0"},
		{dpd: 500, percent: "0"},
	}

	for _, tc := range cases {
		got := service.PenaltyPercent(tc.dpd)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.percent)),
			"dpd %d: expected %s%%, got %s%%", tc.dpd, tc.percent, got)
	}
}

func TestPenaltyForDPD(t *testing.T) {
	principal := decimal.NewFromInt(100_000)

	t.Run("first day past due", func(t *testing.T) {
		p := service.PenaltyForDPD(principal, 1)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(5000), p.Base)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(900), p.GST)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(5900), p.Total)
	})

	t.Run("early tier", func(t *testing.T) {
		// 1% per day past the first: dpd 5 -> 4%.
		p := service.PenaltyForDPD(principal, 5)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(4000), p.Base)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(720), p.GST)
	})

	t.Run("late tier", func(t *testing.T) {
		// 9% + 0.6% * (15-10) = 12%.
		p := service.PenaltyForDPD(principal, 15)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(12_000), p.Base)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(2160), p.GST)
	})

	t.Run("beyond collections cutoff accrues nothing", func(t *testing.T) {
		p := service.PenaltyForDPD(principal, 130)
		testutil.AssertDecimalEqual(t, decimal.Zero, p.Base)
		testutil.AssertDecimalEqual(t, decimal.Zero, p.Total)
	})

	t.Run("negative dpd treated as not overdue", func(t *testing.T) {
		p := service.PenaltyForDPD(principal, -1)
		assert.Equal(t, 0, p.DPD)
		testutil.AssertDecimalEqual(t, decimal.Zero, p.Base)
	})
}

func TestGSTOn(t *testing.T) {
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(180), service.GSTOn(decimal.NewFromInt(1000)))
	testutil.AssertDecimalEqual(t, decimal.Zero, service.GSTOn(decimal.Zero))
}
