package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credsphere/loancalc-service/internal/application/dto"
	"github.com/credsphere/loancalc-service/internal/application/usecase"
	"github.com/credsphere/loancalc-service/internal/domain/model"
	"github.com/credsphere/loancalc-service/internal/domain/service"
	"github.com/credsphere/loancalc-service/internal/domain/valueobject"
	"github.com/credsphere/loancalc-service/internal/infrastructure/cache"
	"github.com/credsphere/loancalc-service/pkg/testutil"
)

func TestGetPreCloseQuoteUseCase_Execute(t *testing.T) {
	req := dto.GetPreCloseQuoteRequest{TenantID: testutil.TestTenantID, LoanID: testutil.TestLoanID1}

	t.Run("quote from a ready calculation", func(t *testing.T) {
		engine := engineReturning(model.EngineCalculation{}, nil)
		getCalc := usecase.NewGetCalculationUseCase(repoFor(activeLoan(t)), engine,
			cache.NewMemoryCache(), service.NewCalculator()).WithClock(fixedClock())

		uc := usecase.NewGetPreCloseQuoteUseCase(getCalc)

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, testutil.TestLoanID1, resp.LoanID)
		// 10% pre-close fee on the 100000 principal.
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(10_000), resp.Quote.Fee)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(1800), resp.Quote.FeeGST)
		assert.True(t, resp.Quote.Amount.GreaterThan(decimal.NewFromInt(100_000)))
	})

	t.Run("no quote off a preview", func(t *testing.T) {
		engine := engineReturning(model.EngineCalculation{}, valueobject.ErrEngineUnavailable)
		getCalc := usecase.NewGetCalculationUseCase(repoFor(activeLoan(t)), engine,
			cache.NewMemoryCache(), service.NewCalculator()).WithClock(fixedClock())

		uc := usecase.NewGetPreCloseQuoteUseCase(getCalc)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, valueobject.ErrCalculationPending)
	})
}
