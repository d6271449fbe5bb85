package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/credsphere/loancalc-service/internal/domain/model"
	"github.com/credsphere/loancalc-service/internal/domain/valueobject"
	"github.com/credsphere/loancalc-service/pkg/testutil"
)

// loanFixture assembles a valid loan record field by field. Zero values
// mean "unset" (no disbursal date, no schedule) rather than defaults.
type loanFixture struct {
	id            string
	principal     decimal.Decimal
	status        valueobject.LoanStatus
	disbursedDate time.Time
	dueDate       time.Time
	ratePerDay    decimal.Decimal
	fees          []model.FeeComponent
	stored        decimal.NullDecimal
	snapshot      *model.ProcessedSnapshot
	schedule      []model.RawEmiEntry
}

func (f loanFixture) build(t *testing.T) model.Loan {
	t.Helper()
	id := f.id
	if id == "" {
		id = testutil.TestLoanID1
	}
	principal := f.principal
	if principal.IsZero() {
		principal = decimal.NewFromInt(100_000)
	}
	status := f.status
	if status.IsZero() {
		status = valueobject.LoanStatusDisbursal
	}
	loan, err := model.ReconstructLoan(
		id, testutil.TestTenantID, principal, status,
		f.disbursedDate, f.dueDate, f.ratePerDay,
		f.fees, f.stored, f.snapshot, f.schedule,
		1, testutil.Date(2025, 1, 1), testutil.Date(2025, 1, 1),
	)
	require.NoError(t, err)
	return loan
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func storedAmount(v float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(v), Valid: true}
}
