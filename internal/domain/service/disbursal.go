package service

import (
	"github.com/shopspring/decimal"

	"github.com/credsphere/loancalc-service/internal/domain/model"
	"github.com/credsphere/loancalc-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Disbursal amount resolution
// ---------------------------------------------------------------------------

// DisbursalSource records where a disbursal figure came from.
type DisbursalSource string

const (
	// DisbursalSourceStored means the already-disbursed figure on the loan
	// record was trusted as-is.
	DisbursalSourceStored DisbursalSource = "STORED"
	// DisbursalSourceEngine means the remote engine computed the figure.
	DisbursalSourceEngine DisbursalSource = "ENGINE"
)

// ResolveDisbursalAmount decides the trustworthy disbursal figure for a
// loan. This is the most safety-critical rule in the subsystem: reusing a
// stale stored figure for a renewed loan is a direct monetary bug.
//
// Decision table by status:
//   - servicing (ACCOUNT_MANAGER/CLEARED) and not repeat-disbursal: the
//     stored amount is immutable and already disbursed; trust it;
//   - repeat-disbursal: always the engine figure, never the stored amount,
//     which may belong to a prior disbursal cycle on the same loan;
//   - pre-disbursal: the engine figure; while no engine result exists the
//     caller must surface a pending state rather than guess.
func ResolveDisbursalAmount(loan model.Loan, engine *model.EngineCalculation) (decimal.NullDecimal, DisbursalSource, error) {
	status := loan.Status()

	if status.IsServicing() && !status.IsRepeatDisbursal() {
		stored := loan.StoredDisbursalAmount()
		if !stored.Valid {
			return decimal.NullDecimal{}, DisbursalSourceStored, valueobject.ErrInvalidInput
		}
		return stored, DisbursalSourceStored, nil
	}

	if engine == nil || !engine.DisbursalAmount.Valid {
		return decimal.NullDecimal{}, DisbursalSourceEngine, valueobject.ErrCalculationPending
	}
	return engine.DisbursalAmount, DisbursalSourceEngine, nil
}
