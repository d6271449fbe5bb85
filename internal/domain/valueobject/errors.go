package valueobject

import "errors"

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrEngineUnavailable indicates the remote calculation engine could not
	// be reached or returned a server-side failure. Callers must surface an
	// unavailable state; a guessed figure is never an acceptable substitute.
	ErrEngineUnavailable = errors.New("calculation engine unavailable")

	// ErrCalculationNotFound indicates the engine has no calculation for the
	// requested loan.
	ErrCalculationNotFound = errors.New("calculation not found")

	// ErrCalculationPending indicates a calculation fetch is in flight and no
	// trustworthy figure exists yet.
	ErrCalculationPending = errors.New("calculation pending")

	// ErrInvalidInput indicates a calculation input that must be rejected
	// rather than coerced: a non-positive principal, a malformed date, or a
	// missing disbursal date on a disbursed loan.
	ErrInvalidInput = errors.New("invalid calculation input")

	// ErrFrozenSnapshot indicates an attempt to recompute figures for a loan
	// whose processed snapshot is immutable.
	ErrFrozenSnapshot = errors.New("calculation is frozen at processed snapshot")
)
