package valueobject

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan as reported by the
// servicing platform.
type LoanStatus struct {
	value string
}

const (
	loanStatusSubmitted              = "SUBMITTED"
	loanStatusUnderReview            = "UNDER_REVIEW"
	loanStatusFollowUp               = "FOLLOW_UP"
	loanStatusApproved               = "APPROVED"
	loanStatusReadyForDisbursement   = "READY_FOR_DISBURSEMENT"
	loanStatusDisbursal              = "DISBURSAL"
	loanStatusRepeatDisbursal        = "REPEAT_DISBURSAL"
	loanStatusReadyToRepeatDisbursal = "READY_TO_REPEAT_DISBURSAL"
	loanStatusQAVerification         = "QA_VERIFICATION"
	loanStatusAccountManager         = "ACCOUNT_MANAGER"
	loanStatusCleared                = "CLEARED"
	loanStatusRejected               = "REJECTED"
	loanStatusCancelled              = "CANCELLED"
)

var (
	LoanStatusSubmitted              = LoanStatus{value: loanStatusSubmitted}
	LoanStatusUnderReview            = LoanStatus{value: loanStatusUnderReview}
	LoanStatusFollowUp               = LoanStatus{value: loanStatusFollowUp}
	LoanStatusApproved               = LoanStatus{value: loanStatusApproved}
	LoanStatusReadyForDisbursement   = LoanStatus{value: loanStatusReadyForDisbursement}
	LoanStatusDisbursal              = LoanStatus{value: loanStatusDisbursal}
	LoanStatusRepeatDisbursal        = LoanStatus{value: loanStatusRepeatDisbursal}
	LoanStatusReadyToRepeatDisbursal = LoanStatus{value: loanStatusReadyToRepeatDisbursal}
	LoanStatusQAVerification         = LoanStatus{value: loanStatusQAVerification}
	LoanStatusAccountManager         = LoanStatus{value: loanStatusAccountManager}
	LoanStatusCleared                = LoanStatus{value: loanStatusCleared}
	LoanStatusRejected               = LoanStatus{value: loanStatusRejected}
	LoanStatusCancelled              = LoanStatus{value: loanStatusCancelled}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusSubmitted:              LoanStatusSubmitted,
	loanStatusUnderReview:            LoanStatusUnderReview,
	loanStatusFollowUp:               LoanStatusFollowUp,
	loanStatusApproved:               LoanStatusApproved,
	loanStatusReadyForDisbursement:   LoanStatusReadyForDisbursement,
	loanStatusDisbursal:              LoanStatusDisbursal,
	loanStatusRepeatDisbursal:        LoanStatusRepeatDisbursal,
	loanStatusReadyToRepeatDisbursal: LoanStatusReadyToRepeatDisbursal,
	loanStatusQAVerification:         LoanStatusQAVerification,
	loanStatusAccountManager:         LoanStatusAccountManager,
	loanStatusCleared:                LoanStatusCleared,
	loanStatusRejected:               LoanStatusRejected,
	loanStatusCancelled:              LoanStatusCancelled,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// IsRepeatDisbursal reports whether the loan is in a repeat-disbursal cycle.
// Stored disbursal figures from an earlier cycle must never be reused in
// this state.
func (s LoanStatus) IsRepeatDisbursal() bool {
	return s.value == loanStatusRepeatDisbursal || s.value == loanStatusReadyToRepeatDisbursal
}

// IsServicing reports whether the loan has reached the post-disbursal
// servicing stage (ACCOUNT_MANAGER) or has been fully repaid (CLEARED).
func (s LoanStatus) IsServicing() bool {
	return s.value == loanStatusAccountManager || s.value == loanStatusCleared
}

// IsTerminal reports whether the loan can no longer move money.
func (s LoanStatus) IsTerminal() bool {
	return s.value == loanStatusRejected || s.value == loanStatusCancelled
}
