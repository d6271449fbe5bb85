package testutil

import "time"

// Fixed identifiers for deterministic testing.
const (
	TestTenantID = "tenant-0001"
	TestLoanID1  = "loan-0001"
	TestLoanID2  = "loan-0002"
)

// Date builds a UTC midnight date, the form all day-count logic expects.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
