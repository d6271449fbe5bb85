package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/credsphere/loancalc-service/internal/domain/service"
	"github.com/credsphere/loancalc-service/pkg/testutil"
)

func TestDaysDifference(t *testing.T) {
	jan1 := testutil.Date(2025, 1, 1)

	assert.Equal(t, 0, service.DaysDifference(jan1, jan1))
	assert.Equal(t, 9, service.DaysDifference(jan1, testutil.Date(2025, 1, 10)))
	assert.Equal(t, -9, service.DaysDifference(testutil.Date(2025, 1, 10), jan1))
	assert.Equal(t, 31, service.DaysDifference(jan1, testutil.Date(2025, 2, 1)))
	// Leap year: 2024-02-28 -> 2024-03-01 spans the 29th.
	assert.Equal(t, 2, service.DaysDifference(testutil.Date(2024, 2, 28), testutil.Date(2024, 3, 1)))
}

func TestDaysDifference_IgnoresTimeOfDay(t *testing.T) {
	lateNight := time.Date(2025, 1, 1, 23, 59, 59, 0, time.UTC)
	earlyMorning := time.Date(2025, 1, 2, 0, 0, 1, 0, time.UTC)

	// One second apart on the wall clock, but one calendar day apart.
	assert.Equal(t, 1, service.DaysDifference(lateNight, earlyMorning))
}

func TestInclusiveDays(t *testing.T) {
	jan1 := testutil.Date(2025, 1, 1)

	t.Run("same day counts as one", func(t *testing.T) {
		assert.Equal(t, 1, service.InclusiveDays(jan1, jan1))
	})

	t.Run("both endpoints count", func(t *testing.T) {
		assert.Equal(t, 10, service.InclusiveDays(jan1, testutil.Date(2025, 1, 10)))
	})

	t.Run("end before start floors at one", func(t *testing.T) {
		assert.Equal(t, 1, service.InclusiveDays(testutil.Date(2025, 1, 10), jan1))
	})
}

func TestDaysPastDue(t *testing.T) {
	due := testutil.Date(2025, 3, 15)

	t.Run("before due date", func(t *testing.T) {
		assert.Equal(t, 0, service.DaysPastDue(due, testutil.Date(2025, 3, 10)))
	})

	t.Run("on due date", func(t *testing.T) {
		assert.Equal(t, 0, service.DaysPastDue(due, due))
	})

	t.Run("after due date", func(t *testing.T) {
		assert.Equal(t, 5, service.DaysPastDue(due, testutil.Date(2025, 3, 20)))
	})
}
