package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatesInRange(t *testing.T) {
	dates, err := DatesInRange("2025-09-28", "2025-10-02")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2025-09-28", "2025-09-29", "2025-09-30", "2025-10-01", "2025-10-02",
	}, dates)
}

func TestDatesInRangeSingleDay(t *testing.T) {
	dates, err := DatesInRange("2025-09-30", "2025-09-30")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-09-30"}, dates)
}

func TestDatesInRangeReversed(t *testing.T) {
	_, err := DatesInRange("2025-10-02", "2025-09-28")
	assert.Error(t, err)
}

func TestDatesInRangeMalformed(t *testing.T) {
	_, err := DatesInRange("30/09/2025", "2025-10-02")
	assert.Error(t, err)
	_, err = DatesInRange("2025-09-30", "not-a-date")
	assert.Error(t, err)
}

func TestDatesInRangeAcrossMonthAndYear(t *testing.T) {
	dates, err := DatesInRange("2025-12-30", "2026-01-02")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2025-12-30", "2025-12-31", "2026-01-01", "2026-01-02",
	}, dates)
}
