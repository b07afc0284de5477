package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-03-01T23:10:00+07:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/03/2024")
	assert.Error(t, err)
}

func TestTodayUsesAppLocation(t *testing.T) {
	require.NoError(t, SetLocation("Asia/Jakarta"))
	// 18:30 UTC sudah tanggal berikutnya di WIB
	clk := FixedClock{T: time.Date(2024, 5, 31, 18, 30, 0, 0, time.UTC)}
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Today(clk))
}

func TestMonthRange(t *testing.T) {
	require.NoError(t, SetLocation("Asia/Jakarta"))
	start, end := MonthRange(time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, 2024, start.Year())
	assert.Equal(t, time.December, start.Month())
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, time.January, end.Month())
	assert.Equal(t, 2025, end.Year())

	assert.Error(t, SetLocation("Mars/Olympus"))
}
