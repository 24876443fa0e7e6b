package dateutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestAgeCalculation tests the age calculation function with various scenarios
func TestAgeCalculation(t *testing.T) {
	tests := []struct {
		name        string
		birthDate   time.Time
		atDate      time.Time
		expectedAge int
	}{
		{"Same month and day", date(1965, 2, 25), date(2025, 2, 25), 60},
		{"Day before birthday", date(1965, 2, 25), date(2025, 2, 24), 59},
		{"Day after birthday", date(1965, 2, 25), date(2025, 2, 26), 60},
		{"Month before birthday", date(1965, 2, 25), date(2025, 1, 25), 59},
		{"Month after birthday", date(1965, 2, 25), date(2025, 3, 25), 60},
		{"Leap day birth, common year", date(1964, 2, 29), date(2025, 2, 28), 60},
		{"Leap day birth, leap year", date(1964, 2, 29), date(2024, 2, 29), 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedAge, Age(tt.birthDate, tt.atDate))
		})
	}
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"1985-06-15", " 06/15/1985 ", "1985/06/15"} {
		got, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, date(1985, 6, 15), got, s)
	}

	_, err := ParseDate("June 15th")
	assert.ErrorContains(t, err, "expected YYYY-MM-DD")
	_, err = ParseDate("1985-02-30")
	assert.Error(t, err)
}

func TestYearsUntilAge(t *testing.T) {
	birth := date(1985, 6, 15)

	assert.Equal(t, 25, YearsUntilAge(birth, date(2025, 6, 15), 65))
	assert.Equal(t, 26, YearsUntilAge(birth, date(2025, 6, 14), 65), "one day before the 40th birthday")
	assert.Equal(t, 0, YearsUntilAge(birth, date(2051, 1, 1), 65))
	assert.Equal(t, 0, YearsUntilAge(birth, date(2070, 1, 1), 65), "never negative")
}

func TestBirthdayAt(t *testing.T) {
	assert.Equal(t, date(2050, 6, 15), BirthdayAt(date(1985, 6, 15), 65))
	assert.Equal(t, date(2029, 3, 1), BirthdayAt(date(1964, 2, 29), 65))
	assert.Equal(t, date(2028, 2, 29), BirthdayAt(date(1964, 2, 29), 64))
}

// TestLeapYearCalculation tests leap year determination
func TestLeapYearCalculation(t *testing.T) {
	tests := []struct {
		year     int
		expected bool
	}{
		{2000, true},  // Divisible by 400
		{1900, false}, // Divisible by 100 but not 400
		{2004, true},
		{2001, false},
		{2024, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("Year_%d", tt.year), func(t *testing.T) {
			assert.Equal(t, tt.expected, IsLeapYear(tt.year))
		})
	}
}
