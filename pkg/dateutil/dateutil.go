// Package dateutil derives ages and horizons from calendar dates.
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{"2006-01-02", "01/02/2006", "2006/01/02"}

// ParseDate accepts ISO dates (2006-01-02) and US dates (01/02/2006).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or MM/DD/YYYY", s)
}

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// BirthdayAt returns the date a person born on birthDate turns age.
// A February 29 birthday falls on March 1 in common years.
func BirthdayAt(birthDate time.Time, age int) time.Time {
	return birthDate.AddDate(age, 0, 0)
}

// YearsUntilAge is the number of whole years from atDate until the person
// turns age. It is zero once that birthday has passed.
func YearsUntilAge(birthDate, atDate time.Time, age int) int {
	years := age - Age(birthDate, atDate)
	if years < 0 {
		return 0
	}
	return years
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
