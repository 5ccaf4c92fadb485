package dateutil

import (
	"time"
)

// Age calculates the age in whole years at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// DateAtAge returns the date on which someone born on birthDate turns age.
// A Feb 29 birthday falls on Mar 1 in non-leap years.
func DateAtAge(birthDate time.Time, age int) time.Time {
	return birthDate.AddDate(age, 0, 0)
}
