package derive

import (
	"strings"
	"time"
)

// signs is indexed by month; a date before that month's cutoff day
// belongs to the previous month's sign.
var signs = [13]string{
	time.January:   "Aquarius",
	time.February:  "Pisces",
	time.March:     "Aries",
	time.April:     "Taurus",
	time.May:       "Gemini",
	time.June:      "Cancer",
	time.July:      "Leo",
	time.August:    "Virgo",
	time.September: "Libra",
	time.October:   "Scorpio",
	time.November:  "Sagittarius",
	time.December:  "Capricorn",
}

var cutoffs = [13]int{
	time.January:   20,
	time.February:  19,
	time.March:     21,
	time.April:     20,
	time.May:       21,
	time.June:      21,
	time.July:      23,
	time.August:    23,
	time.September: 23,
	time.October:   23,
	time.November:  22,
	time.December:  22,
}

// AstrologySign returns the Western tropical zodiac sign for a birth date given as
// YYYY-MM-DD (an RFC 3339 timestamp is also accepted). Empty or invalid input yields "".
func AstrologySign(birthDate string) string {
	date, ok := ParseBirthDate(birthDate)
	if !ok {
		return ""
	}
	return SignFor(date.Month(), date.Day())
}

// SignFor maps a calendar month and day to its zodiac sign.
func SignFor(month time.Month, day int) string {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return ""
	}
	if day >= cutoffs[month] {
		return signs[month]
	}
	prev := month - 1
	if prev < time.January {
		prev = time.December
	}
	return signs[prev]
}

// ParseBirthDate parses a birth date. Only the calendar date is meaningful.
func ParseBirthDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
