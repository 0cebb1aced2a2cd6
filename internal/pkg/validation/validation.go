package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// DateLayout is the calendar-date format used for every stored date.
const DateLayout = "2006-01-02"

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate accepts YYYY-MM-DD strings that name a real calendar day.
func IsValidDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// StripSpaces removes every whitespace rune.
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// UnitCode builds the unique unit code from building, floor and name.
func UnitCode(building, floor, name string) string {
	return StripSpaces(building) + "-" + StripSpaces(floor) + "-" + StripSpaces(name)
}

// IsBlank reports whether s is empty after trimming.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// FirstMissing returns the name of the first blank field, in the order given.
// Pairs are name, value.
func FirstMissing(pairs ...string) string {
	for i := 0; i+1 < len(pairs); i += 2 {
		if IsBlank(pairs[i+1]) {
			return pairs[i]
		}
	}
	return ""
}
