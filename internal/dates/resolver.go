// Package dates resolves raw date tokens from email text into ISO calendar
// dates, handling the US/EU ambiguity of purely numeric tokens.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/duescan/duescan/internal/common"
	"github.com/duescan/duescan/internal/model"
)

// Manual date entry bounds, inclusive.
const (
	ManualMin = "2020-01-01"
	ManualMax = "2032-12-31"
)

// ParseError reports a raw token that cannot be resolved under the
// requested locale. Invalid calendar dates fail rather than being guessed.
type ParseError struct {
	Token  string
	Locale model.DateLocale
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse date %q under %s locale: %s", e.Token, e.Locale, e.Reason)
}

var (
	isoRe     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	numericRe = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})[/.-](\d{2,4})$`)
	wordRe    = regexp.MustCompile(`[a-z]+`)
	numRe     = regexp.MustCompile(`\d{1,4}`)
)

var monthNames = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Resolve turns a raw date token into a date-only ISO string ("YYYY-MM-DD").
//
// Tokens carrying a month name or ISO shape are unambiguous and resolve the
// same way under either locale. Purely numeric tokens are read month-first
// under US and day-first under EU. Impossible calendar dates return a
// *ParseError, never a clamped or wrapped-around guess.
func Resolve(raw string, locale model.DateLocale, timezone string) (string, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("unknown timezone %q: %w", timezone, err)
	}

	token := strings.TrimSpace(raw)
	if token == "" {
		return "", &ParseError{Token: raw, Locale: locale, Reason: "empty token"}
	}

	if month, ok := findMonthName(token); ok {
		return resolveNamed(token, month, locale, loc)
	}

	if m := isoRe.FindStringSubmatch(token); m != nil {
		return buildDate(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]), token, locale, loc)
	}

	if m := numericRe.FindStringSubmatch(token); m != nil {
		a, b := atoi(m[1]), atoi(m[2])
		year := atoi(m[3])
		if year < 100 {
			year += 2000
		}
		var month, day int
		switch locale {
		case model.DateLocaleEU:
			day, month = a, b
		default:
			month, day = a, b
		}
		return buildDate(year, time.Month(month), day, token, locale, loc)
	}

	return "", &ParseError{Token: raw, Locale: locale, Reason: "unrecognized date shape"}
}

// resolveNamed handles tokens like "Oct 5, 2025" or "5 October 2025".
// The month name removes all ambiguity, so locale is ignored.
func resolveNamed(token string, month time.Month, locale model.DateLocale, loc *time.Location) (string, error) {
	day, year := 0, 0
	for _, numStr := range numRe.FindAllString(token, -1) {
		n := atoi(numStr)
		switch {
		case len(numStr) == 4:
			year = n
		case day == 0:
			day = n
		}
	}
	if day == 0 || year == 0 {
		return "", &ParseError{Token: token, Locale: locale, Reason: "missing day or year"}
	}
	return buildDate(year, month, day, token, locale, loc)
}

// findMonthName scans the token's words for a month name or abbreviation.
func findMonthName(token string) (time.Month, bool) {
	for _, word := range wordRe.FindAllString(strings.ToLower(token), -1) {
		if len(word) < 3 {
			continue
		}
		if month, ok := monthNames[word[:3]]; ok {
			// Reject random words that merely start like a month ("mayhem"),
			// but accept full names and common abbreviations.
			if isMonthWord(word, month) {
				return month, true
			}
		}
	}
	return 0, false
}

func isMonthWord(word string, month time.Month) bool {
	full := strings.ToLower(month.String())
	if word == full || word == full[:3] {
		return true
	}
	return word == "sept" // common fourth abbreviation
}

// buildDate validates the (year, month, day) triple against the real
// calendar and formats it in the target timezone.
func buildDate(year int, month time.Month, day int, token string, locale model.DateLocale, loc *time.Location) (string, error) {
	if month < time.January || month > time.December {
		return "", &ParseError{Token: token, Locale: locale, Reason: fmt.Sprintf("month %d out of range", month)}
	}
	if day < 1 || day > 31 {
		return "", &ParseError{Token: token, Locale: locale, Reason: fmt.Sprintf("day %d out of range", day)}
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	// time.Date normalizes Feb 30 into March; a changed day means the
	// triple was not a real calendar date.
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return "", &ParseError{Token: token, Locale: locale, Reason: "not a real calendar date"}
	}
	return t.Format("2006-01-02"), nil
}

// ValidateManual checks an operator-supplied ISO date: it must be a real
// calendar date inside the inclusive [ManualMin, ManualMax] bound. Values
// outside the bound are rejected, never clamped.
func ValidateManual(iso string) error {
	m := isoRe.FindStringSubmatch(iso)
	if m == nil {
		return common.NewValidationError("date", fmt.Sprintf("%q is not in YYYY-MM-DD form", iso))
	}
	year, month, day := atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3])
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return common.NewValidationError("date", fmt.Sprintf("%q is not a real calendar date", iso))
	}
	// ISO dates sort lexicographically, so string comparison is exact here.
	if iso < ManualMin || iso > ManualMax {
		return common.NewValidationError("date", fmt.Sprintf("%q is outside the supported range [%s, %s]", iso, ManualMin, ManualMax))
	}
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
