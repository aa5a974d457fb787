package extract

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/duescan/duescan/internal/dates"
	"github.com/duescan/duescan/internal/model"
	"github.com/duescan/duescan/internal/registry"
)

// lateFeeContext guards the generic currency fallback from picking up a
// late-fee figure as the installment amount.
var lateFeeContext = regexp.MustCompile(`(?i)late\s+fee\s*(?:of)?\s*$`)

// ExtractAmount tries each amount pattern in order and parses the first
// acceptable match into integer cents. A zero amount is a legitimate
// extraction; found=false means no pattern matched at all.
func ExtractAmount(text string, patterns []*regexp.Regexp) (cents int64, currency string, found bool) {
	for _, re := range patterns {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			// Group 1 holds the decimal figure by convention.
			if len(loc) < 4 || loc[2] < 0 {
				continue
			}
			prefix := text[maxInt(0, loc[0]-20):loc[0]]
			if lateFeeContext.MatchString(prefix) {
				continue
			}
			value, err := ParseCents(text[loc[2]:loc[3]])
			if err != nil {
				continue
			}
			return value, currencyFor(text[loc[0]:loc[1]]), true
		}
	}
	return 0, "", false
}

// ParseCents converts a decimal currency string ("45.00", "1,234.5") into
// integer cents, rounding half-up on the third decimal if present.
func ParseCents(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, errors.New("empty amount")
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, err
	}

	cents := units * 100
	switch {
	case len(frac) == 0:
	case len(frac) == 1:
		d, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, err
		}
		cents += d * 10
	default:
		d, err := strconv.ParseInt(frac[:2], 10, 64)
		if err != nil {
			return 0, err
		}
		cents += d
		if len(frac) > 2 && frac[2] >= '5' {
			cents++
		}
	}
	return cents, nil
}

func currencyFor(match string) string {
	lowered := strings.ToLower(match)
	switch {
	case strings.Contains(match, "€") || strings.Contains(lowered, "eur"):
		return "EUR"
	case strings.Contains(match, "£") || strings.Contains(lowered, "gbp"):
		return "GBP"
	default:
		return "USD"
	}
}

// ExtractDueDate finds the first date-shaped substring and resolves it
// under the given locale. When a token matches but cannot be resolved
// (impossible calendar date under that locale), the raw token is still
// returned so the row can be re-parsed later under the other locale.
func ExtractDueDate(text string, patterns []*regexp.Regexp, locale model.DateLocale, timezone string) (iso, raw string, err error) {
	var firstRaw string
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		token := m[0]
		if len(m) > 1 && m[1] != "" {
			token = m[1]
		}
		if firstRaw == "" {
			firstRaw = token
		}

		resolved, rerr := dates.Resolve(token, locale, timezone)
		if rerr != nil {
			var parseErr *dates.ParseError
			if errors.As(rerr, &parseErr) {
				continue // try a differently-shaped token
			}
			return "", "", rerr // bad timezone, caller error
		}
		return resolved, token, nil
	}
	return "", firstRaw, nil
}

// ExtractInstallment reads the installment number from "N of M", ordinal,
// or final-payment phrasing. stated reports whether the number was present
// in the text at all; totalKnown reports whether the plan total is known
// (from the text or from the provider's known plan length).
func ExtractInstallment(text string, patterns []registry.InstallmentPattern, planLength int) (n, total int, stated, totalKnown bool) {
	for _, p := range patterns {
		m := p.Regex.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		switch p.Kind {
		case registry.InstallmentNumeric:
			n, _ = strconv.Atoi(m[1])
			total, _ = strconv.Atoi(m[2])
			if n < 1 || total < 1 || n > total {
				continue
			}
			return n, total, true, true
		case registry.InstallmentOrdinal:
			n = ordinalValue(m[1])
			if n == 0 {
				continue
			}
			if planLength > 0 {
				return n, planLength, true, true
			}
			return n, 0, true, false
		case registry.InstallmentFinal:
			if planLength > 0 {
				return planLength, planLength, true, true
			}
			// Final payment of an unknown-length plan: the number stays
			// undetermined but the signal was present.
			return 0, 0, true, false
		}
	}
	return 0, 0, false, false
}

func ordinalValue(word string) int {
	switch strings.ToLower(word) {
	case "1st", "first":
		return 1
	case "2nd", "second":
		return 2
	case "3rd", "third":
		return 3
	case "4th", "fourth":
		return 4
	}
	return 0
}

// DetectAutopay looks for explicit on/off phrasing. Absent any signal the
// flag defaults to false with stated=false; "explicitly off" and "not
// mentioned" collapse to the same boolean but are distinguished for scoring.
func DetectAutopay(text string, on, off []*regexp.Regexp) (enabled, stated bool) {
	for _, re := range off {
		if re.MatchString(text) {
			return false, true
		}
	}
	for _, re := range on {
		if re.MatchString(text) {
			return true, true
		}
	}
	return false, false
}

// ExtractLateFee parses a late fee with the same cents logic as
// ExtractAmount. Absence is 0 by product rule; there is no unknown state.
func ExtractLateFee(text string, patterns []*regexp.Regexp) int64 {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if value, err := ParseCents(m[1]); err == nil {
			return value
		}
	}
	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
