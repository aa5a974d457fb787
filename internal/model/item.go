// Package model defines the core domain types shared across the application.
package model

import "fmt"

// Provider identifies a BNPL provider detected in an email.
type Provider string

// Known providers. ProviderUnknown is returned when no detector matches.
const (
	ProviderKlarna   Provider = "Klarna"
	ProviderAffirm   Provider = "Affirm"
	ProviderAfterpay Provider = "Afterpay"
	ProviderPayPal   Provider = "PayPalPayIn4"
	ProviderZip      Provider = "Zip"
	ProviderSezzle   Provider = "Sezzle"
	ProviderUnknown  Provider = "Unknown"
)

// DateLocale selects how an ambiguous numeric date token is interpreted.
type DateLocale string

const (
	// DateLocaleUS interprets numeric dates as month/day/year.
	DateLocaleUS DateLocale = "US"
	// DateLocaleEU interprets numeric dates as day/month/year.
	DateLocaleEU DateLocale = "EU"
)

// ParseDateLocale validates a locale tag from user input.
func ParseDateLocale(s string) (DateLocale, error) {
	switch DateLocale(s) {
	case DateLocaleUS:
		return DateLocaleUS, nil
	case DateLocaleEU:
		return DateLocaleEU, nil
	}
	return "", fmt.Errorf("invalid date locale %q (want US or EU)", s)
}

// Signals records which fields were actually found in the email text versus
// defaulted. Confidence is always recomputed from the item's fields plus
// these flags; it is never set independently.
type Signals struct {
	AmountFound           bool `json:"amount_found"`
	InstallmentStated     bool `json:"installment_stated"`
	InstallmentTotalKnown bool `json:"installment_total_known"`
	AutopayStated         bool `json:"autopay_stated"`
}

// Item is one structured installment extracted from an email segment.
// Monetary values are integer minor units (cents), never floating point.
type Item struct {
	ID            string   `json:"id"`
	Provider      Provider `json:"provider"`
	InstallmentNo int      `json:"installment_no"` // 0 when undetermined
	DueDate       string   `json:"due_date"`       // ISO-8601 date, "" when undetermined
	RawDueDate    string   `json:"raw_due_date"`   // original substring, kept for locale re-parsing
	AmountCents   int64    `json:"amount"`
	Currency      string   `json:"currency"`
	Autopay       bool     `json:"autopay"`
	LateFeeCents  int64    `json:"late_fee"`
	Confidence    float64  `json:"confidence"`
	Signals       Signals  `json:"signals"`
}

// FormatCents renders integer cents as a human-readable currency string.
func FormatCents(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	symbol := "$"
	switch currency {
	case "EUR":
		symbol = "€"
	case "GBP":
		symbol = "£"
	case "USD", "":
		symbol = "$"
	default:
		return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, currency)
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, cents/100, cents%100)
}
