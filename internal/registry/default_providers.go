package registry

import (
	"regexp"

	"github.com/duescan/duescan/internal/common"
	"github.com/duescan/duescan/internal/model"
)

const decimal = `([0-9][0-9,]*(?:\.[0-9]+)?)`

// amountPatterns are ordered labeled-first so "Amount due: $45.00" beats an
// incidental dollar figure elsewhere in the email.
func amountPatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		common.MustCompileInsensitive(`amount\s+due[:\s]*[$€£]?\s?` + decimal),
		common.MustCompileInsensitive(`(?:payment|installment|instalment)\s+(?:amount|of)[:\s]*[$€£]?\s?` + decimal),
		common.MustCompileInsensitive(`(?:total|balance)\s+due[:\s]*[$€£]?\s?` + decimal),
		common.MustCompileInsensitive(`(?:pay|due)[:\s]+[$€£]\s?` + decimal),
		common.MustCompileInsensitive(`[$€£]\s?` + decimal),
	}
}

func dueDatePatterns() []*regexp.Regexp {
	monthName := `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?`
	return []*regexp.Regexp{
		// "Due: <date>" labels; group 1 is the raw date token.
		common.MustCompileInsensitive(`due(?:\s+date)?[:\s]+(` + monthName + `\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4})`),
		common.MustCompileInsensitive(`due(?:\s+date)?[:\s]+(\d{1,2}(?:st|nd|rd|th)?\s+` + monthName + `,?\s+\d{4})`),
		common.MustCompileInsensitive(`due(?:\s+date)?[:\s]+(\d{4}-\d{2}-\d{2})`),
		common.MustCompileInsensitive(`due(?:\s+(?:date|on|by))?[:\s]+(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`),
		// Bare date shapes anywhere in the segment.
		common.MustCompileInsensitive(monthName + `\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}`),
		common.MustCompileInsensitive(`\d{1,2}(?:st|nd|rd|th)?\s+` + monthName + `,?\s+\d{4}`),
		regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
		regexp.MustCompile(`\b\d{1,2}[/.]\d{1,2}[/.]\d{2,4}\b`),
	}
}

func installmentPatterns() []InstallmentPattern {
	return []InstallmentPattern{
		{
			Kind:  InstallmentNumeric,
			Regex: common.MustCompileInsensitive(`(?:payment|installment|instalment)\s+(\d{1,2})\s+of\s+(\d{1,2})`),
		},
		{
			Kind:  InstallmentNumeric,
			Regex: common.MustCompileInsensitive(`(\d{1,2})\s+of\s+(\d{1,2})\s+(?:payments|installments|instalments)`),
		},
		{
			Kind:  InstallmentOrdinal,
			Regex: common.MustCompileInsensitive(`(1st|2nd|3rd|4th|first|second|third|fourth)\s+(?:payment|installment|instalment)`),
		},
		{
			Kind:  InstallmentFinal,
			Regex: common.MustCompileInsensitive(`(?:final|last)\s+(?:payment|installment|instalment)`),
		},
	}
}

func autopayOnPatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		common.MustCompileInsensitive(`auto-?pay(?:ment)?s?\s+(?:is|are)?\s*(?:on|enabled|active|turned\s+on)`),
		common.MustCompileInsensitive(`automatic\s+payments?\s+(?:is|are)?\s*(?:on|enabled|scheduled|set\s+up)`),
		common.MustCompileInsensitive(`(?:will\s+be|is\s+scheduled\s+to\s+be)\s+(?:automatically\s+charged|charged\s+automatically)`),
	}
}

func autopayOffPatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		common.MustCompileInsensitive(`auto-?pay(?:ment)?s?\s+(?:is|are)?\s*(?:off|disabled|paused|turned\s+off|not\s+enabled)`),
		common.MustCompileInsensitive(`automatic\s+payments?\s+(?:is|are)?\s*(?:off|disabled|paused|not\s+set\s+up)`),
	}
}

func lateFeePatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		common.MustCompileInsensitive(`late\s+fee\s+of\s+[$€£]?\s?` + decimal),
		common.MustCompileInsensitive(`late\s+fee[:\s]+[$€£]?\s?` + decimal),
		common.MustCompileInsensitive(`[$€£]\s?` + decimal + `\s+late\s+fee`),
	}
}

// GenericPatterns is the provider-independent pattern set, used both as the
// shared baseline for provider entries and as the fallback for segments
// whose provider is unknown.
func GenericPatterns() FieldPatterns {
	return FieldPatterns{
		Amount:      amountPatterns(),
		DueDate:     dueDatePatterns(),
		Installment: installmentPatterns(),
		AutopayOn:   autopayOnPatterns(),
		AutopayOff:  autopayOffPatterns(),
		LateFee:     lateFeePatterns(),
	}
}

// DefaultEntries returns the launch provider table. Detection runs in this
// order, so more distinctive detectors should come before generic ones.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Provider:   model.ProviderKlarna,
			Detectors:  []string{"klarna.com", "klarna"},
			PlanLength: 4,
			Patterns:   GenericPatterns(),
		},
		{
			Provider:   model.ProviderAffirm,
			Detectors:  []string{"affirm.com", "affirm"},
			PlanLength: 0, // Affirm plan lengths vary per purchase
			Patterns:   GenericPatterns(),
		},
		{
			Provider:   model.ProviderAfterpay,
			Detectors:  []string{"afterpay.com", "afterpay", "clearpay"},
			PlanLength: 4,
			Patterns:   GenericPatterns(),
		},
		{
			Provider:   model.ProviderPayPal,
			Detectors:  []string{"paypal.com", "pay in 4", "paypal"},
			PlanLength: 4,
			Patterns:   GenericPatterns(),
		},
		{
			Provider:   model.ProviderZip,
			Detectors:  []string{"zip.co", "quadpay", "zip pay", "zip money"},
			PlanLength: 4,
			Patterns:   GenericPatterns(),
		},
		{
			Provider:   model.ProviderSezzle,
			Detectors:  []string{"sezzle.com", "sezzle"},
			PlanLength: 4,
			Patterns:   GenericPatterns(),
		},
	}
}
