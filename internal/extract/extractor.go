package extract

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/duescan/duescan/internal/model"
	"github.com/duescan/duescan/internal/registry"
	"github.com/duescan/duescan/internal/score"
)

const snippetLimit = 120

// Extractor runs the full pipeline over one pasted blob: segment, detect
// provider, extract fields, score. It is referentially transparent for
// identical inputs apart from freshly generated row identifiers.
type Extractor struct {
	registry *registry.Registry
}

// NewExtractor creates an extractor over the given provider registry.
func NewExtractor(reg *registry.Registry) *Extractor {
	return &Extractor{registry: reg}
}

// Extract parses every email segment in the blob. Each segment yields
// exactly one Item or exactly one Issue, in input order.
func (e *Extractor) Extract(ctx context.Context, text, timezone string, locale model.DateLocale) (*model.ExtractionResult, error) {
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", timezone, err)
	}
	if locale == "" {
		locale = model.DateLocaleUS
	}

	segments := SplitSegments(model.NormalizeText(text))
	result := &model.ExtractionResult{
		Items:      []model.Item{},
		Issues:     []model.Issue{},
		DateLocale: locale,
	}

	for i, segment := range segments {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		item, issue, err := e.extractSegment(segment, timezone, locale)
		if err != nil {
			return nil, err
		}
		if issue != nil {
			result.Issues = append(result.Issues, *issue)
			slog.Debug("segment yielded issue", "segment", i, "reason", issue.Reason)
			continue
		}
		result.Items = append(result.Items, *item)
		slog.Debug("segment yielded item",
			"segment", i,
			"provider", item.Provider,
			"confidence", item.Confidence)
	}

	slog.Info("extraction complete",
		"segments", len(segments),
		"items", len(result.Items),
		"issues", len(result.Issues),
		"locale", locale)

	return result, nil
}

func (e *Extractor) extractSegment(segment, timezone string, locale model.DateLocale) (*model.Item, *model.Issue, error) {
	entry := e.registry.Detect(segment)

	provider := model.ProviderUnknown
	patterns := e.registry.Fallback()
	planLength := 0
	if entry != nil {
		provider = entry.Provider
		patterns = entry.Patterns
		planLength = entry.PlanLength
	}

	amount, currency, amountFound := ExtractAmount(segment, patterns.Amount)
	iso, rawDate, err := ExtractDueDate(segment, patterns.DueDate, locale, timezone)
	if err != nil {
		return nil, nil, err
	}
	installmentNo, _, installmentStated, totalKnown := ExtractInstallment(segment, patterns.Installment, planLength)
	autopay, autopayStated := DetectAutopay(segment, patterns.AutopayOn, patterns.AutopayOff)
	lateFee := ExtractLateFee(segment, patterns.LateFee)

	dateSignal := iso != "" || rawDate != ""
	if provider == model.ProviderUnknown && !amountFound && !dateSignal && !installmentStated && !autopayStated {
		return nil, &model.Issue{
			ID:      uuid.NewString(),
			Reason:  missingReason(amountFound, dateSignal, installmentStated, autopayStated),
			Snippet: RedactSnippet(segment),
		}, nil
	}

	if currency == "" {
		currency = "USD"
	}

	item := model.Item{
		ID:            uuid.NewString(),
		Provider:      provider,
		InstallmentNo: installmentNo,
		DueDate:       iso,
		RawDueDate:    rawDate,
		AmountCents:   amount,
		Currency:      currency,
		Autopay:       autopay,
		LateFeeCents:  lateFee,
		Signals: model.Signals{
			AmountFound:           amountFound,
			InstallmentStated:     installmentStated,
			InstallmentTotalKnown: totalKnown,
			AutopayStated:         autopayStated,
		},
	}
	item.Confidence = score.Confidence(item)

	return &item, nil, nil
}

func missingReason(amountFound, dateFound, installmentStated, autopayStated bool) string {
	missing := []string{"provider"}
	if !amountFound {
		missing = append(missing, "amount")
	}
	if !dateFound {
		missing = append(missing, "due date")
	}
	if !installmentStated {
		missing = append(missing, "installment number")
	}
	if !autopayStated {
		missing = append(missing, "autopay status")
	}
	return "no usable signals: missing " + strings.Join(missing, ", ")
}

var (
	emailAddr = regexp.MustCompile(`\S+@\S+`)
	longDigit = regexp.MustCompile(`\d{5,}`)
	spaceRun  = regexp.MustCompile(`\s+`)
)

// RedactSnippet produces a PII-safe excerpt of a failed segment: email
// addresses and long digit runs are masked, whitespace collapsed, and the
// result truncated.
func RedactSnippet(segment string) string {
	s := emailAddr.ReplaceAllString(segment, "***@***")
	s = longDigit.ReplaceAllString(s, "#####")
	s = strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
	if runes := []rune(s); len(runes) > snippetLimit {
		s = string(runes[:snippetLimit]) + "…"
	}
	return s
}
