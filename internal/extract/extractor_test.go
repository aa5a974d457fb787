package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duescan/duescan/internal/model"
	"github.com/duescan/duescan/internal/registry"
)

const klarnaEmail = "From: noreply@klarna.com\nPayment 1 of 4\nAmount due: $45.00\nDue: 01/15/2026\nAutopay is ON"

func newTestExtractor() *Extractor {
	return NewExtractor(registry.New())
}

func TestExtractor_KlarnaScenario(t *testing.T) {
	result, err := newTestExtractor().Extract(context.Background(), klarnaEmail, "America/New_York", model.DateLocaleUS)
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	require.Empty(t, result.Issues)

	item := result.Items[0]
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, model.ProviderKlarna, item.Provider)
	assert.Equal(t, 1, item.InstallmentNo)
	assert.Equal(t, "2026-01-15", item.DueDate)
	assert.Equal(t, "01/15/2026", item.RawDueDate)
	assert.Equal(t, int64(4500), item.AmountCents)
	assert.Equal(t, "USD", item.Currency)
	assert.True(t, item.Autopay)
	assert.Equal(t, int64(0), item.LateFeeCents)
	assert.InDelta(t, 1.0, item.Confidence, 1e-9)
}

func TestExtractor_Conservation(t *testing.T) {
	blob := strings.Join([]string{
		klarnaEmail,
		"Hey, are we still on for lunch Tuesday?",
		"From: billing@affirm.com\nYour Affirm payment of $30.00 is due Oct 5, 2025",
	}, "\n\n\n")

	result, err := newTestExtractor().Extract(context.Background(), blob, "UTC", model.DateLocaleUS)
	require.NoError(t, err)

	segments := SplitSegments(model.NormalizeText(blob))
	assert.Len(t, segments, 3)
	assert.Equal(t, len(segments), len(result.Items)+len(result.Issues),
		"every segment yields exactly one item or one issue")
	assert.Len(t, result.Items, 2)
	assert.Len(t, result.Issues, 1)
}

func TestExtractor_OutputOrderMatchesInputOrder(t *testing.T) {
	blob := "From: billing@affirm.com\nAmount due: $30.00\n\n\nFrom: noreply@klarna.com\nAmount due: $45.00"

	result, err := newTestExtractor().Extract(context.Background(), blob, "UTC", model.DateLocaleUS)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, model.ProviderAffirm, result.Items[0].Provider)
	assert.Equal(t, model.ProviderKlarna, result.Items[1].Provider)
}

func TestExtractor_DeterministicExceptIDs(t *testing.T) {
	blob := klarnaEmail + "\n\n\nrandom note with nothing in it"
	ex := newTestExtractor()

	first, err := ex.Extract(context.Background(), blob, "UTC", model.DateLocaleUS)
	require.NoError(t, err)
	second, err := ex.Extract(context.Background(), blob, "UTC", model.DateLocaleUS)
	require.NoError(t, err)

	require.Len(t, second.Items, len(first.Items))
	require.Len(t, second.Issues, len(first.Issues))

	for i := range first.Items {
		a, b := first.Items[i], second.Items[i]
		assert.NotEqual(t, a.ID, b.ID, "identifiers are fresh per extraction")
		a.ID, b.ID = "", ""
		assert.Equal(t, a, b)
	}
	for i := range first.Issues {
		a, b := first.Issues[i], second.Issues[i]
		a.ID, b.ID = "", ""
		assert.Equal(t, a, b)
	}
}

func TestExtractor_UnknownProviderWithSignalsStillYieldsItem(t *testing.T) {
	text := "Your installment of $25.00 is due 01/20/2026"

	result, err := newTestExtractor().Extract(context.Background(), text, "UTC", model.DateLocaleUS)
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	item := result.Items[0]
	assert.Equal(t, model.ProviderUnknown, item.Provider)
	assert.Equal(t, int64(2500), item.AmountCents)
	assert.Equal(t, "2026-01-20", item.DueDate)
	assert.Less(t, item.Confidence, 0.8, "unknown provider caps confidence well below certain")
}

func TestExtractor_IssueCarriesReasonAndRedactedSnippet(t *testing.T) {
	text := "Contact jane.doe@example.com about order 1234567890 sometime"

	result, err := newTestExtractor().Extract(context.Background(), text, "UTC", model.DateLocaleUS)
	require.NoError(t, err)

	require.Empty(t, result.Items)
	require.Len(t, result.Issues, 1)

	issue := result.Issues[0]
	assert.NotEmpty(t, issue.ID)
	assert.Contains(t, issue.Reason, "provider")
	assert.NotContains(t, issue.Snippet, "jane.doe@example.com")
	assert.NotContains(t, issue.Snippet, "1234567890")
}

func TestExtractor_EmptyInput(t *testing.T) {
	result, err := newTestExtractor().Extract(context.Background(), "   \n  ", "UTC", model.DateLocaleUS)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Empty(t, result.Issues)
}

func TestExtractor_BadTimezone(t *testing.T) {
	_, err := newTestExtractor().Extract(context.Background(), klarnaEmail, "Mars/Olympus", model.DateLocaleUS)
	assert.Error(t, err)
}

func TestRedactSnippet(t *testing.T) {
	snippet := RedactSnippet("Write to a@b.com ref 123456789\nline two    spaced")
	assert.NotContains(t, snippet, "a@b.com")
	assert.NotContains(t, snippet, "123456789")
	assert.NotContains(t, snippet, "\n")

	long := RedactSnippet(strings.Repeat("x", 500))
	assert.LessOrEqual(t, len([]rune(long)), snippetLimit+1)
}
