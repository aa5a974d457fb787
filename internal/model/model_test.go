package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	base := CacheKey("From: klarna\nDue: 01/15/2026", "UTC", DateLocaleUS)

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, base, CacheKey("From: klarna\nDue: 01/15/2026", "UTC", DateLocaleUS))
	})

	t.Run("whitespace and line endings normalize to the same key", func(t *testing.T) {
		assert.Equal(t, base, CacheKey("  From: klarna\r\nDue: 01/15/2026\n\n", "UTC", DateLocaleUS))
		assert.Equal(t, base, CacheKey("From: klarna\rDue: 01/15/2026", "UTC", DateLocaleUS))
	})

	t.Run("text changes the key", func(t *testing.T) {
		assert.NotEqual(t, base, CacheKey("From: klarna\nDue: 01/16/2026", "UTC", DateLocaleUS))
	})

	t.Run("timezone changes the key", func(t *testing.T) {
		assert.NotEqual(t, base, CacheKey("From: klarna\nDue: 01/15/2026", "Europe/Berlin", DateLocaleUS))
	})

	t.Run("locale changes the key", func(t *testing.T) {
		assert.NotEqual(t, base, CacheKey("From: klarna\nDue: 01/15/2026", "UTC", DateLocaleEU))
	})

	t.Run("fields do not bleed across separators", func(t *testing.T) {
		assert.NotEqual(t, CacheKey("ab", "c", DateLocaleUS), CacheKey("a", "bc", DateLocaleUS))
	})
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "a\nb", NormalizeText("a\r\nb"))
	assert.Equal(t, "a\nb", NormalizeText("a\rb"))
	assert.Equal(t, "a\nb", NormalizeText("  \na\nb\n\n  "))
	assert.Equal(t, "", NormalizeText("   \r\n\t  "))
}

func TestParseDateLocale(t *testing.T) {
	us, err := ParseDateLocale("US")
	require.NoError(t, err)
	assert.Equal(t, DateLocaleUS, us)

	eu, err := ParseDateLocale("EU")
	require.NoError(t, err)
	assert.Equal(t, DateLocaleEU, eu)

	for _, bad := range []string{"", "us", "UK", "fr"} {
		_, err := ParseDateLocale(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$45.00", FormatCents(4500, "USD"))
	assert.Equal(t, "$45.00", FormatCents(4500, ""))
	assert.Equal(t, "$0.05", FormatCents(5, "USD"))
	assert.Equal(t, "€32.50", FormatCents(3250, "EUR"))
	assert.Equal(t, "£18.75", FormatCents(1875, "GBP"))
	assert.Equal(t, "-$7.50", FormatCents(-750, "USD"))
	assert.Equal(t, "12.00 CAD", FormatCents(1200, "CAD"))
}

func TestExtractionResult_Clone(t *testing.T) {
	original := &ExtractionResult{
		Items:      []Item{{ID: "row-1", DueDate: "2026-01-15"}},
		Issues:     []Issue{{ID: "issue-1", Reason: "no signals"}},
		DateLocale: DateLocaleUS,
	}

	clone := original.Clone()
	clone.Items[0].DueDate = "1999-01-01"
	clone.Issues[0].Reason = "changed"

	assert.Equal(t, "2026-01-15", original.Items[0].DueDate)
	assert.Equal(t, "no signals", original.Issues[0].Reason)
	assert.Equal(t, original.DateLocale, clone.DateLocale)
}
