package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// Issue records one email segment that failed to yield a usable Item.
type Issue struct {
	ID      string `json:"id"`
	Reason  string `json:"reason"`
	Snippet string `json:"snippet"` // redacted, truncated excerpt
}

// ExtractionResult is the output of one extraction call. Every input segment
// contributes exactly one Item or exactly one Issue, in input order.
type ExtractionResult struct {
	Items      []Item     `json:"items"`
	Issues     []Issue    `json:"issues"`
	DateLocale DateLocale `json:"date_locale"`
}

// Clone returns a deep copy so cached results cannot be mutated by callers.
func (r *ExtractionResult) Clone() *ExtractionResult {
	out := &ExtractionResult{
		Items:      make([]Item, len(r.Items)),
		Issues:     make([]Issue, len(r.Issues)),
		DateLocale: r.DateLocale,
	}
	copy(out.Items, r.Items)
	copy(out.Issues, r.Issues)
	return out
}

// UndoSnapshot holds a row's pre-fix state. At most one is retained per row;
// undo always reverts to the original pre-fix state, never to an
// intermediate fixed state.
type UndoSnapshot struct {
	RowID              string  `json:"row_id"`
	PreviousDueDate    string  `json:"previous_due_date"`
	PreviousRawDueDate string  `json:"previous_raw_due_date"`
	PreviousConfidence float64 `json:"previous_confidence"`
}

// CacheStats reports extraction cache counters.
type CacheStats struct {
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	Size       int     `json:"size"`
	HitRateRaw float64 `json:"hit_rate_raw"`
}

// CacheEntry is one memoized extraction result.
type CacheEntry struct {
	CreatedAt time.Time         `json:"created_at"`
	Result    *ExtractionResult `json:"result"`
	Key       string            `json:"key"`
}

// CacheKey derives the deterministic digest identifying one logical
// extraction request. Text is normalized first so trailing whitespace and
// line-ending differences do not split the key space. The bypass flag is a
// call-time option and is deliberately not part of the key.
func CacheKey(text, timezone string, locale DateLocale) string {
	data := fmt.Sprintf("%s\x00%s\x00%s", NormalizeText(text), timezone, locale)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// NormalizeText canonicalizes line endings and strips outer whitespace so
// logically identical pastes map to the same cache key.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSpace(text)
}
