package quickfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duescan/duescan/internal/common"
	"github.com/duescan/duescan/internal/model"
	"github.com/duescan/duescan/internal/score"
)

// missingDateRow carries every signal except a resolved due date, so a date
// fix lifts its confidence to the maximum.
func missingDateRow(id string) model.Item {
	item := model.Item{
		ID:          id,
		Provider:    model.ProviderKlarna,
		InstallmentNo: 1,
		RawDueDate:  "31/12/2026",
		AmountCents: 4500,
		Currency:    "USD",
		Autopay:     true,
		Signals: model.Signals{
			AmountFound:           true,
			InstallmentStated:     true,
			InstallmentTotalKnown: true,
			AutopayStated:         true,
		},
	}
	item.Confidence = score.Confidence(item)
	return item
}

func newEngineWith(rows ...model.Item) *Engine {
	e := NewEngine()
	e.Replace(rows)
	return e
}

func TestApplyRowFix_RaisesConfidence(t *testing.T) {
	e := newEngineWith(missingDateRow("row-1"))
	before := e.Rows()[0]
	assert.InDelta(t, 0.75, before.Confidence, 1e-9)

	require.NoError(t, e.ApplyRowFix("row-1", Patch{DueDate: "2026-12-31"}))

	after := e.Rows()[0]
	assert.Equal(t, "2026-12-31", after.DueDate)
	assert.Equal(t, "31/12/2026", after.RawDueDate, "raw token survives a fix")
	assert.InDelta(t, 1.0, after.Confidence, 1e-9)
	assert.Greater(t, after.Confidence, before.Confidence)
}

func TestApplyRowFix_UnknownRowIsSilentNoOp(t *testing.T) {
	e := newEngineWith(missingDateRow("row-1"))

	require.NoError(t, e.ApplyRowFix("no-such-row", Patch{DueDate: "2026-06-01"}))

	assert.Empty(t, e.Snapshots())
	assert.Equal(t, "", e.Rows()[0].DueDate)
}

func TestApplyRowFix_RejectsOutOfRangeBeforeMutation(t *testing.T) {
	e := newEngineWith(missingDateRow("row-1"))

	err := e.ApplyRowFix("row-1", Patch{DueDate: "2033-01-01"})
	require.Error(t, err)
	assert.True(t, common.IsValidation(err))

	row := e.Rows()[0]
	assert.Equal(t, "", row.DueDate, "rejected fix leaves the row untouched")
	assert.Empty(t, e.Snapshots(), "rejected fix takes no snapshot")
}

func TestApplyRowFix_RejectsMalformedDate(t *testing.T) {
	e := newEngineWith(missingDateRow("row-1"))

	for _, bad := range []string{"", "12/31/2026", "2026-02-30", "2019-12-31"} {
		err := e.ApplyRowFix("row-1", Patch{DueDate: bad})
		assert.Error(t, err, "input %q", bad)
		assert.True(t, common.IsValidation(err), "input %q", bad)
	}
}

func TestUndoRowFix_RestoresPreFixState(t *testing.T) {
	e := newEngineWith(missingDateRow("row-1"))
	original := e.Rows()[0]

	require.NoError(t, e.ApplyRowFix("row-1", Patch{DueDate: "2026-12-31"}))
	e.UndoRowFix("row-1")

	restored := e.Rows()[0]
	assert.Equal(t, original.DueDate, restored.DueDate)
	assert.Equal(t, original.RawDueDate, restored.RawDueDate)
	assert.InDelta(t, original.Confidence, restored.Confidence, 1e-9)
	assert.Empty(t, e.Snapshots(), "undo consumes the snapshot")
}

func TestUndoRowFix_SecondUndoIsNoOp(t *testing.T) {
	e := newEngineWith(missingDateRow("row-1"))

	require.NoError(t, e.ApplyRowFix("row-1", Patch{DueDate: "2026-12-31"}))
	e.UndoRowFix("row-1")
	afterFirst := e.Rows()[0]

	e.UndoRowFix("row-1")
	assert.Equal(t, afterFirst, e.Rows()[0])
}

func TestUndoRowFix_NeverFixedIsNoOp(t *testing.T) {
	e := newEngineWith(missingDateRow("row-1"))
	before := e.Rows()[0]

	e.UndoRowFix("row-1")
	e.UndoRowFix("no-such-row")

	assert.Equal(t, before, e.Rows()[0])
}

func TestApplyRowFix_SecondFixKeepsOriginalSnapshot(t *testing.T) {
	e := newEngineWith(missingDateRow("row-1"))
	original := e.Rows()[0]

	require.NoError(t, e.ApplyRowFix("row-1", Patch{DueDate: "2026-06-01"}))
	require.NoError(t, e.ApplyRowFix("row-1", Patch{DueDate: "2026-07-15"}))

	assert.Equal(t, "2026-07-15", e.Rows()[0].DueDate)

	// Undo skips the intermediate fix and lands on the pre-fix state.
	e.UndoRowFix("row-1")
	restored := e.Rows()[0]
	assert.Equal(t, original.DueDate, restored.DueDate)
	assert.InDelta(t, original.Confidence, restored.Confidence, 1e-9)
}

func TestApplyRowFix_FixAfterUndoTakesFreshSnapshot(t *testing.T) {
	e := newEngineWith(missingDateRow("row-1"))

	require.NoError(t, e.ApplyRowFix("row-1", Patch{DueDate: "2026-06-01"}))
	e.UndoRowFix("row-1")
	require.NoError(t, e.ApplyRowFix("row-1", Patch{DueDate: "2026-07-15"}))

	snaps := e.Snapshots()
	require.Contains(t, snaps, "row-1")
	assert.Equal(t, "", snaps["row-1"].PreviousDueDate, "fresh snapshot captures the undone state")
}

func TestApplyRowFix_PatchMayReplaceRawToken(t *testing.T) {
	e := newEngineWith(missingDateRow("row-1"))

	require.NoError(t, e.ApplyRowFix("row-1", Patch{DueDate: "2026-12-31", RawDueDate: "Dec 31, 2026"}))
	assert.Equal(t, "Dec 31, 2026", e.Rows()[0].RawDueDate)

	e.UndoRowFix("row-1")
	assert.Equal(t, "31/12/2026", e.Rows()[0].RawDueDate)
}

func TestReplace_DiscardsPendingSnapshots(t *testing.T) {
	e := newEngineWith(missingDateRow("row-1"))
	require.NoError(t, e.ApplyRowFix("row-1", Patch{DueDate: "2026-12-31"}))
	require.NotEmpty(t, e.Snapshots())

	e.Replace([]model.Item{missingDateRow("row-2")})

	assert.Empty(t, e.Snapshots())
	require.Len(t, e.Rows(), 1)
	assert.Equal(t, "row-2", e.Rows()[0].ID)
}

func TestRestore_RoundTripsRowsAndSnapshots(t *testing.T) {
	e := newEngineWith(missingDateRow("row-1"))
	require.NoError(t, e.ApplyRowFix("row-1", Patch{DueDate: "2026-12-31"}))

	rows, snaps := e.Rows(), e.Snapshots()

	restored := NewEngine()
	restored.Restore(rows, snaps)

	assert.Equal(t, rows, restored.Rows())
	restored.UndoRowFix("row-1")
	assert.Equal(t, "", restored.Rows()[0].DueDate, "restored snapshot still undoes")
}

func TestUndoRowFix_VanishedRowDropsStaleSnapshot(t *testing.T) {
	e := newEngineWith(missingDateRow("row-1"))
	require.NoError(t, e.ApplyRowFix("row-1", Patch{DueDate: "2026-12-31"}))

	e.Restore([]model.Item{missingDateRow("row-2")}, e.Snapshots())
	e.UndoRowFix("row-1")

	assert.Empty(t, e.Snapshots())
	assert.Equal(t, "row-2", e.Rows()[0].ID)
}

func TestClear_DropsRowsAndSnapshots(t *testing.T) {
	e := newEngineWith(missingDateRow("row-1"), missingDateRow("row-2"))
	require.NoError(t, e.ApplyRowFix("row-1", Patch{DueDate: "2026-12-31"}))

	e.Clear()

	assert.Empty(t, e.Rows())
	assert.Empty(t, e.Snapshots())
}

func TestReparseDate(t *testing.T) {
	iso, err := ReparseDate("31/12/2026", "UTC", model.DateLocaleEU)
	require.NoError(t, err)
	assert.Equal(t, "2026-12-31", iso)

	_, err = ReparseDate("31/12/2026", "UTC", model.DateLocaleUS)
	assert.Error(t, err, "day 31 cannot be a month")

	// Ambiguous tokens flip with the locale.
	us, err := ReparseDate("01/02/2026", "UTC", model.DateLocaleUS)
	require.NoError(t, err)
	eu, err2 := ReparseDate("01/02/2026", "UTC", model.DateLocaleEU)
	require.NoError(t, err2)
	assert.Equal(t, "2026-01-02", us)
	assert.Equal(t, "2026-02-01", eu)
}
