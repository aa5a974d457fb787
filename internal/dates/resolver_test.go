package dates

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duescan/duescan/internal/common"
	"github.com/duescan/duescan/internal/model"
)

func TestResolve_AmbiguousNumericTokens(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		locale  model.DateLocale
		want    string
		wantErr bool
	}{
		{
			name:   "US reads month first",
			token:  "01/02/2026",
			locale: model.DateLocaleUS,
			want:   "2026-01-02",
		},
		{
			name:   "EU reads day first",
			token:  "01/02/2026",
			locale: model.DateLocaleEU,
			want:   "2026-02-01",
		},
		{
			name:   "day above 12 is unambiguous under EU",
			token:  "15/01/2026",
			locale: model.DateLocaleEU,
			want:   "2026-01-15",
		},
		{
			name:    "day above 12 in the month slot fails under US",
			token:   "15/01/2026",
			locale:  model.DateLocaleUS,
			wantErr: true,
		},
		{
			name:   "two digit year expands to 2000s",
			token:  "3/4/26",
			locale: model.DateLocaleUS,
			want:   "2026-03-04",
		},
		{
			name:   "dotted separator",
			token:  "05.06.2026",
			locale: model.DateLocaleEU,
			want:   "2026-06-05",
		},
		{
			name:    "Feb 30 is rejected, not clamped",
			token:   "02/30/2026",
			locale:  model.DateLocaleUS,
			wantErr: true,
		},
		{
			name:    "month 13 is rejected",
			token:   "13/05/2026",
			locale:  model.DateLocaleUS,
			wantErr: true,
		},
		{
			name:    "garbage token",
			token:   "not a date",
			locale:  model.DateLocaleUS,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.token, tt.locale, "America/New_York")
			if tt.wantErr {
				require.Error(t, err)
				var parseErr *ParseError
				assert.True(t, errors.As(err, &parseErr), "want *ParseError, got %T", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_UnambiguousTokensIgnoreLocale(t *testing.T) {
	tokens := []struct {
		token string
		want  string
	}{
		{"Oct 5, 2025", "2025-10-05"},
		{"October 5, 2025", "2025-10-05"},
		{"oct 5 2025", "2025-10-05"},
		{"5 October 2025", "2025-10-05"},
		{"Sept 12, 2026", "2026-09-12"},
		{"Jan 1st, 2026", "2026-01-01"},
		{"2026-01-15", "2026-01-15"},
	}

	for _, tt := range tokens {
		for _, locale := range []model.DateLocale{model.DateLocaleUS, model.DateLocaleEU} {
			got, err := Resolve(tt.token, locale, "UTC")
			require.NoError(t, err, "token %q locale %s", tt.token, locale)
			assert.Equal(t, tt.want, got, "token %q locale %s", tt.token, locale)
		}
	}
}

func TestResolve_InvalidCalendarNamedDate(t *testing.T) {
	_, err := Resolve("Feb 30, 2026", model.DateLocaleUS, "UTC")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "Feb 30, 2026", parseErr.Token)
}

func TestResolve_UnknownTimezone(t *testing.T) {
	_, err := Resolve("01/02/2026", model.DateLocaleUS, "Not/AZone")
	require.Error(t, err)

	var parseErr *ParseError
	assert.False(t, errors.As(err, &parseErr), "timezone failure is not a date parse error")
}

func TestResolve_MonthLikeWordIsNotAMonth(t *testing.T) {
	_, err := Resolve("mayhem 5 2026", model.DateLocaleUS, "UTC")
	assert.Error(t, err)
}

func TestValidateManual(t *testing.T) {
	tests := []struct {
		name    string
		iso     string
		wantErr bool
	}{
		{name: "lower bound inclusive", iso: "2020-01-01"},
		{name: "upper bound inclusive", iso: "2032-12-31"},
		{name: "normal date", iso: "2026-06-15"},
		{name: "just past upper bound", iso: "2033-01-01", wantErr: true},
		{name: "just before lower bound", iso: "2019-12-31", wantErr: true},
		{name: "not ISO", iso: "01/02/2026", wantErr: true},
		{name: "impossible calendar date", iso: "2026-02-30", wantErr: true},
		{name: "empty", iso: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateManual(tt.iso)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, common.IsValidation(err), "want ValidationError, got %T", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
