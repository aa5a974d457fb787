// Package registry holds the static provider pattern table used to detect
// BNPL providers and extract installment fields from email text.
package registry

import (
	"regexp"
	"strings"

	"github.com/duescan/duescan/internal/model"
)

// InstallmentKind selects how an installment pattern's captures are read.
type InstallmentKind int

const (
	// InstallmentNumeric captures "N of M" (group 1 = N, group 2 = M).
	InstallmentNumeric InstallmentKind = iota
	// InstallmentOrdinal captures an ordinal word or number (group 1).
	InstallmentOrdinal
	// InstallmentFinal has no captures and maps to the provider's plan length.
	InstallmentFinal
)

// InstallmentPattern is one installment match strategy.
type InstallmentPattern struct {
	Regex *regexp.Regexp
	Kind  InstallmentKind
}

// FieldPatterns groups the per-field match strategies for one provider.
// Each list is tried in order; the first match wins.
type FieldPatterns struct {
	Amount      []*regexp.Regexp
	DueDate     []*regexp.Regexp
	Installment []InstallmentPattern
	AutopayOn   []*regexp.Regexp
	AutopayOff  []*regexp.Regexp
	LateFee     []*regexp.Regexp
}

// Entry describes one supported provider: how to detect it and how to pull
// fields out of its emails. Adding a provider means adding one Entry.
type Entry struct {
	Provider   model.Provider
	Detectors  []string // lowercase substrings: domains, header fragments, phrases
	PlanLength int      // known installment count, 0 when the plan length varies
	Patterns   FieldPatterns
}

// matches reports whether any detector substring occurs in the lowercased text.
func (e *Entry) matches(lowered string) bool {
	for _, d := range e.Detectors {
		if strings.Contains(lowered, d) {
			return true
		}
	}
	return false
}

// Registry evaluates provider detectors in registration order. Pure data
// plus matching; no state.
type Registry struct {
	fallback FieldPatterns
	entries  []Entry
}

// New returns a registry loaded with the default provider table.
func New() *Registry {
	return NewWithEntries(DefaultEntries(), GenericPatterns())
}

// NewWithEntries builds a registry from explicit entries. The fallback
// patterns are used for segments whose provider cannot be detected.
func NewWithEntries(entries []Entry, fallback FieldPatterns) *Registry {
	return &Registry{entries: entries, fallback: fallback}
}

// Detect returns the first entry whose detector matches, in registration
// order, or nil when no provider is recognized.
func (r *Registry) Detect(text string) *Entry {
	lowered := strings.ToLower(text)
	for i := range r.entries {
		if r.entries[i].matches(lowered) {
			return &r.entries[i]
		}
	}
	return nil
}

// Fallback returns the generic pattern set used for unknown providers.
func (r *Registry) Fallback() FieldPatterns {
	return r.fallback
}

// Providers lists the registered provider tags in registration order.
func (r *Registry) Providers() []model.Provider {
	out := make([]model.Provider, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Provider
	}
	return out
}

// PlanLength returns the known plan length for a provider, 0 when unknown.
func (r *Registry) PlanLength(provider model.Provider) int {
	for i := range r.entries {
		if r.entries[i].Provider == provider {
			return r.entries[i].PlanLength
		}
	}
	return 0
}
