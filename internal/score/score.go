// Package score computes the confidence score for extracted items.
package score

import "github.com/duescan/duescan/internal/model"

// Weights for each extraction signal. The maximum states sum to exactly 1.0
// so a fully unambiguous extraction scores 1.0.
const (
	weightProvider         = 0.35
	weightDueDate          = 0.25
	weightAmount           = 0.25
	weightInstallmentKnown = 0.10 // stated with a known plan total ("1 of 4")
	weightInstallmentOnly  = 0.05 // stated without a total ("final payment")
	weightAutopay          = 0.05 // explicitly stated either on or off
)

// Confidence maps an item's field state and found-vs-defaulted signals to a
// score in [0,1]. It is a pure function of its argument: re-scoring after a
// quick fix yields the same value for the same fields regardless of history.
func Confidence(item model.Item) float64 {
	score := 0.0

	if item.Provider != model.ProviderUnknown && item.Provider != "" {
		score += weightProvider
	}
	if item.DueDate != "" {
		score += weightDueDate
	}
	if item.Signals.AmountFound {
		// A legitimately-zero amount still counts as found.
		score += weightAmount
	}
	if item.Signals.InstallmentStated {
		if item.Signals.InstallmentTotalKnown {
			score += weightInstallmentKnown
		} else {
			score += weightInstallmentOnly
		}
	}
	if item.Signals.AutopayStated {
		score += weightAutopay
	}

	return clamp(score)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
