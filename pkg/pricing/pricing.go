// Package pricing resolves contribution amounts, quantities, and recurrence
// from tier constraints, external overrides, and prior user edits.
package pricing

import "github.com/goliatone/go-checkout/pkg/tier"

const (
	// DonationMinimumAmount applies when there is no tier: free-form
	// donations require at least one major unit.
	DonationMinimumAmount int64 = 100

	// FallbackAmount is the last-resort default when nothing constrains the
	// amount and no presets exist.
	FallbackAmount int64 = 500
)

// DefaultPresets are offered when a tier (or a free-form donation) does not
// pin the amount.
var DefaultPresets = []int64{500, 1000, 2000, 5000}

// Details is the amount/frequency slice of the wizard state. TotalAmount is
// always Amount multiplied by Quantity.
type Details struct {
	Amount      int64
	Quantity    int
	Interval    tier.Interval
	TotalAmount int64
}

// NewDetails builds a Details value, normalising the quantity to at least one
// and computing the total.
func NewDetails(amount int64, quantity int, interval tier.Interval) Details {
	if quantity < 1 {
		quantity = 1
	}
	return Details{
		Amount:      amount,
		Quantity:    quantity,
		Interval:    interval,
		TotalAmount: amount * int64(quantity),
	}
}

// MinimumOrderAmount returns the smallest total the order may carry, in minor
// units. No tier means a plain donation with a fixed floor; a tier with
// neither a fixed amount nor presets is free.
func MinimumOrderAmount(t *tier.Tier) int64 {
	if t == nil {
		return DonationMinimumAmount
	}
	if t.Amount == nil && t.Presets == nil {
		return 0
	}
	return t.MinimumAmount
}

// AmountPresets returns the selectable amounts: the tier's own presets, the
// defaults when the tier (or absence of one) leaves the amount open, or nil
// when the tier fixes the amount.
func AmountPresets(t *tier.Tier) []int64 {
	if t != nil && t.Presets != nil {
		return t.Presets
	}
	if t != nil && t.Amount != nil {
		return nil
	}
	return DefaultPresets
}

// DefaultAmount resolves the starting amount by priority: the amount already
// chosen, the tier's fixed amount, the external fixed override, zero for free
// tiers, the middle preset, and finally the hard-coded fallback.
func DefaultAmount(prior *Details, t *tier.Tier, fixedAmount *int64) int64 {
	if prior != nil {
		return prior.Amount
	}
	if t != nil && t.Amount != nil {
		return *t.Amount
	}
	if fixedAmount != nil {
		return *fixedAmount
	}
	if MinimumOrderAmount(t) == 0 {
		// Free tiers are free per default, even when a donation is allowed.
		return 0
	}
	if presets := AmountPresets(t); len(presets) > 0 {
		return presets[len(presets)/2]
	}
	return FallbackAmount
}

// IsFixedContribution reports whether both the amount and the interval are
// locked: the interval is forced by a tier or an external override, and the
// amount is forced because the tier has no presets while a tier amount or an
// external fixed amount is set.
func IsFixedContribution(t *tier.Tier, forcedInterval tier.Interval, fixedAmount *int64) bool {
	forceInterval := t != nil || forcedInterval != tier.IntervalOneTime
	if !forceInterval {
		return false
	}
	if t != nil && t.Presets != nil {
		return false
	}
	if t != nil && t.Amount != nil {
		return true
	}
	return fixedAmount != nil
}

// DefaultDetails produces the initial details slice: amount by DefaultAmount
// priority, quantity from prior edits or the configured default, interval
// from prior edits, the tier, or the external override.
func DefaultDetails(prior *Details, t *tier.Tier, fixedAmount *int64, forcedInterval tier.Interval, defaultQuantity int) Details {
	amount := DefaultAmount(prior, t, fixedAmount)

	quantity := defaultQuantity
	if prior != nil && prior.Quantity > 0 {
		quantity = prior.Quantity
	}

	interval := forcedInterval
	if t != nil && t.Interval != tier.IntervalOneTime {
		interval = t.Interval
	}
	if prior != nil && prior.Interval != tier.IntervalOneTime {
		interval = prior.Interval
	}

	return NewDetails(amount, quantity, interval)
}
