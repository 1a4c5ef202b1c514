package wizard

import (
	"github.com/goliatone/go-checkout/pkg/pricing"
	"github.com/goliatone/go-checkout/pkg/tier"
)

// StepName identifies one page of the wizard.
type StepName string

const (
	StepContributeAs StepName = "contributeAs"
	StepDetails      StepName = "details"
	StepPayment      StepName = "payment"
	StepSummary      StepName = "summary"
	// StepSuccess is the terminal page reached after submission when no
	// external redirect applies.
	StepSuccess StepName = "success"
)

// Direction of a navigation request. Backward transitions are never blocked
// by validation.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Step is one derived entry of the wizard's step list. Steps are recomputed
// from the state on every decision point, never stored.
type Step struct {
	Name      StepName
	Completed bool
	Last      bool
}

// StepConfig is the subset of flow configuration the step computation needs.
type StepConfig struct {
	Tier           *tier.Tier
	FixedAmount    *int64
	ForcedInterval tier.Interval
	// TaxApplies is the precomputed tax.MayApply result for this
	// tier/collective/host combination.
	TaxApplies bool
}

// ComputeSteps derives the ordered, filtered step list. The order is fixed:
// contributeAs, details, payment, summary. The details step is omitted for
// fixed contributions unless the tier is a ticket; payment is omitted when
// the minimum is zero and the contribution is fixed; summary only appears
// when taxes may apply.
func ComputeSteps(state State, cfg StepConfig) []Step {
	fixed := pricing.IsFixedContribution(cfg.Tier, cfg.ForcedInterval, cfg.FixedAmount)
	minAmount := pricing.MinimumOrderAmount(cfg.Tier)
	noPaymentRequired := minAmount == 0 && state.Details != nil && state.Details.Amount == 0

	steps := []Step{{
		Name:      StepContributeAs,
		Completed: state.Profile != nil,
	}}

	if !fixed || cfg.Tier.IsTicket() {
		steps = append(steps, Step{
			Name:      StepDetails,
			Completed: state.Details != nil && state.Details.TotalAmount >= minAmount,
		})
	}

	if !(minAmount == 0 && fixed) {
		steps = append(steps, Step{
			Name:      StepPayment,
			Completed: noPaymentRequired || state.Payment != nil,
		})
	}

	if cfg.TaxApplies {
		steps = append(steps, Step{
			Name:      StepSummary,
			Completed: noPaymentRequired || (state.Summary != nil && state.Summary.Ready),
		})
	}

	steps[len(steps)-1].Last = true
	return steps
}

func stepIndex(steps []Step, name StepName) int {
	for i, step := range steps {
		if step.Name == name {
			return i
		}
	}
	return -1
}
