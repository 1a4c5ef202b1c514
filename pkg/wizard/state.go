package wizard

import (
	"github.com/goliatone/go-checkout/pkg/payment"
	"github.com/goliatone/go-checkout/pkg/pricing"
	"github.com/goliatone/go-checkout/pkg/profile"
	"github.com/goliatone/go-checkout/pkg/tax"
)

// State is the wizard's accumulated data, one slice per step plus flow-level
// flags. It is a value type: transitions return a new snapshot and never
// mutate siblings of the slice they replace.
type State struct {
	Profile    *profile.Profile
	Details    *pricing.Details
	Payment    *payment.Selection
	Summary    *tax.Summary
	CustomData map[string]string
	Submitting bool
	Submitted  bool
	Err        string
}

// WithProfile replaces the contributing identity. Payment methods belong to
// the paying profile, so the payment slice is reset alongside.
func (s State) WithProfile(p *profile.Profile) State {
	s.Profile = p
	s.Payment = nil
	return s
}

// WithDetails replaces the amount/frequency slice.
func (s State) WithDetails(d *pricing.Details) State {
	s.Details = d
	return s
}

// WithPayment replaces the payment selection.
func (s State) WithPayment(sel *payment.Selection) State {
	s.Payment = sel
	return s
}

// WithSummary replaces the tax summary.
func (s State) WithSummary(sum *tax.Summary) State {
	s.Summary = sum
	return s
}

// WithCustomValue sets one custom-field value, copying the map so earlier
// snapshots stay untouched.
func (s State) WithCustomValue(name, value string) State {
	data := make(map[string]string, len(s.CustomData)+1)
	for k, v := range s.CustomData {
		data[k] = v
	}
	data[name] = value
	s.CustomData = data
	return s
}

// WithCustomData replaces the whole custom-field map.
func (s State) WithCustomData(data map[string]string) State {
	s.CustomData = data
	return s
}

func (s State) withError(msg string) State {
	s.Err = msg
	return s
}

func (s State) withSubmitting(submitting bool) State {
	s.Submitting = submitting
	return s
}
