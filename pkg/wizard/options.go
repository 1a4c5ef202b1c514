package wizard

import (
	"time"

	"github.com/goliatone/go-checkout/pkg/payment"
	"github.com/goliatone/go-checkout/pkg/tax"
	"github.com/goliatone/go-checkout/pkg/verification"
)

// defaultProfileDebounce matches the reference trailing debounce applied to
// rapid profile edits before they commit to shared state.
const defaultProfileDebounce = 300 * time.Millisecond

// FormValidator lets the surrounding page report in-page form validity for
// the active step (the reportValidity equivalent). A nil validator treats
// every form as valid.
type FormValidator func(step StepName, state State) error

// Option customises the flow configuration.
type Option func(*Flow)

// WithNavigator injects the routing collaborator. Defaults to NopNavigator.
func WithNavigator(nav Navigator) Option {
	return func(f *Flow) {
		if nav != nil {
			f.navigator = nav
		}
	}
}

// WithSession injects the identity/session provider.
func WithSession(session Session) Option {
	return func(f *Flow) {
		f.session = session
	}
}

// WithTokenizer injects the payment provider's card tokenization call.
func WithTokenizer(tokenizer payment.Tokenizer) Option {
	return func(f *Flow) {
		f.tokenizer = tokenizer
	}
}

// WithVerification enables the anti-abuse integration. A nil source keeps it
// disabled.
func WithVerification(tokens *verification.TokenSource) Option {
	return func(f *Flow) {
		f.tokens = tokens
	}
}

// WithOriginCountry overrides the VAT jurisdiction lookup.
func WithOriginCountry(lookup tax.OriginCountryFunc) Option {
	return func(f *Flow) {
		if lookup != nil {
			f.originCountry = lookup
		}
	}
}

// WithFormValidator registers the in-page form validity hook.
func WithFormValidator(v FormValidator) Option {
	return func(f *Flow) {
		f.validateForm = v
	}
}

// WithProfileDebounce overrides the profile-update debounce delay and timer
// factory. Tests pass a manual factory to drive virtual time; a zero delay
// commits synchronously.
func WithProfileDebounce(delay time.Duration, factory TimerFactory) Option {
	return func(f *Flow) {
		f.debounce = NewDebouncer(delay, factory)
	}
}
