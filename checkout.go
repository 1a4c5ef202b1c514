package checkout

import (
	"github.com/goliatone/go-checkout/pkg/order"
	"github.com/goliatone/go-checkout/pkg/wizard"
)

// Config aliases the wizard configuration; exported via the root package for
// convenience.
type Config = wizard.Config

// Flow is the checkout wizard sequencer.
type Flow = wizard.Flow

// Option customises a flow instance.
type Option = wizard.Option

// State is the wizard's accumulated data snapshot.
type State = wizard.State

// Step describes one entry of the computed step list.
type Step = wizard.Step

// Backend is the external order/collective surface a flow submits to.
type Backend = order.Backend

// New builds a checkout flow for one contribution. It is the simplest entry
// point for callers that just want to drive the wizard.
func New(cfg Config, backend Backend, options ...Option) (*Flow, error) {
	return wizard.New(cfg, backend, options...)
}

// WithNavigator forwards the routing collaborator option.
func WithNavigator(nav wizard.Navigator) Option {
	return wizard.WithNavigator(nav)
}

// WithSession forwards the identity/session provider option.
func WithSession(session wizard.Session) Option {
	return wizard.WithSession(session)
}
