package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-checkout/pkg/collective"
	"github.com/goliatone/go-checkout/pkg/customfield"
	"github.com/goliatone/go-checkout/pkg/order"
	"github.com/goliatone/go-checkout/pkg/payment"
	"github.com/goliatone/go-checkout/pkg/pricing"
	"github.com/goliatone/go-checkout/pkg/profile"
	"github.com/goliatone/go-checkout/pkg/tax"
	"github.com/goliatone/go-checkout/pkg/tier"
	"github.com/goliatone/go-checkout/pkg/verification"
)

// Session supplies the logged-in user and refreshes it after profile
// creation and order submission.
type Session interface {
	User() *collective.User
	Refetch(ctx context.Context) error
}

// Config carries the per-flow-instance inputs: the target collective, the
// optional tier, and the query-derived overrides. Feature toggles are
// explicit here rather than read from the process environment.
type Config struct {
	Collective *collective.Collective
	Host       *collective.Host
	Tier       *tier.Tier

	Verb        string
	InitialStep StepName
	Referral    string
	Redirect    string
	Description string

	// Interval is the externally forced recurrence, already normalised.
	Interval tier.Interval
	// FixedAmount is the external amount override in minor units.
	FixedAmount *int64
	// CustomData seeds the custom-field values from the query string.
	CustomData      map[string]string
	DefaultQuantity int

	// Production tightens redirect validation (TLD required).
	Production bool
}

// Flow is the wizard sequencer: it owns the state snapshot, computes the
// applicable steps, and serialises navigation behind per-step validation.
type Flow struct {
	cfg Config

	backend       order.Backend
	submitter     *order.Submitter
	session       Session
	tokenizer     payment.Tokenizer
	tokens        *verification.TokenSource
	navigator     Navigator
	originCountry tax.OriginCountryFunc
	validateForm  FormValidator
	debounce      *Debouncer

	mu          sync.Mutex
	state       State
	current     StepName
	lastVisited StepName
	validating  bool
	orderID     int64
	taxApplies  bool
	closed      bool
}

// New builds a flow for one checkout instance. The collective and backend
// are required; everything else has workable defaults.
func New(cfg Config, backend order.Backend, opts ...Option) (*Flow, error) {
	if cfg.Collective == nil {
		return nil, errors.New("wizard: collective is required")
	}
	if backend == nil {
		return nil, errors.New("wizard: backend is required")
	}
	if cfg.DefaultQuantity < 1 {
		cfg.DefaultQuantity = 1
	}
	if cfg.Verb == "" {
		cfg.Verb = "contribute"
	}

	f := &Flow{
		cfg:           cfg,
		backend:       backend,
		navigator:     NopNavigator{},
		originCountry: tax.DefaultOriginCountry,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.debounce == nil {
		f.debounce = NewDebouncer(defaultProfileDebounce, nil)
	}

	submitter, err := order.NewSubmitter(backend, f.tokens)
	if err != nil {
		return nil, err
	}
	f.submitter = submitter

	f.taxApplies = tax.MayApply(cfg.Tier, cfg.Collective, cfg.Host, f.originCountry)
	f.state = f.initialState()

	steps := ComputeSteps(f.state, f.stepConfig())
	f.current = steps[0].Name
	if cfg.InitialStep != "" && stepIndex(steps, cfg.InitialStep) >= 0 {
		f.current = cfg.InitialStep
	}
	f.lastVisited = f.current

	return f, nil
}

func (f *Flow) initialState() State {
	state := State{CustomData: f.cfg.CustomData}
	if f.session != nil {
		state.Profile = profile.Personal(f.session.User())
	}
	details := pricing.DefaultDetails(nil, f.cfg.Tier, f.cfg.FixedAmount, f.cfg.Interval, f.cfg.DefaultQuantity)
	state.Details = &details
	return state
}

func (f *Flow) stepConfig() StepConfig {
	return StepConfig{
		Tier:           f.cfg.Tier,
		FixedAmount:    f.cfg.FixedAmount,
		ForcedInterval: f.cfg.Interval,
		TaxApplies:     f.taxApplies,
	}
}

// Steps returns the current ordered step list, recomputed from the state.
func (f *Flow) Steps() []Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ComputeSteps(f.state, f.stepConfig())
}

// Current returns the active step.
func (f *Flow) Current() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	steps := ComputeSteps(f.state, f.stepConfig())
	if idx := stepIndex(steps, f.current); idx >= 0 {
		return steps[idx]
	}
	return Step{Name: f.current}
}

// LastVisited reports the furthest step the user has reached.
func (f *Flow) LastVisited() StepName {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastVisited
}

// State returns the current snapshot.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Error returns the flow-level error message, empty when none.
func (f *Flow) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Err
}

// OrderID returns the created order id after a successful submission.
func (f *Flow) OrderID() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderID
}

// Currency resolves the order currency: the tier's when set, the
// collective's otherwise.
func (f *Flow) Currency() string {
	if f.cfg.Tier != nil && f.cfg.Tier.Currency != "" {
		return f.cfg.Tier.Currency
	}
	return f.cfg.Collective.Currency
}

// TotalWithTaxes is quantity times amount plus the tax amount, with absent
// slices counting as zero.
func (f *Flow) TotalWithTaxes() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return totalWithTaxes(f.state)
}

func totalWithTaxes(state State) int64 {
	var quantity int64 = 1
	var amount, taxAmount int64
	if state.Details != nil {
		quantity = int64(state.Details.Quantity)
		amount = state.Details.Amount
	}
	if state.Summary != nil {
		taxAmount = state.Summary.Amount
	}
	return quantity*amount + taxAmount
}

// ContributingCountry guesses the contributor's country from the most to the
// least precise source: tax summary, selected profile, session user.
func (f *Flow) ContributingCountry() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Summary != nil && f.state.Summary.CountryISO != "" {
		return f.state.Summary.CountryISO
	}
	if f.state.Profile != nil && f.state.Profile.Country != "" {
		return f.state.Profile.Country
	}
	if f.session != nil {
		if user := f.session.User(); user != nil && user.Profile != nil {
			return user.Profile.Location.Country
		}
	}
	return ""
}

// UpdateProfile commits a profile selection through the trailing debounce,
// coalescing rapid edits before they hit shared state.
func (f *Flow) UpdateProfile(p *profile.Profile) {
	f.debounce.Schedule(func() {
		f.mu.Lock()
		f.state = f.state.WithProfile(p)
		f.mu.Unlock()
	})
}

// UpdateDetails replaces the amount/frequency slice. The total is recomputed
// so the amount×quantity invariant always holds.
func (f *Flow) UpdateDetails(d pricing.Details) {
	normalized := pricing.NewDetails(d.Amount, d.Quantity, d.Interval)
	f.mu.Lock()
	f.state = f.state.WithDetails(&normalized)
	f.mu.Unlock()
}

// UpdatePayment replaces the payment selection.
func (f *Flow) UpdatePayment(sel *payment.Selection) {
	f.mu.Lock()
	f.state = f.state.WithPayment(sel)
	f.mu.Unlock()
}

// UpdateSummary replaces the tax summary.
func (f *Flow) UpdateSummary(s tax.Summary) {
	f.mu.Lock()
	f.state = f.state.WithSummary(&s)
	f.mu.Unlock()
}

// SetCustomValue records one custom-field value.
func (f *Flow) SetCustomValue(name, value string) {
	f.mu.Lock()
	f.state = f.state.WithCustomValue(name, value)
	f.mu.Unlock()
}

// Next validates the active step and advances on success. On the last step
// it runs the submission pipeline instead. Requests arriving while a
// validation or submission is in flight are ignored.
func (f *Flow) Next(ctx context.Context) error {
	f.mu.Lock()
	if f.validating || f.state.Submitting || f.state.Submitted {
		f.mu.Unlock()
		return ErrNavigationInFlight
	}
	f.validating = true
	current := f.current
	f.mu.Unlock()

	err := f.validateStep(ctx, current, Forward)

	f.mu.Lock()
	f.validating = false
	if err != nil {
		f.state = f.state.withError(userMessage(err))
		f.mu.Unlock()
		return err
	}
	f.state = f.state.withError("")

	steps := ComputeSteps(f.state, f.stepConfig())
	idx := stepIndex(steps, current)
	if idx < 0 {
		idx = 0
	}
	if steps[idx].Last {
		f.mu.Unlock()
		return f.Submit(ctx, nil)
	}

	next := steps[idx+1].Name
	f.current = next
	f.lastVisited = next
	f.mu.Unlock()

	route, params := f.buildStepRoute(next, 0)
	return f.navigator.NavigateToStep(ctx, route, params)
}

// Back moves to the previous step without validating; backward transitions
// are never blocked.
func (f *Flow) Back(ctx context.Context) error {
	f.mu.Lock()
	if f.validating || f.state.Submitting || f.state.Submitted {
		f.mu.Unlock()
		return ErrNavigationInFlight
	}
	steps := ComputeSteps(f.state, f.stepConfig())
	idx := stepIndex(steps, f.current)
	if idx <= 0 {
		f.mu.Unlock()
		return nil
	}
	prev := steps[idx-1].Name
	f.current = prev
	f.state = f.state.withError("")
	f.mu.Unlock()

	route, params := f.buildStepRoute(prev, 0)
	return f.navigator.NavigateToStep(ctx, route, params)
}

// GoTo jumps to a previously visited step (the step progress widget). Steps
// beyond the last visited one stay gated behind Next's validation.
func (f *Flow) GoTo(ctx context.Context, name StepName) error {
	f.mu.Lock()
	if f.validating || f.state.Submitting || f.state.Submitted {
		f.mu.Unlock()
		return ErrNavigationInFlight
	}
	steps := ComputeSteps(f.state, f.stepConfig())
	target := stepIndex(steps, name)
	visited := stepIndex(steps, f.lastVisited)
	if target < 0 || target > visited {
		f.mu.Unlock()
		return ErrStepNotReachable
	}
	f.current = name
	f.state = f.state.withError("")
	f.mu.Unlock()

	route, params := f.buildStepRoute(name, 0)
	return f.navigator.NavigateToStep(ctx, route, params)
}

func (f *Flow) validateStep(ctx context.Context, name StepName, dir Direction) error {
	switch name {
	case StepContributeAs:
		return f.validateProfile(ctx, dir)
	case StepDetails:
		return f.validateDetails(dir)
	case StepPayment:
		return f.validatePayment(ctx, dir)
	default:
		return nil
	}
}

// validateProfile checks the selection and materialises profiles that do not
// exist on the backend yet (new organizations, first-time incognito).
func (f *Flow) validateProfile(ctx context.Context, dir Direction) error {
	if dir == Backward {
		return nil
	}

	f.mu.Lock()
	selected := f.state.Profile
	state := f.state
	f.mu.Unlock()

	if selected == nil {
		return ErrProfileRequired
	}
	if f.validateForm != nil {
		if err := f.validateForm(StepContributeAs, state); err != nil {
			return err
		}
	}
	if selected.Exists() {
		return nil
	}

	draft := *selected
	if draft.Type == "" {
		draft.Type = collective.TypeOrganization
	}

	f.mu.Lock()
	f.state = f.state.withSubmitting(true)
	f.mu.Unlock()

	created, err := f.backend.CreateCollective(ctx, draft)

	f.mu.Lock()
	f.state = f.state.withSubmitting(false)
	f.mu.Unlock()

	if err != nil {
		return fmt.Errorf("wizard: create profile: %w", err)
	}
	if f.session != nil {
		if err := f.session.Refetch(ctx); err != nil {
			return fmt.Errorf("wizard: refresh session: %w", err)
		}
	}

	f.mu.Lock()
	f.state = f.state.WithProfile(&created)
	f.mu.Unlock()
	return nil
}

func (f *Flow) validateDetails(dir Direction) error {
	if dir == Backward {
		return nil
	}

	f.mu.Lock()
	details := f.state.Details
	state := f.state
	f.mu.Unlock()

	if details == nil {
		return ErrDetailsRequired
	}
	if f.validateForm != nil {
		if err := f.validateForm(StepDetails, state); err != nil {
			return err
		}
	}

	minAmount := pricing.MinimumOrderAmount(f.cfg.Tier)
	if details.TotalAmount < minAmount {
		return fmt.Errorf("wizard: the minimum amount for this contribution is %d", minAmount)
	}
	if limit := f.cfg.Tier.QuantityLimit(); limit > 0 && details.Quantity > limit {
		return fmt.Errorf("wizard: quantity is limited to %d", limit)
	}
	return customfield.Validate(f.customFields(), state.CustomData)
}

// validatePayment follows the reference decision order: free fixed orders
// skip payment entirely, stored methods pass as-is, and new cards exchange
// their details for a provider token exactly once.
func (f *Flow) validatePayment(ctx context.Context, dir Direction) error {
	if dir == Backward {
		return nil
	}

	f.mu.Lock()
	sel := f.state.Payment
	f.mu.Unlock()

	fixed := pricing.IsFixedContribution(f.cfg.Tier, f.cfg.Interval, f.cfg.FixedAmount)
	if pricing.MinimumOrderAmount(f.cfg.Tier) == 0 && (fixed || sel == nil) {
		return nil
	}
	if sel == nil {
		return ErrPaymentMethodRequired
	}
	if sel.Tokenized() {
		return nil
	}
	if f.tokenizer == nil {
		return ErrPaymentFormNotReady
	}

	tok, err := f.tokenizer.CreateToken(ctx)
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}
	method := payment.FromToken(tok, sel.Save)

	f.mu.Lock()
	f.state = f.state.WithPayment(&payment.Selection{
		Method: &method,
		New:    true,
		Save:   sel.Save,
		Key:    "newCreditCard-" + tok.ID,
	})
	f.mu.Unlock()
	return nil
}

func (f *Flow) customFields() []customfield.Field {
	if f.cfg.Tier == nil {
		return nil
	}
	return f.cfg.Tier.CustomFields
}

// Submit runs the submission pipeline. The optional method override is the
// alternate-provider path (an authorize callback hands the method straight
// in, bypassing the payment slice).
func (f *Flow) Submit(ctx context.Context, override *payment.Method) error {
	f.mu.Lock()
	if f.state.Submitting || f.state.Submitted {
		f.mu.Unlock()
		return ErrNavigationInFlight
	}
	f.state = f.state.withSubmitting(true).withError("")
	state := f.state
	f.mu.Unlock()

	req := f.buildRequest(state, order.ResolvePaymentMethod(state.Payment, override))
	res, warning, err := f.submitter.Submit(ctx, req)

	f.mu.Lock()
	if f.closed {
		// The flow was torn down while the call was in flight; do not touch
		// stale state.
		f.mu.Unlock()
		return nil
	}
	if err != nil {
		f.state = f.state.withSubmitting(false).withError(userMessage(err))
		f.mu.Unlock()
		return err
	}
	// An empty verification token still submits; the connectivity message is
	// surfaced alongside the completed order.
	f.state = f.state.withSubmitting(false).withError(warning)
	f.state.Submitted = true
	f.orderID = res.ID
	f.mu.Unlock()

	if f.session != nil {
		// Refresh is best-effort after a successful order.
		_ = f.session.Refetch(ctx)
	}

	if f.cfg.Redirect != "" && order.IsValidRedirect(f.cfg.Redirect, f.cfg.Production) {
		return f.navigator.RedirectExternal(ctx, order.BuildRedirectURL(f.cfg.Redirect, res))
	}

	f.mu.Lock()
	f.current = StepSuccess
	f.mu.Unlock()
	route, params := f.buildStepRoute(StepSuccess, res.ID)
	return f.navigator.NavigateToStep(ctx, route, params)
}

func (f *Flow) buildRequest(state State, method *payment.Method) order.Request {
	quantity := 1
	var amount int64
	interval := tier.IntervalOneTime
	if state.Details != nil {
		quantity = state.Details.Quantity
		amount = state.Details.Amount
		interval = state.Details.Interval
	}

	var taxAmount int64
	countryISO := ""
	taxNumber := ""
	if state.Summary != nil {
		taxAmount = state.Summary.Amount
		countryISO = state.Summary.CountryISO
		taxNumber = state.Summary.Number
	}

	var from order.AccountRef
	if state.Profile != nil {
		from = order.AccountRef{
			ID:   state.Profile.ID,
			Type: state.Profile.Type,
			Name: state.Profile.Name,
		}
	}

	var tierRef *order.TierRef
	if f.cfg.Tier != nil {
		tierRef = &order.TierRef{ID: f.cfg.Tier.ID, Amount: f.cfg.Tier.Amount}
	}

	return order.Request{
		PaymentMethod:  method,
		TotalAmount:    int64(quantity)*amount + taxAmount,
		TaxAmount:      taxAmount,
		CountryISO:     countryISO,
		TaxIDNumber:    taxNumber,
		Quantity:       quantity,
		Currency:       f.Currency(),
		Interval:       interval,
		Referral:       f.cfg.Referral,
		FromCollective: from,
		Collective:     order.CollectiveRef{ID: f.cfg.Collective.ID},
		Tier:           tierRef,
		Description:    customfield.SanitizeText(f.cfg.Description),
		CustomData:     customfield.SanitizeValues(state.CustomData),
	}
}

// Close releases flow resources: pending debounced updates are dropped and
// the verification integration is torn down. Responses from calls still in
// flight become no-ops.
func (f *Flow) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.mu.Unlock()

	f.debounce.Stop()
	return f.tokens.Close()
}
