package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/goliatone/go-checkout/internal/config"
	"github.com/goliatone/go-checkout/pkg/collective"
	"github.com/goliatone/go-checkout/pkg/flowparams"
	"github.com/goliatone/go-checkout/pkg/order"
	"github.com/goliatone/go-checkout/pkg/payment"
	"github.com/goliatone/go-checkout/pkg/pricing"
	"github.com/goliatone/go-checkout/pkg/profile"
	"github.com/goliatone/go-checkout/pkg/prompt"
	"github.com/goliatone/go-checkout/pkg/receipt"
	"github.com/goliatone/go-checkout/pkg/tier"
	"github.com/goliatone/go-checkout/pkg/verification"
	"github.com/goliatone/go-checkout/pkg/wizard"
)

func main() {
	configPath := flag.String("config", "checkout.yaml", "configuration file path")
	slug := flag.String("collective", "demo-collective", "slug of the collective to contribute to")
	name := flag.String("name", "Demo Collective", "display name of the collective")
	email := flag.String("email", "contributor@example.com", "logged-in user email")
	query := flag.String("query", "", "checkout URL query string, e.g. amount=50&interval=monthly")
	manual := flag.Bool("manual", false, "pay by bank transfer instead of card")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	values, err := url.ParseQuery(*query)
	if err != nil {
		log.Fatalf("Invalid query string: %v", err)
	}
	params := flowparams.Parse(values, log.Printf)

	target := &collective.Collective{
		ID:       1,
		Name:     *name,
		Slug:     *slug,
		Type:     collective.TypeCollective,
		Currency: cfg.Currency,
	}
	user := &collective.User{
		Email: *email,
		Profile: &collective.Collective{
			ID:   2,
			Name: strings.Split(*email, "@")[0],
			Slug: strings.Split(*email, "@")[0],
			Type: collective.TypeUser,
		},
	}

	opts := []wizard.Option{
		wizard.WithSession(staticSession{user: user}),
		wizard.WithTokenizer(fakeTokenizer{}),
		wizard.WithNavigator(printNavigator{}),
		wizard.WithProfileDebounce(0, nil),
	}
	if cfg.Verification.Enabled {
		tokens := verification.NewTokenSource(demoVerifier{}, cfg.Verification.SiteKey)
		opts = append(opts, wizard.WithVerification(tokens))
	}

	backend := &memBackend{nextID: 1000}
	flow, err := wizard.New(wizard.Config{
		Collective:      target,
		Verb:            params.Verb,
		InitialStep:     wizard.StepName(params.Step),
		Referral:        params.Referral,
		Redirect:        params.Redirect,
		Description:     params.Description,
		Interval:        params.Interval,
		FixedAmount:     params.FixedAmount,
		CustomData:      params.CustomData,
		DefaultQuantity: params.Quantity,
		Production:      cfg.Production(),
	}, backend, opts...)
	if err != nil {
		log.Fatalf("Failed to start checkout: %v", err)
	}
	defer flow.Close()

	ctx := context.Background()
	driver := prompt.NewSurveyDriver()

	if err := run(ctx, driver, flow, user, *manual); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Println("Checkout cancelled.")
			return
		}
		log.Fatalf("Checkout failed: %v", err)
	}
}

// run walks the computed steps, asking for each step's data and advancing
// through the flow until the submission succeeds.
func run(ctx context.Context, driver prompt.Driver, flow *wizard.Flow, user *collective.User, manual bool) error {
	for {
		step := flow.Current()

		switch step.Name {
		case wizard.StepContributeAs:
			if err := askProfile(ctx, driver, flow, user); err != nil {
				return err
			}
		case wizard.StepDetails:
			if err := askDetails(ctx, driver, flow); err != nil {
				return err
			}
		case wizard.StepPayment:
			if err := askPayment(ctx, driver, flow, manual); err != nil {
				return err
			}
		}

		if err := flow.Next(ctx); err != nil {
			if msg := flow.Error(); msg != "" {
				if infoErr := driver.Info(ctx, "Error: "+msg); infoErr != nil {
					return infoErr
				}
				continue
			}
			return err
		}
		if flow.State().Submitted {
			return printOutcome(ctx, driver, flow, user, manual)
		}
	}
}

func askProfile(ctx context.Context, driver prompt.Driver, flow *wizard.Flow, user *collective.User) error {
	candidates := profile.Candidates(user, nil)
	options := make([]string, len(candidates))
	for i, c := range candidates {
		options[i] = c.Name
		if c.Name == "" {
			options[i] = string(c.Kind)
		}
	}

	idx, err := driver.Select(ctx, prompt.SelectConfig{
		Message: "Contribute as:",
		Options: options,
	})
	if err != nil {
		return err
	}
	selected := candidates[idx]

	if selected.Kind == profile.KindNewOrganization {
		orgName, err := driver.Input(ctx, prompt.InputConfig{
			Message: "Organization name:",
			Validator: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("name is required")
				}
				return nil
			},
		})
		if err != nil {
			return err
		}
		selected.Name = orgName
		selected.Draft = &profile.OrgDraft{Name: orgName}
	}

	flow.UpdateProfile(&selected)
	return nil
}

func askDetails(ctx context.Context, driver prompt.Driver, flow *wizard.Flow) error {
	details := flow.State().Details

	def := ""
	if details != nil {
		def = strconv.FormatInt(details.TotalAmount/100, 10)
	}
	raw, err := driver.Input(ctx, prompt.InputConfig{
		Message: "Amount (major units):",
		Default: def,
		Validator: func(s string) error {
			if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
				return errors.New("enter a whole number")
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	major, _ := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)

	interval := tier.IntervalOneTime
	quantity := 1
	if details != nil {
		interval = details.Interval
		quantity = details.Quantity
	}
	flow.UpdateDetails(pricing.NewDetails(major*100, quantity, interval))
	return nil
}

func askPayment(ctx context.Context, driver prompt.Driver, flow *wizard.Flow, manual bool) error {
	if manual {
		flow.UpdatePayment(&payment.Selection{
			Method: &payment.Method{
				Service: payment.ServiceOpenCollective,
				Type:    payment.TypeManual,
				Name:    "Bank transfer",
			},
		})
		return nil
	}

	save, err := driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: "Save this card for future contributions?",
		Default: true,
	})
	if err != nil {
		return err
	}
	flow.UpdatePayment(&payment.Selection{
		New:  true,
		Card: map[string]any{"brand": "visa", "last4": "4242"},
		Save: save,
	})
	return nil
}

func printOutcome(ctx context.Context, driver prompt.Driver, flow *wizard.Flow, user *collective.User, manual bool) error {
	state := flow.State()
	total := flow.TotalWithTaxes()
	currency := flow.Currency()

	if err := driver.Info(ctx, "Thank you for your contribution!"); err != nil {
		return err
	}
	if err := driver.Info(ctx, fmt.Sprintf("Order #%d, total %s", flow.OrderID(), receipt.FormatCurrency(total, currency))); err != nil {
		return err
	}

	if manual && state.Payment != nil && state.Payment.Method != nil {
		instructions, err := receipt.ManualInstructions(total, currency, user.Email, "the fiscal host")
		if err != nil {
			return err
		}
		return driver.Info(ctx, instructions)
	}
	return nil
}

type staticSession struct {
	user *collective.User
}

func (s staticSession) User() *collective.User            { return s.user }
func (s staticSession) Refetch(ctx context.Context) error { return nil }

type fakeTokenizer struct{}

func (fakeTokenizer) CreateToken(ctx context.Context) (payment.Token, error) {
	return payment.Token{ID: "tok_demo", Card: map[string]any{"brand": "visa", "last4": "4242"}}, nil
}

// demoVerifier stands in for the real anti-abuse provider so the verification
// wiring can be demoed without network access.
type demoVerifier struct{}

func (demoVerifier) Ready(context.Context) error { return nil }

func (demoVerifier) Execute(_ context.Context, siteKey, action string) (string, error) {
	return fmt.Sprintf("demo-%s-%s", siteKey, action), nil
}

func (demoVerifier) Close() error { return nil }

type printNavigator struct{}

func (printNavigator) NavigateToStep(_ context.Context, route wizard.Route, params wizard.RouteParams) error {
	if params.Step != "" {
		fmt.Printf("-> %s (step=%s)\n", route, params.Step)
	} else {
		fmt.Printf("-> %s\n", route)
	}
	return nil
}

func (printNavigator) RedirectExternal(_ context.Context, url string) error {
	fmt.Printf("-> redirect: %s\n", url)
	return nil
}

// memBackend keeps created orders and collectives in memory, standing in for
// the real API during demos.
type memBackend struct {
	nextID int64
}

func (b *memBackend) CreateOrder(_ context.Context, req order.Request) (order.Result, error) {
	id := atomic.AddInt64(&b.nextID, 1)
	status := "PAID"
	if req.PaymentMethod != nil && req.PaymentMethod.Type == payment.TypeManual {
		status = "PENDING"
	}
	return order.Result{
		ID:           id,
		Status:       status,
		Transactions: []order.Transaction{{ID: id * 10}},
	}, nil
}

func (b *memBackend) CreateCollective(_ context.Context, draft profile.Profile) (profile.Profile, error) {
	draft.ID = atomic.AddInt64(&b.nextID, 1)
	return draft, nil
}
