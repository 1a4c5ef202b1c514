package wizard

import (
	"context"
	"strconv"
)

// Route names the page family a step renders under, mirroring the routing
// layer's identifiers.
type Route string

const (
	RouteOrderNew       Route = "orderCollectiveNew"
	RouteOrderTier      Route = "orderCollectiveTierNew"
	RouteOrderEventTier Route = "orderEventTier"
)

// Success returns the terminal variant of the route.
func (r Route) Success() Route { return r + "Success" }

// RouteParams are the query parameters a step navigation must preserve.
type RouteParams struct {
	Verb           string
	CollectiveSlug string
	EventSlug      string
	Step           string
	TotalAmount    string
	Interval       string
	Description    string
	Redirect       string
	Referral       string
	TierID         string
	TierSlug       string
	OrderID        string
}

// Navigator is the routing collaborator. Implementations must preserve the
// given parameters across the navigation and scroll the viewport back to the
// top afterwards.
type Navigator interface {
	NavigateToStep(ctx context.Context, route Route, params RouteParams) error
	// RedirectExternal sends the user to an already-validated external URL.
	RedirectExternal(ctx context.Context, url string) error
}

// NopNavigator discards navigations; useful for headless flows and tests.
type NopNavigator struct{}

func (NopNavigator) NavigateToStep(context.Context, Route, RouteParams) error { return nil }
func (NopNavigator) RedirectExternal(context.Context, string) error           { return nil }

// buildStepRoute picks the route family and assembles the preserved
// parameters for a step transition. Ticket tiers route through the event
// pages using the parent collective's slug; other tiers force the
// "contribute" verb. The first step travels without a step parameter.
func (f *Flow) buildStepRoute(step StepName, orderID int64) (Route, RouteParams) {
	cfg := f.cfg

	verb := cfg.Verb
	if verb == "" {
		verb = "donate"
	}

	params := RouteParams{
		Verb:           verb,
		CollectiveSlug: cfg.Collective.Slug,
		Interval:       string(cfg.Interval),
		Description:    cfg.Description,
		Redirect:       cfg.Redirect,
		Referral:       cfg.Referral,
	}
	if step != StepContributeAs && step != StepSuccess {
		params.Step = string(step)
	}
	if cfg.FixedAmount != nil {
		params.TotalAmount = strconv.FormatInt(*cfg.FixedAmount, 10)
	}

	route := RouteOrderNew
	if cfg.Tier != nil {
		params.TierID = strconv.FormatInt(cfg.Tier.ID, 10)
		params.TierSlug = cfg.Tier.Slug
		if cfg.Tier.IsTicket() {
			route = RouteOrderEventTier
			params.EventSlug = cfg.Collective.Slug
			params.CollectiveSlug = "collective"
			if cfg.Collective.Parent != nil && cfg.Collective.Parent.Slug != "" {
				params.CollectiveSlug = cfg.Collective.Parent.Slug
			}
		} else {
			route = RouteOrderTier
			params.Verb = "contribute"
		}
	}

	if step == StepSuccess {
		route = route.Success()
		if orderID != 0 {
			params.OrderID = strconv.FormatInt(orderID, 10)
		}
	}

	return route, params
}
