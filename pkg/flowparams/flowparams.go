// Package flowparams normalises the query parameters a checkout URL may
// carry into typed flow inputs. The parameters come from campaign links and
// embeds, so every value is treated as hostile until parsed.
package flowparams

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/goliatone/go-checkout/pkg/tier"
)

// Params are the recognised checkout query parameters after normalisation.
// Amounts are minor currency units; a nil FixedAmount means the URL does not
// pin the amount.
type Params struct {
	FixedAmount *int64
	Quantity    int
	Interval    tier.Interval
	Step        string
	Verb        string
	Description string
	Redirect    string
	Referral    string
	TierID      int64
	TierSlug    string
	// CustomData is the decoded "data" payload, nil when absent or invalid.
	CustomData map[string]string
}

// Parse reads the recognised parameters out of a query string. Unparseable
// numeric values fall back to their defaults; a malformed data payload is
// reported through logf and dropped rather than failing the whole URL.
func Parse(values url.Values, logf func(format string, args ...any)) Params {
	p := Params{
		Interval:    tier.ParseInterval(values.Get("interval")),
		Step:        values.Get("step"),
		Verb:        values.Get("verb"),
		Description: values.Get("description"),
		Redirect:    values.Get("redirect"),
		Referral:    values.Get("referral"),
		TierSlug:    values.Get("tierSlug"),
		Quantity:    1,
	}

	// "amount" carries major units, "totalAmount" already minor ones. The
	// major-unit form wins when both are present.
	if raw := values.Get("amount"); raw != "" {
		if major, err := strconv.ParseInt(raw, 10, 64); err == nil {
			minor := major * 100
			p.FixedAmount = &minor
		}
	}
	if p.FixedAmount == nil {
		if raw := values.Get("totalAmount"); raw != "" {
			if minor, err := strconv.ParseInt(raw, 10, 64); err == nil {
				p.FixedAmount = &minor
			}
		}
	}

	if raw := values.Get("quantity"); raw != "" {
		if qty, err := strconv.Atoi(raw); err == nil && qty > 0 {
			p.Quantity = qty
		}
	}

	if raw := values.Get("tierId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			p.TierID = id
		}
	}

	if raw := values.Get("data"); raw != "" {
		var data map[string]string
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			if logf != nil {
				logf("flowparams: invalid data parameter: %v", err)
			}
		} else {
			p.CustomData = data
		}
	}

	return p
}
