// Package tax decides whether a tax step applies to a contribution and holds
// the tax computation result carried into the order.
package tax

import (
	"github.com/goliatone/go-checkout/pkg/collective"
	"github.com/goliatone/go-checkout/pkg/tier"
)

// Summary is the tax slice of the wizard state. Ready is set once the user
// has confirmed (or skipped) the tax identification inputs.
type Summary struct {
	Amount     int64
	CountryISO string
	Number     string
	Ready      bool
}

// OriginCountryFunc resolves the country whose VAT regime applies, or the
// empty string when no VAT applies. origin is the country sourcing the sale
// under the configured rule; destination is the contributor side.
type OriginCountryFunc func(tierType tier.Type, origin, destination string) string

// euVATCountries is the EU VAT area; VAT only ever applies when the sourcing
// country is a member.
var euVATCountries = map[string]struct{}{
	"AT": {}, "BE": {}, "BG": {}, "CY": {}, "CZ": {}, "DE": {}, "DK": {},
	"EE": {}, "ES": {}, "FI": {}, "FR": {}, "GR": {}, "HR": {}, "HU": {},
	"IE": {}, "IT": {}, "LT": {}, "LU": {}, "LV": {}, "MT": {}, "NL": {},
	"PL": {}, "PT": {}, "RO": {}, "SE": {}, "SI": {}, "SK": {},
}

// vatSubjectTypes are the tier types that sell something VAT can attach to.
var vatSubjectTypes = map[tier.Type]struct{}{
	tier.TypeTicket:  {},
	tier.TypeService: {},
	tier.TypeProduct: {},
}

// DefaultOriginCountry is the built-in jurisdiction rule: VAT applies when
// the tier sells a taxable product and the sourcing country is in the EU VAT
// area.
func DefaultOriginCountry(tierType tier.Type, origin, _ string) string {
	if _, taxable := vatSubjectTypes[tierType]; !taxable {
		return ""
	}
	if _, eu := euVATCountries[origin]; !eu {
		return ""
	}
	return origin
}

// MayApply reports whether the summary step is needed: a tier is present, a
// VAT configuration is found on the collective (directly or inherited), and
// the jurisdiction lookup returns a country. A nil lookup uses the default
// rule.
func MayApply(t *tier.Tier, c *collective.Collective, h *collective.Host, lookup OriginCountryFunc) bool {
	if t == nil {
		return false
	}
	vatType := c.VATType()
	if vatType == "" {
		return false
	}
	if lookup == nil {
		lookup = DefaultOriginCountry
	}

	country := c.Country()
	hostCountry := ""
	if h != nil {
		hostCountry = h.Location.Country
	}
	if country == "" {
		country = hostCountry
	}

	if vatType == collective.VATOwn {
		return lookup(t.Type, country, country) != ""
	}
	return lookup(t.Type, hostCountry, country) != ""
}
