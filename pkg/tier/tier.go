package tier

import "github.com/goliatone/go-checkout/pkg/customfield"

// Type labels the product category of a tier. Ticket tiers keep the details
// step visible even when amount and interval are locked.
type Type string

const (
	TypeTicket     Type = "TICKET"
	TypeMembership Type = "MEMBERSHIP"
	TypeService    Type = "SERVICE"
	TypeProduct    Type = "PRODUCT"
	TypeDonation   Type = "DONATION"
)

// Interval is the recurrence of a contribution. The empty value means a
// one-time contribution.
type Interval string

const (
	IntervalOneTime Interval = ""
	IntervalMonth   Interval = "month"
	IntervalYear    Interval = "year"
)

// ParseInterval normalises user supplied interval spellings. "monthly" and
// "yearly" map to their canonical forms; anything else that is not already
// canonical collapses to one-time.
func ParseInterval(raw string) Interval {
	switch raw {
	case "monthly":
		return IntervalMonth
	case "yearly":
		return IntervalYear
	case string(IntervalMonth):
		return IntervalMonth
	case string(IntervalYear):
		return IntervalYear
	default:
		return IntervalOneTime
	}
}

// Tier is a predefined contribution product. A nil *Tier means a free-form
// donation. Amounts are integer minor currency units (cents).
type Tier struct {
	ID            int64
	Type          Type
	Name          string
	Slug          string
	Description   string
	Currency      string
	Amount        *int64
	MinimumAmount int64
	Presets       []int64
	Interval      Interval
	MaxQuantity   int
	// AvailableQuantity mirrors live availability stats when the backend
	// provides them; nil means unknown.
	AvailableQuantity *int
	CustomFields      []customfield.Field
}

// IsTicket reports whether the tier is an event ticket.
func (t *Tier) IsTicket() bool {
	return t != nil && t.Type == TypeTicket
}

// QuantityLimit returns the effective maximum quantity for an order:
// live availability when known, the configured maximum otherwise. Zero means
// unlimited.
func (t *Tier) QuantityLimit() int {
	if t == nil {
		return 0
	}
	if t.AvailableQuantity != nil {
		return *t.AvailableQuantity
	}
	return t.MaxQuantity
}
