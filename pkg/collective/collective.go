// Package collective carries the read-only account model the checkout flow
// operates against: the collective receiving the contribution, its fiscal
// host, and the logged-in user with the accounts they administer.
package collective

// Account types, mirroring the backend enumeration.
const (
	TypeUser         = "USER"
	TypeOrganization = "ORGANIZATION"
	TypeCollective   = "COLLECTIVE"
	TypeEvent        = "EVENT"
)

// RoleAdmin is the membership role that makes an organization selectable as a
// contributing profile.
const RoleAdmin = "ADMIN"

// VAT sourcing rules: tax jurisdiction follows either the collective's own
// country or the host's country.
const (
	VATOwn  = "OWN"
	VATHost = "HOST"
)

// Location is the subset of address data the flow needs.
type Location struct {
	Country string
}

// VATSettings is the collective-level VAT configuration. A nil value means
// VAT is not configured and no tax step applies.
type VATSettings struct {
	Type   string
	Number string
}

// Settings groups the collective settings the flow reads.
type Settings struct {
	VAT *VATSettings
}

// Collective is the account receiving the contribution. Events carry a
// parent collective whose slug is used when building ticket order routes.
type Collective struct {
	ID             int64
	Name           string
	Slug           string
	Type           string
	Currency       string
	HostFeePercent float64
	Settings       Settings
	Location       Location
	Parent         *Collective
	// Incognito marks a USER-type pseudo-account that hides the contributor's
	// name. A user who already owns one is not offered a second.
	Incognito bool
}

// VATType resolves the VAT sourcing rule, inherited from the parent when the
// collective has none of its own.
func (c *Collective) VATType() string {
	if c == nil {
		return ""
	}
	if c.Settings.VAT != nil && c.Settings.VAT.Type != "" {
		return c.Settings.VAT.Type
	}
	if c.Parent != nil && c.Parent.Settings.VAT != nil {
		return c.Parent.Settings.VAT.Type
	}
	return ""
}

// Country resolves the collective's country, falling back to the parent.
func (c *Collective) Country() string {
	if c == nil {
		return ""
	}
	if c.Location.Country != "" {
		return c.Location.Country
	}
	if c.Parent != nil {
		return c.Parent.Location.Country
	}
	return ""
}

// Host is the fiscal host collecting funds on behalf of the collective.
type Host struct {
	ID       int64
	Name     string
	Location Location
	// SupportsManualPayment is set when the host accepts bank transfers with
	// emailed instructions. Manual payment is only offered for one-time
	// contributions.
	SupportsManualPayment bool
}

// Membership links a user to a collective they belong to.
type Membership struct {
	Role       string
	Collective *Collective
}

// User is the logged-in session identity.
type User struct {
	Email string
	Image string
	// Profile is the user's own account, used as the default contributing
	// profile.
	Profile  *Collective
	MemberOf []Membership
}
