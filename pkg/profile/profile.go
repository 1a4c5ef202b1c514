// Package profile tracks which identity is paying for a contribution: the
// user's personal account, an organization they administer, a new
// organization created inline, or an incognito pseudo-identity.
package profile

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/goliatone/go-checkout/pkg/collective"
)

// Kind tags the identity variant explicitly rather than inferring it from
// which fields happen to be set.
type Kind string

const (
	KindPersonal        Kind = "PERSONAL"
	KindOrganization    Kind = "ORGANIZATION"
	KindIncognito       Kind = "INCOGNITO"
	KindNewOrganization Kind = "NEW_ORGANIZATION"
)

// Profile is the selected (or candidate) contributing identity. ID is zero
// for identities that do not exist on the backend yet: new-organization
// drafts and a not-yet-created incognito profile.
type Profile struct {
	Kind      Kind
	ID        int64
	Type      string
	Name      string
	Email     string
	Image     string
	Country   string
	VATNumber string
	Incognito bool
	Draft     *OrgDraft
}

// Exists reports whether the profile is already materialised on the backend.
func (p *Profile) Exists() bool { return p != nil && p.ID != 0 }

// OrgDraft holds the new-organization sub-form. Name and Website are
// required; the social handles are optional.
type OrgDraft struct {
	Name          string
	Website       string
	GithubHandle  string
	TwitterHandle string
}

// FieldErrorKind distinguishes the two validation messages the sub-form can
// produce.
type FieldErrorKind string

const (
	FieldRequired   FieldErrorKind = "required"
	FieldInvalidURL FieldErrorKind = "invalid_url"
)

// FieldError is a field-level validation failure on the new-organization
// form.
type FieldError struct {
	Field string
	Kind  FieldErrorKind
}

func (e FieldError) Error() string {
	switch e.Kind {
	case FieldInvalidURL:
		return fmt.Sprintf("profile: field %q must begin with http:// or https://", e.Field)
	default:
		return fmt.Sprintf("profile: field %q is required", e.Field)
	}
}

// Validate checks the draft. Name and website are required and the website
// must be an absolute http(s) URL.
func (d OrgDraft) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Kind: FieldRequired})
	}
	switch {
	case strings.TrimSpace(d.Website) == "":
		errs = append(errs, FieldError{Field: "website", Kind: FieldRequired})
	case !IsAbsoluteURL(d.Website):
		errs = append(errs, FieldError{Field: "website", Kind: FieldInvalidURL})
	}
	return errs
}

// IsAbsoluteURL reports whether raw parses as an absolute http(s) URL with a
// host.
func IsAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

// Personal builds the user's own candidate profile.
func Personal(user *collective.User) *Profile {
	if user == nil || user.Profile == nil {
		return nil
	}
	return &Profile{
		Kind:    KindPersonal,
		ID:      user.Profile.ID,
		Type:    user.Profile.Type,
		Name:    user.Profile.Name,
		Email:   user.Email,
		Image:   user.Image,
		Country: user.Profile.Location.Country,
	}
}

// Candidates returns the identities the user may contribute as: their
// personal account, the organizations they administer (excluding the target
// collective and event accounts), an incognito option unless they already own
// one, and the always-present new-organization option.
func Candidates(user *collective.User, target *collective.Collective) []Profile {
	var out []Profile
	seen := make(map[int64]struct{})

	if personal := Personal(user); personal != nil {
		out = append(out, *personal)
		seen[personal.ID] = struct{}{}
	}

	hasIncognito := false
	if user != nil {
		for _, membership := range user.MemberOf {
			c := membership.Collective
			if c == nil || membership.Role != collective.RoleAdmin {
				continue
			}
			if target != nil && c.ID == target.ID {
				continue
			}
			if c.Type == collective.TypeEvent {
				continue
			}
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
			kind := KindOrganization
			if c.Type == collective.TypeUser {
				kind = KindPersonal
			}
			if c.Incognito {
				kind = KindIncognito
			}
			out = append(out, Profile{
				Kind:      kind,
				ID:        c.ID,
				Type:      c.Type,
				Name:      c.Name,
				Country:   c.Location.Country,
				Incognito: c.Incognito,
			})
		}
	}

	for _, p := range out {
		if p.Incognito {
			hasIncognito = true
			break
		}
	}
	if !hasIncognito {
		out = append(out, Incognito())
	}

	out = append(out, Profile{Kind: KindNewOrganization, Type: collective.TypeOrganization, Name: "A new organization"})
	return out
}

// Incognito is the synthetic pseudo-identity hiding the contributor's name.
func Incognito() Profile {
	return Profile{
		Kind:      KindIncognito,
		Type:      collective.TypeUser,
		Name:      "incognito",
		Incognito: true,
	}
}

// Filter narrows candidates by a case-insensitive name match. Regex
// metacharacters in the query are treated literally.
func Filter(profiles []Profile, query string) []Profile {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return profiles
	}
	pattern, err := regexp.Compile("(?i)" + regexp.QuoteMeta(trimmed))
	if err != nil {
		return profiles
	}
	out := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		if pattern.MatchString(p.Name) {
			out = append(out, p)
		}
	}
	return out
}
