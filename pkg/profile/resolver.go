package profile

import "sync"

// ChangeFunc receives the effective profile after every selection or draft
// edit. A nil profile means "no valid selection yet" and keeps the
// contributeAs step incomplete.
type ChangeFunc func(*Profile)

// Resolver tracks the current selection and the new-organization draft, and
// emits the effective profile through the change callback. Callers typically
// wrap the callback in a debouncer before it commits to shared wizard state.
type Resolver struct {
	mu       sync.Mutex
	onChange ChangeFunc
	selected *Profile
	draft    OrgDraft
}

// NewResolver builds a resolver reporting changes to onChange.
func NewResolver(onChange ChangeFunc) *Resolver {
	if onChange == nil {
		onChange = func(*Profile) {}
	}
	return &Resolver{onChange: onChange}
}

// Select records the chosen candidate and emits the effective profile. For
// the new-organization option the profile is only emitted once the draft
// validates; until then the callback fires with nil.
func (r *Resolver) Select(p Profile) {
	r.mu.Lock()
	selected := p
	r.selected = &selected
	effective := r.effectiveLocked()
	r.mu.Unlock()
	r.onChange(effective)
}

// UpdateDraft replaces the new-organization draft. When the new-organization
// option is selected the change is re-emitted so the wizard sees validity
// transitions immediately.
func (r *Resolver) UpdateDraft(d OrgDraft) {
	r.mu.Lock()
	r.draft = d
	emit := r.selected != nil && r.selected.Kind == KindNewOrganization
	var effective *Profile
	if emit {
		effective = r.effectiveLocked()
	}
	r.mu.Unlock()
	if emit {
		r.onChange(effective)
	}
}

// Draft returns the current new-organization draft.
func (r *Resolver) Draft() OrgDraft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draft
}

// Selected returns the raw selection, which may be invalid; use the change
// callback for the effective profile.
func (r *Resolver) Selected() *Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected
}

func (r *Resolver) effectiveLocked() *Profile {
	if r.selected == nil {
		return nil
	}
	switch r.selected.Kind {
	case KindIncognito:
		incognito := Incognito()
		return &incognito
	case KindNewOrganization:
		if len(r.draft.Validate()) > 0 {
			return nil
		}
		draft := r.draft
		return &Profile{
			Kind:  KindNewOrganization,
			Name:  draft.Name,
			Draft: &draft,
		}
	default:
		selected := *r.selected
		return &selected
	}
}
