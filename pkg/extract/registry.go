package extract

import (
	"github.com/localeforge/core/pkg/domain"
)

// registry accumulates the descriptors of one compilation unit.
// Keys are unique; mutation is append-or-verify only. A registry is owned by
// exactly one extraction pass and never shared across files.
type registry struct {
	index    map[string]int
	ordered  []domain.MessageDescriptor
	warnings []Warning

	enforceDescriptions bool
}

func newRegistry(enforceDescriptions bool) *registry {
	return &registry{
		index:               make(map[string]int),
		enforceDescriptions: enforceDescriptions,
	}
}

// store validates and inserts a descriptor.
//
// A descriptor without a defaultMessage is recorded as a warning and skipped:
// it is assumed to be an incomplete declaration (e.g. spread props resolved
// elsewhere). Every other shortfall is fatal — a descriptor with content but
// no id, a missing description under enforcement, or an id redeclared with
// differing content. Re-storing an identical descriptor is a no-op.
func (r *registry) store(desc domain.MessageDescriptor, loc domain.Location) error {
	if desc.DefaultMessage == "" {
		r.warnings = append(r.warnings, Warning{
			Message: "message declaration has no default message and was skipped",
			Loc:     loc,
		})
		return nil
	}

	if r.enforceDescriptions && desc.Description == "" {
		return siteErr(ErrMissingDescription, loc)
	}

	if desc.ID == "" {
		return siteErr(ErrMissingID, loc)
	}

	if i, ok := r.index[desc.ID]; ok {
		stored := r.ordered[i]
		if stored.Description != desc.Description || stored.DefaultMessage != desc.DefaultMessage {
			return siteErr(ErrDuplicateID, loc)
		}
		return nil
	}

	r.index[desc.ID] = len(r.ordered)
	r.ordered = append(r.ordered, desc)
	return nil
}

// export returns the stored descriptors in first-insertion order.
func (r *registry) export() []domain.MessageDescriptor {
	out := make([]domain.MessageDescriptor, len(r.ordered))
	copy(out, r.ordered)
	return out
}
