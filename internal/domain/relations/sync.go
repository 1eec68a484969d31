package relations

import (
	"context"
	"fmt"
	"strings"

	"studio-admin/internal/domain/apperr"
)

// Binding ties a join table to the lookup for its child side. Label names the
// children in validation messages ("classes", "memberships").
type Binding struct {
	Store  Store
	Lookup NameLookup
	Label  string
	Field  string
}

// Sync replaces every join row of parent with one row per desired child and
// reports whether the set of children changed. It must run inside the
// caller's transaction: on a validation error nothing has been inserted, but
// the delete has already been issued and only a rollback restores it.
func (b Binding) Sync(ctx context.Context, parent Parent, desired []string) (bool, error) {
	desired = Normalize(desired)

	current, err := b.Store.ChildIDs(ctx, parent.ID)
	if err != nil {
		return false, err
	}
	changed := !SameSet(current, desired)

	if err := b.Store.DeleteByParent(ctx, parent.ID); err != nil {
		return false, err
	}
	if len(desired) == 0 {
		return changed, nil
	}

	names, err := b.Lookup(ctx, desired)
	if err != nil {
		return false, err
	}

	links := make([]Link, 0, len(desired))
	var missing []string
	for _, id := range desired {
		name, ok := names[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		links = append(links, Link{
			ParentID:   parent.ID,
			ChildID:    id,
			ParentName: parent.Name,
			ChildName:  name,
		})
	}
	if len(missing) > 0 {
		return false, b.missingError(missing)
	}

	if err := b.Store.Insert(ctx, links); err != nil {
		return false, err
	}
	return changed, nil
}

func (b Binding) missingError(missing []string) error {
	label := b.Label
	if label == "" {
		label = "children"
	}
	field := b.Field
	if field == "" {
		field = label
	}
	return apperr.Invalid(field, fmt.Sprintf("some selected %s not found: %s", label, strings.Join(missing, ", ")))
}

// Normalize trims ids, drops empties and duplicates, and keeps first-seen order.
func Normalize(ids []string) []string {
	result := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// SameSet compares two id lists as sets, ignoring order and duplicates.
func SameSet(a, b []string) bool {
	left := toSet(a)
	right := toSet(b)
	if len(left) != len(right) {
		return false
	}
	for id := range left {
		if _, ok := right[id]; !ok {
			return false
		}
	}
	return true
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}
