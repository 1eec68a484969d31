package relations

import (
	"context"
	"errors"
	"testing"

	"studio-admin/internal/domain/apperr"
)

type fakeStore struct {
	rows      map[string][]Link
	deletes   int
	failRead  error
	failWrite error
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string][]Link)}
}

func (s *fakeStore) ChildIDs(ctx context.Context, parentID string) ([]string, error) {
	if s.failRead != nil {
		return nil, s.failRead
	}
	ids := make([]string, 0, len(s.rows[parentID]))
	for _, link := range s.rows[parentID] {
		ids = append(ids, link.ChildID)
	}
	return ids, nil
}

func (s *fakeStore) DeleteByParent(ctx context.Context, parentID string) error {
	s.deletes++
	delete(s.rows, parentID)
	return nil
}

func (s *fakeStore) Insert(ctx context.Context, links []Link) error {
	if s.failWrite != nil {
		return s.failWrite
	}
	for _, link := range links {
		s.rows[link.ParentID] = append(s.rows[link.ParentID], link)
	}
	return nil
}

func staticLookup(names map[string]string) NameLookup {
	return func(ctx context.Context, ids []string) (map[string]string, error) {
		result := make(map[string]string, len(ids))
		for _, id := range ids {
			if name, ok := names[id]; ok {
				result[id] = name
			}
		}
		return result, nil
	}
}

var memberships = map[string]string{
	"m1": "Monthly",
	"m2": "Annual",
	"m3": "Drop-in",
}

func TestSyncInsertsOneRowPerDesiredID(t *testing.T) {
	store := newFakeStore()
	binding := Binding{Store: store, Lookup: staticLookup(memberships), Label: "memberships"}

	changed, err := binding.Sync(context.Background(), Parent{ID: "c1", Name: "Salsa"}, []string{"m1", "m2", "m1", " "})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !changed {
		t.Fatalf("expected changed on first sync")
	}

	rows := store.rows["c1"]
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ChildID != "m1" || rows[0].ChildName != "Monthly" || rows[0].ParentName != "Salsa" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].ChildID != "m2" || rows[1].ChildName != "Annual" {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestSyncReorderIsNotAChange(t *testing.T) {
	store := newFakeStore()
	binding := Binding{Store: store, Lookup: staticLookup(memberships), Label: "memberships"}
	parent := Parent{ID: "c1", Name: "Salsa"}

	if _, err := binding.Sync(context.Background(), parent, []string{"m1", "m2"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	changed, err := binding.Sync(context.Background(), parent, []string{"m2", "m1"})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if changed {
		t.Fatalf("reordered set must not count as a change")
	}
	if store.deletes != 2 {
		t.Fatalf("rows are rewritten even when unchanged, deletes=%d", store.deletes)
	}
	if got := store.rows["c1"]; len(got) != 2 || got[0].ChildID != "m2" {
		t.Fatalf("rows should follow the last desired order: %+v", got)
	}
}

func TestSyncEmptyDesiredClearsRows(t *testing.T) {
	store := newFakeStore()
	binding := Binding{Store: store, Lookup: staticLookup(memberships), Label: "memberships"}
	parent := Parent{ID: "c1", Name: "Salsa"}

	if _, err := binding.Sync(context.Background(), parent, []string{"m1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	changed, err := binding.Sync(context.Background(), parent, nil)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !changed {
		t.Fatalf("removing all rows is a change")
	}
	if len(store.rows["c1"]) != 0 {
		t.Fatalf("expected no rows, got %+v", store.rows["c1"])
	}
}

func TestSyncUnknownChildIsValidationError(t *testing.T) {
	store := newFakeStore()
	binding := Binding{Store: store, Lookup: staticLookup(memberships), Label: "memberships", Field: "membership_ids"}

	_, err := binding.Sync(context.Background(), Parent{ID: "c1", Name: "Salsa"}, []string{"m1", "missing"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Field != "membership_ids" {
		t.Fatalf("expected field membership_ids, got %+v", err)
	}
	if len(store.rows["c1"]) != 0 {
		t.Fatalf("nothing may be inserted on a partial set")
	}
}

func TestSyncPropagatesStoreErrors(t *testing.T) {
	store := newFakeStore()
	store.failRead = apperr.Unavailable(errors.New("connection reset"))
	binding := Binding{Store: store, Lookup: staticLookup(memberships), Label: "memberships"}

	_, err := binding.Sync(context.Background(), Parent{ID: "c1"}, []string{"m1"})
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestSameSet(t *testing.T) {
	cases := []struct {
		name string
		a, b []string
		want bool
	}{
		{"both empty", nil, []string{}, true},
		{"reordered", []string{"a", "b"}, []string{"b", "a"}, true},
		{"duplicates ignored", []string{"a", "a", "b"}, []string{"b", "a"}, true},
		{"extra element", []string{"a"}, []string{"a", "b"}, false},
		{"different element", []string{"a", "c"}, []string{"a", "b"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SameSet(tc.a, tc.b); got != tc.want {
				t.Fatalf("SameSet(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestNormalizeKeepsFirstSeenOrder(t *testing.T) {
	got := Normalize([]string{" b", "a", "b", "", "c"})
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
