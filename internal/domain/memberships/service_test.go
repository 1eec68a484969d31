package memberships

import (
	"context"
	"errors"
	"testing"
)

type fakeMembershipsRepo struct {
	items   map[string]*Membership
	renames map[string]string
}

func newFakeMembershipsRepo() *fakeMembershipsRepo {
	return &fakeMembershipsRepo{items: make(map[string]*Membership), renames: make(map[string]string)}
}

func (r *fakeMembershipsRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeMembershipsRepo) ListMemberships(ctx context.Context, filter ListFilter) ([]Membership, int64, error) {
	result := make([]Membership, 0, len(r.items))
	for _, item := range r.items {
		result = append(result, *item)
	}
	return result, int64(len(result)), nil
}

func (r *fakeMembershipsRepo) GetMembership(ctx context.Context, id string) (*Membership, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, ErrMembershipNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeMembershipsRepo) CreateMembership(ctx context.Context, membership *Membership) error {
	copied := *membership
	r.items[membership.ID] = &copied
	return nil
}

func (r *fakeMembershipsRepo) UpdateMembership(ctx context.Context, membership *Membership) error {
	copied := *membership
	r.items[membership.ID] = &copied
	return nil
}

func (r *fakeMembershipsRepo) DeleteMembership(ctx context.Context, id string) (bool, error) {
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *fakeMembershipsRepo) RenameInLinks(ctx context.Context, membershipID, name string) error {
	r.renames[membershipID] = name
	return nil
}

func TestCreateValidation(t *testing.T) {
	service := NewService(newFakeMembershipsRepo())
	cases := []struct {
		name  string
		input Input
		want  error
	}{
		{"blank name", Input{Name: "  ", DurationDays: 30}, ErrNameRequired},
		{"negative price", Input{Name: "Monthly", Price: -1, DurationDays: 30}, ErrPriceInvalid},
		{"zero duration", Input{Name: "Monthly", Price: 10}, ErrDurationInvalid},
		{"negative limit", Input{Name: "Monthly", Price: 10, DurationDays: 30, ClassLimit: -2}, ErrClassLimitInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.Create(context.Background(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateRoundsPrice(t *testing.T) {
	repo := newFakeMembershipsRepo()
	membership, err := NewService(repo).Create(context.Background(), Input{Name: " Monthly ", Price: 49.999, DurationDays: 30})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if membership.Name != "Monthly" || membership.Price != 50 {
		t.Fatalf("unexpected membership %+v", membership)
	}
	if _, ok := repo.items[membership.ID]; !ok {
		t.Fatalf("membership not stored")
	}
}

func TestUpdateRenamesLinks(t *testing.T) {
	repo := newFakeMembershipsRepo()
	service := NewService(repo)
	membership, err := service.Create(context.Background(), Input{Name: "Monthly", Price: 50, DurationDays: 30})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := service.Update(context.Background(), membership.ID, Input{Name: "Monthly", Price: 55, DurationDays: 30}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(repo.renames) != 0 {
		t.Fatalf("unchanged name must not touch join rows: %v", repo.renames)
	}

	updated, err := service.Update(context.Background(), membership.ID, Input{Name: "Monthly Plus", Price: 55, DurationDays: 30})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Monthly Plus" || repo.renames[membership.ID] != "Monthly Plus" {
		t.Fatalf("rename not propagated: %+v %v", updated, repo.renames)
	}
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	service := NewService(newFakeMembershipsRepo())
	if _, err := service.Update(context.Background(), "missing", Input{Name: "x", DurationDays: 1}); !errors.Is(err, ErrMembershipNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := service.Delete(context.Background(), "missing"); !errors.Is(err, ErrMembershipNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
