package memberships

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListMemberships(ctx context.Context, filter ListFilter) ([]Membership, int64, error)
	GetMembership(ctx context.Context, id string) (*Membership, error)
	CreateMembership(ctx context.Context, membership *Membership) error
	UpdateMembership(ctx context.Context, membership *Membership) error
	DeleteMembership(ctx context.Context, id string) (bool, error)
	RenameInLinks(ctx context.Context, membershipID, name string) error
}
