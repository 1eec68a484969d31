package admins

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListAdmins(ctx context.Context, filter ListFilter) ([]AdminUser, int64, error)
	GetAdmin(ctx context.Context, id string) (*AdminUser, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateAdmin(ctx context.Context, admin *AdminUser) error
	UpdateAdmin(ctx context.Context, admin *AdminUser) error
	DeleteAdmin(ctx context.Context, id string) (bool, error)
	CountActiveOwners(ctx context.Context) (int64, error)
}
