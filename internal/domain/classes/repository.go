package classes

import (
	"context"

	"studio-admin/internal/domain/relations"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreateClass(ctx context.Context, class *Class) error
	GetClass(ctx context.Context, id string) (*Class, error)
	// UpdateDraft writes the listed columns of class onto the inactive row
	// with the given id and reports whether such a row existed.
	UpdateDraft(ctx context.Context, id string, columns []string, class *Class) (bool, error)
	// SetActive sets is_active; activating also sets is_completed.
	SetActive(ctx context.Context, id string, active bool) (bool, error)
	DeleteDraft(ctx context.Context, id string) (bool, error)
	ListClasses(ctx context.Context, filter ListFilter) ([]Class, int64, error)
	ListActive(ctx context.Context) ([]Class, error)
	RenameInLinks(ctx context.Context, classID, name string) error
	InstructorNames(ctx context.Context, ids []string) (map[string]string, error)
	PromotionExists(ctx context.Context, id string) (bool, error)
	MembershipNames(ctx context.Context, ids []string) (map[string]string, error)
	MembershipLinks() relations.Store
	MembershipIDsByClassIDs(ctx context.Context, classIDs []string) (map[string][]string, error)
}
