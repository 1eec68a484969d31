package instructors

import (
	"context"

	"studio-admin/internal/domain/relations"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListInstructors(ctx context.Context, filter ListFilter) ([]Instructor, int64, error)
	GetInstructor(ctx context.Context, id string) (*Instructor, error)
	CreateInstructor(ctx context.Context, instructor *Instructor) error
	UpdateInstructor(ctx context.Context, instructor *Instructor) error
	DeleteInstructor(ctx context.Context, id string) (bool, error)
	// RenameEverywhere refreshes the denormalized instructor name on classes
	// and join rows.
	RenameEverywhere(ctx context.Context, instructorID, name string) error
	ClassNames(ctx context.Context, ids []string) (map[string]string, error)
	ClassLinks() relations.Store
}
