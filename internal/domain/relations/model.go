// Package relations rewrites many-to-many join rows for a parent entity and
// computes prices derived from the linked children.
package relations

import "context"

// Link is one join row. Display names of both sides are stored next to the
// ids so list screens never need a join.
type Link struct {
	ParentID   string
	ChildID    string
	ParentName string
	ChildName  string
}

type Parent struct {
	ID   string
	Name string
}

// Store reads and rewrites the join rows of one join table. Implementations
// must be bound to the caller's transaction.
type Store interface {
	ChildIDs(ctx context.Context, parentID string) ([]string, error)
	DeleteByParent(ctx context.Context, parentID string) error
	Insert(ctx context.Context, links []Link) error
}

// NameLookup resolves display names for child ids. Ids that do not exist are
// simply absent from the result.
type NameLookup func(ctx context.Context, ids []string) (map[string]string, error)
