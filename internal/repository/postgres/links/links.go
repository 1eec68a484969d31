// Package links stores the denormalized many-to-many join rows shared by
// classes, memberships, packs and instructors.
package links

import (
	"context"

	"gorm.io/gorm"
	"studio-admin/internal/db"
	"studio-admin/internal/domain/relations"
)

// Table describes one join table. Column names are fixed identifiers, never
// user input.
type Table struct {
	Name             string
	ParentColumn     string
	ChildColumn      string
	ParentNameColumn string
	ChildNameColumn  string
}

var (
	ClassMemberships = Table{
		Name:             "class_memberships",
		ParentColumn:     "class_id",
		ChildColumn:      "membership_id",
		ParentNameColumn: "class_name",
		ChildNameColumn:  "membership_name",
	}
	PackClasses = Table{
		Name:             "class_pack_classes",
		ParentColumn:     "pack_id",
		ChildColumn:      "class_id",
		ParentNameColumn: "pack_name",
		ChildNameColumn:  "class_name",
	}
	InstructorClasses = Table{
		Name:             "instructor_classes",
		ParentColumn:     "instructor_id",
		ChildColumn:      "class_id",
		ParentNameColumn: "instructor_name",
		ChildNameColumn:  "class_name",
	}
)

type Store struct {
	db    *gorm.DB
	table Table
}

func NewStore(gormDB *gorm.DB, table Table) *Store {
	return &Store{db: gormDB, table: table}
}

var _ relations.Store = (*Store)(nil)

func (s *Store) ChildIDs(ctx context.Context, parentID string) ([]string, error) {
	ids := []string{}
	if !db.IsUUID(parentID) {
		return ids, nil
	}
	err := s.db.WithContext(ctx).
		Table(s.table.Name).
		Where(s.table.ParentColumn+" = ?", parentID).
		Order(s.table.ChildNameColumn+" ASC").
		Pluck(s.table.ChildColumn, &ids).Error
	if err != nil {
		return nil, db.StoreError(err, nil, nil)
	}
	return ids, nil
}

func (s *Store) DeleteByParent(ctx context.Context, parentID string) error {
	if !db.IsUUID(parentID) {
		return nil
	}
	err := s.db.WithContext(ctx).
		Exec("DELETE FROM "+s.table.Name+" WHERE "+s.table.ParentColumn+" = ?", parentID).Error
	return db.StoreError(err, nil, nil)
}

func (s *Store) Insert(ctx context.Context, rows []relations.Link) error {
	if len(rows) == 0 {
		return nil
	}
	values := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		values = append(values, map[string]interface{}{
			s.table.ParentColumn:     row.ParentID,
			s.table.ChildColumn:      row.ChildID,
			s.table.ParentNameColumn: row.ParentName,
			s.table.ChildNameColumn:  row.ChildName,
		})
	}
	err := s.db.WithContext(ctx).Table(s.table.Name).Create(&values).Error
	return db.StoreError(err, nil, nil)
}

// ChildIDsByParents groups child ids for a page of parents.
func (s *Store) ChildIDsByParents(ctx context.Context, parentIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(parentIDs))
	parentIDs = db.UUIDs(parentIDs)
	if len(parentIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ParentID string
		ChildID  string
	}
	err := s.db.WithContext(ctx).
		Table(s.table.Name).
		Select(s.table.ParentColumn+" AS parent_id, "+s.table.ChildColumn+" AS child_id").
		Where(s.table.ParentColumn+" IN ?", parentIDs).
		Order(s.table.ChildNameColumn + " ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, db.StoreError(err, nil, nil)
	}
	for _, row := range rows {
		result[row.ParentID] = append(result[row.ParentID], row.ChildID)
	}
	return result, nil
}

// RenameParent rewrites the stored parent name on every row of the parent.
func (s *Store) RenameParent(ctx context.Context, parentID, name string) error {
	return s.rename(ctx, s.table.ParentColumn, s.table.ParentNameColumn, parentID, name)
}

// RenameChild rewrites the stored child name wherever the child is linked.
func (s *Store) RenameChild(ctx context.Context, childID, name string) error {
	return s.rename(ctx, s.table.ChildColumn, s.table.ChildNameColumn, childID, name)
}

func (s *Store) rename(ctx context.Context, idColumn, nameColumn, id, name string) error {
	if !db.IsUUID(id) {
		return nil
	}
	err := s.db.WithContext(ctx).
		Table(s.table.Name).
		Where(idColumn+" = ?", id).
		Updates(map[string]interface{}{nameColumn: name}).Error
	return db.StoreError(err, nil, nil)
}

// Names resolves display names from any table with id and name columns.
// Malformed ids are left out of the result like unknown ones.
func Names(ctx context.Context, gormDB *gorm.DB, table, nameColumn string, ids []string) (map[string]string, error) {
	result := make(map[string]string, len(ids))
	ids = db.UUIDs(ids)
	if len(ids) == 0 {
		return result, nil
	}

	var rows []struct {
		ID   string
		Name string
	}
	err := gormDB.WithContext(ctx).
		Table(table).
		Select("id, "+nameColumn+" AS name").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, db.StoreError(err, nil, nil)
	}
	for _, row := range rows {
		result[row.ID] = row.Name
	}
	return result, nil
}
