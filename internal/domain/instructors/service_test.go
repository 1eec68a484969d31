package instructors

import (
	"context"
	"errors"
	"testing"

	"studio-admin/internal/domain/apperr"
	"studio-admin/internal/domain/relations"
)

type fakeInstructorsRepo struct {
	instructors map[string]*Instructor
	classes     map[string]string
	links       map[string][]relations.Link
	renamed     map[string]string
}

func newFakeInstructorsRepo() *fakeInstructorsRepo {
	return &fakeInstructorsRepo{
		instructors: make(map[string]*Instructor),
		classes:     map[string]string{"c1": "Salsa", "c2": "Tango"},
		links:       make(map[string][]relations.Link),
		renamed:     make(map[string]string),
	}
}

func (r *fakeInstructorsRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	links := make(map[string][]relations.Link, len(r.links))
	for id, rows := range r.links {
		links[id] = append([]relations.Link{}, rows...)
	}
	if err := fn(r); err != nil {
		r.links = links
		return err
	}
	return nil
}

func (r *fakeInstructorsRepo) ListInstructors(ctx context.Context, filter ListFilter) ([]Instructor, int64, error) {
	items := make([]Instructor, 0, len(r.instructors))
	for _, instructor := range r.instructors {
		items = append(items, *instructor)
	}
	return items, int64(len(items)), nil
}

func (r *fakeInstructorsRepo) GetInstructor(ctx context.Context, id string) (*Instructor, error) {
	instructor, ok := r.instructors[id]
	if !ok {
		return nil, ErrInstructorNotFound
	}
	copied := *instructor
	return &copied, nil
}

func (r *fakeInstructorsRepo) CreateInstructor(ctx context.Context, instructor *Instructor) error {
	for _, existing := range r.instructors {
		if existing.Email == instructor.Email {
			return ErrEmailTaken
		}
	}
	copied := *instructor
	r.instructors[instructor.ID] = &copied
	return nil
}

func (r *fakeInstructorsRepo) UpdateInstructor(ctx context.Context, instructor *Instructor) error {
	copied := *instructor
	r.instructors[instructor.ID] = &copied
	return nil
}

func (r *fakeInstructorsRepo) DeleteInstructor(ctx context.Context, id string) (bool, error) {
	if _, ok := r.instructors[id]; !ok {
		return false, nil
	}
	delete(r.instructors, id)
	return true, nil
}

func (r *fakeInstructorsRepo) RenameEverywhere(ctx context.Context, instructorID, name string) error {
	r.renamed[instructorID] = name
	return nil
}

func (r *fakeInstructorsRepo) ClassNames(ctx context.Context, ids []string) (map[string]string, error) {
	result := make(map[string]string, len(ids))
	for _, id := range ids {
		if name, ok := r.classes[id]; ok {
			result[id] = name
		}
	}
	return result, nil
}

func (r *fakeInstructorsRepo) ClassLinks() relations.Store {
	return linkStore{repo: r}
}

type linkStore struct {
	repo *fakeInstructorsRepo
}

func (s linkStore) ChildIDs(ctx context.Context, parentID string) ([]string, error) {
	ids := make([]string, 0)
	for _, link := range s.repo.links[parentID] {
		ids = append(ids, link.ChildID)
	}
	return ids, nil
}

func (s linkStore) DeleteByParent(ctx context.Context, parentID string) error {
	delete(s.repo.links, parentID)
	return nil
}

func (s linkStore) Insert(ctx context.Context, links []relations.Link) error {
	for _, link := range links {
		s.repo.links[link.ParentID] = append(s.repo.links[link.ParentID], link)
	}
	return nil
}

func TestCreateNormalizesInput(t *testing.T) {
	service := NewService(newFakeInstructorsRepo())

	instructor, err := service.Create(context.Background(), Input{
		Name:   "  Jane Doe ",
		Email:  " Jane@Studio.Example ",
		Styles: []string{"Salsa", "salsa", " Tango", ""},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if instructor.Name != "Jane Doe" || instructor.Email != "jane@studio.example" {
		t.Fatalf("unexpected instructor: %+v", instructor)
	}
	if len(instructor.Styles) != 2 || instructor.Styles[0] != "salsa" || instructor.Styles[1] != "tango" {
		t.Fatalf("unexpected styles: %v", instructor.Styles)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	service := NewService(newFakeInstructorsRepo())
	if _, err := service.Create(context.Background(), Input{Email: "a@b.c"}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected name required, got %v", err)
	}
	if _, err := service.Create(context.Background(), Input{Name: "Jane", Email: "not-an-email"}); !errors.Is(err, ErrEmailInvalid) {
		t.Fatalf("expected invalid email, got %v", err)
	}
}

func TestAssignClassesVerifiesEveryClass(t *testing.T) {
	repo := newFakeInstructorsRepo()
	service := NewService(repo)
	instructor, err := service.Create(context.Background(), Input{Name: "Jane", Email: "jane@studio.example"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	changed, err := service.AssignClasses(context.Background(), instructor.ID, []string{"c1"})
	if err != nil || !changed {
		t.Fatalf("expected change, got %v %v", changed, err)
	}

	_, err = service.AssignClasses(context.Background(), instructor.ID, []string{"c2", "ghost"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	loaded, err := service.Get(context.Background(), instructor.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(loaded.ClassIDs) != 1 || loaded.ClassIDs[0] != "c1" {
		t.Fatalf("assignment must be unchanged after a failed sync, got %v", loaded.ClassIDs)
	}

	if _, err := service.AssignClasses(context.Background(), "missing", []string{"c1"}); !errors.Is(err, ErrInstructorNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateRenamesDenormalizedCopies(t *testing.T) {
	repo := newFakeInstructorsRepo()
	service := NewService(repo)
	instructor, err := service.Create(context.Background(), Input{Name: "Jane", Email: "jane@studio.example"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := service.Update(context.Background(), instructor.ID, Input{Name: "Jane", Email: "jane@studio.example", Bio: "x"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, ok := repo.renamed[instructor.ID]; ok {
		t.Fatalf("unchanged name must not rewrite copies")
	}

	if _, err := service.Update(context.Background(), instructor.ID, Input{Name: "Janet", Email: "jane@studio.example"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.renamed[instructor.ID] != "Janet" {
		t.Fatalf("expected rename to propagate, got %q", repo.renamed[instructor.ID])
	}
}
