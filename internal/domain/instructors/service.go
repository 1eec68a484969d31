package instructors

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"studio-admin/internal/domain/relations"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Instructor, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Style = strings.ToLower(strings.TrimSpace(filter.Style))
	return s.repo.ListInstructors(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*InstructorWithClasses, error) {
	instructor, err := s.repo.GetInstructor(ctx, id)
	if err != nil {
		return nil, err
	}
	classIDs, err := s.repo.ClassLinks().ChildIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &InstructorWithClasses{Instructor: *instructor, ClassIDs: classIDs}, nil
}

func (s *Service) Create(ctx context.Context, input Input) (*Instructor, error) {
	input, err := normalize(input)
	if err != nil {
		return nil, err
	}

	instructor := Instructor{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Email:    input.Email,
		Bio:      input.Bio,
		PhotoURL: input.PhotoURL,
		Styles:   pq.StringArray(input.Styles),
		IsActive: input.IsActive,
	}
	if err := s.repo.CreateInstructor(ctx, &instructor); err != nil {
		return nil, err
	}
	return &instructor, nil
}

func (s *Service) Update(ctx context.Context, id string, input Input) (*Instructor, error) {
	input, err := normalize(input)
	if err != nil {
		return nil, err
	}

	var updated Instructor
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		instructor, err := tx.GetInstructor(ctx, id)
		if err != nil {
			return err
		}
		renamed := instructor.Name != input.Name

		instructor.Name = input.Name
		instructor.Email = input.Email
		instructor.Bio = input.Bio
		instructor.PhotoURL = input.PhotoURL
		instructor.Styles = pq.StringArray(input.Styles)
		instructor.IsActive = input.IsActive
		instructor.UpdatedAt = time.Now().UTC()

		if err := tx.UpdateInstructor(ctx, instructor); err != nil {
			return err
		}
		if renamed {
			if err := tx.RenameEverywhere(ctx, instructor.ID, instructor.Name); err != nil {
				return err
			}
		}
		updated = *instructor
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteInstructor(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrInstructorNotFound
	}
	return nil
}

// AssignClasses replaces the classes an instructor teaches. Every class id
// must exist.
func (s *Service) AssignClasses(ctx context.Context, instructorID string, classIDs []string) (bool, error) {
	var changed bool
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		instructor, err := tx.GetInstructor(ctx, instructorID)
		if err != nil {
			return err
		}
		binding := relations.Binding{
			Store:  tx.ClassLinks(),
			Lookup: tx.ClassNames,
			Label:  "classes",
			Field:  "class_ids",
		}
		changed, err = binding.Sync(ctx, relations.Parent{ID: instructor.ID, Name: instructor.Name}, classIDs)
		return err
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

func normalize(input Input) (Input, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Bio = strings.TrimSpace(input.Bio)
	input.PhotoURL = strings.TrimSpace(input.PhotoURL)
	if input.Name == "" {
		return input, ErrNameRequired
	}
	if _, err := mail.ParseAddress(input.Email); err != nil || input.Email == "" {
		return input, ErrEmailInvalid
	}
	input.Styles = normalizeStyles(input.Styles)
	return input, nil
}

func normalizeStyles(styles []string) []string {
	result := make([]string, 0, len(styles))
	seen := make(map[string]struct{}, len(styles))
	for _, style := range styles {
		style = strings.ToLower(strings.TrimSpace(style))
		if style == "" {
			continue
		}
		if _, ok := seen[style]; ok {
			continue
		}
		seen[style] = struct{}{}
		result = append(result, style)
	}
	return result
}
