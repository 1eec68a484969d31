package classes

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"studio-admin/internal/domain/events"
	"studio-admin/internal/domain/relations"
	"studio-admin/pkg/logger"
)

const defaultCatalogTTL = time.Minute

type Options struct {
	Catalog    CatalogCache
	CatalogTTL time.Duration
	Events     events.Publisher
	Log        logger.Logger
}

type Service struct {
	repo       Repository
	catalog    CatalogCache
	catalogTTL time.Duration
	events     events.Publisher
	log        logger.Logger
	now        func() time.Time
}

func NewService(repo Repository) *Service {
	return NewServiceWithOptions(repo, Options{})
}

func NewServiceWithOptions(repo Repository, opts Options) *Service {
	if opts.Catalog == nil {
		opts.Catalog = noopCatalogCache{}
	}
	if opts.CatalogTTL <= 0 {
		opts.CatalogTTL = defaultCatalogTTL
	}
	if opts.Events == nil {
		opts.Events = events.Nop()
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	return &Service{
		repo:       repo,
		catalog:    opts.Catalog,
		catalogTTL: opts.CatalogTTL,
		events:     opts.Events,
		log:        opts.Log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// UpsertDraft applies one wizard step. Without existingID only the details
// step may run and it creates the draft; with existingID exactly the step's
// columns are written on the inactive class.
func (s *Service) UpsertDraft(ctx context.Context, input StepInput, existingID string) (*ClassWithMemberships, error) {
	if input == nil {
		return nil, ErrUnknownStep
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	existingID = strings.TrimSpace(existingID)
	if existingID == "" {
		details, ok := input.(DetailsInput)
		if !ok {
			return nil, ErrIDRequired
		}
		return s.createDraft(ctx, details)
	}
	return s.updateDraft(ctx, existingID, input)
}

func (s *Service) createDraft(ctx context.Context, input DetailsInput) (*ClassWithMemberships, error) {
	class := Class{
		ID:       uuid.NewString(),
		Schedule: []ScheduleEntry{},
	}
	input.apply(&class)

	name, err := s.instructorName(ctx, s.repo, *class.InstructorID)
	if err != nil {
		return nil, err
	}
	class.InstructorName = name

	if err := s.repo.CreateClass(ctx, &class); err != nil {
		return nil, err
	}

	return &ClassWithMemberships{Class: class, MembershipIDs: []string{}}, nil
}

func (s *Service) updateDraft(ctx context.Context, id string, input StepInput) (*ClassWithMemberships, error) {
	var result ClassWithMemberships
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		var patch Class
		input.apply(&patch)
		patch.UpdatedAt = s.now()

		switch input.(type) {
		case DetailsInput:
			name, err := s.instructorName(ctx, tx, *patch.InstructorID)
			if err != nil {
				return err
			}
			patch.InstructorName = name
		case PricingInput:
			if patch.PromotionID != nil {
				exists, err := tx.PromotionExists(ctx, *patch.PromotionID)
				if err != nil {
					return err
				}
				if !exists {
					return ErrPromotionNotFound
				}
			}
		}

		updated, err := tx.UpdateDraft(ctx, id, input.columns(), &patch)
		if err != nil {
			return err
		}
		if !updated {
			return ErrDraftNotFound
		}

		class, err := tx.GetClass(ctx, id)
		if err != nil {
			return err
		}

		switch step := input.(type) {
		case DetailsInput:
			if err := tx.RenameInLinks(ctx, class.ID, class.Name); err != nil {
				return err
			}
		case PricingInput:
			if _, err := s.membershipBinding(tx).Sync(ctx, relations.Parent{ID: class.ID, Name: class.Name}, step.MembershipIDs); err != nil {
				return err
			}
		}

		membershipIDs, err := tx.MembershipLinks().ChildIDs(ctx, class.ID)
		if err != nil {
			return err
		}

		result = ClassWithMemberships{Class: *class, MembershipIDs: membershipIDs}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) instructorName(ctx context.Context, repo Repository, instructorID string) (string, error) {
	names, err := repo.InstructorNames(ctx, []string{instructorID})
	if err != nil {
		return "", err
	}
	name, ok := names[instructorID]
	if !ok {
		return "", ErrInstructorNotFound
	}
	return name, nil
}

func (s *Service) membershipBinding(tx Repository) relations.Binding {
	return relations.Binding{
		Store:  tx.MembershipLinks(),
		Lookup: tx.MembershipNames,
		Label:  "memberships",
		Field:  "membership_ids",
	}
}

// Activate makes a fully enriched class visible. Activating an active class
// is a no-op.
func (s *Service) Activate(ctx context.Context, id string) (*Class, error) {
	var result Class
	var transitioned bool
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		class, err := tx.GetClass(ctx, id)
		if err != nil {
			return err
		}
		if class.IsActive {
			result = *class
			return nil
		}
		if ComputeResumeStep(*class) != StepDone {
			return ErrClassIncomplete
		}

		updated, err := tx.SetActive(ctx, id, true)
		if err != nil {
			return err
		}
		if !updated {
			return ErrClassNotFound
		}

		class.IsActive = true
		class.IsCompleted = true
		result = *class
		transitioned = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if transitioned {
		s.catalog.InvalidateCatalog(ctx)
		s.publish(ctx, events.New(events.ClassActivated, result.ID, map[string]any{"name": result.Name}))
	}
	return &result, nil
}

// SetStatus toggles visibility of a class. Deactivating never clears
// is_completed.
func (s *Service) SetStatus(ctx context.Context, id string, active bool) (*Class, error) {
	if active {
		return s.Activate(ctx, id)
	}

	var result Class
	var transitioned bool
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		class, err := tx.GetClass(ctx, id)
		if err != nil {
			return err
		}
		if !class.IsActive {
			result = *class
			return nil
		}
		updated, err := tx.SetActive(ctx, id, false)
		if err != nil {
			return err
		}
		if !updated {
			return ErrClassNotFound
		}
		class.IsActive = false
		result = *class
		transitioned = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if transitioned {
		s.catalog.InvalidateCatalog(ctx)
		s.publish(ctx, events.New(events.ClassDeactivated, result.ID, map[string]any{"name": result.Name}))
	}
	return &result, nil
}

// DeleteDraft removes an inactive class and returns the media URLs it
// referenced. Removing the blobs is left to the caller.
func (s *Service) DeleteDraft(ctx context.Context, id string) ([]string, error) {
	var urls []string
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		class, err := tx.GetClass(ctx, id)
		if err != nil {
			return err
		}
		if class.IsActive {
			return ErrClassActive
		}

		deleted, err := tx.DeleteDraft(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			// activated between the read and the delete
			return ErrClassActive
		}

		urls = class.MediaURLs()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.ClassDeleted, id, map[string]any{"media_urls": urls}))
	return urls, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ClassWithMemberships, error) {
	class, err := s.repo.GetClass(ctx, id)
	if err != nil {
		return nil, err
	}
	membershipIDs, err := s.repo.MembershipLinks().ChildIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ClassWithMemberships{Class: *class, MembershipIDs: membershipIDs}, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]ClassWithMemberships, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	items, total, err := s.repo.ListClasses(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if len(items) == 0 {
		return []ClassWithMemberships{}, total, nil
	}

	ids := make([]string, 0, len(items))
	for _, class := range items {
		ids = append(ids, class.ID)
	}
	membershipsByClass, err := s.repo.MembershipIDsByClassIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]ClassWithMemberships, 0, len(items))
	for _, class := range items {
		membershipIDs := membershipsByClass[class.ID]
		if membershipIDs == nil {
			membershipIDs = []string{}
		}
		result = append(result, ClassWithMemberships{Class: class, MembershipIDs: membershipIDs})
	}
	return result, total, nil
}

// ActiveCatalog lists active classes for the public catalog.
func (s *Service) ActiveCatalog(ctx context.Context) ([]Class, error) {
	if cached, ok := s.catalog.GetCatalog(ctx); ok {
		return cached, nil
	}
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	s.catalog.SetCatalog(ctx, items, s.catalogTTL)
	return items, nil
}

// SyncMemberships replaces the memberships that include a class.
func (s *Service) SyncMemberships(ctx context.Context, classID string, membershipIDs []string) (bool, error) {
	var changed bool
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		class, err := tx.GetClass(ctx, classID)
		if err != nil {
			return err
		}
		changed, err = s.membershipBinding(tx).Sync(ctx, relations.Parent{ID: class.ID, Name: class.Name}, membershipIDs)
		return err
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.events.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.log.InternalError("classes: publish event failed", err, "type", event.Type, "class_id", event.EntityID)
	}
}
