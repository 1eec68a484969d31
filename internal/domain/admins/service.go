package admins

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"studio-admin/internal/identity"
	"studio-admin/pkg/logger"
)

const (
	defaultClaimKey   = "role"
	minPasswordLength = 8
)

type Service struct {
	repo     Repository
	identity identity.Provider
	claimKey string
	log      logger.Logger
}

func NewService(repo Repository, provider identity.Provider, claimKey string, log logger.Logger) *Service {
	if claimKey == "" {
		claimKey = defaultClaimKey
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, identity: provider, claimKey: claimKey, log: log}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]AdminUser, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.ListAdmins(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*AdminUser, error) {
	return s.repo.GetAdmin(ctx, id)
}

// Create registers the identity first and then the directory row. When the
// row cannot be written the identity is deleted again.
func (s *Service) Create(ctx context.Context, input CreateInput) (*AdminUser, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	displayName := strings.TrimSpace(input.DisplayName)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, ErrEmailInvalid
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if displayName == "" {
		return nil, ErrNameRequired
	}
	if !input.Role.Valid() {
		return nil, ErrRoleInvalid
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}
	if _, err := s.identity.LookupByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, identity.ErrIdentityNotFound) {
		return nil, fmt.Errorf("lookup identity: %w", err)
	}

	record, err := s.identity.CreateIdentity(ctx, uuid.NewString(), email, input.Password, displayName)
	if err != nil {
		return nil, fmt.Errorf("create identity: %w", err)
	}

	admin := AdminUser{
		ID:          record.UID,
		Email:       email,
		DisplayName: displayName,
		Role:        input.Role,
	}

	if err := s.identity.SetClaims(ctx, admin.ID, s.claims(admin.Role)); err != nil {
		s.compensate(ctx, admin.ID)
		return nil, fmt.Errorf("set claims: %w", err)
	}
	if err := s.repo.CreateAdmin(ctx, &admin); err != nil {
		s.compensate(ctx, admin.ID)
		return nil, err
	}

	return &admin, nil
}

func (s *Service) compensate(ctx context.Context, id string) {
	if err := s.identity.DeleteIdentity(context.WithoutCancel(ctx), id); err != nil && !errors.Is(err, identity.ErrIdentityNotFound) {
		s.log.InternalError("admins: identity compensation failed", err, "admin_id", id)
	}
}

// Update changes the display name and role. The identity service is called
// last inside the transaction so a failure there rolls the row back. Claims
// go first; when the profile update then fails the previous claims are put
// back.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*AdminUser, error) {
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return nil, ErrNameRequired
	}
	if !input.Role.Valid() {
		return nil, ErrRoleInvalid
	}

	var updated AdminUser
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		admin, err := tx.GetAdmin(ctx, id)
		if err != nil {
			return err
		}
		if admin.Role == RoleOwner && input.Role != RoleOwner && !admin.Disabled {
			if err := s.ensureAnotherOwner(ctx, tx); err != nil {
				return err
			}
		}

		previousRole := admin.Role
		roleChanged := admin.Role != input.Role
		nameChanged := admin.DisplayName != displayName
		admin.DisplayName = displayName
		admin.Role = input.Role
		admin.UpdatedAt = time.Now().UTC()
		if err := tx.UpdateAdmin(ctx, admin); err != nil {
			return err
		}

		if roleChanged {
			if err := s.identity.SetClaims(ctx, admin.ID, s.claims(admin.Role)); err != nil {
				return fmt.Errorf("set claims: %w", err)
			}
		}
		if nameChanged {
			if err := s.identity.UpdateProfile(ctx, admin.ID, displayName); err != nil {
				if roleChanged {
					s.restoreClaims(ctx, admin.ID, previousRole)
				}
				return fmt.Errorf("update identity: %w", err)
			}
		}
		updated = *admin
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) restoreClaims(ctx context.Context, id string, role Role) {
	if err := s.identity.SetClaims(context.WithoutCancel(ctx), id, s.claims(role)); err != nil {
		s.log.InternalError("admins: claims compensation failed", err, "admin_id", id, "role", string(role))
	}
}

func (s *Service) SetDisabled(ctx context.Context, id string, disabled bool) (*AdminUser, error) {
	var updated AdminUser
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		admin, err := tx.GetAdmin(ctx, id)
		if err != nil {
			return err
		}
		if admin.Disabled == disabled {
			updated = *admin
			return nil
		}
		if disabled && admin.Role == RoleOwner {
			if err := s.ensureAnotherOwner(ctx, tx); err != nil {
				return err
			}
		}

		admin.Disabled = disabled
		admin.UpdatedAt = time.Now().UTC()
		if err := tx.UpdateAdmin(ctx, admin); err != nil {
			return err
		}
		if err := s.identity.DisableIdentity(ctx, admin.ID, disabled); err != nil {
			return fmt.Errorf("disable identity: %w", err)
		}
		updated = *admin
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		admin, err := tx.GetAdmin(ctx, id)
		if err != nil {
			return err
		}
		if admin.Role == RoleOwner && !admin.Disabled {
			if err := s.ensureAnotherOwner(ctx, tx); err != nil {
				return err
			}
		}

		deleted, err := tx.DeleteAdmin(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrAdminNotFound
		}
		if err := s.identity.DeleteIdentity(ctx, id); err != nil && !errors.Is(err, identity.ErrIdentityNotFound) {
			return fmt.Errorf("delete identity: %w", err)
		}
		return nil
	})
}

func (s *Service) ensureAnotherOwner(ctx context.Context, tx Repository) error {
	owners, err := tx.CountActiveOwners(ctx)
	if err != nil {
		return err
	}
	if owners <= 1 {
		return ErrLastOwner
	}
	return nil
}

func (s *Service) claims(role Role) map[string]any {
	return map[string]any{s.claimKey: string(role)}
}
