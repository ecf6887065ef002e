package members

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-reminders/internal/ports/capabilities"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("membership not found")
	ErrAlreadyMember = errors.New("already a member")
	ErrLastOwner     = errors.New("pet must keep at least one owner")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// AddOwner registra al creador de la mascota como owner.
func (s *Service) AddOwner(ctx context.Context, petID, userID string) (Membership, error) {
	petID = strings.TrimSpace(petID)
	userID = strings.TrimSpace(userID)
	if petID == "" || userID == "" {
		return Membership{}, ErrInvalidInput
	}

	now := s.now()
	m := Membership{
		PetID:     petID,
		UserID:    userID,
		Role:      RoleOwner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return Membership{}, err
	}
	return m, nil
}

// SetRole agrega o actualiza la membresía de userID. Idempotente.
// No permite degradar al último owner.
func (s *Service) SetRole(ctx context.Context, petID, userID string, role Role) (Membership, error) {
	petID = strings.TrimSpace(petID)
	userID = strings.TrimSpace(userID)
	if petID == "" || userID == "" || !role.Valid() {
		return Membership{}, ErrInvalidInput
	}

	now := s.now()

	current, err := s.repo.Get(ctx, petID, userID)
	if errors.Is(err, ErrNotFound) {
		m := Membership{
			PetID:     petID,
			UserID:    userID,
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Create(ctx, m); err != nil {
			return Membership{}, err
		}
		return m, nil
	}
	if err != nil {
		return Membership{}, err
	}

	if current.Role == role {
		return current, nil
	}
	if current.Role == RoleOwner {
		if err := s.ensureAnotherOwner(ctx, petID, userID); err != nil {
			return Membership{}, err
		}
	}

	current.Role = role
	current.UpdatedAt = now
	if err := s.repo.Update(ctx, current); err != nil {
		return Membership{}, err
	}
	return current, nil
}

func (s *Service) Remove(ctx context.Context, petID, userID string) error {
	petID = strings.TrimSpace(petID)
	userID = strings.TrimSpace(userID)
	if petID == "" || userID == "" {
		return ErrInvalidInput
	}

	current, err := s.repo.Get(ctx, petID, userID)
	if err != nil {
		return err
	}
	if current.Role == RoleOwner {
		if err := s.ensureAnotherOwner(ctx, petID, userID); err != nil {
			return err
		}
	}
	return s.repo.Delete(ctx, petID, userID)
}

func (s *Service) Get(ctx context.Context, petID, userID string) (Membership, error) {
	petID = strings.TrimSpace(petID)
	userID = strings.TrimSpace(userID)
	if petID == "" || userID == "" {
		return Membership{}, ErrNotFound
	}
	return s.repo.Get(ctx, petID, userID)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Membership, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Membership, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// Allowed implementa capabilities.Resolver.
func (s *Service) Allowed(ctx context.Context, in capabilities.CapabilityCheck) (bool, error) {
	m, err := s.Get(ctx, in.PetID, in.UserID)
	if errors.Is(err, ErrNotFound) {
		return false, capabilities.ErrNotMember
	}
	if err != nil {
		return false, err
	}
	return HasCapability(m.Role, in.Capability), nil
}

func (s *Service) ensureAnotherOwner(ctx context.Context, petID, exceptUserID string) error {
	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return err
	}
	for _, m := range items {
		if m.Role == RoleOwner && m.UserID != exceptUserID {
			return nil
		}
	}
	return ErrLastOwner
}
