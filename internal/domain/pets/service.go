package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

const maxNameLen = 80

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

type CreateInput struct {
	Name string
}

func (s *Service) Create(ctx context.Context, creatorUserID string, in CreateInput) (Pet, error) {
	creatorUserID = strings.TrimSpace(creatorUserID)
	name, err := normalizeName(in.Name)
	if err != nil || creatorUserID == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedBy: creatorUserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Rename(ctx context.Context, petID, name string) (Pet, error) {
	n, err := normalizeName(name)
	if err != nil {
		return Pet{}, err
	}

	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.Name == n {
		return p, nil
	}

	p.Name = n
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Archive saca a la mascota del runner. Idempotente.
func (s *Service) Archive(ctx context.Context, petID string) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if !p.Active() {
		return p, nil
	}

	now := s.now()
	p.ArchivedAt = &now
	p.UpdatedAt = now
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListActive(ctx context.Context) ([]Pet, error) {
	return s.repo.ListActive(ctx)
}

func normalizeName(raw string) (string, error) {
	n := strings.TrimSpace(raw)
	if n == "" || len([]rune(n)) > maxNameLen {
		return "", ErrInvalidInput
	}
	return n, nil
}
