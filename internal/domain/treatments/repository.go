package treatments

import "context"

type Repository interface {
	Create(ctx context.Context, t Treatment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Treatment, error)
	ListByPet(ctx context.Context, petID string) ([]Treatment, error)
}
