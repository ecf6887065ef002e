package members

import "context"

type Repository interface {
	// Create devuelve ErrAlreadyMember si (PetID, UserID) ya existe.
	Create(ctx context.Context, m Membership) error
	Update(ctx context.Context, m Membership) error
	Delete(ctx context.Context, petID, userID string) error
	Get(ctx context.Context, petID, userID string) (Membership, error)
	ListByPet(ctx context.Context, petID string) ([]Membership, error)
	ListByUser(ctx context.Context, userID string) ([]Membership, error)
}
