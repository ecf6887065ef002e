package memory

import (
	"context"
	"sort"
	"sync"

	"pet-care-reminders/internal/domain/members"
)

type memberKey struct {
	petID  string
	userID string
}

type memberRepo struct {
	mu    sync.RWMutex
	byKey map[memberKey]members.Membership
}

func NewMemberRepo() members.Repository {
	return &memberRepo{
		byKey: make(map[memberKey]members.Membership),
	}
}

func (r *memberRepo) Create(ctx context.Context, m members.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := memberKey{m.PetID, m.UserID}
	if _, exists := r.byKey[k]; exists {
		return members.ErrAlreadyMember
	}
	r.byKey[k] = m
	return nil
}

func (r *memberRepo) Update(ctx context.Context, m members.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := memberKey{m.PetID, m.UserID}
	if _, exists := r.byKey[k]; !exists {
		return members.ErrNotFound
	}
	r.byKey[k] = m
	return nil
}

func (r *memberRepo) Delete(ctx context.Context, petID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := memberKey{petID, userID}
	if _, exists := r.byKey[k]; !exists {
		return members.ErrNotFound
	}
	delete(r.byKey, k)
	return nil
}

func (r *memberRepo) Get(ctx context.Context, petID, userID string) (members.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byKey[memberKey{petID, userID}]
	if !ok {
		return members.Membership{}, members.ErrNotFound
	}
	return m, nil
}

func (r *memberRepo) ListByPet(ctx context.Context, petID string) ([]members.Membership, error) {
	return r.list(func(m members.Membership) bool { return m.PetID == petID }), nil
}

func (r *memberRepo) ListByUser(ctx context.Context, userID string) ([]members.Membership, error) {
	return r.list(func(m members.Membership) bool { return m.UserID == userID }), nil
}

func (r *memberRepo) list(match func(members.Membership) bool) []members.Membership {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]members.Membership, 0)
	for _, m := range r.byKey {
		if match(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
