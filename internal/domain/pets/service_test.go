package pets

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListActive(ctx context.Context) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestService() *Service {
	svc := NewService(newTestRepo())
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc
}

func TestService_Create_Validates(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "owner-1", CreateInput{Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
	if _, err := svc.Create(ctx, "", CreateInput{Name: "Milo"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without creator, got %v", err)
	}
	if _, err := svc.Create(ctx, "owner-1", CreateInput{Name: strings.Repeat("a", maxNameLen+1)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for long name, got %v", err)
	}

	p, err := svc.Create(ctx, "owner-1", CreateInput{Name: "  Milo "})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.Name != "Milo" || p.CreatedBy != "owner-1" || !p.Active() {
		t.Fatalf("unexpected pet %#v", p)
	}
}

func TestService_Archive_IsIdempotentAndLeavesActiveList(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	milo, _ := svc.Create(ctx, "owner-1", CreateInput{Name: "Milo"})
	_, _ = svc.Create(ctx, "owner-1", CreateInput{Name: "Luna"})

	archived, err := svc.Archive(ctx, milo.ID)
	if err != nil {
		t.Fatalf("Archive error: %v", err)
	}
	if archived.Active() {
		t.Fatal("expected archived pet")
	}
	again, err := svc.Archive(ctx, milo.ID)
	if err != nil || !again.ArchivedAt.Equal(*archived.ArchivedAt) {
		t.Fatalf("expected idempotent archive, got %v %v", again, err)
	}

	active, _ := svc.ListActive(ctx)
	if len(active) != 1 || active[0].Name != "Luna" {
		t.Fatalf("expected only Luna active, got %#v", active)
	}
}

func TestService_Rename(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, _ := svc.Create(ctx, "owner-1", CreateInput{Name: "Milo"})
	got, err := svc.Rename(ctx, p.ID, "Milo II")
	if err != nil || got.Name != "Milo II" {
		t.Fatalf("unexpected rename result %v %v", got, err)
	}
	if _, err := svc.Rename(ctx, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
