package treatments

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"pet-care-reminders/internal/domain/schedule"
)

type testRepo struct {
	byID map[string]Treatment
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Treatment{}}
}

func (r *testRepo) Create(ctx context.Context, t Treatment) error {
	r.byID[t.ID] = t
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Treatment, error) {
	t, ok := r.byID[id]
	if !ok {
		return Treatment{}, ErrNotFound
	}
	return t, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Treatment, error) {
	out := make([]Treatment, 0)
	for _, t := range r.byID {
		if t.PetID == petID {
			out = append(out, t)
		}
	}
	return out, nil
}

func validInput() CreateInput {
	return CreateInput{
		Category:      CategoryVaccine,
		Name:          "Antirrábica",
		IntervalValue: 12,
		IntervalUnit:  schedule.UnitMonths,
	}
}

func TestNormalizeAlertDays(t *testing.T) {
	got, err := NormalizeAlertDays([]int{5, 30, 5, 15, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{30, 15, 5, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := NormalizeAlertDays([]int{10, -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative, got %v", err)
	}

	got, err = NormalizeAlertDays(nil)
	if err != nil || got != nil {
		t.Fatalf("expected nil for empty input, got %v %v", got, err)
	}
}

func TestTreatment_DefaultAlertDays(t *testing.T) {
	unset := Treatment{}
	explicit := Treatment{AlertDays: []int{30, 15, 5}}

	for days := -10; days <= 100; days++ {
		if unset.AlertsOn(days) != explicit.AlertsOn(days) {
			t.Fatalf("default and explicit [30,15,5] differ at days=%d", days)
		}
	}

	// EffectiveAlertDays no debe exponer el slice global.
	eff := unset.EffectiveAlertDays()
	eff[0] = 99
	if DefaultAlertDays[0] != 30 {
		t.Fatalf("DefaultAlertDays was mutated")
	}
}

func TestService_Create_Validates(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	bad := []func(in *CreateInput){
		func(in *CreateInput) { in.Name = "  " },
		func(in *CreateInput) { in.Category = "toy" },
		func(in *CreateInput) { in.IntervalValue = 0 },
		func(in *CreateInput) { in.IntervalValue = -3 },
		func(in *CreateInput) { in.IntervalUnit = "weeks" },
		func(in *CreateInput) { in.AlertDays = []int{-5} },
	}
	for i, mutate := range bad {
		in := validInput()
		mutate(&in)
		if _, err := svc.Create(ctx, "pet-1", in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestService_Create_NormalizesAndStores(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	in := validInput()
	in.AlertDays = []int{7, 30, 7}
	tr, err := svc.Create(context.Background(), "pet-1", in)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !reflect.DeepEqual(tr.AlertDays, []int{30, 7}) {
		t.Fatalf("expected normalized alert days, got %v", tr.AlertDays)
	}
	if tr.CreatedAt != now {
		t.Fatalf("expected CreatedAt = now")
	}
	if _, ok := repo.byID[tr.ID]; !ok {
		t.Fatalf("treatment not stored")
	}
}

func TestService_GetForPet_ChecksOwnership(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	tr, err := svc.Create(ctx, "pet-1", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.GetForPet(ctx, "pet-2", tr.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other pet, got %v", err)
	}
	if err := svc.Delete(ctx, "pet-2", tr.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting from other pet, got %v", err)
	}
	if err := svc.Delete(ctx, "pet-1", tr.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
