package onboarding

import (
	"context"
	"strings"
	"testing"
	"time"

	"pet-care-reminders/internal/adapters/storage/memory"
	"pet-care-reminders/internal/domain/applications"
	"pet-care-reminders/internal/domain/members"
	"pet-care-reminders/internal/domain/pets"
	"pet-care-reminders/internal/domain/treatments"
)

const sample = `
pets:
  - name: Luna
    owner: ana
    owners: [beto]
    viewers: [carla]
    treatments:
      - name: Antirrábica
        category: vaccine
        every: {value: 12, unit: months}
        applied: ["2023-06-10", "2024-06-10"]
      - name: Pipeta
        category: flea_tick
        every: {value: 30, unit: days}
        alerts_days: [5, 1, 5]
`

func TestParse_Valid(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(s.Pets) != 1 || len(s.Pets[0].Treatments) != 2 {
		t.Fatalf("unexpected seed %#v", s)
	}
	if got := s.Pets[0].owners(); len(got) != 2 || got[0] != "ana" {
		t.Fatalf("unexpected owners %v", got)
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"no pets":    `pets: []`,
		"no owner":   "pets:\n  - name: Luna\n",
		"bad date":   "pets:\n  - name: Luna\n    owner: ana\n    treatments:\n      - name: x\n        applied: [\"10/06/2024\"]\n",
		"bad yaml":   "pets: [",
		"empty name": "pets:\n  - owner: ana\n",
	}
	for name, in := range cases {
		if _, err := Parse([]byte(in)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestApply_WritesThroughServices(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	store := memory.NewStore()
	membersSvc := members.NewService(store.Members)
	svc := Services{
		Pets:         pets.NewService(store.Pets),
		Members:      membersSvc,
		Treatments:   treatments.NewService(store.Treatments),
		Applications: applications.NewService(store.Applications, time.UTC),
	}

	res, err := Apply(context.Background(), s, svc)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if res.Pets != 1 || res.Members != 3 || res.Treatments != 2 || res.Applications != 2 {
		t.Fatalf("unexpected result %#v", res)
	}

	ms, _ := membersSvc.ListByUser(context.Background(), "carla")
	if len(ms) != 1 || ms[0].Role != members.RoleViewer {
		t.Fatalf("expected carla as viewer, got %#v", ms)
	}

	ts, _ := svc.Treatments.ListByPet(context.Background(), ms[0].PetID)
	for _, tr := range ts {
		if tr.Name == "Pipeta" && (len(tr.AlertDays) != 2 || tr.AlertDays[0] != 5) {
			t.Fatalf("expected normalized alert days, got %v", tr.AlertDays)
		}
	}
}

func TestApply_StopsOnInvalidTreatment(t *testing.T) {
	s, err := Parse([]byte("pets:\n  - name: Luna\n    owner: ana\n    treatments:\n      - name: x\n        category: potion\n        every: {value: 1, unit: days}\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	store := memory.NewStore()
	_, err = Apply(context.Background(), s, Services{
		Pets:         pets.NewService(store.Pets),
		Members:      members.NewService(store.Members),
		Treatments:   treatments.NewService(store.Treatments),
		Applications: applications.NewService(store.Applications, time.UTC),
	})
	if err == nil || !strings.Contains(err.Error(), "unknown category") {
		t.Fatalf("expected category error, got %v", err)
	}
}
