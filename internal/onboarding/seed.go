package onboarding

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"pet-care-reminders/internal/domain/applications"
	"pet-care-reminders/internal/domain/members"
	"pet-care-reminders/internal/domain/pets"
	"pet-care-reminders/internal/domain/schedule"
	"pet-care-reminders/internal/domain/treatments"

	"gopkg.in/yaml.v3"
)

// Seed describe mascotas, miembros, tratamientos e historial a cargar.
type Seed struct {
	Pets []PetSeed `yaml:"pets"`
}

type PetSeed struct {
	Name       string          `yaml:"name"`
	Owner      string          `yaml:"owner"`
	Owners     []string        `yaml:"owners"`
	Viewers    []string        `yaml:"viewers"`
	Treatments []TreatmentSeed `yaml:"treatments"`
}

type TreatmentSeed struct {
	Name       string   `yaml:"name"`
	Category   string   `yaml:"category"`
	Every      Interval `yaml:"every"`
	AlertsDays []int    `yaml:"alerts_days"`
	Notes      string   `yaml:"notes"`
	// Applied: fechas YYYY-MM-DD.
	Applied []string `yaml:"applied"`
}

type Interval struct {
	Value int    `yaml:"value"`
	Unit  string `yaml:"unit"`
}

// Load lee y valida un archivo de seed.
func Load(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Seed) validate() error {
	if len(s.Pets) == 0 {
		return fmt.Errorf("seed has no pets defined")
	}
	for i, p := range s.Pets {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("pet #%d: name is required", i+1)
		}
		if len(p.owners()) == 0 {
			return fmt.Errorf("pet %q: at least one owner is required", p.Name)
		}
		for _, t := range p.Treatments {
			if strings.TrimSpace(t.Name) == "" {
				return fmt.Errorf("pet %q: treatment name is required", p.Name)
			}
			for _, d := range t.Applied {
				if _, err := time.Parse(schedule.DateLayout, strings.TrimSpace(d)); err != nil {
					return fmt.Errorf("pet %q, treatment %q: applied date %q must be YYYY-MM-DD", p.Name, t.Name, d)
				}
			}
		}
	}
	return nil
}

// owners junta owner y owners sin duplicados; el primero es el creador.
func (p PetSeed) owners() []string {
	seen := map[string]bool{}
	out := make([]string, 0, 1+len(p.Owners))
	for _, u := range append([]string{p.Owner}, p.Owners...) {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// Services son los servicios de dominio por los que pasa el seed,
// así se aplican las mismas validaciones que en la API.
type Services struct {
	Pets         *pets.Service
	Members      *members.Service
	Treatments   *treatments.Service
	Applications *applications.Service
}

type Result struct {
	Pets         int
	Members      int
	Treatments   int
	Applications int
}

// Apply carga el seed. Se detiene en el primer error.
func Apply(ctx context.Context, s *Seed, svc Services) (Result, error) {
	var res Result

	for _, ps := range s.Pets {
		owners := ps.owners()
		creator := owners[0]

		p, err := svc.Pets.Create(ctx, creator, pets.CreateInput{Name: ps.Name})
		if err != nil {
			return res, fmt.Errorf("pet %q: %w", ps.Name, err)
		}
		res.Pets++

		if _, err := svc.Members.AddOwner(ctx, p.ID, creator); err != nil {
			return res, fmt.Errorf("pet %q: owner %s: %w", ps.Name, creator, err)
		}
		res.Members++

		for _, u := range owners[1:] {
			if _, err := svc.Members.SetRole(ctx, p.ID, u, members.RoleOwner); err != nil {
				return res, fmt.Errorf("pet %q: owner %s: %w", ps.Name, u, err)
			}
			res.Members++
		}
		for _, u := range ps.Viewers {
			if _, err := svc.Members.SetRole(ctx, p.ID, strings.TrimSpace(u), members.RoleViewer); err != nil {
				return res, fmt.Errorf("pet %q: viewer %s: %w", ps.Name, u, err)
			}
			res.Members++
		}

		for _, ts := range ps.Treatments {
			t, err := svc.Treatments.Create(ctx, p.ID, treatments.CreateInput{
				Category:      treatments.Category(strings.TrimSpace(ts.Category)),
				Name:          ts.Name,
				IntervalValue: ts.Every.Value,
				IntervalUnit:  schedule.Unit(strings.TrimSpace(ts.Every.Unit)),
				AlertDays:     ts.AlertsDays,
				Notes:         ts.Notes,
			})
			if err != nil {
				return res, fmt.Errorf("pet %q: treatment %q: %w", ps.Name, ts.Name, err)
			}
			res.Treatments++

			for _, raw := range ts.Applied {
				d, _ := time.Parse(schedule.DateLayout, strings.TrimSpace(raw))
				if _, err := svc.Applications.Record(ctx, t.ID, creator, applications.RecordInput{AppliedOn: &d}); err != nil {
					return res, fmt.Errorf("pet %q: treatment %q: applied %s: %w", ps.Name, ts.Name, raw, err)
				}
				res.Applications++
			}
		}
	}

	return res, nil
}
