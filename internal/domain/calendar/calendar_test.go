package calendar

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pet-care-reminders/internal/domain/applications"
	"pet-care-reminders/internal/domain/schedule"
	"pet-care-reminders/internal/domain/treatments"

	"github.com/emersion/go-ical"
)

// -------------------------
// Fakes
// -------------------------

type fakeTreatments struct{ items []treatments.Treatment }

func (f *fakeTreatments) ListByPet(ctx context.Context, petID string) ([]treatments.Treatment, error) {
	out := make([]treatments.Treatment, 0)
	for _, t := range f.items {
		if t.PetID == petID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeHistory struct{ apps []applications.Application }

func (f *fakeHistory) LastAppliedOn(ctx context.Context, treatmentID string) (time.Time, bool, error) {
	var last time.Time
	found := false
	for _, a := range f.apps {
		if a.TreatmentID == treatmentID && (!found || a.AppliedOn.After(last)) {
			last, found = a.AppliedOn, true
		}
	}
	return last, found, nil
}

func (f *fakeHistory) ListByTreatment(ctx context.Context, treatmentID string, limit int) ([]applications.Application, error) {
	out := make([]applications.Application, 0)
	for _, a := range f.apps {
		if a.TreatmentID == treatmentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func date(s string) time.Time {
	d, _ := time.Parse(schedule.DateLayout, s)
	return d
}

func newTestService() *Service {
	tr := &fakeTreatments{items: []treatments.Treatment{
		{ID: "t-late", PetID: "p-1", Name: "Pipeta", Category: treatments.CategoryFleaTick, Interval: treatments.Interval{Value: 30, Unit: schedule.UnitDays}},
		{ID: "t-soon", PetID: "p-1", Name: "Rabia", Category: treatments.CategoryVaccine, Interval: treatments.Interval{Value: 6, Unit: schedule.UnitMonths}},
		{ID: "t-far", PetID: "p-1", Name: "Séxtuple", Category: treatments.CategoryVaccine, Interval: treatments.Interval{Value: 12, Unit: schedule.UnitMonths}},
		{ID: "t-none", PetID: "p-1", Name: "Antiparasitario", Category: treatments.CategoryDewormer, Interval: treatments.Interval{Value: 3, Unit: schedule.UnitMonths}},
	}}
	h := &fakeHistory{apps: []applications.Application{
		{ID: "a-1", TreatmentID: "t-late", AppliedOn: date("2024-04-27")},
		{ID: "a-2", TreatmentID: "t-soon", AppliedOn: date("2024-01-01")},
		{ID: "a-3", TreatmentID: "t-far", AppliedOn: date("2024-05-20")},
	}}

	svc := NewService(tr, h, time.UTC)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc
}

// -------------------------
// Tests
// -------------------------

func TestDueBoard_StatusesAndOrder(t *testing.T) {
	items, err := newTestService().DueBoard(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("DueBoard error: %v", err)
	}

	want := []struct {
		id     string
		status string
		days   int
	}{
		{"t-late", "overdue", -5},
		{"t-soon", "upcoming", 30},
		{"t-far", "later", 353},
		{"t-none", StatusNoHistory, 0},
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, w := range want {
		it := items[i]
		if it.Treatment.ID != w.id || it.Status != w.status {
			t.Fatalf("item %d: got %s/%s, want %s/%s", i, it.Treatment.ID, it.Status, w.id, w.status)
		}
		if w.status == StatusNoHistory {
			if it.Days != nil || it.NextDate != nil {
				t.Fatalf("no-history item must not have dates")
			}
			continue
		}
		if it.Days == nil || *it.Days != w.days {
			t.Fatalf("item %s: unexpected days %v", w.id, it.Days)
		}
	}
}

func TestRange_GroupsDueAndApplied(t *testing.T) {
	svc := newTestService()
	days, err := svc.Range(context.Background(), "p-1", date("2024-05-01"), date("2024-07-31"))
	if err != nil {
		t.Fatalf("Range error: %v", err)
	}

	got := map[string]Day{}
	for _, d := range days {
		got[d.Date.Format(schedule.DateLayout)] = d
	}
	if d := got["2024-05-27"]; len(d.Due) != 1 || d.Due[0].Treatment.ID != "t-late" {
		t.Fatalf("expected overdue due date on 2024-05-27, got %#v", d)
	}
	if d := got["2024-07-01"]; len(d.Due) != 1 || d.Due[0].Treatment.ID != "t-soon" {
		t.Fatalf("expected due date on 2024-07-01, got %#v", d)
	}
	if d := got["2024-05-20"]; len(d.Applied) != 1 || d.Applied[0].Application.ID != "a-3" {
		t.Fatalf("expected application on 2024-05-20, got %#v", d)
	}
	for i := 1; i < len(days); i++ {
		if !days[i-1].Date.Before(days[i].Date) {
			t.Fatalf("days must be sorted")
		}
	}
}

func TestRange_RejectsInvalidRanges(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Range(context.Background(), "p-1", date("2024-06-10"), date("2024-06-01")); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for reversed range, got %v", err)
	}
	if _, err := svc.Range(context.Background(), "p-1", date("2024-01-01"), date("2025-06-01")); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for long range, got %v", err)
	}
}

func TestWriteICS_OneEventPerTreatmentWithHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := newTestService().WriteICS(context.Background(), &buf, "p-1", "Luna"); err != nil {
		t.Fatalf("WriteICS error: %v", err)
	}

	cal, err := ical.NewDecoder(&buf).Decode()
	if err != nil {
		t.Fatalf("decode ics: %v", err)
	}
	events := cal.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	starts := map[string]bool{}
	for _, ev := range events {
		starts[ev.Props.Get(ical.PropDateTimeStart).Value] = true
	}
	for _, want := range []string{"20240527", "20240701"} {
		if !starts[want] {
			t.Fatalf("missing event starting %s: %v", want, starts)
		}
	}
}

func TestWriteICS_EmptyCalendar(t *testing.T) {
	var buf bytes.Buffer
	if err := newTestService().WriteICS(context.Background(), &buf, "p-unknown", "Nadie"); err != nil {
		t.Fatalf("WriteICS error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "BEGIN:VCALENDAR") || strings.Contains(out, "BEGIN:VEVENT") {
		t.Fatalf("expected empty calendar, got %q", out)
	}
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(date("2024-02-14"), time.UTC)
	if first.Format(schedule.DateLayout) != "2024-02-01" || last.Format(schedule.DateLayout) != "2024-02-29" {
		t.Fatalf("unexpected bounds %s %s", first, last)
	}
}
