package schedule

import (
	"testing"
	"time"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s, time.UTC)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestAddInterval(t *testing.T) {
	cases := []struct {
		name  string
		from  string
		value int
		unit  Unit
		want  string
	}{
		{"days", "2024-01-01", 10, UnitDays, "2024-01-11"},
		{"days cruza año", "2023-12-25", 10, UnitDays, "2024-01-04"},
		{"unidad desconocida = días", "2024-01-01", 3, Unit("weeks"), "2024-01-04"},
		{"zero", "2024-05-05", 0, UnitMonths, "2024-05-05"},
		{"months simple", "2024-01-01", 6, UnitMonths, "2024-07-01"},
		{"clamp bisiesto", "2024-01-31", 1, UnitMonths, "2024-02-29"},
		{"clamp no bisiesto", "2023-01-31", 1, UnitMonths, "2023-02-28"},
		{"clamp 30 días", "2024-03-31", 1, UnitMonths, "2024-04-30"},
		{"cruza año", "2024-11-15", 3, UnitMonths, "2025-02-15"},
		{"doce meses", "2024-02-29", 12, UnitMonths, "2025-02-28"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AddInterval(date(t, tc.from), tc.value, tc.unit)
			if got.Format(DateLayout) != tc.want {
				t.Fatalf("AddInterval(%s, %d, %s) = %s, want %s", tc.from, tc.value, tc.unit, got.Format(DateLayout), tc.want)
			}
		})
	}
}

func TestAdjustWeekend(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-01-06", "2024-01-08"}, // sábado
		{"2024-01-07", "2024-01-08"}, // domingo
		{"2024-01-08", "2024-01-08"}, // lunes
		{"2024-01-12", "2024-01-12"}, // viernes
	}
	for _, tc := range cases {
		got := AdjustWeekend(date(t, tc.in))
		if got.Format(DateLayout) != tc.want {
			t.Fatalf("AdjustWeekend(%s) = %s, want %s", tc.in, got.Format(DateLayout), tc.want)
		}
	}
}

func TestAdjustWeekend_NeverWeekend_WithinTwoDays(t *testing.T) {
	start := date(t, "2024-01-01")
	for i := 0; i < 800; i++ {
		d := start.AddDate(0, 0, i)
		got := AdjustWeekend(d)

		if wd := got.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("AdjustWeekend(%s) fell on %s", d.Format(DateLayout), wd)
		}
		diff := DaysToNext(got, d)
		if diff < 0 || diff > 2 {
			t.Fatalf("AdjustWeekend(%s) moved %d days", d.Format(DateLayout), diff)
		}
	}
}

func TestCalcNextDate(t *testing.T) {
	// 2024-07-01 es lunes: sin ajuste.
	got := CalcNextDate(date(t, "2024-01-01"), 6, UnitMonths)
	if got.Format(DateLayout) != "2024-07-01" {
		t.Fatalf("expected 2024-07-01, got %s", got.Format(DateLayout))
	}

	// 2023-12-30 + 7 días = sábado 2024-01-06 => lunes 2024-01-08.
	got = CalcNextDate(date(t, "2023-12-30"), 7, UnitDays)
	if got.Format(DateLayout) != "2024-01-08" {
		t.Fatalf("expected 2024-01-08, got %s", got.Format(DateLayout))
	}

	// Determinístico.
	a := CalcNextDate(date(t, "2024-03-15"), 45, UnitDays)
	b := CalcNextDate(date(t, "2024-03-15"), 45, UnitDays)
	if !a.Equal(b) {
		t.Fatalf("CalcNextDate not deterministic: %s vs %s", a, b)
	}
}

func TestDaysToNext(t *testing.T) {
	d := date(t, "2024-06-01")
	if got := DaysToNext(d, d); got != 0 {
		t.Fatalf("DaysToNext(d, d) = %d", got)
	}
	if got := DaysToNext(date(t, "2024-07-01"), d); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
	if got := DaysToNext(date(t, "2024-05-27"), d); got != -5 {
		t.Fatalf("expected -5, got %d", got)
	}
}

func TestDaysToNext_IgnoresTimeOfDay(t *testing.T) {
	next := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)
	if got := DaysToNext(next, today); got != 1 {
		t.Fatalf("expected 1 calendar day, got %d", got)
	}
}

func TestDaysToNext_DST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	// 2024-03-10 tiene 23 horas en New York.
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, ny)
	next := time.Date(2024, 3, 11, 0, 0, 0, 0, ny)
	if got := DaysToNext(next, today); got != 1 {
		t.Fatalf("expected 1 across DST, got %d", got)
	}
	// 2024-11-03 tiene 25 horas.
	today = time.Date(2024, 11, 3, 0, 0, 0, 0, ny)
	next = time.Date(2024, 11, 5, 0, 0, 0, 0, ny)
	if got := DaysToNext(next, today); got != 2 {
		t.Fatalf("expected 2 across DST end, got %d", got)
	}
}

func TestStatusFromDays_Boundaries(t *testing.T) {
	cases := map[int]Status{
		-30: StatusOverdue,
		-1:  StatusOverdue,
		0:   StatusUpcoming,
		1:   StatusUpcoming,
		60:  StatusUpcoming,
		61:  StatusLater,
		365: StatusLater,
	}
	for days, want := range cases {
		if got := StatusFromDays(days); got != want {
			t.Fatalf("StatusFromDays(%d) = %s, want %s", days, got, want)
		}
	}
}

func TestToday_UsesAnchorZone(t *testing.T) {
	ba, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	// 02:00 UTC del 2 de junio = 23:00 del 1 de junio en Buenos Aires.
	now := time.Date(2024, 6, 2, 2, 0, 0, 0, time.UTC)
	got := Today(now, ba)
	if got.Format(DateLayout) != "2024-06-01" {
		t.Fatalf("expected 2024-06-01, got %s", got.Format(DateLayout))
	}
	if got.Hour() != 0 || got.Location() != ba {
		t.Fatalf("expected midnight in anchor zone, got %s", got)
	}
}

func TestDateIn_KeepsCalendarFields(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	got := DateIn(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), loc)
	if got.Format(DateLayout) != "2024-01-05" || got.Location() != loc {
		t.Fatalf("unexpected %s", got)
	}
}
