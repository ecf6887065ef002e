// Package schedule contiene la aritmética de calendario para tratamientos:
// próxima fecha, corrimiento de fin de semana y clasificación por días.
// Todo es puro: "hoy" siempre llega como parámetro.
package schedule

import "time"

// Unit es la unidad del intervalo de recurrencia.
type Unit string

const (
	UnitDays   Unit = "days"
	UnitMonths Unit = "months"
)

// Status clasifica cuántos días faltan para la próxima fecha.
type Status string

const (
	StatusOverdue  Status = "overdue"
	StatusUpcoming Status = "upcoming"
	StatusLater    Status = "later"
)

// UpcomingWindowDays es el límite superior (inclusive) de StatusUpcoming.
const UpcomingWindowDays = 60

// AddInterval avanza date en value meses (con clamp a fin de mes) o días.
// Cualquier unidad distinta de "months" se interpreta como días.
func AddInterval(date time.Time, value int, unit Unit) time.Time {
	if unit != UnitMonths {
		return date.AddDate(0, 0, value)
	}

	y, m, d := date.Date()
	hh, mm, ss := date.Clock()

	// Primer día del mes destino; time.Date normaliza meses > 12.
	first := time.Date(y, m+time.Month(value), 1, 0, 0, 0, 0, date.Location())
	if last := daysIn(first.Year(), first.Month(), date.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, date.Nanosecond(), date.Location())
}

// AdjustWeekend corre sábado y domingo al lunes siguiente.
func AdjustWeekend(date time.Time) time.Time {
	switch date.Weekday() {
	case time.Saturday:
		return date.AddDate(0, 0, 2)
	case time.Sunday:
		return date.AddDate(0, 0, 1)
	default:
		return date
	}
}

// CalcNextDate = AdjustWeekend(AddInterval(lastApplied, value, unit)).
func CalcNextDate(lastApplied time.Time, value int, unit Unit) time.Time {
	return AdjustWeekend(AddInterval(lastApplied, value, unit))
}

// DaysToNext devuelve la diferencia en días de calendario entre today y next
// (positivo = futuro). Solo usa año/mes/día de cada fecha, nunca la hora.
func DaysToNext(next, today time.Time) int {
	a := civilUTC(next)
	b := civilUTC(today)
	return int(a.Sub(b) / (24 * time.Hour))
}

// StatusFromDays: <0 overdue, 0..60 upcoming, >60 later.
func StatusFromDays(days int) Status {
	switch {
	case days < 0:
		return StatusOverdue
	case days <= UpcomingWindowDays:
		return StatusUpcoming
	default:
		return StatusLater
	}
}

// Today devuelve la fecha de calendario de now en loc, a medianoche.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateIn(now.In(loc), loc)
}

// DateIn toma año/mes/día de t tal como están (sin convertir zona) y arma la
// medianoche de ese día en loc. Sirve para columnas DATE que pgx devuelve en UTC.
func DateIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ParseDate parsea YYYY-MM-DD como medianoche en loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

// DateLayout es el formato de fecha usado en API, logs y mensajes.
const DateLayout = "2006-01-02"

func civilUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(y int, m time.Month, loc *time.Location) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
}
