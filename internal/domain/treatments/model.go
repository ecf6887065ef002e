package treatments

import (
	"time"

	"pet-care-reminders/internal/domain/schedule"
)

type Category string

const (
	CategoryVaccine  Category = "vaccine"
	CategoryDewormer Category = "dewormer"
	CategoryFleaTick Category = "flea_tick"
	CategoryMedicine Category = "medicine"
	CategoryOther    Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryVaccine, CategoryDewormer, CategoryFleaTick, CategoryMedicine, CategoryOther:
		return true
	default:
		return false
	}
}

// Interval es la recurrencia: Value > 0 en días o meses.
type Interval struct {
	Value int
	Unit  schedule.Unit
}

// DefaultAlertDays se usa cuando el tratamiento no tiene umbrales propios.
var DefaultAlertDays = []int{30, 15, 5}

// Treatment es un cuidado recurrente (vacuna, desparasitario, etc.) de una mascota.
type Treatment struct {
	ID    string
	PetID string

	Category Category
	Name     string
	Interval Interval

	// AlertDays: días antes del vencimiento en que se avisa.
	// Normalizado: sin duplicados, no negativos, orden descendente. Vacío => DefaultAlertDays.
	AlertDays []int

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveAlertDays devuelve los umbrales configurados o el default.
func (t Treatment) EffectiveAlertDays() []int {
	if len(t.AlertDays) == 0 {
		out := make([]int, len(DefaultAlertDays))
		copy(out, DefaultAlertDays)
		return out
	}
	return t.AlertDays
}

// AlertsOn indica si days es uno de los umbrales efectivos.
func (t Treatment) AlertsOn(days int) bool {
	for _, d := range t.EffectiveAlertDays() {
		if d == days {
			return true
		}
	}
	return false
}

// NextDate calcula la próxima fecha a partir de la última aplicación.
func (t Treatment) NextDate(lastApplied time.Time) time.Time {
	return schedule.CalcNextDate(lastApplied, t.Interval.Value, t.Interval.Unit)
}
