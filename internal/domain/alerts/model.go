package alerts

import (
	"fmt"
	"strings"
	"time"
)

// Type identifica el tipo de alerta: upcoming_<N> u overdue_daily.
type Type string

const TypeOverdueDaily Type = "overdue_daily"

const upcomingPrefix = "upcoming_"

// UpcomingType arma el tipo para el umbral de N días.
func UpcomingType(days int) Type {
	return Type(fmt.Sprintf("%s%d", upcomingPrefix, days))
}

// Kind agrupa los tipos para métricas y mensajes: "upcoming" u "overdue".
func (t Type) Kind() string {
	switch {
	case t == TypeOverdueDaily:
		return "overdue"
	case strings.HasPrefix(string(t), upcomingPrefix):
		return "upcoming"
	default:
		return "unknown"
	}
}

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
)

// Key es la tripla única del alert log.
// Date es una fecha de calendario; solo cuenta año/mes/día.
type Key struct {
	TreatmentID string
	Type        Type
	Date        time.Time
}

// DateString devuelve la fecha de la clave en formato YYYY-MM-DD.
func (k Key) DateString() string {
	return k.Date.Format("2006-01-02")
}

// String se usa como clave en stores y logs.
func (k Key) String() string {
	return k.TreatmentID + "|" + string(k.Type) + "|" + k.DateString()
}

// Entry es una fila del alert log.
type Entry struct {
	ID        string
	Key       Key
	Status    Status
	ClaimedAt time.Time
	SentAt    *time.Time
}
