package calendar

import (
	"context"
	"fmt"
	"io"
	"strings"

	"pet-care-reminders/internal/domain/schedule"

	"github.com/emersion/go-ical"
)

const productID = "-//pet-care-reminders//calendar//ES"

// WriteICS exporta un VEVENT de día completo por tratamiento con historial,
// fechado en su próximo vencimiento.
func (s *Service) WriteICS(ctx context.Context, w io.Writer, petID, petName string) error {
	items, err := s.DueBoard(ctx, petID)
	if err != nil {
		return err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText("X-WR-CALNAME", "Cuidados de "+petName)

	stamp := s.now().UTC()
	for _, it := range items {
		if it.NextDate == nil {
			continue
		}
		next := *it.NextDate

		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%s@pet-care-reminders", it.Treatment.ID, next.Format("20060102")))
		ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		ev.Props.SetDate(ical.PropDateTimeStart, next)
		ev.Props.SetDate(ical.PropDateTimeEnd, next.AddDate(0, 0, 1))
		ev.Props.SetText(ical.PropSummary, fmt.Sprintf("%s: %s", petName, it.Treatment.Name))
		ev.Props.SetText(ical.PropDescription, description(it))

		cal.Children = append(cal.Children, ev.Component)
	}

	// El encoder rechaza un VCALENDAR sin componentes.
	if len(cal.Children) == 0 {
		_, err := io.WriteString(w, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:"+productID+"\r\nEND:VCALENDAR\r\n")
		return err
	}
	return ical.NewEncoder(w).Encode(cal)
}

func description(it DueItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Categoría: %s", it.Treatment.Category)
	if it.LastApplied != nil {
		fmt.Fprintf(&b, "\nÚltima aplicación: %s", it.LastApplied.Format(schedule.DateLayout))
	}
	if it.Treatment.Notes != "" {
		fmt.Fprintf(&b, "\n%s", it.Treatment.Notes)
	}
	return b.String()
}
