package calendar

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-care-reminders/internal/domain/members"
	"pet-care-reminders/internal/domain/pets"
	"pet-care-reminders/internal/domain/schedule"
	"pet-care-reminders/internal/middleware"
	"pet-care-reminders/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service, authz capabilities.Resolver) {
	r.Get("/pets/{petID}/due", dueBoardHandler(svc, authz))
	r.Get("/pets/{petID}/calendar", calendarHandler(svc, authz))
	r.Get("/pets/{petID}/calendar.ics", icsHandler(svc, petsSvc, authz))
}

type treatmentRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type dueItemResponse struct {
	Treatment   treatmentRef `json:"treatment"`
	LastApplied *string      `json:"last_applied,omitempty"`
	NextDate    *string      `json:"next_date,omitempty"`
	Days        *int         `json:"days,omitempty"`
	Status      string       `json:"status" enums:"overdue,upcoming,later,no_history"`
}

type appliedItemResponse struct {
	Treatment     treatmentRef `json:"treatment"`
	ApplicationID string       `json:"application_id"`
	RecordedBy    string       `json:"recorded_by"`
}

type dayResponse struct {
	Date    string                `json:"date"`
	Due     []dueItemResponse     `json:"due"`
	Applied []appliedItemResponse `json:"applied"`
}

type calendarResponse struct {
	From string        `json:"from"`
	To   string        `json:"to"`
	Days []dayResponse `json:"days"`
}

// dueBoardHandler godoc
// @Summary Tablero de vencimientos
// @Description Estado de cada tratamiento (overdue, upcoming, later, no_history), ordenado por próxima fecha.
// @Tags calendar
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} dueItemResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/due [get]
func dueBoardHandler(svc *Service, authz capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.Authorize(w, r, authz, petID, members.CapabilityPetRead); !ok {
			return
		}

		items, err := svc.DueBoard(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]dueItemResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toDueItemResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// calendarHandler godoc
// @Summary Calendario de la mascota
// @Description Vencimientos y aplicaciones agrupados por día. Por defecto, el mes actual.
// @Tags calendar
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param from query string false "Desde (YYYY-MM-DD)"
// @Param to query string false "Hasta (YYYY-MM-DD), máximo 366 días"
// @Success 200 {object} calendarResponse
// @Failure 400 {string} string "invalid date range"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/calendar [get]
func calendarHandler(svc *Service, authz capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.Authorize(w, r, authz, petID, members.CapabilityPetRead); !ok {
			return
		}

		loc := svc.Location()
		from, to := MonthBounds(svc.Today(), loc)

		q := r.URL.Query()
		if v := strings.TrimSpace(q.Get("from")); v != "" {
			d, err := schedule.ParseDate(v, loc)
			if err != nil {
				http.Error(w, "from must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			from = d
		}
		if v := strings.TrimSpace(q.Get("to")); v != "" {
			d, err := schedule.ParseDate(v, loc)
			if err != nil {
				http.Error(w, "to must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			to = d
		}

		days, err := svc.Range(r.Context(), petID, from, to)
		if err != nil {
			if errors.Is(err, ErrInvalidRange) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := calendarResponse{
			From: from.Format(schedule.DateLayout),
			To:   to.Format(schedule.DateLayout),
			Days: make([]dayResponse, 0, len(days)),
		}
		for _, d := range days {
			dr := dayResponse{
				Date:    d.Date.Format(schedule.DateLayout),
				Due:     make([]dueItemResponse, 0, len(d.Due)),
				Applied: make([]appliedItemResponse, 0, len(d.Applied)),
			}
			for _, it := range d.Due {
				dr.Due = append(dr.Due, toDueItemResponse(it))
			}
			for _, a := range d.Applied {
				dr.Applied = append(dr.Applied, appliedItemResponse{
					Treatment:     treatmentRef{ID: a.Treatment.ID, Name: a.Treatment.Name, Category: string(a.Treatment.Category)},
					ApplicationID: a.Application.ID,
					RecordedBy:    a.Application.RecordedBy,
				})
			}
			resp.Days = append(resp.Days, dr)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// icsHandler godoc
// @Summary Exportar calendario (iCalendar)
// @Description Un evento de día completo por tratamiento con historial, en su próximo vencimiento.
// @Tags calendar
// @Produce text/calendar
// @Param petID path string true "ID de la mascota"
// @Success 200 {string} string "text/calendar"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/calendar.ics [get]
func icsHandler(svc *Service, petsSvc *pets.Service, authz capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.Authorize(w, r, authz, petID, members.CapabilityPetRead); !ok {
			return
		}

		p, err := petsSvc.GetByID(r.Context(), petID)
		if err != nil {
			if errors.Is(err, pets.ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Se arma en memoria para poder responder 500 si falla el encoder.
		var buf bytes.Buffer
		if err := svc.WriteICS(r.Context(), &buf, p.ID, p.Name); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="pet-`+p.ID+`.ics"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

func toDueItemResponse(it DueItem) dueItemResponse {
	out := dueItemResponse{
		Treatment: treatmentRef{
			ID:       it.Treatment.ID,
			Name:     it.Treatment.Name,
			Category: string(it.Treatment.Category),
		},
		Days:   it.Days,
		Status: it.Status,
	}
	if it.LastApplied != nil {
		s := it.LastApplied.Format(schedule.DateLayout)
		out.LastApplied = &s
	}
	if it.NextDate != nil {
		s := it.NextDate.Format(schedule.DateLayout)
		out.NextDate = &s
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
