package applications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care-reminders/internal/domain/members"
	"pet-care-reminders/internal/domain/schedule"
	"pet-care-reminders/internal/domain/treatments"
	"pet-care-reminders/internal/middleware"
	"pet-care-reminders/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, treatmentsSvc *treatments.Service, authz capabilities.Resolver) {
	r.Route("/pets/{petID}/treatments/{treatmentID}/applications", func(ar chi.Router) {
		ar.Get("/", listApplicationsHandler(svc, treatmentsSvc, authz))
		ar.Post("/", recordApplicationHandler(svc, treatmentsSvc, authz))
	})
}

type recordApplicationRequest struct {
	AppliedOn string `json:"applied_on"` // YYYY-MM-DD; vacío = hoy
	Notes     string `json:"notes"`
}

type applicationResponse struct {
	ID          string    `json:"id"`
	TreatmentID string    `json:"treatment_id"`
	AppliedOn   string    `json:"applied_on"`
	RecordedBy  string    `json:"recorded_by"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// recordApplicationHandler godoc
// @Summary Registrar aplicación
// @Description Registra que el tratamiento se aplicó (acción "lo hice hoy"). Requiere rol owner. `applied_on` no puede ser futuro.
// @Tags applications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param treatmentID path string true "ID del tratamiento"
// @Param payload body recordApplicationRequest false "Fecha (YYYY-MM-DD) y notas"
// @Success 201 {object} applicationResponse
// @Failure 400 {string} string "invalid json / applied_on inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found / treatment not found"
// @Router /pets/{petID}/treatments/{treatmentID}/applications [post]
func recordApplicationHandler(svc *Service, treatmentsSvc *treatments.Service, authz capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		claims, ok := middleware.Authorize(w, r, authz, petID, members.CapabilityApplicationsRecord)
		if !ok {
			return
		}

		t, err := treatmentsSvc.GetForPet(r.Context(), petID, chi.URLParam(r, "treatmentID"))
		if err != nil {
			writeTreatmentError(w, err)
			return
		}

		var req recordApplicationRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := RecordInput{Notes: req.Notes}
		if v := strings.TrimSpace(req.AppliedOn); v != "" {
			d, err := time.Parse(schedule.DateLayout, v)
			if err != nil {
				http.Error(w, "applied_on must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.AppliedOn = &d
		}

		a, err := svc.Record(r.Context(), t.ID, claims.UserID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrFutureDate):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toApplicationResponse(a))
	}
}

func listApplicationsHandler(svc *Service, treatmentsSvc *treatments.Service, authz capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.Authorize(w, r, authz, petID, members.CapabilityPetRead); !ok {
			return
		}

		t, err := treatmentsSvc.GetForPet(r.Context(), petID, chi.URLParam(r, "treatmentID"))
		if err != nil {
			writeTreatmentError(w, err)
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		items, err := svc.ListByTreatment(r.Context(), t.ID, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]applicationResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toApplicationResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeTreatmentError(w http.ResponseWriter, err error) {
	if errors.Is(err, treatments.ErrNotFound) {
		http.Error(w, "treatment not found", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toApplicationResponse(a Application) applicationResponse {
	return applicationResponse{
		ID:          a.ID,
		TreatmentID: a.TreatmentID,
		AppliedOn:   a.AppliedOn.Format(schedule.DateLayout),
		RecordedBy:  a.RecordedBy,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
