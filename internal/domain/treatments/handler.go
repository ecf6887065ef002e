package treatments

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-care-reminders/internal/domain/members"
	"pet-care-reminders/internal/domain/schedule"
	"pet-care-reminders/internal/middleware"
	"pet-care-reminders/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, authz capabilities.Resolver) {
	r.Route("/pets/{petID}/treatments", func(tr chi.Router) {
		tr.Get("/", listTreatmentsHandler(svc, authz))
		tr.Post("/", createTreatmentHandler(svc, authz))
		tr.Delete("/{treatmentID}", deleteTreatmentHandler(svc, authz))
	})
}

type intervalPayload struct {
	Value int           `json:"value"`
	Unit  schedule.Unit `json:"unit" enums:"days,months"`
}

// createTreatmentRequest es el cuerpo para dar de alta un tratamiento recurrente.
type createTreatmentRequest struct {
	Category  Category        `json:"category" enums:"vaccine,dewormer,flea_tick,medicine,other"`
	Name      string          `json:"name"`
	Interval  intervalPayload `json:"interval"`
	AlertDays []int           `json:"alerts_days"` // opcional; default [30,15,5]
	Notes     string          `json:"notes"`
}

type treatmentResponse struct {
	ID                 string          `json:"id"`
	PetID              string          `json:"pet_id"`
	Category           Category        `json:"category"`
	Name               string          `json:"name"`
	Interval           intervalPayload `json:"interval"`
	AlertDays          []int           `json:"alerts_days"`
	EffectiveAlertDays []int           `json:"effective_alerts_days"`
	Notes              string          `json:"notes"`
	CreatedAt          time.Time       `json:"created_at"`
}

// createTreatmentHandler godoc
// @Summary Crear tratamiento
// @Description Alta de un tratamiento recurrente. Requiere rol owner. `alerts_days` se normaliza (sin duplicados, descendente); vacío usa [30,15,5].
// @Tags treatments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body createTreatmentRequest true "Datos del tratamiento"
// @Success 201 {object} treatmentResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/treatments [post]
func createTreatmentHandler(svc *Service, authz capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.Authorize(w, r, authz, petID, members.CapabilityTreatmentsManage); !ok {
			return
		}

		var req createTreatmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.Create(r.Context(), petID, CreateInput{
			Category:      req.Category,
			Name:          req.Name,
			IntervalValue: req.Interval.Value,
			IntervalUnit:  req.Interval.Unit,
			AlertDays:     req.AlertDays,
			Notes:         req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toTreatmentResponse(t))
	}
}

func listTreatmentsHandler(svc *Service, authz capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.Authorize(w, r, authz, petID, members.CapabilityPetRead); !ok {
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]treatmentResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTreatmentResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func deleteTreatmentHandler(svc *Service, authz capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.Authorize(w, r, authz, petID, members.CapabilityTreatmentsManage); !ok {
			return
		}

		if err := svc.Delete(r.Context(), petID, chi.URLParam(r, "treatmentID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "treatment not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toTreatmentResponse(t Treatment) treatmentResponse {
	alertDays := t.AlertDays
	if alertDays == nil {
		alertDays = []int{}
	}
	return treatmentResponse{
		ID:                 t.ID,
		PetID:              t.PetID,
		Category:           t.Category,
		Name:               t.Name,
		Interval:           intervalPayload{Value: t.Interval.Value, Unit: t.Interval.Unit},
		AlertDays:          alertDays,
		EffectiveAlertDays: t.EffectiveAlertDays(),
		Notes:              t.Notes,
		CreatedAt:          t.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
