package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-care-reminders/internal/domain/members"
	"pet-care-reminders/internal/middleware"
	"pet-care-reminders/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, membersSvc *members.Service, authz capabilities.Resolver) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, membersSvc))
		pr.Get("/", listMyPetsHandler(svc, membersSvc))

		pr.Get("/{petID}", getPetHandler(svc, authz))
		pr.Patch("/{petID}", renamePetHandler(svc, authz))
		pr.Post("/{petID}/archive", archivePetHandler(svc, authz))
	})
}

type createPetRequest struct {
	Name string `json:"name"`
}

type renamePetRequest struct {
	Name string `json:"name"`
}

type petResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	CreatedBy  string     `json:"created_by"`
	Active     bool       `json:"active"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type myPetResponse struct {
	Pet  petResponse  `json:"pet"`
	Role members.Role `json:"role"`
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea una mascota. Quien la crea queda como owner.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service, membersSvc *members.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireUser(w, r)
		if !ok {
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{Name: req.Name})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if _, err := membersSvc.AddOwner(r.Context(), p.ID, claims.UserID); err != nil {
			// La mascota quedó sin owner: la archivamos para que no quede huérfana en el runner.
			_, _ = svc.Archive(r.Context(), p.ID)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listMyPetsHandler godoc
// @Summary Listar mis mascotas
// @Description Devuelve las mascotas donde el usuario es miembro, con su rol.
// @Tags pets
// @Produce json
// @Success 200 {array} myPetResponse
// @Failure 401 {string} string "unauthorized"
// @Router /pets [get]
func listMyPetsHandler(svc *Service, membersSvc *members.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireUser(w, r)
		if !ok {
			return
		}

		ms, err := membersSvc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]myPetResponse, 0, len(ms))
		for _, m := range ms {
			p, err := svc.GetByID(r.Context(), m.PetID)
			if errors.Is(err, ErrNotFound) {
				// membresía huérfana: se ignora
				continue
			}
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			out = append(out, myPetResponse{Pet: toPetResponse(p), Role: m.Role})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service, authz capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.Authorize(w, r, authz, petID, members.CapabilityPetRead); !ok {
			return
		}

		p, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func renamePetHandler(svc *Service, authz capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.Authorize(w, r, authz, petID, members.CapabilityPetManage); !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req renamePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Rename(r.Context(), petID, req.Name)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// archivePetHandler godoc
// @Summary Archivar mascota
// @Description Una mascota archivada deja de recibir alertas. Requiere rol owner.
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/archive [post]
func archivePetHandler(svc *Service, authz capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.Authorize(w, r, authz, petID, members.CapabilityPetManage); !ok {
			return
		}

		p, err := svc.Archive(r.Context(), petID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:         p.ID,
		Name:       p.Name,
		CreatedBy:  p.CreatedBy,
		Active:     p.Active(),
		ArchivedAt: p.ArchivedAt,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
