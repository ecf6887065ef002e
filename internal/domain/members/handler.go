package members

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-care-reminders/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets/{petID}/members", func(mr chi.Router) {
		mr.Get("/", listMembersHandler(svc))
		mr.Put("/{userID}", setRoleHandler(svc))
		mr.Delete("/{userID}", removeMemberHandler(svc))
	})
}

type setRoleRequest struct {
	Role Role `json:"role" enums:"owner,viewer"`
}

type membershipResponse struct {
	PetID     string    `json:"pet_id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func listMembersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.Authorize(w, r, svc, petID, CapabilityPetRead); !ok {
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]membershipResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMembershipResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// setRoleHandler godoc
// @Summary Agregar o cambiar el rol de un miembro
// @Description Solo un owner puede gestionar miembros. Una mascota nunca queda sin owner.
// @Tags members
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param userID path string true "ID del usuario"
// @Param payload body setRoleRequest true "Rol: owner | viewer"
// @Success 200 {object} membershipResponse
// @Failure 400 {string} string "invalid input"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 409 {string} string "pet must keep at least one owner"
// @Router /pets/{petID}/members/{userID} [put]
func setRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.Authorize(w, r, svc, petID, CapabilityMembersManage); !ok {
			return
		}

		var req setRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.SetRole(r.Context(), petID, chi.URLParam(r, "userID"), req.Role)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMembershipResponse(m))
	}
}

func removeMemberHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, ok := middleware.Authorize(w, r, svc, petID, CapabilityMembersManage); !ok {
			return
		}

		if err := svc.Remove(r.Context(), petID, chi.URLParam(r, "userID")); err != nil {
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
		http.Error(w, "member not found", http.StatusNotFound)
	case errors.Is(err, ErrLastOwner), errors.Is(err, ErrAlreadyMember):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toMembershipResponse(m Membership) membershipResponse {
	return membershipResponse{
		PetID:     m.PetID,
		UserID:    m.UserID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
