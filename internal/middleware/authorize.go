package middleware

import (
	"errors"
	"net/http"

	"pet-care-reminders/internal/ports/auth"
	"pet-care-reminders/internal/ports/capabilities"
)

// Authorize es el chequeo único de permisos en el borde HTTP:
//   - sin claims => 401
//   - no miembro => 404 (no revelamos que la mascota existe)
//   - miembro sin la capability => 403
//
// Si devuelve ok=false ya escribió la respuesta.
func Authorize(w http.ResponseWriter, r *http.Request, resolver capabilities.Resolver, petID string, c capabilities.Capability) (auth.Claims, bool) {
	claims, ok := GetClaims(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Claims{}, false
	}

	allowed, err := resolver.Allowed(r.Context(), capabilities.CapabilityCheck{
		UserID:     claims.UserID,
		PetID:      petID,
		Capability: c,
	})
	switch {
	case errors.Is(err, capabilities.ErrNotMember):
		http.Error(w, "pet not found", http.StatusNotFound)
		return auth.Claims{}, false
	case err != nil:
		http.Error(w, "internal error", http.StatusInternalServerError)
		return auth.Claims{}, false
	case !allowed:
		http.Error(w, "forbidden", http.StatusForbidden)
		return auth.Claims{}, false
	}

	return claims, true
}

// RequireUser responde 401 si el request no trae usuario.
func RequireUser(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, ok := GetClaims(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}
	return claims, ok
}
