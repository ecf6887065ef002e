package pets

import "time"

// Pet es la mascota a la que se le siguen los tratamientos.
// Los permisos viven en members; acá solo queda quién la creó.
type Pet struct {
	ID   string
	Name string

	CreatedBy string

	// ArchivedAt != nil => la mascota no participa del runner de alertas.
	ArchivedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active indica si la mascota sigue recibiendo alertas.
func (p Pet) Active() bool {
	return p.ArchivedAt == nil
}
