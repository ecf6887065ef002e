package capabilities

import (
	"context"
	"errors"
)

// ErrNotMember: el usuario no tiene ninguna membresía sobre la mascota.
var ErrNotMember = errors.New("not a member")

// Capability es una acción sobre una mascota (ver members.Capability*).
type Capability string

// CapabilityCheck: ¿UserID puede ejecutar Capability sobre PetID?
type CapabilityCheck struct {
	UserID     string
	PetID      string
	Capability Capability
}

// Resolver es el único chequeo de autorización que hacen los handlers.
// Devuelve (false, nil) si el usuario es miembro pero no tiene la capability
// y ErrNotMember si no es miembro de la mascota.
type Resolver interface {
	Allowed(ctx context.Context, in CapabilityCheck) (bool, error)
}
