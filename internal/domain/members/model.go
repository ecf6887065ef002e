package members

import (
	"time"

	"pet-care-reminders/internal/ports/capabilities"
)

type Role string

const (
	RoleOwner  Role = "owner"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleViewer
}

const (
	CapabilityPetRead            capabilities.Capability = "pet:read"
	CapabilityPetManage          capabilities.Capability = "pet:manage"
	CapabilityMembersManage      capabilities.Capability = "members:manage"
	CapabilityTreatmentsManage   capabilities.Capability = "treatments:manage"
	CapabilityApplicationsRecord capabilities.Capability = "applications:record"
)

// roleCapabilities: owner puede todo; viewer solo leer.
var roleCapabilities = map[Role][]capabilities.Capability{
	RoleOwner: {
		CapabilityPetRead,
		CapabilityPetManage,
		CapabilityMembersManage,
		CapabilityTreatmentsManage,
		CapabilityApplicationsRecord,
	},
	RoleViewer: {
		CapabilityPetRead,
	},
}

// Membership asocia una persona con una mascota bajo un rol.
// (PetID, UserID) es único.
type Membership struct {
	PetID  string
	UserID string
	Role   Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCapability valida si el rol incluye la capability.
func HasCapability(role Role, c capabilities.Capability) bool {
	for _, rc := range roleCapabilities[role] {
		if rc == c {
			return true
		}
	}
	return false
}
