package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the closed set of back-office roles stored on a profile.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Capability names a single back-office permission.
type Capability string

const (
	CapViewLeads        Capability = "leads:view"
	CapViewBookings     Capability = "bookings:view"
	CapManagePromoCodes Capability = "promo_codes:manage"
	CapManageAdmins     Capability = "admins:manage"
)

var roleCapabilities = map[Role][]Capability{
	RoleUser:       nil,
	RoleAdmin:      {CapViewLeads, CapViewBookings, CapManagePromoCodes},
	RoleSuperAdmin: {CapViewLeads, CapViewBookings, CapManagePromoCodes, CapManageAdmins},
}

// ParseRole converts a stored role string. Unknown values are rejected.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleCapabilities[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == c {
			return true
		}
	}
	return false
}

// Profile is the identity provider user mirrored into the profiles table.
type Profile struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     Role      `json:"role"`
}
