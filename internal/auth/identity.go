// Package auth describes who is calling the API and what they are allowed to do.
package auth

import (
	"errors"

	"katalog/internal/models"
)

var (
	// ErrUnauthenticated means the request carries no valid identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the identity lacks the required capability.
	ErrForbidden = errors.New("forbidden")
)

// Capability is a level of access an operation can demand.
type Capability string

const (
	// CapabilityAuthenticated is held by every valid identity.
	CapabilityAuthenticated Capability = "authenticated"
	// CapabilityAdmin is held by identities with the admin role.
	CapabilityAdmin Capability = "admin"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID   uint
	Username string
	Role     string
}

// Can reports whether the identity holds capability c. A nil identity holds nothing.
func (i *Identity) Can(c Capability) bool {
	if i == nil {
		return false
	}
	switch c {
	case CapabilityAuthenticated:
		return true
	case CapabilityAdmin:
		return i.Role == models.RoleAdmin
	}
	return false
}

// Authorize returns ErrUnauthenticated for a missing identity and ErrForbidden when
// the identity lacks capability c.
func Authorize(i *Identity, c Capability) error {
	if i == nil {
		return ErrUnauthenticated
	}
	if !i.Can(c) {
		return ErrForbidden
	}
	return nil
}
