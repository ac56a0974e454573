package auth

import (
	"food-ordering-api/models"
)

// Principal is the authenticated identity attached to an in-flight request.
type Principal struct {
	UserID uint
	Name   string
	Email  string
	Role   models.Role
}

// NewPrincipal builds a principal from a resolved user row.
func NewPrincipal(user *models.User) *Principal {
	return &Principal{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}
}

// Authorize gates an operation on an exact role match. A nil principal
// fails with ErrNotAuthenticated; a role mismatch with ErrForbidden. Roles
// are not hierarchical.
func Authorize(p *Principal, required models.Role) error {
	if p == nil {
		return models.ErrNotAuthenticated
	}
	if p.Role != required {
		return models.ErrForbidden
	}
	return nil
}
