package domain

import "time"

const (
	RoleDiner      = "diner"
	RoleAdmin      = "admin"
	RoleFranchisee = "franchisee"
)

// RoleRef is a single role assignment on a user. Franchisee assignments carry
// the id of the franchise they administer.
type RoleRef struct {
	Role     string `json:"role" bson:"role"`
	ObjectID string `json:"objectId,omitempty" bson:"object_id,omitempty"`
}

// User models an account in the credential store. The password hash never
// leaves the service.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []RoleRef `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user currently holds the given role.
// Membership is exact-match, there is no role hierarchy.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// FranchiseIDs returns the ids of the franchises this user administers.
func (u *User) FranchiseIDs() []string {
	var ids []string
	for _, r := range u.Roles {
		if r.Role == RoleFranchisee && r.ObjectID != "" {
			ids = append(ids, r.ObjectID)
		}
	}
	return ids
}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleDiner, RoleAdmin, RoleFranchisee:
		return true
	}
	return false
}
