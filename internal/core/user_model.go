package core

import "time"

// Roles, from narrowest to widest. Role strings match what the existing
// frontends store and display.
const (
	RoleReader = "leitor"       // read-only access
	RoleMover  = "movimentador" // may record stock movements
	RoleLeader = "lider"        // may also manage materials
	RoleAdmin  = "admin"        // everything, including user administration
)

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	switch r {
	case RoleReader, RoleMover, RoleLeader, RoleAdmin:
		return true
	}
	return false
}

// CanMoveStock reports whether the role may record movements.
func CanMoveStock(role string) bool {
	return role == RoleAdmin || role == RoleLeader || role == RoleMover
}

// CanManageMaterials reports whether the role may create or edit materials.
func CanManageMaterials(role string) bool {
	return role == RoleAdmin || role == RoleLeader
}

// CanManageUsers reports whether the role may administer accounts and delete
// materials. Admin only.
func CanManageUsers(role string) bool {
	return role == RoleAdmin
}

// User is an account with a role. PasswordHash is a bcrypt hash; the
// plaintext password is never stored or logged anywhere.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"nome"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
