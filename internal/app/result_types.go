package app

import "sobracorte/internal/core"

// UserSession is returned by AuthenticateUser.
type UserSession struct {
	UserID string `json:"id"`
	Name   string `json:"nome"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// UserResult is returned by user lookup and mutation operations.
type UserResult struct {
	User *core.User
}

// UserListResult is returned by ListUsers.
type UserListResult struct {
	Users []core.User
}

// MaterialResult is returned by material operations.
type MaterialResult struct {
	Material *core.Material
}

// MaterialListResult is returned by ListMaterials.
type MaterialListResult struct {
	Materials []core.Material
}

// MovementListResult is returned by ListMovements.
type MovementListResult struct {
	Movements []core.Movement
}
