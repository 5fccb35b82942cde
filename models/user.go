package models

import "time"

// Role names an admin permission profile.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleEditor     Role = "editor"
	RoleViewer     Role = "viewer"
)

// Permission guards one class of admin API operation.
type Permission string

const (
	ReadCatalog   Permission = "ReadCatalog"
	CreateCatalog Permission = "CreateCatalog"
	UpdateCatalog Permission = "UpdateCatalog"
	DeleteCatalog Permission = "DeleteCatalog"
)

var rolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {ReadCatalog, CreateCatalog, UpdateCatalog, DeleteCatalog},
	RoleEditor:     {ReadCatalog, CreateCatalog, UpdateCatalog, DeleteCatalog},
	RoleViewer:     {ReadCatalog},
}

// Can reports whether the role grants p. Unknown roles grant nothing.
func (r Role) Can(p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     Role   `json:"role" binding:"omitempty,oneof=superadmin editor viewer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type User struct {
	ID             int       `json:"id"`
	Email          string    `json:"email"`
	HashedPassword []byte    `json:"-"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
