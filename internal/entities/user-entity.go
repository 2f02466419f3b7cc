// Файл: internal/entities/user-entity.go
package entities

import "time"

type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleStandard      Role = "Standard"
)

func (r Role) Valid() bool {
	return r == RoleAdministrator || r == RoleStandard
}

// DashboardPath - куда направить пользователя после входа.
func (r Role) DashboardPath() string {
	if r == RoleAdministrator {
		return "/admin"
	}
	return "/usuario"
}

type User struct {
	ID       uint64 `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Username string `json:"username" db:"username"`

	Password string `json:"-" db:"password"`

	Role      Role       `json:"role" db:"role"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}
