package authz

import (
	"school-inventory/internal/dto"
	"school-inventory/internal/entities"
	apperrors "school-inventory/pkg/errors"
)

type Gatekeeper struct{}

func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{}
}

func (g *Gatekeeper) Can(actor dto.AuthContext, permission string) bool {
	if actor.UserID == 0 {
		return false
	}
	return rolePermissions[entities.Role(actor.Role)][permission]
}

// Authorize: без сессии ErrUnauthorized, с чужой ролью ErrForbidden.
func (g *Gatekeeper) Authorize(actor dto.AuthContext, permission string) error {
	if actor.UserID == 0 || !entities.Role(actor.Role).Valid() {
		return apperrors.ErrUnauthorized
	}
	if !g.Can(actor, permission) {
		return apperrors.ErrForbidden
	}
	return nil
}

// HasRole - точное совпадение роли, как требует проверка маршрутов.
func HasRole(actor dto.AuthContext, role entities.Role) bool {
	return actor.UserID != 0 && entities.Role(actor.Role) == role
}
