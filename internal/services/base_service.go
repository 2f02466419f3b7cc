package services

import (
	"go.uber.org/zap"

	"school-inventory/internal/authz"
	"school-inventory/internal/dto"
)

// BaseService - общая проверка доступа для сервисов.
type BaseService struct {
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
}

func NewBaseService(gatekeeper *authz.Gatekeeper, logger *zap.Logger) *BaseService {
	return &BaseService{gatekeeper: gatekeeper, logger: logger}
}

// CheckPermission проверяет роль до выполнения операции.
func (s *BaseService) CheckPermission(actor dto.AuthContext, permission string) error {
	if err := s.gatekeeper.Authorize(actor, permission); err != nil {
		s.logger.Warn("Отказано в доступе",
			zap.Uint64("userID", actor.UserID),
			zap.String("role", actor.Role),
			zap.String("permission", permission),
		)
		return err
	}
	return nil
}
