package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"school-inventory/internal/authz"
	"school-inventory/internal/dto"
	"school-inventory/internal/repositories"
	apperrors "school-inventory/pkg/errors"
)

type DeviceTypeServiceInterface interface {
	GetDeviceTypes(ctx context.Context, actor dto.AuthContext) ([]dto.DeviceTypeDTO, error)
	CreateDeviceType(ctx context.Context, actor dto.AuthContext, payload dto.CreateDeviceTypeDTO) (*dto.DeviceTypeDTO, error)
	DeleteDeviceType(ctx context.Context, actor dto.AuthContext, id uint64) error
}

type DeviceTypeService struct {
	*BaseService
	repo   repositories.DeviceTypeRepositoryInterface
	logger *zap.Logger
}

func NewDeviceTypeService(base *BaseService, repo repositories.DeviceTypeRepositoryInterface, logger *zap.Logger) DeviceTypeServiceInterface {
	return &DeviceTypeService{BaseService: base, repo: repo, logger: logger}
}

func (s *DeviceTypeService) GetDeviceTypes(ctx context.Context, actor dto.AuthContext) ([]dto.DeviceTypeDTO, error) {
	if err := s.CheckPermission(actor, authz.CatalogsView); err != nil {
		return nil, err
	}
	types, err := s.repo.GetDeviceTypes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeviceTypeDTO, 0, len(types))
	for _, t := range types {
		out = append(out, toDeviceTypeDTO(t))
	}
	return out, nil
}

func (s *DeviceTypeService) CreateDeviceType(ctx context.Context, actor dto.AuthContext, payload dto.CreateDeviceTypeDTO) (*dto.DeviceTypeDTO, error) {
	if err := s.CheckPermission(actor, authz.CatalogsManage); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("название типа устройства обязательно")
	}

	deviceType, err := s.repo.CreateDeviceType(ctx, name)
	if err != nil {
		s.logger.Warn("Не удалось создать тип устройства", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Тип устройства создан", zap.Uint64("typeID", deviceType.ID), zap.String("name", name))
	res := toDeviceTypeDTO(*deviceType)
	return &res, nil
}

func (s *DeviceTypeService) DeleteDeviceType(ctx context.Context, actor dto.AuthContext, id uint64) error {
	if err := s.CheckPermission(actor, authz.CatalogsManage); err != nil {
		return err
	}
	if err := s.repo.DeleteDeviceType(ctx, id); err != nil {
		s.logger.Warn("Не удалось удалить тип устройства", zap.Uint64("typeID", id), zap.Error(err))
		return err
	}
	s.logger.Info("Тип устройства удалён", zap.Uint64("typeID", id))
	return nil
}
