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

type BuildingServiceInterface interface {
	GetBuildings(ctx context.Context, actor dto.AuthContext) ([]dto.BuildingDTO, error)
	CreateBuilding(ctx context.Context, actor dto.AuthContext, payload dto.CreateBuildingDTO) (*dto.BuildingDTO, error)
	DeleteBuilding(ctx context.Context, actor dto.AuthContext, id uint64) error
}

type BuildingService struct {
	*BaseService
	repo   repositories.BuildingRepositoryInterface
	logger *zap.Logger
}

func NewBuildingService(base *BaseService, repo repositories.BuildingRepositoryInterface, logger *zap.Logger) BuildingServiceInterface {
	return &BuildingService{BaseService: base, repo: repo, logger: logger}
}

func (s *BuildingService) GetBuildings(ctx context.Context, actor dto.AuthContext) ([]dto.BuildingDTO, error) {
	if err := s.CheckPermission(actor, authz.CatalogsView); err != nil {
		return nil, err
	}
	buildings, err := s.repo.GetBuildings(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BuildingDTO, 0, len(buildings))
	for _, b := range buildings {
		out = append(out, toBuildingDTO(b))
	}
	return out, nil
}

func (s *BuildingService) CreateBuilding(ctx context.Context, actor dto.AuthContext, payload dto.CreateBuildingDTO) (*dto.BuildingDTO, error) {
	if err := s.CheckPermission(actor, authz.CatalogsManage); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("название здания обязательно")
	}

	building, err := s.repo.CreateBuilding(ctx, name)
	if err != nil {
		s.logger.Warn("Не удалось создать здание", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Здание создано", zap.Uint64("buildingID", building.ID), zap.String("name", name))
	res := toBuildingDTO(*building)
	return &res, nil
}

func (s *BuildingService) DeleteBuilding(ctx context.Context, actor dto.AuthContext, id uint64) error {
	if err := s.CheckPermission(actor, authz.CatalogsManage); err != nil {
		return err
	}
	if err := s.repo.DeleteBuilding(ctx, id); err != nil {
		s.logger.Warn("Не удалось удалить здание", zap.Uint64("buildingID", id), zap.Error(err))
		return err
	}
	s.logger.Info("Здание удалено", zap.Uint64("buildingID", id))
	return nil
}
