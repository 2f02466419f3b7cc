package services

import (
	"context"

	"go.uber.org/zap"

	"school-inventory/internal/authz"
	"school-inventory/internal/dto"
	"school-inventory/internal/repositories"
)

var adminQuickActions = []dto.QuickActionDTO{
	{Title: "Оборудование", Path: "/api/equipment"},
	{Title: "Здания", Path: "/api/buildings"},
	{Title: "Типы устройств", Path: "/api/device-types"},
	{Title: "Пользователи", Path: "/api/users"},
	{Title: "История удалений", Path: "/api/history"},
	{Title: "Отчёт по инвентарю", Path: "/api/reports/inventory.xlsx"},
}

type DashboardServiceInterface interface {
	GetAdminDashboard(ctx context.Context, actor dto.AuthContext) (*dto.AdminDashboardDTO, error)
	GetUserDashboard(ctx context.Context, actor dto.AuthContext, filter dto.EquipmentFilter) (*dto.UserDashboardDTO, error)
}

type DashboardService struct {
	*BaseService
	repo              repositories.DashboardRepositoryInterface
	equipmentService  EquipmentServiceInterface
	buildingService   BuildingServiceInterface
	deviceTypeService DeviceTypeServiceInterface
	logger            *zap.Logger
}

func NewDashboardService(
	base *BaseService,
	repo repositories.DashboardRepositoryInterface,
	equipmentService EquipmentServiceInterface,
	buildingService BuildingServiceInterface,
	deviceTypeService DeviceTypeServiceInterface,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		BaseService:       base,
		repo:              repo,
		equipmentService:  equipmentService,
		buildingService:   buildingService,
		deviceTypeService: deviceTypeService,
		logger:            logger,
	}
}

func (s *DashboardService) GetAdminDashboard(ctx context.Context, actor dto.AuthContext) (*dto.AdminDashboardDTO, error) {
	if err := s.CheckPermission(actor, authz.DashboardAdmin); err != nil {
		return nil, err
	}

	stats, err := s.repo.GetInventoryStats(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminDashboardDTO{
		Stats: dto.AdminStatsDTO{
			Users:           stats.Users,
			Buildings:       stats.Buildings,
			Equipment:       stats.Equipment,
			History:         stats.History,
			ActiveEquipment: stats.ActiveEquipment,
			CPUEquipment:    stats.CPUEquipment,
			Administrators:  stats.Administrators,
			StandardUsers:   stats.StandardUsers,
		},
		QuickActions: adminQuickActions,
	}, nil
}

// GetUserDashboard - только чтение активного оборудования с фильтрами и справочники для них.
func (s *DashboardService) GetUserDashboard(ctx context.Context, actor dto.AuthContext, filter dto.EquipmentFilter) (*dto.UserDashboardDTO, error) {
	if err := s.CheckPermission(actor, authz.DashboardUser); err != nil {
		return nil, err
	}

	equipment, err := s.equipmentService.GetEquipments(ctx, actor, filter)
	if err != nil {
		return nil, err
	}
	buildings, err := s.buildingService.GetBuildings(ctx, actor)
	if err != nil {
		return nil, err
	}
	deviceTypes, err := s.deviceTypeService.GetDeviceTypes(ctx, actor)
	if err != nil {
		return nil, err
	}

	return &dto.UserDashboardDTO{
		Equipment:   equipment,
		Buildings:   buildings,
		DeviceTypes: deviceTypes,
		Filter:      filter,
	}, nil
}
