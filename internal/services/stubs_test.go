package services

import (
	"context"

	"school-inventory/internal/dto"
	apperrors "school-inventory/pkg/errors"
)

// stubEquipmentService хранит созданное оборудование в памяти.
type stubEquipmentService struct {
	list    []dto.EquipmentDTO
	created []dto.CreateEquipmentDTO
}

func (s *stubEquipmentService) GetEquipments(ctx context.Context, actor dto.AuthContext, filter dto.EquipmentFilter) ([]dto.EquipmentDTO, error) {
	return s.list, nil
}

func (s *stubEquipmentService) FindEquipment(ctx context.Context, actor dto.AuthContext, id uint64) (*dto.EquipmentDTO, error) {
	for i := range s.list {
		if s.list[i].ID == id {
			return &s.list[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("оборудование с id %d не найдено", id)
}

func (s *stubEquipmentService) CreateEquipment(ctx context.Context, actor dto.AuthContext, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	for _, c := range s.created {
		if c.Code == payload.Code {
			return nil, apperrors.NewConflictError("оборудование с кодом %q уже существует", payload.Code)
		}
	}
	s.created = append(s.created, payload)
	item := dto.EquipmentDTO{ID: uint64(len(s.created)), Code: payload.Code, Peripherals: []dto.PeripheralDTO{}}
	s.list = append(s.list, item)
	return &item, nil
}

func (s *stubEquipmentService) UpdateEquipment(ctx context.Context, actor dto.AuthContext, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	return s.FindEquipment(ctx, actor, id)
}

func (s *stubEquipmentService) UpdateEquipmentDetails(ctx context.Context, actor dto.AuthContext, id uint64, payload dto.UpdateEquipmentDetailsDTO) (*dto.EquipmentDTO, error) {
	return s.FindEquipment(ctx, actor, id)
}

func (s *stubEquipmentService) DeleteEquipment(ctx context.Context, actor dto.AuthContext, id uint64) error {
	return nil
}

type stubBuildingService struct{ list []dto.BuildingDTO }

func (s *stubBuildingService) GetBuildings(ctx context.Context, actor dto.AuthContext) ([]dto.BuildingDTO, error) {
	return s.list, nil
}

func (s *stubBuildingService) CreateBuilding(ctx context.Context, actor dto.AuthContext, payload dto.CreateBuildingDTO) (*dto.BuildingDTO, error) {
	b := dto.BuildingDTO{ID: uint64(len(s.list) + 1), Name: payload.Name}
	s.list = append(s.list, b)
	return &b, nil
}

func (s *stubBuildingService) DeleteBuilding(ctx context.Context, actor dto.AuthContext, id uint64) error {
	return nil
}

type stubDeviceTypeService struct{ list []dto.DeviceTypeDTO }

func (s *stubDeviceTypeService) GetDeviceTypes(ctx context.Context, actor dto.AuthContext) ([]dto.DeviceTypeDTO, error) {
	return s.list, nil
}

func (s *stubDeviceTypeService) CreateDeviceType(ctx context.Context, actor dto.AuthContext, payload dto.CreateDeviceTypeDTO) (*dto.DeviceTypeDTO, error) {
	t := dto.DeviceTypeDTO{ID: uint64(len(s.list) + 1), Name: payload.Name}
	s.list = append(s.list, t)
	return &t, nil
}

func (s *stubDeviceTypeService) DeleteDeviceType(ctx context.Context, actor dto.AuthContext, id uint64) error {
	return nil
}

type stubHistoryService struct{ list []dto.HistoryEntryDTO }

func (s *stubHistoryService) GetHistory(ctx context.Context, actor dto.AuthContext) ([]dto.HistoryEntryDTO, error) {
	return s.list, nil
}
