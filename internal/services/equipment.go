package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"school-inventory/internal/authz"
	"school-inventory/internal/dto"
	"school-inventory/internal/entities"
	"school-inventory/internal/repositories"
	apperrors "school-inventory/pkg/errors"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, actor dto.AuthContext, filter dto.EquipmentFilter) ([]dto.EquipmentDTO, error)
	FindEquipment(ctx context.Context, actor dto.AuthContext, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, actor dto.AuthContext, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, actor dto.AuthContext, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipmentDetails(ctx context.Context, actor dto.AuthContext, id uint64, payload dto.UpdateEquipmentDetailsDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, actor dto.AuthContext, id uint64) error
}

type EquipmentService struct {
	*BaseService
	txManager     repositories.TxManagerInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	detailRepo    repositories.EquipmentDetailRepositoryInterface
	historyRepo   repositories.HistoryRepositoryInterface
	buildingRepo  repositories.BuildingRepositoryInterface
	typeRepo      repositories.DeviceTypeRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	base *BaseService,
	txManager repositories.TxManagerInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	detailRepo repositories.EquipmentDetailRepositoryInterface,
	historyRepo repositories.HistoryRepositoryInterface,
	buildingRepo repositories.BuildingRepositoryInterface,
	typeRepo repositories.DeviceTypeRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		BaseService:   base,
		txManager:     txManager,
		equipmentRepo: equipmentRepo,
		detailRepo:    detailRepo,
		historyRepo:   historyRepo,
		buildingRepo:  buildingRepo,
		typeRepo:      typeRepo,
		logger:        logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, actor dto.AuthContext, filter dto.EquipmentFilter) ([]dto.EquipmentDTO, error) {
	if err := s.CheckPermission(actor, authz.EquipmentView); err != nil {
		return nil, err
	}

	list, err := s.equipmentRepo.GetActiveEquipments(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка оборудования", zap.Error(err))
		return nil, err
	}
	return s.compose(ctx, list)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, actor dto.AuthContext, id uint64) (*dto.EquipmentDTO, error) {
	if err := s.CheckPermission(actor, authz.EquipmentManage); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, actor dto.AuthContext, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if err := s.CheckPermission(actor, authz.EquipmentManage); err != nil {
		return nil, err
	}

	status := entities.EquipmentStatus(payload.Status)
	if status == "" {
		status = entities.EquipmentStatusActive
	}
	if !status.Valid() || status == entities.EquipmentStatusDeleted {
		return nil, apperrors.NewValidationError("недопустимый статус оборудования %q", payload.Status)
	}

	equipment := &entities.Equipment{
		Code:       strings.TrimSpace(payload.Code),
		BuildingID: payload.BuildingID,
		TypeID:     payload.TypeID,
		Brand:      strings.TrimSpace(payload.Brand),
		Model:      strings.TrimSpace(payload.Model),
		Serial:     strings.TrimSpace(payload.Serial),
		Status:     status,
	}
	if equipment.Code == "" {
		return nil, apperrors.NewValidationError("код оборудования обязателен")
	}
	peripherals := toPeripheralEntities(payload.Peripherals)

	var createdID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.buildingRepo.FindBuilding(ctx, tx, equipment.BuildingID); err != nil {
			return err
		}
		deviceType, err := s.typeRepo.FindDeviceType(ctx, tx, equipment.TypeID)
		if err != nil {
			return err
		}
		if err := s.ensureCodeIsFree(ctx, tx, equipment.Code, 0); err != nil {
			return err
		}

		created, err := s.equipmentRepo.CreateEquipment(ctx, tx, equipment)
		if err != nil {
			return err
		}
		createdID = created.ID

		if !deviceType.IsCPU() {
			return nil
		}
		return s.writeComposition(ctx, tx, created.ID, payload.Detail, payload.Graphics, peripherals)
	})
	if err != nil {
		err = apperrors.AsTransactionError(err)
		s.logger.Error("Ошибка при создании оборудования", zap.String("code", equipment.Code), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Оборудование создано", zap.Uint64("equipmentID", createdID), zap.String("code", equipment.Code),
		zap.Uint64("actorID", actor.UserID))
	return s.load(ctx, createdID)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, actor dto.AuthContext, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if err := s.CheckPermission(actor, authz.EquipmentManage); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(payload.Code)
	if code == "" {
		return nil, apperrors.NewValidationError("код оборудования обязателен")
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.equipmentRepo.FindEquipment(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if _, err := s.buildingRepo.FindBuilding(ctx, tx, payload.BuildingID); err != nil {
			return err
		}
		deviceType, err := s.typeRepo.FindDeviceType(ctx, tx, payload.TypeID)
		if err != nil {
			return err
		}
		if err := s.ensureCodeIsFree(ctx, tx, code, id); err != nil {
			return err
		}

		current.Code = code
		current.BuildingID = payload.BuildingID
		current.TypeID = payload.TypeID
		current.Brand = strings.TrimSpace(payload.Brand)
		current.Model = strings.TrimSpace(payload.Model)
		current.Serial = strings.TrimSpace(payload.Serial)
		if err := s.equipmentRepo.UpdateEquipment(ctx, tx, current); err != nil {
			return err
		}

		// детали существуют только у CPU
		if !deviceType.IsCPU() {
			return s.purgeComposition(ctx, tx, id)
		}
		return nil
	})
	if err != nil {
		err = apperrors.AsTransactionError(err)
		s.logger.Error("Ошибка при обновлении оборудования", zap.Uint64("equipmentID", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Оборудование обновлено", zap.Uint64("equipmentID", id), zap.Uint64("actorID", actor.UserID))
	return s.load(ctx, id)
}

// UpdateEquipmentDetails перезаписывает деталь и видеокарту и полностью заменяет периферию.
func (s *EquipmentService) UpdateEquipmentDetails(ctx context.Context, actor dto.AuthContext, id uint64, payload dto.UpdateEquipmentDetailsDTO) (*dto.EquipmentDTO, error) {
	if err := s.CheckPermission(actor, authz.EquipmentManage); err != nil {
		return nil, err
	}

	peripherals := toPeripheralEntities(payload.Peripherals)
	graphics := toGraphicsEntity(payload.Graphics)

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipment, err := s.equipmentRepo.FindEquipment(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if !equipment.IsCPU() {
			if payload.Detail != nil || graphics.HasAnyField() || len(peripherals) > 0 {
				return apperrors.NewValidationError("технические детали доступны только для типа CPU, у %q тип %q",
					equipment.Code, equipment.TypeName)
			}
			return nil
		}

		detailID, err := s.detailRepo.UpsertPcDetail(ctx, tx, toPcDetailEntity(id, payload.Detail))
		if err != nil {
			return err
		}
		if graphics.HasAnyField() {
			graphics.PcDetailID = detailID
			if err := s.detailRepo.UpsertGraphics(ctx, tx, &graphics); err != nil {
				return err
			}
		} else if err := s.detailRepo.DeleteGraphics(ctx, tx, detailID); err != nil {
			return err
		}

		if err := s.detailRepo.DeletePeripherals(ctx, tx, id); err != nil {
			return err
		}
		return s.detailRepo.CreatePeripherals(ctx, tx, id, peripherals)
	})
	if err != nil {
		err = apperrors.AsTransactionError(err)
		s.logger.Error("Ошибка при обновлении деталей оборудования", zap.Uint64("equipmentID", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Детали оборудования обновлены", zap.Uint64("equipmentID", id), zap.Int("peripherals", len(peripherals)))
	return s.load(ctx, id)
}

// DeleteEquipment физически удаляет оборудование, оставляя снимок в истории.
// Всё в одной транзакции: при ошибке запись истории не появляется.
func (s *EquipmentService) DeleteEquipment(ctx context.Context, actor dto.AuthContext, id uint64) error {
	if err := s.CheckPermission(actor, authz.EquipmentManage); err != nil {
		return err
	}

	var historyID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipment, err := s.equipmentRepo.FindEquipment(ctx, tx, id, true)
		if err != nil {
			return err
		}

		detail, err := s.detailRepo.FindPcDetail(ctx, tx, id)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			detail = nil
		case err != nil:
			return err
		}
		if detail != nil {
			if err := s.detailRepo.DeleteGraphics(ctx, tx, detail.ID); err != nil {
				return err
			}
			if err := s.detailRepo.DeletePeripherals(ctx, tx, id); err != nil {
				return err
			}
			if err := s.detailRepo.DeletePcDetail(ctx, tx, id); err != nil {
				return err
			}
		}

		historyID, err = s.historyRepo.CreateHistoryEntry(ctx, tx, entities.NewHistoryEntry(equipment, actor.UserID))
		if err != nil {
			return err
		}
		// периферия без детали удаляется каскадом
		return s.equipmentRepo.DeleteEquipment(ctx, tx, id)
	})
	if err != nil {
		err = apperrors.AsTransactionError(err)
		s.logger.Error("Ошибка при удалении оборудования", zap.Uint64("equipmentID", id), zap.Error(err))
		return err
	}

	s.logger.Info("Оборудование удалено и перенесено в историю",
		zap.Uint64("equipmentID", id), zap.Uint64("historyID", historyID), zap.Uint64("actorID", actor.UserID))
	return nil
}

func (s *EquipmentService) ensureCodeIsFree(ctx context.Context, tx pgx.Tx, code string, excludeID uint64) error {
	exists, err := s.equipmentRepo.ExistsByCode(ctx, tx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewConflictError("оборудование с кодом %q уже существует", code)
	}
	return nil
}

// writeComposition создаёт деталь (или пустую, если передана только видеокарта), видеокарту и периферию.
func (s *EquipmentService) writeComposition(
	ctx context.Context,
	tx pgx.Tx,
	equipmentID uint64,
	detail *dto.PcDetailDTO,
	graphicsDTO *dto.GraphicsDTO,
	peripherals []entities.Peripheral,
) error {
	graphics := toGraphicsEntity(graphicsDTO)

	if detail != nil || graphics.HasAnyField() {
		detailID, err := s.detailRepo.UpsertPcDetail(ctx, tx, toPcDetailEntity(equipmentID, detail))
		if err != nil {
			return err
		}
		if graphics.HasAnyField() {
			graphics.PcDetailID = detailID
			if err := s.detailRepo.UpsertGraphics(ctx, tx, &graphics); err != nil {
				return err
			}
		}
	}
	return s.detailRepo.CreatePeripherals(ctx, tx, equipmentID, peripherals)
}

func (s *EquipmentService) purgeComposition(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	detail, err := s.detailRepo.FindPcDetail(ctx, tx, equipmentID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if detail != nil {
		if err := s.detailRepo.DeleteGraphics(ctx, tx, detail.ID); err != nil {
			return err
		}
		if err := s.detailRepo.DeletePcDetail(ctx, tx, equipmentID); err != nil {
			return err
		}
	}
	return s.detailRepo.DeletePeripherals(ctx, tx, equipmentID)
}

func (s *EquipmentService) load(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, nil, id, false)
	if err != nil {
		return nil, err
	}
	composed, err := s.compose(ctx, []entities.Equipment{*equipment})
	if err != nil {
		return nil, err
	}
	return &composed[0], nil
}

// compose подгружает детали пачкой и только для CPU: строки деталей у других типов игнорируются.
func (s *EquipmentService) compose(ctx context.Context, list []entities.Equipment) ([]dto.EquipmentDTO, error) {
	cpuIDs := make([]uint64, 0)
	for _, e := range list {
		if e.IsCPU() {
			cpuIDs = append(cpuIDs, e.ID)
		}
	}

	detailsByEquipment := make(map[uint64]entities.PcDetail)
	graphicsByDetail := make(map[uint64]entities.Graphics)
	peripheralsByEquipment := make(map[uint64][]entities.Peripheral)

	if len(cpuIDs) > 0 {
		details, err := s.detailRepo.GetPcDetails(ctx, cpuIDs)
		if err != nil {
			return nil, err
		}
		detailIDs := make([]uint64, 0, len(details))
		for _, d := range details {
			detailsByEquipment[d.EquipmentID] = d
			detailIDs = append(detailIDs, d.ID)
		}

		graphics, err := s.detailRepo.GetGraphics(ctx, detailIDs)
		if err != nil {
			return nil, err
		}
		for _, g := range graphics {
			graphicsByDetail[g.PcDetailID] = g
		}

		peripherals, err := s.detailRepo.GetPeripherals(ctx, cpuIDs)
		if err != nil {
			return nil, err
		}
		for _, p := range peripherals {
			peripheralsByEquipment[p.EquipmentID] = append(peripheralsByEquipment[p.EquipmentID], p)
		}
	}

	result := make([]dto.EquipmentDTO, 0, len(list))
	for _, e := range list {
		item := toEquipmentDTO(e)
		if e.IsCPU() {
			if d, ok := detailsByEquipment[e.ID]; ok {
				item.Detail = toPcDetailDTO(d)
				if g, ok := graphicsByDetail[d.ID]; ok {
					item.Graphics = toGraphicsDTO(g)
				}
			}
			for _, p := range peripheralsByEquipment[e.ID] {
				item.Peripherals = append(item.Peripherals, toPeripheralDTO(p))
			}
		}
		result = append(result, item)
	}
	return result, nil
}
