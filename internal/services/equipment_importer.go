package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"school-inventory/internal/dto"
	apperrors "school-inventory/pkg/errors"
)

// ImportResult - итог загрузки инвентаря из xlsx.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

type importColumns struct {
	code, building, deviceType, brand, model, serial int
}

// EquipImportService загружает оборудование из книги Excel через EquipmentService,
// поэтому действуют те же правила: уникальный код, существующие здание и тип.
type EquipImportService struct {
	equipmentService  EquipmentServiceInterface
	buildingService   BuildingServiceInterface
	deviceTypeService DeviceTypeServiceInterface
	logger            *zap.Logger
}

func NewEquipImportService(
	equipmentService EquipmentServiceInterface,
	buildingService BuildingServiceInterface,
	deviceTypeService DeviceTypeServiceInterface,
	logger *zap.Logger,
) *EquipImportService {
	return &EquipImportService{
		equipmentService:  equipmentService,
		buildingService:   buildingService,
		deviceTypeService: deviceTypeService,
		logger:            logger,
	}
}

func (s *EquipImportService) ImportFile(ctx context.Context, actor dto.AuthContext, path string) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	var rows [][]string
	var cols importColumns
	headerRow := -1
	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения листа %q: %w", sheet, err)
		}
		for i, row := range sheetRows {
			if c, ok := detectColumns(row); ok {
				rows, cols, headerRow = sheetRows, c, i
				break
			}
		}
		if headerRow != -1 {
			break
		}
	}
	if headerRow == -1 {
		return nil, apperrors.NewValidationError("не найдена шапка таблицы: нужны колонки код, здание и тип")
	}

	buildings, err := s.buildingIndex(ctx, actor)
	if err != nil {
		return nil, err
	}
	deviceTypes, err := s.deviceTypeIndex(ctx, actor)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: []string{}}
	for i, row := range rows[headerRow+1:] {
		line := headerRow + i + 2
		code := cell(row, cols.code)
		if code == "" {
			continue
		}

		buildingID, ok := buildings[strings.ToLower(cell(row, cols.building))]
		if !ok {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("строка %d: здание %q не найдено", line, cell(row, cols.building)))
			continue
		}
		typeID, ok := deviceTypes[strings.ToLower(cell(row, cols.deviceType))]
		if !ok {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("строка %d: тип %q не найден", line, cell(row, cols.deviceType)))
			continue
		}

		_, err := s.equipmentService.CreateEquipment(ctx, actor, dto.CreateEquipmentDTO{
			Code:       code,
			BuildingID: buildingID,
			TypeID:     typeID,
			Brand:      cell(row, cols.brand),
			Model:      cell(row, cols.model),
			Serial:     cell(row, cols.serial),
		})
		if err != nil {
			if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("строка %d: %s", line, apperrors.Message(err)))
				continue
			}
			return result, err
		}
		result.Created++
	}

	s.logger.Info("Импорт оборудования завершён",
		zap.String("file", path), zap.Int("created", result.Created), zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *EquipImportService) buildingIndex(ctx context.Context, actor dto.AuthContext) (map[string]uint64, error) {
	list, err := s.buildingService.GetBuildings(ctx, actor)
	if err != nil {
		return nil, err
	}
	index := make(map[string]uint64, len(list))
	for _, b := range list {
		index[strings.ToLower(b.Name)] = b.ID
	}
	return index, nil
}

func (s *EquipImportService) deviceTypeIndex(ctx context.Context, actor dto.AuthContext) (map[string]uint64, error) {
	list, err := s.deviceTypeService.GetDeviceTypes(ctx, actor)
	if err != nil {
		return nil, err
	}
	index := make(map[string]uint64, len(list))
	for _, t := range list {
		index[strings.ToLower(t.Name)] = t.ID
	}
	return index, nil
}

// detectColumns ищет строку-шапку; названия колонок на русском или английском.
func detectColumns(row []string) (importColumns, bool) {
	cols := importColumns{-1, -1, -1, -1, -1, -1}
	for i, name := range row {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "код", "code":
			cols.code = i
		case "здание", "building":
			cols.building = i
		case "тип", "type":
			cols.deviceType = i
		case "марка", "brand":
			cols.brand = i
		case "модель", "model":
			cols.model = i
		case "серийный номер", "serial":
			cols.serial = i
		}
	}
	return cols, cols.code != -1 && cols.building != -1 && cols.deviceType != -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
