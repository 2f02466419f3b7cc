package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"school-inventory/internal/authz"
	"school-inventory/internal/dto"
)

var (
	inventoryHeaders = []interface{}{
		"ID", "Код", "Здание", "Тип", "Марка", "Модель", "Серийный номер", "Статус", "Дата регистрации",
		"RAM, ГБ", "Тип RAM", "Накопитель, ГБ", "Тип накопителя", "Процессор", "Видеокарта", "VRAM, ГБ", "Периферия",
	}
	historyHeaders = []interface{}{
		"ID", "ID оборудования", "Код", "Здание", "Тип", "Марка", "Модель", "Серийный номер", "Статус", "Удалил", "Дата удаления",
	}
)

type ReportServiceInterface interface {
	ExportInventory(ctx context.Context, actor dto.AuthContext) (*bytes.Buffer, error)
	ExportHistory(ctx context.Context, actor dto.AuthContext) (*bytes.Buffer, error)
}

type ReportService struct {
	*BaseService
	equipmentService EquipmentServiceInterface
	historyService   HistoryServiceInterface
	logger           *zap.Logger
}

func NewReportService(
	base *BaseService,
	equipmentService EquipmentServiceInterface,
	historyService HistoryServiceInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		BaseService:      base,
		equipmentService: equipmentService,
		historyService:   historyService,
		logger:           logger,
	}
}

func (s *ReportService) ExportInventory(ctx context.Context, actor dto.AuthContext) (*bytes.Buffer, error) {
	if err := s.CheckPermission(actor, authz.ReportsExport); err != nil {
		return nil, err
	}
	list, err := s.equipmentService.GetEquipments(ctx, actor, dto.EquipmentFilter{})
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(list))
	for _, e := range list {
		row := []interface{}{e.ID, e.Code, e.BuildingName, e.TypeName, e.Brand, e.Model, e.Serial, e.Status, e.RegisteredAt}
		row = append(row, detailCells(e)...)
		rows = append(rows, row)
	}
	return s.buildWorkbook("Инвентарь", inventoryHeaders, rows)
}

func (s *ReportService) ExportHistory(ctx context.Context, actor dto.AuthContext) (*bytes.Buffer, error) {
	if err := s.CheckPermission(actor, authz.ReportsExport); err != nil {
		return nil, err
	}
	entries, err := s.historyService.GetHistory(ctx, actor)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(entries))
	for _, h := range entries {
		deletedBy := ""
		if h.DeletedBy != nil {
			deletedBy = fmt.Sprintf("%d", *h.DeletedBy)
		}
		rows = append(rows, []interface{}{
			h.ID, h.EquipmentID, h.Code, h.BuildingName, h.TypeName, h.Brand, h.Model, h.Serial, h.Status, deletedBy, h.DeletedAt,
		})
	}
	return s.buildWorkbook("История", historyHeaders, rows)
}

func detailCells(e dto.EquipmentDTO) []interface{} {
	cells := make([]interface{}, 8)
	if e.Detail != nil {
		if e.Detail.RamGB.Valid {
			cells[0] = e.Detail.RamGB.Int
		}
		cells[1] = e.Detail.RamType.String
		if e.Detail.StorageGB.Valid {
			cells[2] = e.Detail.StorageGB.Int
		}
		cells[3] = e.Detail.StorageType.String
		cells[4] = e.Detail.Processor.String
	}
	if e.Graphics != nil {
		cells[5] = joinNonEmpty(" ", e.Graphics.Brand.String, e.Graphics.Model.String)
		if e.Graphics.VramGB.Valid {
			cells[6] = e.Graphics.VramGB.Int
		}
	}
	kinds := make([]string, 0, len(e.Peripherals))
	for _, p := range e.Peripherals {
		kinds = append(kinds, joinNonEmpty(" ", p.Kind, p.Brand, p.Model))
	}
	cells[7] = joinNonEmpty("; ", kinds...)
	return cells
}

func joinNonEmpty(sep string, parts ...string) string {
	var buf bytes.Buffer
	for _, p := range parts {
		if p == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(p)
	}
	return buf.String()
}

func (s *ReportService) buildWorkbook(sheet string, headers []interface{}, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("не удалось закрыть книгу excel", zap.Error(err))
		}
	}()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, style); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetColWidth(sheet, "B", lastCol, 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ошибка формирования xlsx: %w", err)
	}
	return buf, nil
}
