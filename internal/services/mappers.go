package services

import (
	"strings"
	"time"

	"school-inventory/internal/dto"
	"school-inventory/internal/entities"
)

const timeLayout = "2006-01-02 15:04:05"

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

func toEquipmentDTO(e entities.Equipment) dto.EquipmentDTO {
	return dto.EquipmentDTO{
		ID:           e.ID,
		Code:         e.Code,
		BuildingID:   e.BuildingID,
		BuildingName: e.BuildingName,
		TypeID:       e.TypeID,
		TypeName:     e.TypeName,
		Brand:        e.Brand,
		Model:        e.Model,
		Serial:       e.Serial,
		Status:       string(e.Status),
		RegisteredAt: formatTime(e.RegisteredAt),
		Peripherals:  []dto.PeripheralDTO{},
	}
}

func toPcDetailDTO(d entities.PcDetail) *dto.PcDetailDTO {
	return &dto.PcDetailDTO{
		RamGB:       d.RamGB,
		RamType:     d.RamType,
		StorageGB:   d.StorageGB,
		StorageType: d.StorageType,
		Processor:   d.Processor,
		Notes:       d.Notes,
	}
}

func toGraphicsDTO(g entities.Graphics) *dto.GraphicsDTO {
	return &dto.GraphicsDTO{Brand: g.Brand, Model: g.Model, VramGB: g.VramGB}
}

func toPeripheralDTO(p entities.Peripheral) dto.PeripheralDTO {
	return dto.PeripheralDTO{Kind: p.Kind, Brand: p.Brand, Model: p.Model, Serial: p.Serial}
}

func toPcDetailEntity(equipmentID uint64, d *dto.PcDetailDTO) *entities.PcDetail {
	detail := &entities.PcDetail{EquipmentID: equipmentID}
	if d == nil {
		return detail
	}
	detail.RamGB = d.RamGB
	detail.RamType = d.RamType
	detail.StorageGB = d.StorageGB
	detail.StorageType = d.StorageType
	detail.Processor = d.Processor
	detail.Notes = d.Notes
	return detail
}

func toGraphicsEntity(g *dto.GraphicsDTO) entities.Graphics {
	if g == nil {
		return entities.Graphics{}
	}
	return entities.Graphics{Brand: g.Brand, Model: g.Model, VramGB: g.VramGB}
}

// toPeripheralEntities оставляет только записи с непустым kind; порядок сохраняется.
func toPeripheralEntities(in []dto.PeripheralDTO) []entities.Peripheral {
	out := make([]entities.Peripheral, 0, len(in))
	for _, p := range in {
		kind := strings.TrimSpace(p.Kind)
		if kind == "" {
			continue
		}
		out = append(out, entities.Peripheral{
			Kind:   kind,
			Brand:  strings.TrimSpace(p.Brand),
			Model:  strings.TrimSpace(p.Model),
			Serial: strings.TrimSpace(p.Serial),
		})
	}
	return out
}

func toBuildingDTO(b entities.Building) dto.BuildingDTO {
	return dto.BuildingDTO{ID: b.ID, Name: b.Name}
}

func toDeviceTypeDTO(t entities.DeviceType) dto.DeviceTypeDTO {
	return dto.DeviceTypeDTO{ID: t.ID, Name: t.Name}
}

func toUserDTO(u entities.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: formatTime(u.CreatedAt),
	}
}

func toHistoryEntryDTO(h entities.HistoryEntry) dto.HistoryEntryDTO {
	out := dto.HistoryEntryDTO{
		ID:           h.ID,
		EquipmentID:  h.EquipmentID,
		Code:         h.Code,
		BuildingID:   h.BuildingID,
		BuildingName: h.BuildingName.String,
		TypeID:       h.TypeID,
		TypeName:     h.TypeName.String,
		Brand:        h.Brand,
		Model:        h.Model,
		Serial:       h.Serial,
		Status:       string(h.Status),
		DeletedAt:    formatTime(&h.DeletedAt),
	}
	if h.DeletedBy.Valid {
		id := h.DeletedBy.Uint64
		out.DeletedBy = &id
	}
	return out
}
