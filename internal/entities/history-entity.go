package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// HistoryEntry - неизменяемый снимок оборудования на момент удаления.
// equipment_id не связан внешним ключом: строка equipments к этому моменту удалена.
type HistoryEntry struct {
	ID          uint64          `json:"id" db:"id"`
	EquipmentID uint64          `json:"equipment_id" db:"equipment_id"`
	Code        string          `json:"code" db:"code"`
	BuildingID  uint64          `json:"building_id" db:"building_id"`
	TypeID      uint64          `json:"type_id" db:"type_id"`
	Brand       string          `json:"brand" db:"brand"`
	Model       string          `json:"model" db:"model"`
	Serial      string          `json:"serial" db:"serial"`
	Status      EquipmentStatus `json:"status" db:"status"`
	DeletedBy   null.Uint64     `json:"deleted_by" db:"deleted_by"`
	DeletedAt   time.Time       `json:"deleted_at" db:"deleted_at"`

	BuildingName null.String `json:"building_name" db:"-"`
	TypeName     null.String `json:"type_name" db:"-"`
}

// NewHistoryEntry снимает идентифицирующие поля оборудования.
func NewHistoryEntry(e *Equipment, actorID uint64) *HistoryEntry {
	entry := &HistoryEntry{
		EquipmentID: e.ID,
		Code:        e.Code,
		BuildingID:  e.BuildingID,
		TypeID:      e.TypeID,
		Brand:       e.Brand,
		Model:       e.Model,
		Serial:      e.Serial,
		Status:      EquipmentStatusDeleted,
	}
	if actorID > 0 {
		entry.DeletedBy = null.Uint64From(actorID)
	}
	return entry
}
