package entities

import (
	"strings"
	"time"

	"github.com/aarondl/null/v8"
)

type EquipmentStatus string

const (
	EquipmentStatusActive   EquipmentStatus = "Active"
	EquipmentStatusInactive EquipmentStatus = "Inactive" // зарезервирован, ни одна операция в него не переводит
	EquipmentStatusDeleted  EquipmentStatus = "Deleted"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentStatusActive, EquipmentStatusInactive, EquipmentStatusDeleted:
		return true
	}
	return false
}

// CPUTypeName - тип устройства, для которого ведутся технические детали.
const CPUTypeName = "cpu"

func IsCPUType(typeName string) bool {
	return strings.EqualFold(typeName, CPUTypeName)
}

type Equipment struct {
	ID           uint64          `json:"id" db:"id"`
	Code         string          `json:"code" db:"code"`
	BuildingID   uint64          `json:"building_id" db:"building_id"`
	TypeID       uint64          `json:"type_id" db:"type_id"`
	Brand        string          `json:"brand" db:"brand"`
	Model        string          `json:"model" db:"model"`
	Serial       string          `json:"serial" db:"serial"`
	Status       EquipmentStatus `json:"status" db:"status"`
	RegisteredAt *time.Time      `json:"registered_at" db:"registered_at"`

	// Поля для связанных данных (не колонки в таблице)
	BuildingName string `json:"building_name" db:"-"`
	TypeName     string `json:"type_name" db:"-"`
}

func (e *Equipment) IsCPU() bool {
	return IsCPUType(e.TypeName)
}

// PcDetail - технические характеристики CPU, один к одному с Equipment.
type PcDetail struct {
	ID          uint64      `json:"id" db:"id"`
	EquipmentID uint64      `json:"equipment_id" db:"equipment_id"`
	RamGB       null.Int    `json:"ram_gb" db:"ram_gb"`
	RamType     null.String `json:"ram_type" db:"ram_type"`
	StorageGB   null.Int    `json:"storage_gb" db:"storage_gb"`
	StorageType null.String `json:"storage_type" db:"storage_type"`
	Processor   null.String `json:"processor" db:"processor"`
	Notes       null.String `json:"notes" db:"notes"`
}

// Graphics - дискретная видеокарта, один к одному с PcDetail.
type Graphics struct {
	ID         uint64      `json:"id" db:"id"`
	PcDetailID uint64      `json:"pc_detail_id" db:"pc_detail_id"`
	Brand      null.String `json:"brand" db:"brand"`
	Model      null.String `json:"model" db:"model"`
	VramGB     null.Int    `json:"vram_gb" db:"vram_gb"`
}

func (g Graphics) HasAnyField() bool {
	return (g.Brand.Valid && g.Brand.String != "") ||
		(g.Model.Valid && g.Model.String != "") ||
		g.VramGB.Valid
}

type Peripheral struct {
	ID          uint64 `json:"id" db:"id"`
	EquipmentID uint64 `json:"equipment_id" db:"equipment_id"`
	Kind        string `json:"kind" db:"kind"`
	Brand       string `json:"brand" db:"brand"`
	Model       string `json:"model" db:"model"`
	Serial      string `json:"serial" db:"serial"`
}
