package dto

import "github.com/aarondl/null/v8"

type PcDetailDTO struct {
	RamGB       null.Int    `json:"ram_gb"       validate:"omitempty,gte=0"`
	RamType     null.String `json:"ram_type"     validate:"omitempty,max=20"`
	StorageGB   null.Int    `json:"storage_gb"   validate:"omitempty,gte=0"`
	StorageType null.String `json:"storage_type" validate:"omitempty,max=20"`
	Processor   null.String `json:"processor"    validate:"omitempty,max=100"`
	Notes       null.String `json:"notes"`
}

type GraphicsDTO struct {
	Brand  null.String `json:"brand"   validate:"omitempty,max=50"`
	Model  null.String `json:"model"   validate:"omitempty,max=100"`
	VramGB null.Int    `json:"vram_gb" validate:"omitempty,gte=0"`
}

type PeripheralDTO struct {
	Kind   string `json:"kind"   validate:"max=50"`
	Brand  string `json:"brand"  validate:"max=50"`
	Model  string `json:"model"  validate:"max=50"`
	Serial string `json:"serial" validate:"max=50"`
}

type CreateEquipmentDTO struct {
	Code       string `json:"code"        form:"code"        validate:"required,notblank,max=50"`
	BuildingID uint64 `json:"building_id" form:"building_id" validate:"required,gt=0"`
	TypeID     uint64 `json:"type_id"     form:"type_id"     validate:"required,gt=0"`
	Brand      string `json:"brand"       form:"brand"       validate:"max=50"`
	Model      string `json:"model"       form:"model"       validate:"max=50"`
	Serial     string `json:"serial"      form:"serial"      validate:"max=100"`
	Status     string `json:"status"      form:"status"      validate:"omitempty,equipment_status"`

	Detail      *PcDetailDTO    `json:"detail"      form:"-"`
	Graphics    *GraphicsDTO    `json:"graphics"    form:"-"`
	Peripherals []PeripheralDTO `json:"peripherals" form:"-" validate:"dive"`
}

type UpdateEquipmentDTO struct {
	Code       string `json:"code"        form:"code"        validate:"required,notblank,max=50"`
	BuildingID uint64 `json:"building_id" form:"building_id" validate:"required,gt=0"`
	TypeID     uint64 `json:"type_id"     form:"type_id"     validate:"required,gt=0"`
	Brand      string `json:"brand"       form:"brand"       validate:"max=50"`
	Model      string `json:"model"       form:"model"       validate:"max=50"`
	Serial     string `json:"serial"      form:"serial"      validate:"max=100"`
}

// UpdateEquipmentDetailsDTO - полная замена состава CPU: деталь, видеокарта, периферия.
type UpdateEquipmentDetailsDTO struct {
	Detail      *PcDetailDTO    `json:"detail"`
	Graphics    *GraphicsDTO    `json:"graphics"`
	Peripherals []PeripheralDTO `json:"peripherals" validate:"dive"`
}

// EquipmentFilter - фильтры списка активного оборудования.
type EquipmentFilter struct {
	Text       string `json:"filter"      query:"filter"`
	BuildingID uint64 `json:"building_id" query:"building_id"`
	TypeID     uint64 `json:"type_id"     query:"type_id"`
}

// EquipmentDTO - агрегат оборудования для ответа.
type EquipmentDTO struct {
	ID           uint64 `json:"id"`
	Code         string `json:"code"`
	BuildingID   uint64 `json:"building_id"`
	BuildingName string `json:"building_name"`
	TypeID       uint64 `json:"type_id"`
	TypeName     string `json:"type_name"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Serial       string `json:"serial"`
	Status       string `json:"status"`
	RegisteredAt string `json:"registered_at,omitempty"`

	Detail      *PcDetailDTO    `json:"detail,omitempty"`
	Graphics    *GraphicsDTO    `json:"graphics,omitempty"`
	Peripherals []PeripheralDTO `json:"peripherals"`
}
