package dto

type HistoryEntryDTO struct {
	ID           uint64  `json:"id"`
	EquipmentID  uint64  `json:"equipment_id"`
	Code         string  `json:"code"`
	BuildingID   uint64  `json:"building_id"`
	BuildingName string  `json:"building_name,omitempty"`
	TypeID       uint64  `json:"type_id"`
	TypeName     string  `json:"type_name,omitempty"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Serial       string  `json:"serial"`
	Status       string  `json:"status"`
	DeletedBy    *uint64 `json:"deleted_by,omitempty"`
	DeletedAt    string  `json:"deleted_at"`
}
