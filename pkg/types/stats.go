package types

// InventoryStats - счётчики для панели администратора.
type InventoryStats struct {
	Users           int64 `json:"users"`
	Buildings       int64 `json:"buildings"`
	Equipment       int64 `json:"equipment"`
	History         int64 `json:"history"`
	ActiveEquipment int64 `json:"active_equipment"`
	CPUEquipment    int64 `json:"cpu_equipment"`
	Administrators  int64 `json:"administrators"`
	StandardUsers   int64 `json:"standard_users"`
}
