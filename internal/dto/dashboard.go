package dto

type AdminStatsDTO struct {
	Users           int64 `json:"users"`
	Buildings       int64 `json:"buildings"`
	Equipment       int64 `json:"equipment"`
	History         int64 `json:"history"`
	ActiveEquipment int64 `json:"active_equipment"`
	CPUEquipment    int64 `json:"cpu_equipment"`
	Administrators  int64 `json:"administrators"`
	StandardUsers   int64 `json:"standard_users"`
}

type QuickActionDTO struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

type AdminDashboardDTO struct {
	Stats        AdminStatsDTO    `json:"stats"`
	QuickActions []QuickActionDTO `json:"quick_actions"`
}

type UserDashboardDTO struct {
	Equipment   []EquipmentDTO  `json:"equipment"`
	Buildings   []BuildingDTO   `json:"buildings"`
	DeviceTypes []DeviceTypeDTO `json:"device_types"`
	Filter      EquipmentFilter `json:"filter"`
}
