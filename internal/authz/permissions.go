package authz

import "school-inventory/internal/entities"

const (
	// Оборудование
	EquipmentView   = "equipment:view"
	EquipmentManage = "equipment:manage"

	// Справочники: здания и типы устройств
	CatalogsView   = "catalogs:view"
	CatalogsManage = "catalogs:manage"

	UsersView   = "users:view"
	UsersManage = "users:manage"

	HistoryView   = "history:view"
	ReportsExport = "reports:export"

	DashboardAdmin = "dashboard:admin"
	DashboardUser  = "dashboard:user"
)

// rolePermissions - у каждой роли фиксированный набор, Standard только читает активное оборудование.
var rolePermissions = map[entities.Role]map[string]bool{
	entities.RoleAdministrator: {
		EquipmentView:   true,
		EquipmentManage: true,
		CatalogsView:    true,
		CatalogsManage:  true,
		UsersView:       true,
		UsersManage:     true,
		HistoryView:     true,
		ReportsExport:   true,
		DashboardAdmin:  true,
	},
	entities.RoleStandard: {
		EquipmentView: true,
		CatalogsView:  true,
		DashboardUser: true,
	},
}
