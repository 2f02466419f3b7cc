package routes

import (
	"github.com/labstack/echo/v4"

	"school-inventory/internal/controllers"
	"school-inventory/internal/entities"
	"school-inventory/pkg/config"
	"school-inventory/pkg/middleware"
	"school-inventory/pkg/service"
)

func InitRouter(e *echo.Echo, svc *Services, jwtSvc service.JWTService, metrics *middleware.Metrics, loggers *Loggers, cfg *config.Config) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	authMW := middleware.NewAuthMiddleware(jwtSvc, svc.Auth, cfg.Session.CookieName, cfg.Session.LoginPath, loggers.Auth)
	authController := controllers.NewAuthController(svc.Auth, cfg.Session, loggers.Auth)

	e.GET("/", authController.Entry)
	e.GET("/metrics", metrics.Handler())

	api := e.Group("/api")
	runAuthRouter(api, authController, authMW)

	secureGroup := api.Group("", authMW.Auth)
	adminGroup := secureGroup.Group("", authMW.RequireRole(entities.RoleAdministrator))
	userGroup := secureGroup.Group("", authMW.RequireRole(entities.RoleStandard))

	runDashboardRouter(adminGroup, userGroup, controllers.NewDashboardController(svc.Dashboard, loggers.Main))
	runCatalogRouter(adminGroup,
		controllers.NewBuildingController(svc.Building, loggers.Main),
		controllers.NewDeviceTypeController(svc.DeviceType, loggers.Main),
	)
	runUserRouter(adminGroup, controllers.NewUserController(svc.User, loggers.User))
	runEquipmentRouter(adminGroup, controllers.NewEquipmentController(svc.Equipment, loggers.Equipment))
	runHistoryRouter(adminGroup, controllers.NewHistoryController(svc.History, loggers.Equipment))
	runReportRouter(adminGroup, controllers.NewReportController(svc.Report, loggers.Main))

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
}

func runAuthRouter(api *echo.Group, ctrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	auth := api.Group("/auth")
	auth.POST("/login", ctrl.Login)
	auth.POST("/logout", ctrl.Logout, authMW.Auth)
	auth.GET("/me", ctrl.Me, authMW.Auth)
}

func runDashboardRouter(admin, user *echo.Group, ctrl *controllers.DashboardController) {
	admin.GET("/admin/dashboard", ctrl.GetAdminDashboard)
	user.GET("/user/dashboard", ctrl.GetUserDashboard)
}

func runCatalogRouter(secure *echo.Group, buildings *controllers.BuildingController, deviceTypes *controllers.DeviceTypeController) {
	secure.GET("/buildings", buildings.GetBuildings)
	secure.POST("/buildings", buildings.CreateBuilding)
	secure.DELETE("/buildings/:id", buildings.DeleteBuilding)

	secure.GET("/device-types", deviceTypes.GetDeviceTypes)
	secure.POST("/device-types", deviceTypes.CreateDeviceType)
	secure.DELETE("/device-types/:id", deviceTypes.DeleteDeviceType)
}

func runUserRouter(secure *echo.Group, ctrl *controllers.UserController) {
	secure.GET("/users", ctrl.GetUsers)
	secure.POST("/users", ctrl.CreateUser)
}

func runEquipmentRouter(secure *echo.Group, ctrl *controllers.EquipmentController) {
	secure.GET("/equipment", ctrl.GetEquipments)
	secure.POST("/equipment", ctrl.CreateEquipment)
	secure.GET("/equipment/:id", ctrl.FindEquipment)
	secure.PUT("/equipment/:id", ctrl.UpdateEquipment)
	secure.PUT("/equipment/:id/details", ctrl.UpdateEquipmentDetails)
	secure.DELETE("/equipment/:id", ctrl.DeleteEquipment)
}

func runHistoryRouter(secure *echo.Group, ctrl *controllers.HistoryController) {
	secure.GET("/history", ctrl.GetHistory)
}

func runReportRouter(secure *echo.Group, ctrl *controllers.ReportController) {
	secure.GET("/reports/inventory.xlsx", ctrl.ExportInventory)
	secure.GET("/reports/history.xlsx", ctrl.ExportHistory)
}
