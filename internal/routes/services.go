package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"school-inventory/internal/authz"
	"school-inventory/internal/repositories"
	"school-inventory/internal/services"
	"school-inventory/pkg/config"
	"school-inventory/pkg/service"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Equipment *zap.Logger
	User      *zap.Logger
}

// Services - всё, что нужно маршрутам; в тестах собирается из заглушек.
type Services struct {
	Auth       services.AuthServiceInterface
	Equipment  services.EquipmentServiceInterface
	Building   services.BuildingServiceInterface
	DeviceType services.DeviceTypeServiceInterface
	User       services.UserServiceInterface
	History    services.HistoryServiceInterface
	Dashboard  services.DashboardServiceInterface
	Report     services.ReportServiceInterface
}

func NewServices(dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, loggers *Loggers, cfg *config.Config) *Services {
	txManager := repositories.NewTxManager(dbConn)

	// --- РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn, loggers.User)
	buildingRepo := repositories.NewBuildingRepository(dbConn, loggers.Main)
	deviceTypeRepo := repositories.NewDeviceTypeRepository(dbConn, loggers.Main)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, loggers.Equipment)
	detailRepo := repositories.NewEquipmentDetailRepository(dbConn, loggers.Equipment)
	historyRepo := repositories.NewHistoryRepository(dbConn, loggers.Equipment)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, loggers.Main)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- СЕРВИСЫ ---
	base := services.NewBaseService(authz.NewGatekeeper(), loggers.Main)

	equipmentService := services.NewEquipmentService(
		base, txManager, equipmentRepo, detailRepo, historyRepo, buildingRepo, deviceTypeRepo, loggers.Equipment,
	)
	buildingService := services.NewBuildingService(base, buildingRepo, loggers.Main)
	deviceTypeService := services.NewDeviceTypeService(base, deviceTypeRepo, loggers.Main)
	historyService := services.NewHistoryService(base, historyRepo, loggers.Equipment)

	return &Services{
		Auth:       services.NewAuthService(userRepo, cacheRepo, jwtSvc, loggers.Auth, &cfg.Auth),
		Equipment:  equipmentService,
		Building:   buildingService,
		DeviceType: deviceTypeService,
		User:       services.NewUserService(base, userRepo, loggers.User),
		History:    historyService,
		Dashboard:  services.NewDashboardService(base, dashboardRepo, equipmentService, buildingService, deviceTypeService, loggers.Main),
		Report:     services.NewReportService(base, equipmentService, historyService, loggers.Main),
	}
}
