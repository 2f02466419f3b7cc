package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"school-inventory/internal/authz"
	"school-inventory/internal/dto"
	"school-inventory/internal/entities"
	"school-inventory/internal/repositories"
	"school-inventory/internal/services"
	"school-inventory/pkg/config"
)

// SeedCatalogs наполняет справочники типов устройств и зданий.
func SeedCatalogs(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("▶️  Наполнение справочников...")

	if err := seedDeviceTypes(ctx, db, logger); err != nil {
		return fmt.Errorf("типы устройств: %w", err)
	}
	if err := seedBuildings(ctx, db, logger); err != nil {
		return fmt.Errorf("здания: %w", err)
	}

	logger.Info("✅ Справочники готовы")
	return nil
}

// SeedAdmin создаёт первого администратора из SEED_ADMIN_* переменных.
func SeedAdmin(ctx context.Context, db *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("▶️  Создание администратора...")

	if _, err := seedAdministrator(ctx, repositories.NewUserRepository(db, logger), cfg.Seed, logger); err != nil {
		return err
	}

	logger.Info("✅ Администратор готов")
	return nil
}

// ImportEquipment загружает инвентарь из xlsx от имени администратора из SEED_ADMIN_USERNAME.
// Справочники и администратор должны уже существовать.
func ImportEquipment(ctx context.Context, db *pgxpool.Pool, cfg *config.Config, path string, logger *zap.Logger) (*services.ImportResult, error) {
	logger.Info("▶️  Импорт оборудования", zap.String("file", path))

	userRepo := repositories.NewUserRepository(db, logger)
	admin, err := userRepo.FindUserByUsername(ctx, cfg.Seed.AdminUsername)
	if err != nil {
		return nil, fmt.Errorf("не найден администратор %q: %w", cfg.Seed.AdminUsername, err)
	}
	if admin.Role != entities.RoleAdministrator {
		return nil, fmt.Errorf("пользователь %q не является администратором", admin.Username)
	}

	buildingRepo := repositories.NewBuildingRepository(db, logger)
	deviceTypeRepo := repositories.NewDeviceTypeRepository(db, logger)
	base := services.NewBaseService(authz.NewGatekeeper(), logger)

	equipmentService := services.NewEquipmentService(
		base,
		repositories.NewTxManager(db),
		repositories.NewEquipmentRepository(db, logger),
		repositories.NewEquipmentDetailRepository(db, logger),
		repositories.NewHistoryRepository(db, logger),
		buildingRepo,
		deviceTypeRepo,
		logger,
	)
	importer := services.NewEquipImportService(
		equipmentService,
		services.NewBuildingService(base, buildingRepo, logger),
		services.NewDeviceTypeService(base, deviceTypeRepo, logger),
		logger,
	)

	actor := dto.AuthContext{UserID: admin.ID, Role: string(admin.Role)}
	result, err := importer.ImportFile(ctx, actor, path)
	if err != nil {
		return nil, err
	}

	logger.Info("✅ Импорт завершён", zap.Int("created", result.Created), zap.Int("skipped", result.Skipped))
	for _, msg := range result.Errors {
		logger.Warn("Строка пропущена", zap.String("reason", msg))
	}
	return result, nil
}
