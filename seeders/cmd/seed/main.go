package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"school-inventory/pkg/config"
	"school-inventory/pkg/database/postgresql"
	applogger "school-inventory/pkg/logger"
	"school-inventory/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runCatalogs := flag.Bool("catalogs", false, "Наполнить справочники (типы устройств, здания)")
	runAdmin := flag.Bool("admin", false, "Создать первого администратора (SEED_ADMIN_*)")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -catalogs -admin)")
	importPath := flag.String("import", "", "Путь к xlsx-файлу с инвентарём для загрузки")

	flag.Parse()

	if !*runCatalogs && !*runAdmin && !*runAll && *importPath == "" {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -catalogs")
		log.Println("  SEED_ADMIN_PASSWORD=... go run ./seeders/cmd/seed -all")
		log.Println("  go run ./seeders/cmd/seed -import inventario.xlsx")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	logger := applogger.NewLogger(config.LogConfig{Level: cfg.Log.Level}).Named("seed")
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	if err := postgresql.Migrate(ctx, dbPool, logger); err != nil {
		logger.Fatal("не удалось применить миграции", zap.Error(err))
	}

	log.Println("======================================================")

	// Порядок важен: импорт опирается на справочники и администратора.
	if *runAll || *runCatalogs {
		if err := seeders.SeedCatalogs(ctx, dbPool, logger); err != nil {
			logger.Fatal("❌ Ошибка наполнения справочников", zap.Error(err))
		}
		log.Println("======================================================")
	}

	if *runAll || *runAdmin {
		if err := seeders.SeedAdmin(ctx, dbPool, cfg, logger); err != nil {
			logger.Fatal("❌ Ошибка создания администратора", zap.Error(err))
		}
		log.Println("======================================================")
	}

	if *importPath != "" {
		if _, err := seeders.ImportEquipment(ctx, dbPool, cfg, *importPath, logger); err != nil {
			logger.Fatal("❌ Ошибка импорта оборудования", zap.Error(err))
		}
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
