package seeders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// true - полностью очистить справочник и записать с нуля (каскадно удалит оборудование!).
// false - только добавить недостающие записи.
const fullSyncCatalogs = false

func seedCatalog(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger, table string, names []string) (int64, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if fullSyncCatalogs {
		logger.Warn("Стратегия: полная перезапись (TRUNCATE)", zap.String("table", table))
		if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE"); err != nil {
			return 0, err
		}
	}

	query := "INSERT INTO " + table + " (name) VALUES ($1) ON CONFLICT (name) DO NOTHING"

	var inserted int64
	for _, name := range names {
		tag, err := tx.Exec(ctx, query, name)
		if err != nil {
			return 0, err
		}
		inserted += tag.RowsAffected()
	}

	return inserted, tx.Commit(ctx)
}

func seedDeviceTypes(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	inserted, err := seedCatalog(ctx, db, logger, "device_types", deviceTypesData)
	if err != nil {
		return err
	}
	logger.Info("Типы устройств проверены", zap.Int64("добавлено", inserted))
	return nil
}

func seedBuildings(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	inserted, err := seedCatalog(ctx, db, logger, "buildings", buildingsData)
	if err != nil {
		return err
	}
	logger.Info("Здания проверены", zap.Int64("добавлено", inserted))
	return nil
}
