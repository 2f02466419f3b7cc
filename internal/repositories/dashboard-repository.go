package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"school-inventory/internal/entities"
	"school-inventory/pkg/types"
)

type DashboardRepositoryInterface interface {
	GetInventoryStats(ctx context.Context) (*types.InventoryStats, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

func countQuery(table string) sq.SelectBuilder {
	return sq.Select("COUNT(*)").From(table)
}

// buildInventoryStatsQuery собирает все счётчики в один SELECT из подзапросов.
func buildInventoryStatsQuery() sq.SelectBuilder {
	subqueries := []struct {
		alias string
		query sq.SelectBuilder
	}{
		{"users", countQuery(userTable)},
		{"buildings", countQuery(buildingTable)},
		{"equipment", countQuery(equipmentTable)},
		{"history", countQuery(historyTable)},
		{"active_equipment", countQuery(equipmentTable).Where(sq.Eq{"status": string(entities.EquipmentStatusActive)})},
		{"cpu_equipment", countQuery(equipmentTable + " e").
			Join(deviceTypeTable + " t ON t.id = e.type_id").
			Where(sq.Expr("LOWER(t.name) = ?", entities.CPUTypeName))},
		{"administrators", countQuery(userTable).Where(sq.Eq{"role": string(entities.RoleAdministrator)})},
		{"standard_users", countQuery(userTable).Where(sq.Eq{"role": string(entities.RoleStandard)})},
	}

	b := sq.Select().PlaceholderFormat(sq.Dollar)
	for _, sub := range subqueries {
		b = b.Column(sq.Alias(sub.query, sub.alias))
	}
	return b
}

func (r *DashboardRepository) GetInventoryStats(ctx context.Context) (*types.InventoryStats, error) {
	query, args, err := buildInventoryStatsQuery().ToSql()
	if err != nil {
		return nil, err
	}

	stats := &types.InventoryStats{}
	err = r.storage.QueryRow(ctx, query, args...).Scan(
		&stats.Users, &stats.Buildings, &stats.Equipment, &stats.History,
		&stats.ActiveEquipment, &stats.CPUEquipment, &stats.Administrators, &stats.StandardUsers,
	)
	if err != nil {
		r.logger.Error("ошибка получения статистики", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения статистики: %w", err)
	}
	return stats, nil
}
