package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"school-inventory/internal/entities"
)

const historyTable = "history_entries"

type HistoryRepositoryInterface interface {
	CreateHistoryEntry(ctx context.Context, tx pgx.Tx, entry *entities.HistoryEntry) (uint64, error)
	GetHistory(ctx context.Context) ([]entities.HistoryEntry, error)
}

type HistoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewHistoryRepository(storage *pgxpool.Pool, logger *zap.Logger) HistoryRepositoryInterface {
	return &HistoryRepository{storage: storage, logger: logger}
}

// CreateHistoryEntry только добавляет: записи истории никогда не обновляются.
func (r *HistoryRepository) CreateHistoryEntry(ctx context.Context, tx pgx.Tx, entry *entities.HistoryEntry) (uint64, error) {
	query, args, err := sq.Insert(historyTable).
		Columns("equipment_id", "code", "building_id", "type_id", "brand", "model", "serial", "status", "deleted_by").
		Values(entry.EquipmentID, entry.Code, entry.BuildingID, entry.TypeID, entry.Brand, entry.Model, entry.Serial,
			string(entities.EquipmentStatusDeleted), entry.DeletedBy).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return 0, err
	}

	var id uint64
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("ошибка записи истории: %w", err)
	}
	return id, nil
}

// GetHistory - от новых к старым; имена здания и типа, если они ещё существуют.
func (r *HistoryRepository) GetHistory(ctx context.Context) ([]entities.HistoryEntry, error) {
	query, args, err := sq.Select(
		"h.id", "h.equipment_id", "h.code", "h.building_id", "h.type_id", "h.brand", "h.model", "h.serial",
		"h.status", "h.deleted_by", "h.deleted_at", "b.name", "t.name",
	).
		From(historyTable + " h").
		LeftJoin(buildingTable + " b ON b.id = h.building_id").
		LeftJoin(deviceTypeTable + " t ON t.id = h.type_id").
		OrderBy("h.deleted_at DESC", "h.id DESC").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.HistoryEntry, 0)
	for rows.Next() {
		var h entities.HistoryEntry
		if err := rows.Scan(
			&h.ID, &h.EquipmentID, &h.Code, &h.BuildingID, &h.TypeID, &h.Brand, &h.Model, &h.Serial,
			&h.Status, &h.DeletedBy, &h.DeletedAt, &h.BuildingName, &h.TypeName,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования history_entry: %w", err)
		}
		entries = append(entries, h)
	}
	return entries, rows.Err()
}
