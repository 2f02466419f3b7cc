package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"school-inventory/internal/dto"
	"school-inventory/internal/entities"
	apperrors "school-inventory/pkg/errors"
)

const equipmentTable = "equipments"

var equipmentSelectFields = []string{
	"e.id", "e.code", "e.building_id", "e.type_id", "e.brand", "e.model", "e.serial", "e.status", "e.registered_at",
	"b.name", "t.name",
}

type EquipmentRepositoryInterface interface {
	GetActiveEquipments(ctx context.Context, filter dto.EquipmentFilter) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, tx pgx.Tx, id uint64, forUpdate bool) (*entities.Equipment, error)
	ExistsByCode(ctx context.Context, tx pgx.Tx, code string, excludeID uint64) (bool, error)
	CreateEquipment(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) error
	DeleteEquipment(ctx context.Context, tx pgx.Tx, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Code, &e.BuildingID, &e.TypeID, &e.Brand, &e.Model, &e.Serial, &e.Status, &e.RegisteredAt,
		&e.BuildingName, &e.TypeName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования equipment: %w", err)
	}
	return &e, nil
}

func equipmentBaseQuery() sq.SelectBuilder {
	return sq.Select(equipmentSelectFields...).
		From(equipmentTable + " e").
		Join(buildingTable + " b ON b.id = e.building_id").
		Join(deviceTypeTable + " t ON t.id = e.type_id").
		PlaceholderFormat(sq.Dollar)
}

// buildActiveEquipmentQuery - только Active; пустые фильтры условий не добавляют.
func buildActiveEquipmentQuery(filter dto.EquipmentFilter) sq.SelectBuilder {
	b := equipmentBaseQuery().Where(sq.Eq{"e.status": string(entities.EquipmentStatusActive)})

	if text := strings.TrimSpace(filter.Text); text != "" {
		pat := "%" + text + "%"
		b = b.Where(sq.Or{
			sq.ILike{"e.code": pat},
			sq.ILike{"e.brand": pat},
			sq.ILike{"e.model": pat},
			sq.ILike{"e.serial": pat},
			sq.ILike{"b.name": pat},
			sq.ILike{"t.name": pat},
		})
	}
	if filter.BuildingID > 0 {
		b = b.Where(sq.Eq{"e.building_id": filter.BuildingID})
	}
	if filter.TypeID > 0 {
		b = b.Where(sq.Eq{"e.type_id": filter.TypeID})
	}

	return b.OrderBy("e.code ASC")
}

func (r *EquipmentRepository) GetActiveEquipments(ctx context.Context, filter dto.EquipmentFilter) ([]entities.Equipment, error) {
	query, args, err := buildActiveEquipmentQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка оборудования: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

// FindEquipment с forUpdate блокирует строку до конца транзакции.
func (r *EquipmentRepository) FindEquipment(ctx context.Context, tx pgx.Tx, id uint64, forUpdate bool) (*entities.Equipment, error) {
	b := equipmentBaseQuery().Where(sq.Eq{"e.id": id})
	if forUpdate {
		b = b.Suffix("FOR UPDATE OF e")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	e, err := scanEquipment(pick(r.storage, tx).QueryRow(ctx, query, args...))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("оборудование с id %d не найдено", id)
	}
	return e, err
}

func (r *EquipmentRepository) ExistsByCode(ctx context.Context, tx pgx.Tx, code string, excludeID uint64) (bool, error) {
	b := sq.Select("1").From(equipmentTable).Where(sq.Eq{"code": code})
	if excludeID > 0 {
		b = b.Where(sq.NotEq{"id": excludeID})
	}
	query, args, err := b.Prefix("SELECT EXISTS (").Suffix(")").PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки кода оборудования: %w", err)
	}
	return exists, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) (*entities.Equipment, error) {
	query, args, err := sq.Insert(equipmentTable).
		Columns("code", "building_id", "type_id", "brand", "model", "serial", "status").
		Values(equipment.Code, equipment.BuildingID, equipment.TypeID, equipment.Brand, equipment.Model,
			equipment.Serial, string(equipment.Status)).
		Suffix("RETURNING id, registered_at").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	created := *equipment
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&created.ID, &created.RegisteredAt); err != nil {
		return nil, r.translateWriteError(err, equipment.Code)
	}
	return &created, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) error {
	query, args, err := sq.Update(equipmentTable).
		Set("code", equipment.Code).
		Set("building_id", equipment.BuildingID).
		Set("type_id", equipment.TypeID).
		Set("brand", equipment.Brand).
		Set("model", equipment.Model).
		Set("serial", equipment.Serial).
		Where(sq.Eq{"id": equipment.ID}).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return err
	}

	tag, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return r.translateWriteError(err, equipment.Code)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("оборудование с id %d не найдено", equipment.ID)
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := sq.Delete(equipmentTable).Where(sq.Eq{"id": id}).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return err
	}

	tag, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка удаления оборудования: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("оборудование с id %d не найдено", id)
	}
	return nil
}

func (r *EquipmentRepository) translateWriteError(err error, code string) error {
	switch {
	case isUniqueViolation(err):
		return apperrors.NewConflictError("оборудование с кодом %q уже существует", code)
	case isForeignKeyViolation(err):
		return apperrors.NewNotFoundError("здание или тип устройства не найдены")
	default:
		r.logger.Error("ошибка записи оборудования", zap.String("code", code), zap.Error(err))
		return fmt.Errorf("ошибка записи оборудования: %w", err)
	}
}
