package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"school-inventory/internal/entities"
	apperrors "school-inventory/pkg/errors"
)

const deviceTypeTable = "device_types"

type DeviceTypeRepositoryInterface interface {
	GetDeviceTypes(ctx context.Context) ([]entities.DeviceType, error)
	FindDeviceType(ctx context.Context, tx pgx.Tx, id uint64) (*entities.DeviceType, error)
	CreateDeviceType(ctx context.Context, name string) (*entities.DeviceType, error)
	DeleteDeviceType(ctx context.Context, id uint64) error
}

type DeviceTypeRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDeviceTypeRepository(storage *pgxpool.Pool, logger *zap.Logger) DeviceTypeRepositoryInterface {
	return &DeviceTypeRepository{storage: storage, logger: logger}
}

func scanDeviceType(row pgx.Row) (*entities.DeviceType, error) {
	var t entities.DeviceType
	err := row.Scan(&t.ID, &t.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования device_type: %w", err)
	}
	return &t, nil
}

func (r *DeviceTypeRepository) GetDeviceTypes(ctx context.Context) ([]entities.DeviceType, error) {
	query, args, err := sq.Select("id", "name").From(deviceTypeTable).OrderBy("name ASC").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка типов устройств: %w", err)
	}
	defer rows.Close()

	types := make([]entities.DeviceType, 0)
	for rows.Next() {
		t, err := scanDeviceType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, *t)
	}
	return types, rows.Err()
}

func (r *DeviceTypeRepository) FindDeviceType(ctx context.Context, tx pgx.Tx, id uint64) (*entities.DeviceType, error) {
	query, args, err := sq.Select("id", "name").From(deviceTypeTable).Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}
	t, err := scanDeviceType(pick(r.storage, tx).QueryRow(ctx, query, args...))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("тип устройства с id %d не найден", id)
	}
	return t, err
}

func (r *DeviceTypeRepository) CreateDeviceType(ctx context.Context, name string) (*entities.DeviceType, error) {
	query, args, err := sq.Insert(deviceTypeTable).Columns("name").Values(name).
		Suffix("RETURNING id, name").PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	t, err := scanDeviceType(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("тип устройства %q уже существует", name)
		}
		return nil, err
	}
	return t, nil
}

func (r *DeviceTypeRepository) DeleteDeviceType(ctx context.Context, id uint64) error {
	query, args, err := sq.Delete(deviceTypeTable).Where(sq.Eq{"id": id}).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return err
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewConflictError("тип устройства используется оборудованием")
		}
		return fmt.Errorf("ошибка удаления типа устройства: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("тип устройства с id %d не найден", id)
	}
	return nil
}
