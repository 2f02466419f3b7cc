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

const buildingTable = "buildings"

type BuildingRepositoryInterface interface {
	GetBuildings(ctx context.Context) ([]entities.Building, error)
	FindBuilding(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Building, error)
	CreateBuilding(ctx context.Context, name string) (*entities.Building, error)
	DeleteBuilding(ctx context.Context, id uint64) error
}

type BuildingRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewBuildingRepository(storage *pgxpool.Pool, logger *zap.Logger) BuildingRepositoryInterface {
	return &BuildingRepository{storage: storage, logger: logger}
}

func scanBuilding(row pgx.Row) (*entities.Building, error) {
	var b entities.Building
	err := row.Scan(&b.ID, &b.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования building: %w", err)
	}
	return &b, nil
}

func (r *BuildingRepository) GetBuildings(ctx context.Context) ([]entities.Building, error) {
	query, args, err := sq.Select("id", "name").From(buildingTable).OrderBy("name ASC").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка зданий: %w", err)
	}
	defer rows.Close()

	buildings := make([]entities.Building, 0)
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		buildings = append(buildings, *b)
	}
	return buildings, rows.Err()
}

func (r *BuildingRepository) FindBuilding(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Building, error) {
	query, args, err := sq.Select("id", "name").From(buildingTable).Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}
	b, err := scanBuilding(pick(r.storage, tx).QueryRow(ctx, query, args...))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("здание с id %d не найдено", id)
	}
	return b, err
}

func (r *BuildingRepository) CreateBuilding(ctx context.Context, name string) (*entities.Building, error) {
	query, args, err := sq.Insert(buildingTable).Columns("name").Values(name).
		Suffix("RETURNING id, name").PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	b, err := scanBuilding(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("здание %q уже существует", name)
		}
		return nil, err
	}
	return b, nil
}

func (r *BuildingRepository) DeleteBuilding(ctx context.Context, id uint64) error {
	query, args, err := sq.Delete(buildingTable).Where(sq.Eq{"id": id}).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return err
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewConflictError("здание используется оборудованием")
		}
		return fmt.Errorf("ошибка удаления здания: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("здание с id %d не найдено", id)
	}
	return nil
}
