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

const (
	pcDetailTable   = "pc_details"
	graphicsTable   = "graphics"
	peripheralTable = "peripherals"
)

var (
	pcDetailFields   = []string{"id", "equipment_id", "ram_gb", "ram_type", "storage_gb", "storage_type", "processor", "notes"}
	graphicsFields   = []string{"id", "pc_detail_id", "brand", "model", "vram_gb"}
	peripheralFields = []string{"id", "equipment_id", "kind", "brand", "model", "serial"}
)

// EquipmentDetailRepositoryInterface - состав CPU: PcDetail, Graphics, Peripheral.
type EquipmentDetailRepositoryInterface interface {
	FindPcDetail(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.PcDetail, error)
	UpsertPcDetail(ctx context.Context, tx pgx.Tx, detail *entities.PcDetail) (uint64, error)
	DeletePcDetail(ctx context.Context, tx pgx.Tx, equipmentID uint64) error

	UpsertGraphics(ctx context.Context, tx pgx.Tx, graphics *entities.Graphics) error
	DeleteGraphics(ctx context.Context, tx pgx.Tx, pcDetailID uint64) error

	CreatePeripherals(ctx context.Context, tx pgx.Tx, equipmentID uint64, peripherals []entities.Peripheral) error
	DeletePeripherals(ctx context.Context, tx pgx.Tx, equipmentID uint64) error

	GetPcDetails(ctx context.Context, equipmentIDs []uint64) ([]entities.PcDetail, error)
	GetGraphics(ctx context.Context, pcDetailIDs []uint64) ([]entities.Graphics, error)
	GetPeripherals(ctx context.Context, equipmentIDs []uint64) ([]entities.Peripheral, error)
}

type EquipmentDetailRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentDetailRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentDetailRepositoryInterface {
	return &EquipmentDetailRepository{storage: storage, logger: logger}
}

func scanPcDetail(row pgx.Row) (*entities.PcDetail, error) {
	var d entities.PcDetail
	err := row.Scan(&d.ID, &d.EquipmentID, &d.RamGB, &d.RamType, &d.StorageGB, &d.StorageType, &d.Processor, &d.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования pc_detail: %w", err)
	}
	return &d, nil
}

func scanGraphics(row pgx.Row) (*entities.Graphics, error) {
	var g entities.Graphics
	if err := row.Scan(&g.ID, &g.PcDetailID, &g.Brand, &g.Model, &g.VramGB); err != nil {
		return nil, fmt.Errorf("ошибка сканирования graphics: %w", err)
	}
	return &g, nil
}

func scanPeripheral(row pgx.Row) (*entities.Peripheral, error) {
	var p entities.Peripheral
	if err := row.Scan(&p.ID, &p.EquipmentID, &p.Kind, &p.Brand, &p.Model, &p.Serial); err != nil {
		return nil, fmt.Errorf("ошибка сканирования peripheral: %w", err)
	}
	return &p, nil
}

// FindPcDetail возвращает apperrors.ErrNotFound, если детали нет.
func (r *EquipmentDetailRepository) FindPcDetail(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.PcDetail, error) {
	query, args, err := sq.Select(pcDetailFields...).From(pcDetailTable).
		Where(sq.Eq{"equipment_id": equipmentID}).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}
	return scanPcDetail(pick(r.storage, tx).QueryRow(ctx, query, args...))
}

// UpsertPcDetail создаёт деталь, если её нет, и перезаписывает все поля.
func (r *EquipmentDetailRepository) UpsertPcDetail(ctx context.Context, tx pgx.Tx, detail *entities.PcDetail) (uint64, error) {
	query, args, err := sq.Insert(pcDetailTable).
		Columns("equipment_id", "ram_gb", "ram_type", "storage_gb", "storage_type", "processor", "notes").
		Values(detail.EquipmentID, detail.RamGB, detail.RamType, detail.StorageGB, detail.StorageType, detail.Processor, detail.Notes).
		Suffix(`ON CONFLICT (equipment_id) DO UPDATE SET
			ram_gb = EXCLUDED.ram_gb,
			ram_type = EXCLUDED.ram_type,
			storage_gb = EXCLUDED.storage_gb,
			storage_type = EXCLUDED.storage_type,
			processor = EXCLUDED.processor,
			notes = EXCLUDED.notes
		RETURNING id`).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return 0, err
	}

	var id uint64
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperrors.NewNotFoundError("оборудование с id %d не найдено", detail.EquipmentID)
		}
		return 0, fmt.Errorf("ошибка записи pc_detail: %w", err)
	}
	return id, nil
}

func (r *EquipmentDetailRepository) DeletePcDetail(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	return r.exec(ctx, tx, sq.Delete(pcDetailTable).Where(sq.Eq{"equipment_id": equipmentID}), "удаления pc_detail")
}

func (r *EquipmentDetailRepository) UpsertGraphics(ctx context.Context, tx pgx.Tx, graphics *entities.Graphics) error {
	b := sq.Insert(graphicsTable).
		Columns("pc_detail_id", "brand", "model", "vram_gb").
		Values(graphics.PcDetailID, graphics.Brand, graphics.Model, graphics.VramGB).
		Suffix(`ON CONFLICT (pc_detail_id) DO UPDATE SET
			brand = EXCLUDED.brand,
			model = EXCLUDED.model,
			vram_gb = EXCLUDED.vram_gb`)
	return r.exec(ctx, tx, b, "записи graphics")
}

func (r *EquipmentDetailRepository) DeleteGraphics(ctx context.Context, tx pgx.Tx, pcDetailID uint64) error {
	return r.exec(ctx, tx, sq.Delete(graphicsTable).Where(sq.Eq{"pc_detail_id": pcDetailID}), "удаления graphics")
}

// CreatePeripherals вставляет все строки одним INSERT.
func (r *EquipmentDetailRepository) CreatePeripherals(ctx context.Context, tx pgx.Tx, equipmentID uint64, peripherals []entities.Peripheral) error {
	if len(peripherals) == 0 {
		return nil
	}
	b := sq.Insert(peripheralTable).Columns("equipment_id", "kind", "brand", "model", "serial")
	for _, p := range peripherals {
		b = b.Values(equipmentID, p.Kind, p.Brand, p.Model, p.Serial)
	}
	return r.exec(ctx, tx, b, "записи peripherals")
}

func (r *EquipmentDetailRepository) DeletePeripherals(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	return r.exec(ctx, tx, sq.Delete(peripheralTable).Where(sq.Eq{"equipment_id": equipmentID}), "удаления peripherals")
}

func (r *EquipmentDetailRepository) exec(ctx context.Context, tx pgx.Tx, b sq.Sqlizer, what string) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	query, err = sq.Dollar.ReplacePlaceholders(query)
	if err != nil {
		return err
	}
	if _, err := pick(r.storage, tx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка %s: %w", what, err)
	}
	return nil
}

func (r *EquipmentDetailRepository) GetPcDetails(ctx context.Context, equipmentIDs []uint64) ([]entities.PcDetail, error) {
	if len(equipmentIDs) == 0 {
		return nil, nil
	}
	query, args, err := sq.Select(pcDetailFields...).From(pcDetailTable).
		Where(sq.Eq{"equipment_id": equipmentIDs}).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения pc_details: %w", err)
	}
	defer rows.Close()

	var list []entities.PcDetail
	for rows.Next() {
		d, err := scanPcDetail(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *d)
	}
	return list, rows.Err()
}

func (r *EquipmentDetailRepository) GetGraphics(ctx context.Context, pcDetailIDs []uint64) ([]entities.Graphics, error) {
	if len(pcDetailIDs) == 0 {
		return nil, nil
	}
	query, args, err := sq.Select(graphicsFields...).From(graphicsTable).
		Where(sq.Eq{"pc_detail_id": pcDetailIDs}).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения graphics: %w", err)
	}
	defer rows.Close()

	var list []entities.Graphics
	for rows.Next() {
		g, err := scanGraphics(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *g)
	}
	return list, rows.Err()
}

func (r *EquipmentDetailRepository) GetPeripherals(ctx context.Context, equipmentIDs []uint64) ([]entities.Peripheral, error) {
	if len(equipmentIDs) == 0 {
		return nil, nil
	}
	query, args, err := sq.Select(peripheralFields...).From(peripheralTable).
		Where(sq.Eq{"equipment_id": equipmentIDs}).
		OrderBy("equipment_id ASC", "id ASC").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения peripherals: %w", err)
	}
	defer rows.Close()

	var list []entities.Peripheral
	for rows.Next() {
		p, err := scanPeripheral(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}
