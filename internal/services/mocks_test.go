package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"school-inventory/internal/authz"
	"school-inventory/internal/dto"
	"school-inventory/internal/entities"
	"school-inventory/pkg/types"
)

var (
	adminActor    = dto.AuthContext{UserID: 1, Role: string(entities.RoleAdministrator)}
	standardActor = dto.AuthContext{UserID: 2, Role: string(entities.RoleStandard)}
)

func newTestBase() *BaseService {
	return NewBaseService(authz.NewGatekeeper(), zap.NewNop())
}

// fakeTxManager выполняет fn без БД и считает исходы.
type fakeTxManager struct {
	committed  int
	rolledBack int
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if err := fn(nil); err != nil {
		f.rolledBack++
		return err
	}
	f.committed++
	return nil
}

type mockEquipmentRepo struct{ mock.Mock }

func (m *mockEquipmentRepo) GetActiveEquipments(ctx context.Context, filter dto.EquipmentFilter) ([]entities.Equipment, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]entities.Equipment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEquipmentRepo) FindEquipment(ctx context.Context, tx pgx.Tx, id uint64, forUpdate bool) (*entities.Equipment, error) {
	args := m.Called(ctx, tx, id, forUpdate)
	if v := args.Get(0); v != nil {
		return v.(*entities.Equipment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEquipmentRepo) ExistsByCode(ctx context.Context, tx pgx.Tx, code string, excludeID uint64) (bool, error) {
	args := m.Called(ctx, tx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockEquipmentRepo) CreateEquipment(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) (*entities.Equipment, error) {
	args := m.Called(ctx, tx, equipment)
	if v := args.Get(0); v != nil {
		return v.(*entities.Equipment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEquipmentRepo) UpdateEquipment(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) error {
	return m.Called(ctx, tx, equipment).Error(0)
}

func (m *mockEquipmentRepo) DeleteEquipment(ctx context.Context, tx pgx.Tx, id uint64) error {
	return m.Called(ctx, tx, id).Error(0)
}

type mockDetailRepo struct{ mock.Mock }

func (m *mockDetailRepo) FindPcDetail(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.PcDetail, error) {
	args := m.Called(ctx, tx, equipmentID)
	if v := args.Get(0); v != nil {
		return v.(*entities.PcDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDetailRepo) UpsertPcDetail(ctx context.Context, tx pgx.Tx, detail *entities.PcDetail) (uint64, error) {
	args := m.Called(ctx, tx, detail)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockDetailRepo) DeletePcDetail(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	return m.Called(ctx, tx, equipmentID).Error(0)
}

func (m *mockDetailRepo) UpsertGraphics(ctx context.Context, tx pgx.Tx, graphics *entities.Graphics) error {
	return m.Called(ctx, tx, graphics).Error(0)
}

func (m *mockDetailRepo) DeleteGraphics(ctx context.Context, tx pgx.Tx, pcDetailID uint64) error {
	return m.Called(ctx, tx, pcDetailID).Error(0)
}

func (m *mockDetailRepo) CreatePeripherals(ctx context.Context, tx pgx.Tx, equipmentID uint64, peripherals []entities.Peripheral) error {
	return m.Called(ctx, tx, equipmentID, peripherals).Error(0)
}

func (m *mockDetailRepo) DeletePeripherals(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	return m.Called(ctx, tx, equipmentID).Error(0)
}

func (m *mockDetailRepo) GetPcDetails(ctx context.Context, equipmentIDs []uint64) ([]entities.PcDetail, error) {
	args := m.Called(ctx, equipmentIDs)
	if v := args.Get(0); v != nil {
		return v.([]entities.PcDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDetailRepo) GetGraphics(ctx context.Context, pcDetailIDs []uint64) ([]entities.Graphics, error) {
	args := m.Called(ctx, pcDetailIDs)
	if v := args.Get(0); v != nil {
		return v.([]entities.Graphics), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDetailRepo) GetPeripherals(ctx context.Context, equipmentIDs []uint64) ([]entities.Peripheral, error) {
	args := m.Called(ctx, equipmentIDs)
	if v := args.Get(0); v != nil {
		return v.([]entities.Peripheral), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockHistoryRepo struct{ mock.Mock }

func (m *mockHistoryRepo) CreateHistoryEntry(ctx context.Context, tx pgx.Tx, entry *entities.HistoryEntry) (uint64, error) {
	args := m.Called(ctx, tx, entry)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockHistoryRepo) GetHistory(ctx context.Context) ([]entities.HistoryEntry, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]entities.HistoryEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBuildingRepo struct{ mock.Mock }

func (m *mockBuildingRepo) GetBuildings(ctx context.Context) ([]entities.Building, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]entities.Building), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBuildingRepo) FindBuilding(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Building, error) {
	args := m.Called(ctx, tx, id)
	if v := args.Get(0); v != nil {
		return v.(*entities.Building), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBuildingRepo) CreateBuilding(ctx context.Context, name string) (*entities.Building, error) {
	args := m.Called(ctx, name)
	if v := args.Get(0); v != nil {
		return v.(*entities.Building), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBuildingRepo) DeleteBuilding(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type mockDeviceTypeRepo struct{ mock.Mock }

func (m *mockDeviceTypeRepo) GetDeviceTypes(ctx context.Context) ([]entities.DeviceType, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]entities.DeviceType), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDeviceTypeRepo) FindDeviceType(ctx context.Context, tx pgx.Tx, id uint64) (*entities.DeviceType, error) {
	args := m.Called(ctx, tx, id)
	if v := args.Get(0); v != nil {
		return v.(*entities.DeviceType), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDeviceTypeRepo) CreateDeviceType(ctx context.Context, name string) (*entities.DeviceType, error) {
	args := m.Called(ctx, name)
	if v := args.Get(0); v != nil {
		return v.(*entities.DeviceType), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDeviceTypeRepo) DeleteDeviceType(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetUsers(ctx context.Context) ([]entities.User, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if v := args.Get(0); v != nil {
		return v.(*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if v := args.Get(0); v != nil {
		return v.(*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCacheRepo struct{ mock.Mock }

func (m *mockCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *mockCacheRepo) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockCacheRepo) Del(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *mockCacheRepo) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCacheRepo) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.Error(1)
}

type mockDashboardRepo struct{ mock.Mock }

func (m *mockDashboardRepo) GetInventoryStats(ctx context.Context) (*types.InventoryStats, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*types.InventoryStats), args.Error(1)
	}
	return nil, args.Error(1)
}
