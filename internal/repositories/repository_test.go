package repositories

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"school-inventory/pkg/database/postgresql"
)

var testPool *pgxpool.Pool

// TestMain поднимает схему в тестовой БД, если задан TEST_DATABASE_URL.
// Без него интеграционные тесты пропускаются, остальные выполняются.
func TestMain(m *testing.M) {
	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		ctx := context.Background()
		pool, err := postgresql.ConnectDB(ctx, dsn, zap.NewNop())
		if err != nil {
			log.Fatalf("Не удалось подключиться к тестовой БД: %v", err)
		}
		if err := postgresql.Migrate(ctx, pool, zap.NewNop()); err != nil {
			log.Fatalf("Не удалось применить схему БД: %v", err)
		}
		testPool = pool
	}

	code := m.Run()
	if testPool != nil {
		testPool.Close()
	}
	os.Exit(code)
}

func requireDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL не задан")
	}
	cleanupTables(t, testPool)
	return testPool
}

func cleanupTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `TRUNCATE TABLE history_entries, peripherals, graphics, pc_details, equipments, device_types, buildings, users RESTART IDENTITY CASCADE;`)
	require.NoError(t, err, "Не удалось очистить таблицы")
}
