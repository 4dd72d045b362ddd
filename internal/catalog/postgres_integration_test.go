//go:build integration

package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donaldgifford/server-price-alerts/internal/catalog"
	"github.com/donaldgifford/server-price-alerts/internal/store"
)

const seedCatalog = `
	INSERT INTO cpus (id, cpu_name, cpu_vendor) VALUES
		(1, 'AMD Ryzen 5 3600', 'AMD'),
		(2, 'Intel Core i7-6700', 'Intel');
	INSERT INTO rams (id, ram_total_size_gb, ram_type, ram_amount, ram_size_mb, is_ecc) VALUES
		(1, 64, 'DDR4', 4, 16384, false),
		(2, 32, 'DDR4', 2, 16384, true);
	INSERT INTO disks (id, capacity_gb, type, quantity) VALUES
		(1, 512, 'nvme', 2),
		(2, 4000, 'hdd', 2);
	INSERT INTO diskgroup_disks (disk_group_id, disk_id) VALUES (10, 1), (20, 2);
	INSERT INTO gpu (id, name) VALUES (1, 'GeForce GTX 1080');
	INSERT INTO services (id, cpu_id, ram_id, disk_group_id, gpu_id, region) VALUES
		(100, 1, 1, 10, NULL, 'FSN'),
		(200, 2, 2, 20, 1, 'HEL'),
		(300, 2, 2, NULL, NULL, 'NBG');
	INSERT INTO distinctservicesprices (service_id, hetzner_id, price, timestamp) VALUES
		(100, 1, 45.00, '2026-01-01T00:00:00Z'),
		(100, 1, 39.90, '2026-01-02T00:00:00Z'),
		(100, 1, 45.00, '2026-01-03T00:00:00Z'),
		(200, 2, 30.00, '2026-01-01T00:00:00Z'),
		(200, 2, 28.00, '2026-01-03T00:00:00Z'),
		(200, 2, 27.50, '2026-01-03T00:00:00Z');`

func setupCatalog(t *testing.T) *catalog.PostgresCatalog {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("spa_catalog_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, store.RunMigrations(ctx, pool))
	_, err = pool.Exec(ctx, seedCatalog)
	require.NoError(t, err)

	return catalog.NewPostgresCatalog(pool)
}

func TestPostgresCatalog(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	t.Run("list services", func(t *testing.T) {
		services, err := c.ListServices(ctx)
		require.NoError(t, err)
		require.Len(t, services, 3)

		first := services[0]
		assert.Equal(t, 100, first.ServiceID)
		assert.Equal(t, "AMD", first.CPUConstructor)
		assert.Equal(t, "64-DDR4", first.RAM)
		assert.Equal(t, "4 x 16384MB", first.RAMCount)
		require.Len(t, first.Disks, 1)
		assert.Equal(t, "2x-512GB-nvme", first.Disks[0].Spec())
		assert.Empty(t, first.GPU)

		assert.Equal(t, "GeForce GTX 1080", services[1].GPU)
		assert.True(t, services[1].RAMECC)
		assert.Empty(t, services[2].Disks)
	})

	t.Run("latest prices", func(t *testing.T) {
		points, err := c.LatestPrices(ctx, []int{100, 200, 300, 999})
		require.NoError(t, err)
		require.Len(t, points, 2, "services without prices are omitted")

		byID := map[int]string{}
		for _, p := range points {
			byID[p.ID] = p.LatestPrice.String()
		}
		assert.Equal(t, "45", byID[100])
		assert.Equal(t, "27.5", byID[200], "same timestamp takes the lowest price")
	})

	t.Run("latest prices without ids", func(t *testing.T) {
		points, err := c.LatestPrices(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, points)
	})

	t.Run("history of the cheapest service", func(t *testing.T) {
		histories, err := c.PriceHistory(ctx, []int{100, 200}, 1)
		require.NoError(t, err)
		require.Len(t, histories, 1)
		assert.Equal(t, 200, histories[0].ID)

		prices := make([]string, 0, len(histories[0].History))
		for _, s := range histories[0].History {
			prices = append(prices, s.Price.String())
		}
		assert.Equal(t, []string{"27.5", "28", "30"}, prices)
	})

	t.Run("history deduplicates by price", func(t *testing.T) {
		histories, err := c.PriceHistory(ctx, []int{100}, 0)
		require.NoError(t, err)
		require.Len(t, histories, 1)
		require.Len(t, histories[0].History, 2)
		assert.Equal(t, "45", histories[0].History[0].Price.String())
		assert.Equal(t, "39.9", histories[0].History[1].Price.String())
	})

	t.Run("history without ids", func(t *testing.T) {
		_, err := c.PriceHistory(ctx, nil, 5)
		require.ErrorIs(t, err, catalog.ErrNoServiceIDs)
	})
}
