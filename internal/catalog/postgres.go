package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// PostgresCatalog implements Provider against the catalog tables.
type PostgresCatalog struct {
	pool *pgxpool.Pool
}

// NewPostgresCatalog returns a catalog reader sharing an existing pool.
func NewPostgresCatalog(pool *pgxpool.Pool) *PostgresCatalog {
	return &PostgresCatalog{pool: pool}
}

// ListServices returns every service with its hardware components.
func (c *PostgresCatalog) ListServices(ctx context.Context) ([]domain.Service, error) {
	rows, err := c.pool.Query(ctx, queryListServices)
	if err != nil {
		return nil, fmt.Errorf("querying services: %w", err)
	}
	defer rows.Close()

	services := []domain.Service{}
	for rows.Next() {
		var (
			s                            domain.Service
			ramTotal, ramAmount, ramSize int
			ramType                      string
			disks                        []byte
			gpu                          *string
		)
		if err := rows.Scan(
			&s.ServiceID,
			&s.Region,
			&s.CPU,
			&s.CPUConstructor,
			&ramTotal,
			&ramType,
			&ramAmount,
			&ramSize,
			&s.RAMECC,
			&disks,
			&gpu,
		); err != nil {
			return nil, fmt.Errorf("scanning service: %w", err)
		}

		s.RAM = fmt.Sprintf("%d-%s", ramTotal, ramType)
		s.RAMCount = fmt.Sprintf("%d x %dMB", ramAmount, ramSize)
		if gpu != nil {
			s.GPU = *gpu
		}
		if err := json.Unmarshal(disks, &s.Disks); err != nil {
			return nil, fmt.Errorf("decoding disks for service %d: %w", s.ServiceID, err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating services: %w", err)
	}

	return services, nil
}

// LatestPrices returns the newest price for each service id that has one.
func (c *PostgresCatalog) LatestPrices(
	ctx context.Context,
	serviceIDs []int,
) ([]domain.PricePoint, error) {
	if len(serviceIDs) == 0 {
		return []domain.PricePoint{}, nil
	}

	rows, err := c.pool.Query(ctx, queryLatestPrices, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("querying latest prices: %w", err)
	}
	defer rows.Close()

	points := []domain.PricePoint{}
	for rows.Next() {
		var (
			p     domain.PricePoint
			price string
		)
		if err := rows.Scan(&p.ID, &price); err != nil {
			return nil, fmt.Errorf("scanning latest price: %w", err)
		}
		if p.LatestPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parsing price for service %d: %w", p.ID, err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating latest prices: %w", err)
	}

	return points, nil
}

// PriceHistory returns deduplicated histories for the cheapest services.
func (c *PostgresCatalog) PriceHistory(
	ctx context.Context,
	serviceIDs []int,
	limit int,
) ([]domain.PriceHistory, error) {
	if len(serviceIDs) == 0 {
		return nil, ErrNoServiceIDs
	}

	latest, err := c.LatestPrices(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}
	cheapest := Cheapest(latest, ClampHistoryLimit(limit))

	batch := &pgx.Batch{}
	for _, p := range cheapest {
		batch.Queue(queryPriceHistory, p.ID)
	}
	br := c.pool.SendBatch(ctx, batch)
	defer br.Close()

	histories := make([]domain.PriceHistory, 0, len(cheapest))
	for _, p := range cheapest {
		samples, err := scanHistory(br)
		if err != nil {
			return nil, fmt.Errorf("price history for service %d: %w", p.ID, err)
		}
		histories = append(histories, domain.PriceHistory{
			ID:      p.ID,
			History: DedupeHistory(samples),
		})
	}

	return histories, nil
}

func scanHistory(br pgx.BatchResults) ([]domain.PriceSample, error) {
	rows, err := br.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []domain.PriceSample
	for rows.Next() {
		var (
			s     domain.PriceSample
			price string
		)
		if err := rows.Scan(&s.Timestamp, &price, &s.HetznerID); err != nil {
			return nil, err
		}
		if s.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
