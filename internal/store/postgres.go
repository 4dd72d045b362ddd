package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
// Each service alert is one row whose tiers are kept in a JSONB column.
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresOption configures the connection pool before it is opened.
type PostgresOption func(*pgxpool.Config)

// WithPoolSize overrides the maximum number of pooled connections.
func WithPoolSize(n int) PostgresOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = int32(n) //nolint:gosec // pool size comes from validated config
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(
	ctx context.Context,
	connString string,
	opts ...PostgresOption,
) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Pool exposes the underlying pool so the catalog reader can share it.
func (s *PostgresStore) Pool() *pgxpool.Pool {
	return s.pool
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// GetServiceAlert loads the alert record for a service. It returns
// ErrNotFound when the service has no alerts.
func (s *PostgresStore) GetServiceAlert(
	ctx context.Context,
	serviceID int,
) (*domain.ServiceAlert, error) {
	a := &domain.ServiceAlert{}
	if err := scanServiceAlert(s.pool.QueryRow(ctx, queryGetServiceAlert, serviceID), a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting service alert %d: %w", serviceID, err)
	}
	return a, nil
}

// UpsertServiceAlert writes the full record, replacing any stored tiers.
func (s *PostgresStore) UpsertServiceAlert(ctx context.Context, a *domain.ServiceAlert) error {
	if err := validateRecord(a); err != nil {
		return err
	}

	tiers, err := json.Marshal(a.Tiers)
	if err != nil {
		return fmt.Errorf("marshaling alert tiers: %w", err)
	}

	args := pgx.NamedArgs{
		"service_id": a.ServiceID,
		"alerts":     tiers,
	}

	var updatedAt time.Time
	if err := s.pool.QueryRow(ctx, queryUpsertServiceAlert, args).Scan(&updatedAt); err != nil {
		return fmt.Errorf("upserting service alert %d: %w", a.ServiceID, err)
	}
	a.UpdatedAt = updatedAt
	return nil
}

// DeleteServiceAlert removes the record for a service. Deleting a missing
// record is not an error.
func (s *PostgresStore) DeleteServiceAlert(ctx context.Context, serviceID int) error {
	if _, err := s.pool.Exec(ctx, queryDeleteServiceAlert, serviceID); err != nil {
		return fmt.Errorf("deleting service alert %d: %w", serviceID, err)
	}
	return nil
}

// ListServiceAlerts returns every alert record ordered by service id.
func (s *PostgresStore) ListServiceAlerts(ctx context.Context) ([]domain.ServiceAlert, error) {
	return s.queryServiceAlerts(ctx, queryListServiceAlerts)
}

// ListUserSubscriptions returns the services and prices the user is
// subscribed to.
func (s *PostgresStore) ListUserSubscriptions(
	ctx context.Context,
	userID domain.UserID,
) ([]domain.UserSubscription, error) {
	alerts, err := s.queryServiceAlerts(ctx, queryListServiceAlertsForUser, string(userID))
	if err != nil {
		return nil, err
	}
	return subscriptionsFrom(alerts, userID), nil
}

func (s *PostgresStore) queryServiceAlerts(
	ctx context.Context,
	query string,
	args ...any,
) ([]domain.ServiceAlert, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying service alerts: %w", err)
	}
	defer rows.Close()

	var alerts []domain.ServiceAlert
	for rows.Next() {
		var a domain.ServiceAlert
		if err := scanServiceAlert(rows, &a); err != nil {
			return nil, fmt.Errorf("scanning service alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating service alerts: %w", err)
	}

	return alerts, nil
}

func scanServiceAlert(row pgx.Row, a *domain.ServiceAlert) error {
	var tiers []byte
	if err := row.Scan(&a.ServiceID, &tiers, &a.UpdatedAt); err != nil {
		return err
	}
	if err := json.Unmarshal(tiers, &a.Tiers); err != nil {
		return fmt.Errorf("unmarshaling alert tiers: %w", err)
	}
	return nil
}
