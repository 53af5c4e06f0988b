package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func ConnectPostgres(ctx context.Context, dsn string, logger *zap.SugaredLogger) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	logger.Infow("connected to postgres", "host", config.ConnConfig.Host, "database", config.ConnConfig.Database)

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	logger.Info("schema initialized")
	return db, nil
}

// initSchema creates the tables if they do not exist yet. Pauses and
// orders belong to a client and are deleted with it; bills keep a
// denormalized client name and survive the client.
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

var schema = []string{
	// -------------------------------
	// CLIENTS
	// -------------------------------
	`
	CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		customer_type VARCHAR(20) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		delivery_schedule JSONB NOT NULL DEFAULT '{}',
		plan JSONB NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
	`,
	`CREATE INDEX IF NOT EXISTS clients_owner_status_idx ON clients (owner_id, status)`,

	// -------------------------------
	// PAUSES
	// -------------------------------
	`
	CREATE TABLE IF NOT EXISTS pauses (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		meal_type VARCHAR(10) NOT NULL DEFAULT 'both',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (start_date <= end_date)
	)
	`,
	`CREATE INDEX IF NOT EXISTS pauses_client_idx ON pauses (client_id)`,

	// -------------------------------
	// ORDERS
	// -------------------------------
	`
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		order_date DATE NOT NULL,
		meal_type VARCHAR(10) NOT NULL,
		price NUMERIC(12, 2) NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
	`,
	`CREATE INDEX IF NOT EXISTS orders_client_date_idx ON orders (client_id, order_date)`,

	// -------------------------------
	// BILLS
	// -------------------------------
	`
	CREATE TABLE IF NOT EXISTS bills (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		client_id TEXT NOT NULL,
		client_name VARCHAR(255) NOT NULL,
		period_start DATE NULL,
		period_end DATE NULL,
		billing_month VARCHAR(7) NULL,
		status VARCHAR(10) NOT NULL DEFAULT 'unpaid',
		final_amount NUMERIC(12, 2) NOT NULL,
		details JSONB NOT NULL DEFAULT '{}',
		generated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
	`,
	`CREATE INDEX IF NOT EXISTS bills_owner_generated_idx ON bills (owner_id, generated_at DESC)`,
}
