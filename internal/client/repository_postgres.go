package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const clientColumns = `
	id,
	owner_id,
	name,
	phone,
	address,
	customer_type,
	status,
	delivery_schedule,
	plan,
	created_at,
	updated_at
`

// --------------------------------------------------
// Create
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, c *Client) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	schedule, plan, err := encodeJSONColumns(c)
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO clients (
			id,
			owner_id,
			name,
			phone,
			address,
			customer_type,
			status,
			delivery_schedule,
			plan
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`,
		c.ID,
		c.OwnerID,
		c.Name,
		c.Phone,
		c.Address,
		c.CustomerType,
		c.Status,
		schedule,
		plan,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// --------------------------------------------------
// Update (full replace of mutable fields)
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, c *Client) error {
	schedule, plan, err := encodeJSONColumns(c)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, `
		UPDATE clients
		SET name = $2,
		    phone = $3,
		    address = $4,
		    customer_type = $5,
		    status = $6,
		    delivery_schedule = $7,
		    plan = $8,
		    updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`,
		c.ID,
		c.Name,
		c.Phone,
		c.Address,
		c.CustomerType,
		c.Status,
		schedule,
		plan,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	row := r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)

	c, err := scanClient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Client, error) {
	return r.query(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE owner_id = $1
		ORDER BY created_at
	`, ownerID)
}

func (r *PostgresRepository) ListActive(ctx context.Context, ownerID string) ([]*Client, error) {
	return r.query(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE owner_id = $1
		  AND status = 'active'
		ORDER BY created_at
	`, ownerID)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE clients
		SET status = $1,
		    updated_at = now()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the client; pauses and orders go with it (ON DELETE CASCADE).
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) query(ctx context.Context, sql string, args ...any) ([]*Client, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func scanClient(row pgx.Row) (*Client, error) {
	var (
		c        Client
		schedule []byte
		plan     []byte
	)
	if err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.Name,
		&c.Phone,
		&c.Address,
		&c.CustomerType,
		&c.Status,
		&schedule,
		&plan,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(schedule) > 0 {
		if err := json.Unmarshal(schedule, &c.DeliverySchedule); err != nil {
			return nil, fmt.Errorf("decode delivery_schedule for client %s: %w", c.ID, err)
		}
	}
	if len(plan) > 0 && string(plan) != "null" {
		c.Plan = &Plan{}
		if err := json.Unmarshal(plan, c.Plan); err != nil {
			return nil, fmt.Errorf("decode plan for client %s: %w", c.ID, err)
		}
	}
	return &c, nil
}

func encodeJSONColumns(c *Client) ([]byte, []byte, error) {
	schedule, err := json.Marshal(c.DeliverySchedule)
	if err != nil {
		return nil, nil, fmt.Errorf("encode delivery_schedule: %w", err)
	}
	var plan []byte
	if c.Plan != nil {
		if plan, err = json.Marshal(c.Plan); err != nil {
			return nil, nil, fmt.Errorf("encode plan: %w", err)
		}
	}
	return schedule, plan, nil
}
