package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mealbox/internal/calendar"

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

const billColumns = `
	id,
	owner_id,
	client_id,
	client_name,
	period_start,
	period_end,
	billing_month,
	status,
	final_amount,
	details,
	generated_at
`

func (r *PostgresRepository) Create(ctx context.Context, b *Bill) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	details, err := json.Marshal(b.Details)
	if err != nil {
		return fmt.Errorf("encode bill details: %w", err)
	}

	var start, end *time.Time
	if b.BillingPeriod != nil && !b.BillingPeriod.Start.IsZero() && !b.BillingPeriod.End.IsZero() {
		s, e := b.BillingPeriod.Start.Time(), b.BillingPeriod.End.Time()
		start, end = &s, &e
	}
	var month *string
	if b.BillingMonth != "" {
		month = &b.BillingMonth
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO bills (
			id,
			owner_id,
			client_id,
			client_name,
			period_start,
			period_end,
			billing_month,
			status,
			final_amount,
			details,
			generated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		b.ID,
		b.OwnerID,
		b.ClientID,
		b.ClientName,
		start,
		end,
		month,
		b.Status,
		b.FinalAmount,
		details,
		b.GeneratedAt,
	)
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Bill, error) {
	row := r.db.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE id = $1`, id)

	b, err := scanBill(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

// --------------------------------------------------
// ListByOwner (newest first, optional filters)
// --------------------------------------------------
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, f ListFilter) ([]*Bill, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+billColumns+`
		FROM bills
		WHERE owner_id = $1
		  AND ($2 = '' OR client_id = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY generated_at DESC
	`, ownerID, f.ClientID, string(f.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []*Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE bills SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBill(row pgx.Row) (*Bill, error) {
	var (
		b          Bill
		start, end *time.Time
		month      *string
		details    []byte
	)
	if err := row.Scan(
		&b.ID,
		&b.OwnerID,
		&b.ClientID,
		&b.ClientName,
		&start,
		&end,
		&month,
		&b.Status,
		&b.FinalAmount,
		&details,
		&b.GeneratedAt,
	); err != nil {
		return nil, err
	}

	if start != nil && end != nil {
		b.BillingPeriod = &calendar.Range{
			Start: calendar.FromTime(*start),
			End:   calendar.FromTime(*end),
		}
	}
	if month != nil {
		b.BillingMonth = *month
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &b.Details); err != nil {
			return nil, fmt.Errorf("decode details for bill %s: %w", b.ID, err)
		}
	}
	return &b, nil
}
