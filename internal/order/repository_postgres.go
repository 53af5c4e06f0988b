package order

import (
	"context"
	"time"

	"mealbox/internal/calendar"
	"mealbox/internal/meal"

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

func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO orders (
			id,
			client_id,
			order_date,
			meal_type,
			price,
			status
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`,
		o.ID,
		o.ClientID,
		o.OrderDate.Time(),
		string(o.MealType),
		o.Price,
		o.Status,
	).Scan(&o.CreatedAt)
}

func (r *PostgresRepository) ListByClient(ctx context.Context, clientID string) ([]Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, client_id, order_date, meal_type, price, status, created_at
		FROM orders
		WHERE client_id = $1
		ORDER BY order_date, created_at
	`, clientID)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

// ListInRange filters in SQL; the date bounds are inclusive.
func (r *PostgresRepository) ListInRange(ctx context.Context, clientID string, start, end calendar.Date) ([]Order, error) {
	if end.Before(start) {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, client_id, order_date, meal_type, price, status, created_at
		FROM orders
		WHERE client_id = $1
		  AND order_date BETWEEN $2 AND $3
		ORDER BY order_date, created_at
	`, clientID, start.Time(), end.Time())
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

func (r *PostgresRepository) Delete(ctx context.Context, clientID, id string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM orders
		WHERE id = $1 AND client_id = $2
	`, id, clientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrders(rows pgx.Rows) ([]Order, error) {
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var (
			o        Order
			day      time.Time
			mealType string
		)
		if err := rows.Scan(&o.ID, &o.ClientID, &day, &mealType, &o.Price, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.OrderDate = calendar.FromTime(day)
		o.MealType = meal.Type(mealType)
		o.Origin = OriginRecord
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
