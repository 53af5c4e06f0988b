package pause

import (
	"context"
	"time"

	"mealbox/internal/calendar"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *Pause) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO pauses (
			id,
			client_id,
			start_date,
			end_date,
			meal_type
		)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`,
		p.ID,
		p.ClientID,
		p.StartDate.Time(),
		p.EndDate.Time(),
		string(p.MealType),
	).Scan(&p.CreatedAt)
}

func (r *PostgresRepository) ListByClient(ctx context.Context, clientID string) ([]Pause, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			client_id,
			start_date,
			end_date,
			meal_type,
			created_at
		FROM pauses
		WHERE client_id = $1
		ORDER BY start_date
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pauses []Pause
	for rows.Next() {
		var (
			p          Pause
			start, end time.Time
			scope      string
		)
		if err := rows.Scan(&p.ID, &p.ClientID, &start, &end, &scope, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.StartDate = calendar.FromTime(start)
		p.EndDate = calendar.FromTime(end)
		p.MealType = Scope(scope)
		pauses = append(pauses, p)
	}
	return pauses, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, clientID, id string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM pauses
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
