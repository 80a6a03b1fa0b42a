package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/colegioeccos/requesthub/internal/domain"
)

// AvailabilityRepository manages the ledger of reservable calendar days.
type AvailabilityRepository interface {
	ListAvailable(ctx context.Context) ([]domain.AvailabilityDate, error)
	AddDates(ctx context.Context, dates []time.Time) (int, error)
	Remove(ctx context.Context, id string) error
	IsAvailable(ctx context.Context, date time.Time) (bool, error)
}

type availabilityRepository struct {
	pool *pgxpool.Pool
}

// NewAvailabilityRepository instantiates repository.
func NewAvailabilityRepository(pool *pgxpool.Pool) AvailabilityRepository {
	return &availabilityRepository{pool: pool}
}

func (r *availabilityRepository) ListAvailable(ctx context.Context) ([]domain.AvailabilityDate, error) {
	const query = `
        SELECT id, day, is_available FROM availability
        WHERE is_available = TRUE ORDER BY day ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AvailabilityDate
	for rows.Next() {
		var entry domain.AvailabilityDate
		if err := rows.Scan(&entry.ID, &entry.Date, &entry.IsAvailable); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

// AddDates inserts one ledger entry per day. The unique index on day makes
// the bulk insert idempotent; already present days are skipped server-side.
func (r *availabilityRepository) AddDates(ctx context.Context, dates []time.Time) (int, error) {
	const query = `
        INSERT INTO availability (day, is_available)
        VALUES ($1::date, TRUE)
        ON CONFLICT (day) DO NOTHING`

	inserted := 0
	for _, date := range dates {
		cmd, err := r.pool.Exec(ctx, query, domain.DayOf(date))
		if err != nil {
			return inserted, err
		}
		inserted += int(cmd.RowsAffected())
	}
	return inserted, nil
}

func (r *availabilityRepository) Remove(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM availability WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *availabilityRepository) IsAvailable(ctx context.Context, date time.Time) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM availability WHERE day = $1::date AND is_available = TRUE
        )`
	var available bool
	if err := r.pool.QueryRow(ctx, query, domain.DayOf(date)).Scan(&available); err != nil {
		return false, err
	}
	return available, nil
}
