package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/colegioeccos/requesthub/internal/domain"
)

// PrincipalRepository defines persistence access for portal members.
type PrincipalRepository interface {
	Create(ctx context.Context, principal *domain.Principal) error
	GetByID(ctx context.Context, id string) (*domain.Principal, error)
	GetByEmail(ctx context.Context, email string) (*domain.Principal, error)
	List(ctx context.Context) ([]domain.Principal, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	ListAdminEmails(ctx context.Context) ([]string, error)
}

type principalRepository struct {
	pool *pgxpool.Pool
}

// NewPrincipalRepository returns a Postgres-backed implementation.
func NewPrincipalRepository(pool *pgxpool.Pool) PrincipalRepository {
	return &principalRepository{pool: pool}
}

func (r *principalRepository) Create(ctx context.Context, principal *domain.Principal) error {
	const query = `
        INSERT INTO principals (id, email, display_name, photo_url, role, last_login)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		principal.ID,
		principal.Email,
		principal.DisplayName,
		principal.PhotoURL,
		principal.Role,
		principal.LastLogin,
	).Scan(&principal.CreatedAt, &principal.UpdatedAt)
}

func (r *principalRepository) GetByID(ctx context.Context, id string) (*domain.Principal, error) {
	const query = `
        SELECT id, email, display_name, photo_url, role, last_login, created_at, updated_at
        FROM principals WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *principalRepository) GetByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	const query = `
        SELECT id, email, display_name, photo_url, role, last_login, created_at, updated_at
        FROM principals WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *principalRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Principal, error) {
	var principal domain.Principal
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&principal.ID,
		&principal.Email,
		&principal.DisplayName,
		&principal.PhotoURL,
		&principal.Role,
		&principal.LastLogin,
		&principal.CreatedAt,
		&principal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &principal, nil
}

func (r *principalRepository) List(ctx context.Context) ([]domain.Principal, error) {
	const query = `
        SELECT id, email, display_name, photo_url, role, last_login, created_at, updated_at
        FROM principals ORDER BY display_name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Principal
	for rows.Next() {
		var principal domain.Principal
		if err := rows.Scan(
			&principal.ID,
			&principal.Email,
			&principal.DisplayName,
			&principal.PhotoURL,
			&principal.Role,
			&principal.LastLogin,
			&principal.CreatedAt,
			&principal.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, principal)
	}
	return result, rows.Err()
}

func (r *principalRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE principals SET last_login=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, at, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *principalRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	const query = `UPDATE principals SET role=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, role, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *principalRepository) ListAdminEmails(ctx context.Context) ([]string, error) {
	const query = `SELECT email FROM principals WHERE role=$1 ORDER BY email ASC`
	rows, err := r.pool.Query(ctx, query, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
