package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/colegioeccos/requesthub/internal/domain"
)

// EquipmentRepository encapsulates catalog persistence.
type EquipmentRepository interface {
	Create(ctx context.Context, equipment *domain.Equipment) error
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
	ListByType(ctx context.Context, equipmentType domain.EquipmentType) ([]domain.Equipment, error)
	Delete(ctx context.Context, id string) error
}

type equipmentRepository struct {
	pool *pgxpool.Pool
}

// NewEquipmentRepository instantiates repository.
func NewEquipmentRepository(pool *pgxpool.Pool) EquipmentRepository {
	return &equipmentRepository{pool: pool}
}

func (r *equipmentRepository) Create(ctx context.Context, equipment *domain.Equipment) error {
	const query = `
        INSERT INTO equipment (type, name, is_available)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		equipment.Type,
		equipment.Name,
		equipment.IsAvailable,
	).Scan(&equipment.ID, &equipment.CreatedAt)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	const query = `
        SELECT id, type, name, is_available, created_at
        FROM equipment WHERE id=$1`
	var equipment domain.Equipment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&equipment.ID,
		&equipment.Type,
		&equipment.Name,
		&equipment.IsAvailable,
		&equipment.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &equipment, nil
}

func (r *equipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	const query = `
        SELECT id, type, name, is_available, created_at
        FROM equipment ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEquipment(rows)
}

func (r *equipmentRepository) ListByType(ctx context.Context, equipmentType domain.EquipmentType) ([]domain.Equipment, error) {
	const query = `
        SELECT id, type, name, is_available, created_at
        FROM equipment WHERE type=$1 ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query, equipmentType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEquipment(rows)
}

func (r *equipmentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM equipment WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanEquipment(rows pgx.Rows) ([]domain.Equipment, error) {
	var result []domain.Equipment
	for rows.Next() {
		var equipment domain.Equipment
		if err := rows.Scan(
			&equipment.ID,
			&equipment.Type,
			&equipment.Name,
			&equipment.IsAvailable,
			&equipment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, equipment)
	}
	return result, rows.Err()
}
