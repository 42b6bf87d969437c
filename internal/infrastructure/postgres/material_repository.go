package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Jamxon/Korxona/internal/domain"
	"github.com/Jamxon/Korxona/internal/domain/entity"
	"github.com/Jamxon/Korxona/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo materiales y su contador reserved_quantity.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, name, reserved_quantity, created_at, updated_at`

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	if err := row.Scan(&m.ID, &m.Name, &m.ReservedQuantity, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

func (r *MaterialRepo) GetByName(ctx context.Context, name string) (*entity.Material, error) {
	return r.getOne(ctx, "get material by name",
		`SELECT `+materialColumns+` FROM materials WHERE lower(name) = lower($1)`, name)
}

// GetForUpdate obtiene el material y bloquea la fila (SELECT FOR UPDATE).
func (r *MaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.getOne(ctx, "get material for update",
		`SELECT `+materialColumns+` FROM materials WHERE id = $1 FOR UPDATE`, id)
}

func (r *MaterialRepo) IncrementReserved(ctx context.Context, id string, qty decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE materials SET reserved_quantity = reserved_quantity + $2, updated_at = now()
		WHERE id = $1`, id, qty)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: reserva inválida para material %s", domain.ErrConflict, id)
		}
		return fmt.Errorf("increment reserved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementReserved nunca deja la reserva por debajo de cero.
func (r *MaterialRepo) DecrementReserved(ctx context.Context, id string, qty decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE materials SET reserved_quantity = GREATEST(reserved_quantity - $2, 0), updated_at = now()
		WHERE id = $1`, id, qty)
	if err != nil {
		return fmt.Errorf("decrement reserved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO materials (id, name, reserved_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.Name, m.ReservedQuantity, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: material %q ya existe", domain.ErrConflict, m.Name)
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}
