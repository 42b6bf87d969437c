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

var _ repository.WarehouseEntryRepository = (*WarehouseEntryRepo)(nil)

// WarehouseEntryRepo saldos del almacén (warehouse_entries), una fila por material.
type WarehouseEntryRepo struct {
	q Querier
}

func NewWarehouseEntryRepository(q Querier) *WarehouseEntryRepo {
	return &WarehouseEntryRepo{q: q}
}

const entryColumns = `id, material_id, remainder, price, updated_at`

func (r *WarehouseEntryRepo) getOne(ctx context.Context, op, query, materialID string) (*entity.WarehouseEntry, error) {
	var e entity.WarehouseEntry
	err := r.q.QueryRow(ctx, query, materialID).Scan(&e.ID, &e.MaterialID, &e.Remainder, &e.Price, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}

// GetByMaterialForUpdate obtiene la entrada y bloquea la fila (SELECT FOR UPDATE).
func (r *WarehouseEntryRepo) GetByMaterialForUpdate(ctx context.Context, materialID string) (*entity.WarehouseEntry, error) {
	return r.getOne(ctx, "get warehouse entry for update",
		`SELECT `+entryColumns+` FROM warehouse_entries WHERE material_id = $1 FOR UPDATE`, materialID)
}

func (r *WarehouseEntryRepo) UpdateRemainder(ctx context.Context, id string, remainder decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE warehouse_entries SET remainder = $2, updated_at = now() WHERE id = $1`, id, remainder)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: saldo negativo", domain.ErrInsufficientStock)
		}
		return fmt.Errorf("update remainder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upsert inserta o actualiza el saldo y precio del material.
func (r *WarehouseEntryRepo) Upsert(ctx context.Context, e *entity.WarehouseEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO warehouse_entries (id, material_id, remainder, price, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (material_id)
		DO UPDATE SET remainder = EXCLUDED.remainder, price = EXCLUDED.price, updated_at = now()`,
		e.ID, e.MaterialID, e.Remainder, e.Price)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: saldo o precio negativo", domain.ErrInvalidInput)
		}
		return fmt.Errorf("upsert warehouse entry: %w", err)
	}
	return nil
}

// ListStock saldo, reserva y precio por material, ordenado por nombre.
func (r *WarehouseEntryRepo) ListStock(ctx context.Context) ([]entity.StockLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT w.id, m.id, m.name, w.remainder, m.reserved_quantity, w.price, w.updated_at
		FROM warehouse_entries w
		JOIN materials m ON m.id = w.material_id
		ORDER BY m.name`)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var out []entity.StockLine
	for rows.Next() {
		var l entity.StockLine
		if err := rows.Scan(&l.WarehouseID, &l.MaterialID, &l.MaterialName, &l.Remainder, &l.Reserved, &l.Price, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
